// Command seed is a small maintenance tool for the bloglist database.
//
// With no positional arguments it prints every blog in the database:
//
//	seed -db data/bloglist.db
//
// With arguments it inserts a blog owned by an existing user:
//
//	seed -db data/bloglist.db <username> <title> <author> <url> [likes]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jsundman/bloglist/internal/model"
	"github.com/jsundman/bloglist/internal/repository/sqlite"
)

func main() {
	dbPath := flag.String("db", "data/bloglist.db", "path to the SQLite database")
	flag.Parse()

	db, err := sqlite.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	args := flag.Args()

	if len(args) == 0 {
		if err := listBlogs(ctx, db); err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(args) < 4 || len(args) > 5 {
		fmt.Fprintln(os.Stderr, "usage: seed [-db path] [<username> <title> <author> <url> [likes]]")
		os.Exit(2)
	}

	if err := addBlog(ctx, db, args); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func listBlogs(ctx context.Context, db *sqlite.DB) error {
	blogs, err := db.List(ctx)
	if err != nil {
		return err
	}

	fmt.Println("blogs:")
	for _, b := range blogs {
		fmt.Printf("%s %s %s %d\n", b.Title, b.Author, b.URL, b.Likes)
	}
	return nil
}

func addBlog(ctx context.Context, db *sqlite.DB, args []string) error {
	user, err := db.GetUserByUsername(ctx, args[0])
	if err != nil {
		return fmt.Errorf("looking up owner %q: %w", args[0], err)
	}

	likes := 0
	if len(args) == 5 {
		likes, err = strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("invalid likes value %q", args[4])
		}
	}

	blog := &model.Blog{
		Title:  args[1],
		Author: args[2],
		URL:    args[3],
		Likes:  likes,
		UserID: user.ID,
	}

	if err := db.Create(ctx, blog); err != nil {
		return err
	}

	fmt.Printf("Added %s author %s likes %d\n", blog.Title, blog.Author, blog.Likes)
	return nil
}
