// Package stats computes statistics over an in-memory blog collection.
//
// Every function here is pure: no storage access, no shared state, safe to
// call concurrently on independent inputs. An empty input is always a
// defined result (zero, or ok=false), never an error.
//
// The two author statistics share one grouping fold that preserves
// first-seen order, so the tie-break rule (first group encountered wins)
// is uniform across them, and FavoriteBlog applies the same rule to
// individual blogs.
package stats

import "github.com/jsundman/bloglist/internal/model"

// AuthorCount is the result of AuthorWithMostBlogs.
type AuthorCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the result of AuthorWithMostLikes.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums the likes across all blogs. Zero for an empty slice.
func TotalLikes(blogs []model.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes. When several blogs
// share the maximum, the first one in input order wins. ok is false for an
// empty slice.
func FavoriteBlog(blogs []model.Blog) (favorite model.Blog, ok bool) {
	for i, b := range blogs {
		if i == 0 || b.Likes > favorite.Likes {
			favorite = b
			ok = true
		}
	}
	return favorite, ok
}

// AuthorWithMostBlogs returns the author with the largest number of blogs.
// ok is false for an empty slice.
func AuthorWithMostBlogs(blogs []model.Blog) (AuthorCount, bool) {
	author, count, ok := maxByAuthor(blogs, func(model.Blog) int { return 1 })
	return AuthorCount{Author: author, Blogs: count}, ok
}

// AuthorWithMostLikes returns the author with the largest cumulative like
// count. ok is false for an empty slice.
func AuthorWithMostLikes(blogs []model.Blog) (AuthorLikes, bool) {
	author, likes, ok := maxByAuthor(blogs, func(b model.Blog) int { return b.Likes })
	return AuthorLikes{Author: author, Likes: likes}, ok
}

// maxByAuthor folds the blogs into per-author accumulators and returns the
// author with the largest total. Groups are ranked in the order their
// author was first seen, and a later group must strictly exceed the
// current maximum to win; that is the whole tie-break rule.
func maxByAuthor(blogs []model.Blog, value func(model.Blog) int) (string, int, bool) {
	totals := map[string]int{}
	order := []string{}

	for _, b := range blogs {
		if _, seen := totals[b.Author]; !seen {
			order = append(order, b.Author)
		}
		totals[b.Author] += value(b)
	}

	if len(order) == 0 {
		return "", 0, false
	}

	best := order[0]
	for _, author := range order[1:] {
		if totals[author] > totals[best] {
			best = author
		}
	}
	return best, totals[best], true
}
