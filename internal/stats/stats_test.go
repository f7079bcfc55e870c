package stats

import (
	"testing"

	"github.com/jsundman/bloglist/internal/model"
)

// The canonical six-blog list used across the aggregation tests.
func testBlogs() []model.Blog {
	return []model.Blog{
		{ID: "1", Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
		{ID: "2", Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html", Likes: 5},
		{ID: "3", Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html", Likes: 12},
		{ID: "4", Title: "First class tests", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017-05-05-TestDefinitions.html", Likes: 10},
		{ID: "5", Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017-03-03-TDD-Harms-Architecture.html", Likes: 0},
		{ID: "6", Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2016-05-01-TypeWars.html", Likes: 2},
	}
}

// =========================================================================
// TOTAL LIKES
// =========================================================================

func TestTotalLikes(t *testing.T) {
	tests := []struct {
		name  string
		blogs []model.Blog
		want  int
	}{
		{
			name:  "empty list is zero",
			blogs: []model.Blog{},
			want:  0,
		},
		{
			name:  "single blog equals its likes",
			blogs: testBlogs()[2:3],
			want:  12,
		},
		{
			name:  "bigger list is summed",
			blogs: testBlogs(),
			want:  36,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalLikes(tt.blogs); got != tt.want {
				t.Errorf("TotalLikes() = %d, want %d", got, tt.want)
			}
		})
	}
}

// =========================================================================
// FAVORITE BLOG
// =========================================================================

func TestFavoriteBlog(t *testing.T) {
	got, ok := FavoriteBlog(testBlogs())
	if !ok {
		t.Fatal("FavoriteBlog() ok = false for non-empty input")
	}
	if got.Title != "Canonical string reduction" {
		t.Errorf("FavoriteBlog().Title = %q, want %q", got.Title, "Canonical string reduction")
	}
	if got.Likes != 12 {
		t.Errorf("FavoriteBlog().Likes = %d, want 12", got.Likes)
	}
}

func TestFavoriteBlog_Empty(t *testing.T) {
	_, ok := FavoriteBlog(nil)
	if ok {
		t.Error("FavoriteBlog() ok = true for empty input")
	}
}

func TestFavoriteBlog_TieKeepsFirstInInputOrder(t *testing.T) {
	blogs := []model.Blog{
		{ID: "a", Title: "first", Likes: 9},
		{ID: "b", Title: "second", Likes: 9},
		{ID: "c", Title: "third", Likes: 3},
	}

	got, ok := FavoriteBlog(blogs)
	if !ok {
		t.Fatal("FavoriteBlog() ok = false for non-empty input")
	}
	if got.ID != "a" {
		t.Errorf("FavoriteBlog() tie broke to %q, want first blog %q", got.ID, "a")
	}
}

func TestFavoriteBlog_AllZeroLikes(t *testing.T) {
	blogs := []model.Blog{
		{ID: "a", Likes: 0},
		{ID: "b", Likes: 0},
	}

	got, ok := FavoriteBlog(blogs)
	if !ok {
		t.Fatal("FavoriteBlog() ok = false for non-empty input")
	}
	if got.ID != "a" {
		t.Errorf("FavoriteBlog() = %q, want %q", got.ID, "a")
	}
}

// =========================================================================
// AUTHOR WITH MOST BLOGS
// =========================================================================

func TestAuthorWithMostBlogs(t *testing.T) {
	got, ok := AuthorWithMostBlogs(testBlogs())
	if !ok {
		t.Fatal("AuthorWithMostBlogs() ok = false for non-empty input")
	}
	want := AuthorCount{Author: "Robert C. Martin", Blogs: 3}
	if got != want {
		t.Errorf("AuthorWithMostBlogs() = %+v, want %+v", got, want)
	}
}

func TestAuthorWithMostBlogs_Empty(t *testing.T) {
	if _, ok := AuthorWithMostBlogs(nil); ok {
		t.Error("AuthorWithMostBlogs() ok = true for empty input")
	}
}

func TestAuthorWithMostBlogs_TieKeepsFirstSeenAuthor(t *testing.T) {
	blogs := []model.Blog{
		{Author: "Ada", Likes: 1},
		{Author: "Grace", Likes: 1},
		{Author: "Ada", Likes: 1},
		{Author: "Grace", Likes: 1},
	}

	got, ok := AuthorWithMostBlogs(blogs)
	if !ok {
		t.Fatal("AuthorWithMostBlogs() ok = false for non-empty input")
	}
	if got.Author != "Ada" {
		t.Errorf("AuthorWithMostBlogs() tie broke to %q, want first-seen %q", got.Author, "Ada")
	}
}

// =========================================================================
// AUTHOR WITH MOST LIKES
// =========================================================================

func TestAuthorWithMostLikes(t *testing.T) {
	got, ok := AuthorWithMostLikes(testBlogs())
	if !ok {
		t.Fatal("AuthorWithMostLikes() ok = false for non-empty input")
	}
	want := AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}
	if got != want {
		t.Errorf("AuthorWithMostLikes() = %+v, want %+v", got, want)
	}
}

func TestAuthorWithMostLikes_Empty(t *testing.T) {
	if _, ok := AuthorWithMostLikes(nil); ok {
		t.Error("AuthorWithMostLikes() ok = true for empty input")
	}
}

func TestAuthorWithMostLikes_TieKeepsFirstSeenAuthor(t *testing.T) {
	blogs := []model.Blog{
		{Author: "Grace", Likes: 4},
		{Author: "Ada", Likes: 2},
		{Author: "Ada", Likes: 2},
	}

	got, ok := AuthorWithMostLikes(blogs)
	if !ok {
		t.Fatal("AuthorWithMostLikes() ok = false for non-empty input")
	}
	if got.Author != "Grace" {
		t.Errorf("AuthorWithMostLikes() tie broke to %q, want first-seen %q", got.Author, "Grace")
	}
}

func TestAuthorWithMostLikes_SingleBlog(t *testing.T) {
	blogs := []model.Blog{
		{Title: "Life", Author: "alice", URL: "http://x", Likes: 42},
	}

	got, ok := AuthorWithMostLikes(blogs)
	if !ok {
		t.Fatal("AuthorWithMostLikes() ok = false for one-blog input")
	}
	want := AuthorLikes{Author: "alice", Likes: 42}
	if got != want {
		t.Errorf("AuthorWithMostLikes() = %+v, want %+v", got, want)
	}
}
