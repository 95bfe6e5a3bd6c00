// Package stats computes aggregates over a list of blogs.
//
// All functions treat their input as read-only and depend on its order: ties
// are always resolved in favour of whatever was seen first.
package stats

import "bloglist/internal/models"

// AuthorBlogs is the number of blogs written by an author.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the total number of likes across an author's blogs.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Summary bundles every statistic for a list of blogs.
type Summary struct {
	TotalLikes   int          `json:"totalLikes"`
	FavoriteBlog *models.Blog `json:"favoriteBlog"`
	MostBlogs    *AuthorBlogs `json:"mostBlogs"`
	MostLikes    *AuthorLikes `json:"mostLikes"`
}

// TotalLikes returns the sum of likes over blogs.
func TotalLikes(blogs []models.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, or nil for no blogs.
func FavoriteBlog(blogs []models.Blog) *models.Blog {
	if len(blogs) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(blogs); i++ {
		if blogs[i].Likes > blogs[best].Likes {
			best = i
		}
	}
	favorite := blogs[best]
	return &favorite
}

// MostBlogs returns the author with the most blogs, or nil for no blogs.
func MostBlogs(blogs []models.Blog) *AuthorBlogs {
	if len(blogs) == 0 {
		return nil
	}
	authors, counts := groupByAuthor(blogs, func(models.Blog) int { return 1 })
	i := argMax(counts)
	return &AuthorBlogs{Author: authors[i], Blogs: counts[i]}
}

// MostLikes returns the author whose blogs have the most likes in total,
// or nil for no blogs.
func MostLikes(blogs []models.Blog) *AuthorLikes {
	if len(blogs) == 0 {
		return nil
	}
	authors, totals := groupByAuthor(blogs, func(b models.Blog) int { return b.Likes })
	i := argMax(totals)
	return &AuthorLikes{Author: authors[i], Likes: totals[i]}
}

// Summarize computes all statistics in one call.
func Summarize(blogs []models.Blog) Summary {
	return Summary{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

// groupByAuthor sums value(b) per author. authors keeps first-seen order and
// sums[i] belongs to authors[i].
func groupByAuthor(blogs []models.Blog, value func(models.Blog) int) (authors []string, sums []int) {
	index := make(map[string]int)
	for _, b := range blogs {
		i, ok := index[b.Author]
		if !ok {
			i = len(authors)
			index[b.Author] = i
			authors = append(authors, b.Author)
			sums = append(sums, 0)
		}
		sums[i] += value(b)
	}
	return authors, sums
}

// argMax returns the index of the first maximum of values.
func argMax(values []int) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
