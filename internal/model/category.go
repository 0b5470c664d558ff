package model

// CategoryPopular selects no genre filter: the provider's raw
// popularity ordering.
const CategoryPopular = "popular"

// CategoryGenres maps room categories to TMDB genre IDs.
var CategoryGenres = map[string]int64{
	"action":      28,
	"adventure":   12,
	"animation":   16,
	"comedy":      35,
	"crime":       80,
	"documentary": 99,
	"drama":       18,
	"family":      10751,
	"fantasy":     14,
	"history":     36,
	"horror":      27,
	"music":       10402,
	"mystery":     9648,
	"romance":     10749,
	"sci-fi":      878,
	"thriller":    53,
	"war":         10752,
	"western":     37,
}

// KnownCategory reports whether a category maps to a genre filter.
// "popular" is always known and carries no filter.
func KnownCategory(category string) bool {
	if category == CategoryPopular {
		return true
	}
	_, ok := CategoryGenres[category]
	return ok
}
