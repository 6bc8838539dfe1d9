package data

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Sortable book columns.
const (
	SortByID     = "id"
	SortByTitle  = "title"
	SortByAuthor = "author"
	SortByPrice  = "price"
)

// BookPredicate reports whether a book passes one filter.
type BookPredicate func(book *Book) bool

// BookQuery holds the parameters of the combined search, filter, sort and
// paginate path. Empty strings and nil prices are treated as absent.
type BookQuery struct {
	Search     string
	Genre      string
	Author     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SortBy     string
	Descending bool
	Page       int
	PageSize   int
}

// Predicates returns the filters of q in the order they are applied:
// search, genre, author, minimum price, maximum price.
func (q BookQuery) Predicates() []BookPredicate {
	var preds []BookPredicate
	if q.Search != "" {
		term := q.Search
		preds = append(preds, func(b *Book) bool {
			return containsFold(b.Title, term) || containsFold(b.Author, term) || containsFold(b.Genre, term)
		})
	}
	if q.Genre != "" {
		genre := strings.ToLower(q.Genre)
		preds = append(preds, func(b *Book) bool { return strings.ToLower(b.Genre) == genre })
	}
	if q.Author != "" {
		author := q.Author
		preds = append(preds, func(b *Book) bool { return containsFold(b.Author, author) })
	}
	return append(preds, priceRange(q.MinPrice, q.MaxPrice)...)
}

// SortKey resolves the column and direction q sorts by. Unknown columns fall
// back to ascending title and ignore Descending.
func (q BookQuery) SortKey() (column string, descending bool) {
	switch q.SortBy {
	case SortByTitle, SortByAuthor, SortByPrice:
		return q.SortBy, q.Descending
	default:
		return SortByTitle, false
	}
}

// Limit returns the page size.
func (q BookQuery) Limit() int {
	return q.PageSize
}

// Offset returns the number of records skipped before the requested page.
func (q BookQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// BookFilter holds the parameters of the simpler filter and sort path. It has
// no pagination and never sorts descending.
type BookFilter struct {
	Title    string
	Author   string
	Genre    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string
}

// Predicates returns the filters of f. Whitespace-only terms are ignored and
// genre is matched as a substring on this path.
func (f BookFilter) Predicates() []BookPredicate {
	var preds []BookPredicate
	if strings.TrimSpace(f.Title) != "" {
		title := f.Title
		preds = append(preds, func(b *Book) bool { return containsFold(b.Title, title) })
	}
	if strings.TrimSpace(f.Author) != "" {
		author := f.Author
		preds = append(preds, func(b *Book) bool { return containsFold(b.Author, author) })
	}
	if strings.TrimSpace(f.Genre) != "" {
		genre := f.Genre
		preds = append(preds, func(b *Book) bool { return containsFold(b.Genre, genre) })
	}
	return append(preds, priceRange(f.MinPrice, f.MaxPrice)...)
}

// SortKey resolves the column f sorts by, matched case-insensitively.
// Unknown columns fall back to id.
func (f BookFilter) SortKey() string {
	switch column := strings.ToLower(f.SortBy); column {
	case SortByTitle, SortByAuthor, SortByPrice:
		return column
	default:
		return SortByID
	}
}

// SearchPredicate matches books whose title or author contains term.
func SearchPredicate(term string) BookPredicate {
	return func(b *Book) bool {
		return containsFold(b.Title, term) || containsFold(b.Author, term)
	}
}

func priceRange(minPrice, maxPrice *decimal.Decimal) []BookPredicate {
	var preds []BookPredicate
	if minPrice != nil {
		lo := *minPrice
		preds = append(preds, func(b *Book) bool { return b.Price.GreaterThanOrEqual(lo) })
	}
	if maxPrice != nil {
		hi := *maxPrice
		preds = append(preds, func(b *Book) bool { return b.Price.LessThanOrEqual(hi) })
	}
	return preds
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FilterBooks keeps the books that satisfy every predicate, preserving order.
func FilterBooks(books []*Book, preds ...BookPredicate) []*Book {
	matched := make([]*Book, 0, len(books))
next:
	for _, b := range books {
		for _, keep := range preds {
			if !keep(b) {
				continue next
			}
		}
		matched = append(matched, b)
	}
	return matched
}

// SortBooks stable-sorts books by column with id as the tie-break. Descending
// reverses both keys, so it is the exact reverse of the ascending order.
func SortBooks(books []*Book, column string, descending bool) {
	sort.SliceStable(books, func(i, j int) bool {
		c := compareBooks(column, books[i], books[j])
		if descending {
			return c > 0
		}
		return c < 0
	})
}

func compareBooks(column string, a, b *Book) int {
	var c int
	switch column {
	case SortByTitle:
		c = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByAuthor:
		c = strings.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
	case SortByPrice:
		c = a.Price.Cmp(b.Price)
	}
	if c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

// ApplyBookQuery runs q over books and returns the requested page together
// with the number of books that matched before paging.
func ApplyBookQuery(books []*Book, q BookQuery) ([]*Book, int) {
	matched := FilterBooks(books, q.Predicates()...)
	column, descending := q.SortKey()
	SortBooks(matched, column, descending)
	total := len(matched)
	offset, limit := q.Offset(), q.Limit()
	if offset >= total {
		return []*Book{}, total
	}
	end := total
	if limit < total-offset {
		end = offset + limit
	}
	return matched[offset:end], total
}

// ApplyBookFilter runs f over books and returns every match, sorted.
func ApplyBookFilter(books []*Book, f BookFilter) []*Book {
	matched := FilterBooks(books, f.Predicates()...)
	SortBooks(matched, f.SortKey(), false)
	return matched
}
