package data

import (
	"math"

	"github.com/emzola/bookstore/internal/validator"
)

// BookPage is the envelope returned by the paginated book listing.
type BookPage struct {
	TotalBooks int     `json:"totalBooks"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
	Data       []*Book `json:"data"`
}

// ValidatePaging checks the page and page size of a paginated request.
func ValidatePaging(v *validator.Validator, page, pageSize int) {
	v.Check(page > 0, "page", "must be greater than zero")
	v.Check(page <= 10_000_000, "page", "must be a maximum of 10 million")
	v.Check(pageSize > 0, "pageSize", "must be greater than zero")
	v.Check(pageSize <= 100, "pageSize", "must be a maximum of 100")
}

// CalculatePage builds the page envelope. TotalPages is the ceiling of
// totalBooks / pageSize and is 0 when nothing matched.
func CalculatePage(books []*Book, totalBooks, page, pageSize int) BookPage {
	if books == nil {
		books = []*Book{}
	}
	return BookPage{
		TotalBooks: totalBooks,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(totalBooks) / float64(pageSize))),
		Data:       books,
	}
}
