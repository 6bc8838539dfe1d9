package data

import (
	"github.com/emzola/bookstore/internal/validator"
	"github.com/shopspring/decimal"
)

const ScopeCover = "cover"

// Prices are written as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxPrice is the highest price a book can be created with.
var MaxPrice = decimal.NewFromInt(1000)

// Book defines a book model.
type Book struct {
	ID       int64           `json:"id" db:"id"`
	Title    string          `json:"title" db:"title"`
	Author   string          `json:"author" db:"author"`
	Genre    string          `json:"genre" db:"genre"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Stock    int             `json:"stock" db:"stock"`
	CoverURL string          `json:"cover_url,omitempty" db:"cover_url"`
}

// ValidateBookCreate checks a book submitted for creation. Its bounds are
// stricter than ValidateBookUpdate and the two are kept apart on purpose.
func ValidateBookCreate(v *validator.Validator, book *Book) {
	v.Check(!validator.Blank(book.Title), "title", "must be provided")
	v.Check(validator.RuneCountBetween(book.Title, 3, 50), "title", "must be between 3 and 50 characters long")
	v.Check(!validator.Blank(book.Author), "author", "must be provided")
	v.Check(validator.RuneCountBetween(book.Author, 5, 25), "author", "must be between 5 and 25 characters long")
	v.Check(!validator.Blank(book.Genre), "genre", "must be provided")
	v.Check(validator.RuneCountBetween(book.Genre, 3, 15), "genre", "must be between 3 and 15 characters long")
	v.Check(book.Price.IsPositive(), "price", "must be greater than 0")
	v.Check(book.Price.LessThanOrEqual(MaxPrice), "price", "must not be more than 1000")
	v.Check(book.Price.Equal(book.Price.Round(2)), "price", "must have at most 2 decimal places")
	v.Check(book.Stock >= 0, "stock", "must not be negative")
}

// ValidateBookUpdate checks the replacement values of an existing book.
func ValidateBookUpdate(v *validator.Validator, book *Book) {
	v.Check(!validator.Blank(book.Title), "title", "must be provided")
	v.Check(validator.RuneCountBetween(book.Title, 1, 100), "title", "must not be more than 100 characters long")
	v.Check(!validator.Blank(book.Author), "author", "must be provided")
	v.Check(validator.RuneCountBetween(book.Author, 1, 50), "author", "must not be more than 50 characters long")
	v.Check(!validator.Blank(book.Genre), "genre", "must be provided")
	v.Check(validator.RuneCountBetween(book.Genre, 1, 15), "genre", "must not be more than 15 characters long")
	v.Check(book.Price.IsPositive(), "price", "must be greater than 0")
	v.Check(book.Price.Equal(book.Price.Round(2)), "price", "must have at most 2 decimal places")
	v.Check(book.Stock >= 0, "stock", "must not be negative")
}

// SeedBooks returns the catalogue the in-memory store starts with.
func SeedBooks() []*Book {
	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return []*Book{
		{ID: 1, Title: "The Journey to the West", Author: "Mimi Brown", Genre: "Action", Price: price(20), Stock: 3},
		{ID: 2, Title: "On My Way Home", Author: "Mimi Brown", Genre: "Adventure", Price: price(45), Stock: 4},
		{ID: 3, Title: "The Lost Kingdom", Author: "Mimi Brown", Genre: "Mystery", Price: price(40), Stock: 5},
		{ID: 4, Title: "At a Time", Author: "Mimi Brown", Genre: "Romantic", Price: price(15), Stock: 4},
		{ID: 5, Title: "Rich Dad Poor Dad", Author: "Mimi Brown", Genre: "Inspirational", Price: price(25), Stock: 7},
		{ID: 6, Title: "In the Zoo", Author: "Mimi Brown", Genre: "Comedy", Price: price(40), Stock: 9},
		{ID: 7, Title: "Cage ", Author: "Mimi Brown", Genre: "Action", Price: price(30), Stock: 2},
	}
}
