package dto

import (
	"github.com/emzola/bookstore/data"
	"github.com/shopspring/decimal"
)

// BookRequestBody defines the request body for CreateBook and UpdateBook services.
type BookRequestBody struct {
	Title  string          `json:"title"`
	Author string          `json:"author"`
	Genre  string          `json:"genre"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
}

// Book converts the request body into a book model.
func (b BookRequestBody) Book() *data.Book {
	return &data.Book{
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
		Price:  b.Price,
		Stock:  b.Stock,
	}
}
