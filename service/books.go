package service

import (
	"context"
	"errors"
	"io"

	"github.com/emzola/bookstore/data"
	"github.com/emzola/bookstore/data/dto"
	"github.com/emzola/bookstore/internal/validator"
	"github.com/emzola/bookstore/repository"
)

type books interface {
	ListAllBooks(ctx context.Context) ([]*data.Book, error)
	GetBook(ctx context.Context, bookID int64) (*data.Book, bool, error)
	CreateBook(ctx context.Context, requestBody dto.BookRequestBody) (*data.Book, error)
	UpdateBook(ctx context.Context, bookID int64, requestBody dto.BookRequestBody) (*data.Book, error)
	DeleteBook(ctx context.Context, bookID int64) error
	SearchBooks(ctx context.Context, term string) ([]*data.Book, error)
	ListFilteredBooks(ctx context.Context, filter data.BookFilter) ([]*data.Book, error)
	ListBooks(ctx context.Context, query data.BookQuery) (data.BookPage, error)
	UpdateBookCover(ctx context.Context, bookID int64, filename string, file io.Reader) (*data.Book, error)
}

// ListAllBooks service retrieves every book.
func (s *service) ListAllBooks(ctx context.Context) ([]*data.Book, error) {
	return s.repo.GetAllBooks(ctx)
}

// GetBook service retrieves a book by its ID. A missing book is reported by
// found being false, not by an error.
func (s *service) GetBook(ctx context.Context, bookID int64) (*data.Book, bool, error) {
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, false, nil
		default:
			return nil, false, err
		}
	}
	return book, true, nil
}

// CreateBook service validates and stores a new book.
func (s *service) CreateBook(ctx context.Context, requestBody dto.BookRequestBody) (*data.Book, error) {
	book := requestBody.Book()
	v := validator.New()
	if data.ValidateBookCreate(v, book); !v.Valid() {
		return nil, failedValidation(v)
	}
	err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateBook service replaces the title, author, genre, price and stock of a book.
func (s *service) UpdateBook(ctx context.Context, bookID int64, requestBody dto.BookRequestBody) (*data.Book, error) {
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	book.Title = requestBody.Title
	book.Author = requestBody.Author
	book.Genre = requestBody.Genre
	book.Price = requestBody.Price
	book.Stock = requestBody.Stock
	v := validator.New()
	if data.ValidateBookUpdate(v, book); !v.Valid() {
		return nil, failedValidation(v)
	}
	err = s.repo.UpdateBook(ctx, book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook service deletes a book. Deleting a missing book succeeds.
func (s *service) DeleteBook(ctx context.Context, bookID int64) error {
	err := s.repo.DeleteBook(ctx, bookID)
	if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
		return err
	}
	return nil
}

// SearchBooks service retrieves the books whose title or author contains term.
func (s *service) SearchBooks(ctx context.Context, term string) ([]*data.Book, error) {
	return s.repo.SearchBooks(ctx, term)
}

// ListFilteredBooks service retrieves every book matching filter, unpaginated.
func (s *service) ListFilteredBooks(ctx context.Context, filter data.BookFilter) ([]*data.Book, error) {
	return s.repo.GetFilteredBooks(ctx, filter)
}

// ListBooks service retrieves one page of books. The books can be searched,
// filtered and sorted.
func (s *service) ListBooks(ctx context.Context, query data.BookQuery) (data.BookPage, error) {
	v := validator.New()
	if data.ValidatePaging(v, query.Page, query.PageSize); !v.Valid() {
		return data.BookPage{}, failedValidation(v)
	}
	books, totalBooks, err := s.repo.GetBooks(ctx, query)
	if err != nil {
		return data.BookPage{}, err
	}
	return data.CalculatePage(books, totalBooks, query.Page, query.PageSize), nil
}

// UpdateBookCover service uploads a cover image for a book.
func (s *service) UpdateBookCover(ctx context.Context, bookID int64, filename string, file io.Reader) (*data.Book, error) {
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	buffer, mtype, err := readUpload(file, MaxCoverSize)
	if err != nil {
		return nil, err
	}
	if !validator.Mime(mtype, "image/jpeg", "image/png") {
		return nil, ErrUnsupportedMediaType
	}
	if s.storage == nil {
		return nil, ErrStorageNotConfigured
	}
	key, err := objectKey(data.ScopeCover, filename, mtype)
	if err != nil {
		return nil, err
	}
	coverURL, err := s.storage.PutObject(ctx, key, buffer, mtype.String())
	if err != nil {
		return nil, err
	}
	err = s.repo.UpdateBookCover(ctx, book.ID, coverURL)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	book.CoverURL = coverURL
	return book, nil
}
