package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/emzola/bookstore/data"
)

type books interface {
	CreateBook(ctx context.Context, book *data.Book) error
	GetBook(ctx context.Context, ID int64) (*data.Book, error)
	GetAllBooks(ctx context.Context) ([]*data.Book, error)
	UpdateBook(ctx context.Context, book *data.Book) error
	UpdateBookCover(ctx context.Context, ID int64, coverURL string) error
	DeleteBook(ctx context.Context, ID int64) error
	SearchBooks(ctx context.Context, term string) ([]*data.Book, error)
	GetFilteredBooks(ctx context.Context, filter data.BookFilter) ([]*data.Book, error)
	GetBooks(ctx context.Context, query data.BookQuery) ([]*data.Book, int, error)
}

// CreateBook creates a new book record.
func (r *repository) CreateBook(ctx context.Context, book *data.Book) error {
	query, args, err := dialect.Insert(booksTable).
		Prepared(true).
		Rows(goqu.Record{
			"title":  book.Title,
			"author": book.Author,
			"genre":  book.Genre,
			"price":  book.Price,
			"stock":  book.Stock,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return r.db.QueryRowxContext(ctx, query, args...).Scan(&book.ID)
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(ctx context.Context, ID int64) (*data.Book, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query, args, err := dialect.From(booksTable).
		Prepared(true).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(ID)).
		ToSQL()
	if err != nil {
		return nil, err
	}
	var book data.Book
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err = r.db.GetContext(ctx, &book, query, args...)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAllBooks retrieves every book record ordered by id.
func (r *repository) GetAllBooks(ctx context.Context) ([]*data.Book, error) {
	ds := dialect.From(booksTable).
		Prepared(true).
		Select(bookColumns...).
		Order(goqu.C("id").Asc())
	return r.selectBooks(ctx, ds)
}

// UpdateBook overwrites the mutable fields of a book record.
func (r *repository) UpdateBook(ctx context.Context, book *data.Book) error {
	return r.updateBook(ctx, book.ID, goqu.Record{
		"title":  book.Title,
		"author": book.Author,
		"genre":  book.Genre,
		"price":  book.Price,
		"stock":  book.Stock,
	})
}

// UpdateBookCover sets the cover URL of a book record.
func (r *repository) UpdateBookCover(ctx context.Context, ID int64, coverURL string) error {
	return r.updateBook(ctx, ID, goqu.Record{"cover_url": coverURL})
}

func (r *repository) updateBook(ctx context.Context, ID int64, record goqu.Record) error {
	if ID < 1 {
		return ErrRecordNotFound
	}
	query, args, err := dialect.Update(booksTable).
		Prepared(true).
		Set(record).
		Where(goqu.C("id").Eq(ID)).
		ToSQL()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteBook deletes a book record. Deleting a missing record is not an error.
func (r *repository) DeleteBook(ctx context.Context, ID int64) error {
	query, args, err := dialect.Delete(booksTable).
		Prepared(true).
		Where(goqu.C("id").Eq(ID)).
		ToSQL()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// SearchBooks retrieves the books whose title or author contains term.
func (r *repository) SearchBooks(ctx context.Context, term string) ([]*data.Book, error) {
	return r.selectBooks(ctx, bookSearchSelect(term))
}

// GetFilteredBooks retrieves every book matching filter, sorted.
func (r *repository) GetFilteredBooks(ctx context.Context, filter data.BookFilter) ([]*data.Book, error) {
	return r.selectBooks(ctx, bookFilterSelect(filter))
}

// GetBooks retrieves one page of the books matching query together with the
// number of matches across all pages.
func (r *repository) GetBooks(ctx context.Context, query data.BookQuery) ([]*data.Book, int, error) {
	countQuery, countArgs, err := bookQueryCount(query).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	var totalBooks int
	countCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.db.GetContext(countCtx, &totalBooks, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}
	if totalBooks == 0 {
		return []*data.Book{}, 0, nil
	}
	books, err := r.selectBooks(ctx, bookQueryPage(query))
	if err != nil {
		return nil, 0, err
	}
	return books, totalBooks, nil
}

func (r *repository) selectBooks(ctx context.Context, ds *goqu.SelectDataset) ([]*data.Book, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	books := []*data.Book{}
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}
