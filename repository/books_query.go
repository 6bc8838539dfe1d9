package repository

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/emzola/bookstore/data"
	"github.com/shopspring/decimal"
)

const booksTable = "books"

var bookColumns = []any{"id", "title", "author", "genre", "price", "stock", "cover_url"}

// containsFold renders a case-insensitive substring test on column.
func containsFold(column, term string) exp.Expression {
	return goqu.L("STRPOS(LOWER(?), LOWER(?)) > 0", goqu.C(column), term)
}

// equalFold renders a case-insensitive equality test on column.
func equalFold(column, term string) exp.Expression {
	return goqu.Func("LOWER", goqu.C(column)).Eq(strings.ToLower(term))
}

func priceRange(minPrice, maxPrice *decimal.Decimal) []exp.Expression {
	var exps []exp.Expression
	if minPrice != nil {
		exps = append(exps, goqu.C("price").Gte(*minPrice))
	}
	if maxPrice != nil {
		exps = append(exps, goqu.C("price").Lte(*maxPrice))
	}
	return exps
}

// orderBooks orders by column then id, both in the same direction.
func orderBooks(column string, descending bool) []exp.OrderedExpression {
	var key exp.Orderable = goqu.C(column)
	if column == data.SortByTitle || column == data.SortByAuthor {
		key = goqu.Func("LOWER", goqu.C(column))
	}
	id := goqu.C("id")
	if column == data.SortByID {
		if descending {
			return []exp.OrderedExpression{id.Desc()}
		}
		return []exp.OrderedExpression{id.Asc()}
	}
	if descending {
		return []exp.OrderedExpression{key.Desc(), id.Desc()}
	}
	return []exp.OrderedExpression{key.Asc(), id.Asc()}
}

// bookQueryWhere renders the filters of the combined path in their fixed order.
func bookQueryWhere(q data.BookQuery) []exp.Expression {
	var exps []exp.Expression
	if q.Search != "" {
		exps = append(exps, goqu.Or(
			containsFold("title", q.Search),
			containsFold("author", q.Search),
			containsFold("genre", q.Search),
		))
	}
	if q.Genre != "" {
		exps = append(exps, equalFold("genre", q.Genre))
	}
	if q.Author != "" {
		exps = append(exps, containsFold("author", q.Author))
	}
	return append(exps, priceRange(q.MinPrice, q.MaxPrice)...)
}

// bookQueryCount builds the statement counting every book q matches.
func bookQueryCount(q data.BookQuery) *goqu.SelectDataset {
	return dialect.From(booksTable).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(bookQueryWhere(q)...)
}

// bookQueryPage builds the statement selecting the requested page of q.
func bookQueryPage(q data.BookQuery) *goqu.SelectDataset {
	column, descending := q.SortKey()
	return dialect.From(booksTable).
		Prepared(true).
		Select(bookColumns...).
		Where(bookQueryWhere(q)...).
		Order(orderBooks(column, descending)...).
		Limit(uint(q.Limit())).
		Offset(uint(q.Offset()))
}

// bookFilterSelect builds the statement of the filter-only path.
func bookFilterSelect(f data.BookFilter) *goqu.SelectDataset {
	var exps []exp.Expression
	if strings.TrimSpace(f.Title) != "" {
		exps = append(exps, containsFold("title", f.Title))
	}
	if strings.TrimSpace(f.Author) != "" {
		exps = append(exps, containsFold("author", f.Author))
	}
	if strings.TrimSpace(f.Genre) != "" {
		exps = append(exps, containsFold("genre", f.Genre))
	}
	exps = append(exps, priceRange(f.MinPrice, f.MaxPrice)...)
	return dialect.From(booksTable).
		Prepared(true).
		Select(bookColumns...).
		Where(exps...).
		Order(orderBooks(f.SortKey(), false)...)
}

// bookSearchSelect builds the statement matching term against title or author.
func bookSearchSelect(term string) *goqu.SelectDataset {
	return dialect.From(booksTable).
		Prepared(true).
		Select(bookColumns...).
		Where(goqu.Or(containsFold("title", term), containsFold("author", term))).
		Order(goqu.C("id").Asc())
}
