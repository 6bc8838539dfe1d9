package repository

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
)

// Repository defines the app's repository layer.
type Repository interface {
	books
	users
	roles
	tokens
}

// dialect renders every dynamic statement with numbered placeholders.
var dialect = goqu.Dialect("postgres")

// repository is the PostgreSQL-backed Repository.
type repository struct {
	db *sqlx.DB
}

// New returns a Repository backed by db.
func New(db *sqlx.DB) *repository {
	return &repository{db: db}
}

var (
	_ Repository = (*repository)(nil)
	_ Repository = (*memoryRepository)(nil)
)
