package repository

import (
	"context"
	"testing"
	"time"

	"github.com/emzola/bookstore/data"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook(title string) *data.Book {
	return &data.Book{Title: title, Author: "Some Author", Genre: "Drama", Price: decimal.NewFromInt(12), Stock: 1}
}

func TestMemoryBooks(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(data.SeedBooks())

	t.Run("add assigns the next id", func(t *testing.T) {
		book := newBook("Brand New")
		require.NoError(t, repo.CreateBook(ctx, book))
		assert.Equal(t, int64(8), book.ID)

		got, err := repo.GetBook(ctx, 8)
		require.NoError(t, err)
		assert.Equal(t, "Brand New", got.Title)
	})

	t.Run("returned books are copies", func(t *testing.T) {
		got, err := repo.GetBook(ctx, 1)
		require.NoError(t, err)
		got.Title = "changed"
		again, err := repo.GetBook(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "The Journey to the West", again.Title)
	})

	t.Run("update of a missing book leaves the store unchanged", func(t *testing.T) {
		before, err := repo.GetAllBooks(ctx)
		require.NoError(t, err)
		missing := newBook("Ghost")
		missing.ID = 999
		assert.ErrorIs(t, repo.UpdateBook(ctx, missing), ErrRecordNotFound)
		after, err := repo.GetAllBooks(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("update overwrites fields and keeps the id", func(t *testing.T) {
		book := newBook("Rewritten")
		book.ID = 2
		book.Stock = 11
		require.NoError(t, repo.UpdateBook(ctx, book))
		got, err := repo.GetBook(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ID)
		assert.Equal(t, "Rewritten", got.Title)
		assert.Equal(t, "Drama", got.Genre)
		assert.Equal(t, 11, got.Stock)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, repo.DeleteBook(ctx, 3))
		require.NoError(t, repo.DeleteBook(ctx, 3))
		require.NoError(t, repo.DeleteBook(ctx, 12345))
		_, err := repo.GetBook(ctx, 3)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("ids are never reused", func(t *testing.T) {
		require.NoError(t, repo.DeleteBook(ctx, 8))
		book := newBook("After Delete")
		require.NoError(t, repo.CreateBook(ctx, book))
		assert.Equal(t, int64(9), book.ID)
	})

	t.Run("cover url", func(t *testing.T) {
		require.NoError(t, repo.UpdateBookCover(ctx, 1, "https://covers.example.com/1.png"))
		got, err := repo.GetBook(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "https://covers.example.com/1.png", got.CoverURL)
		assert.ErrorIs(t, repo.UpdateBookCover(ctx, 404, "x"), ErrRecordNotFound)
	})
}

func TestMemoryBookQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(data.SeedBooks())

	books, total, err := repo.GetBooks(ctx, data.BookQuery{Genre: "action", Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, books, 1)
	assert.Equal(t, "Cage ", books[0].Title)

	books, total, err = repo.GetBooks(ctx, data.BookQuery{Genre: "action", Page: 5, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Empty(t, books)

	found, err := repo.SearchBooks(ctx, "ZOO")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(6), found[0].ID)

	found, err = repo.SearchBooks(ctx, "comedy")
	require.NoError(t, err)
	assert.Empty(t, found)

	filtered, err := repo.GetFilteredBooks(ctx, data.BookFilter{Genre: "ion", SortBy: "title"})
	require.NoError(t, err)
	require.Len(t, filtered, 3)
	assert.Equal(t, int64(7), filtered[0].ID)
}

func TestMemoryCanceledContext(t *testing.T) {
	repo := NewMemory(data.SeedBooks())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.GetAllBooks(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.CreateBook(ctx, newBook("Never")), context.Canceled)
}

func newUser(t *testing.T, email string) *data.User {
	t.Helper()
	user := &data.User{FullName: "Test User", Email: email}
	require.NoError(t, user.Password.Set("Pa$$w0rd"))
	return user
}

func TestMemoryUsersAndRoles(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)

	user := newUser(t, "reader@example.com")
	require.NoError(t, repo.CreateUser(ctx, user))
	assert.Equal(t, int64(1), user.ID)
	assert.ErrorIs(t, repo.CreateUser(ctx, newUser(t, "READER@example.com")), ErrDuplicateRecord)

	got, err := repo.GetUserByEmail(ctx, "Reader@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Empty(t, got.Roles)

	require.NoError(t, repo.CreateRole(ctx, data.RoleUser))
	require.NoError(t, repo.CreateRole(ctx, data.RoleUser))
	exists, err := repo.RoleExists(ctx, data.RoleUser)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.RoleExists(ctx, data.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.AddRoleForUser(ctx, user.ID, data.RoleUser))
	require.NoError(t, repo.AddRoleForUser(ctx, user.ID, data.RoleUser))
	assert.ErrorIs(t, repo.AddRoleForUser(ctx, 77, data.RoleUser), ErrRecordNotFound)
	got, err = repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{data.RoleUser}, got.Roles)

	got.EmailConfirmed = true
	require.NoError(t, repo.UpdateUser(ctx, got))
	stale := *got
	stale.Version--
	assert.ErrorIs(t, repo.UpdateUser(ctx, &stale), ErrEditConflict)

	_, err = repo.GetUserByID(ctx, 99)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemoryTokens(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)
	user := newUser(t, "token@example.com")
	require.NoError(t, repo.CreateUser(ctx, user))

	token, err := repo.CreateNewToken(ctx, user.ID, time.Hour, data.ScopePasswordReset)
	require.NoError(t, err)
	assert.Len(t, token.Plaintext, 26)

	got, err := repo.GetUserForToken(ctx, data.ScopePasswordReset, token.Plaintext)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetUserForToken(ctx, data.ScopeEmailConfirmation, token.Plaintext)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	expired, err := repo.CreateNewToken(ctx, user.ID, -time.Minute, data.ScopeEmailConfirmation)
	require.NoError(t, err)
	_, err = repo.GetUserForToken(ctx, data.ScopeEmailConfirmation, expired.Plaintext)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, repo.DeleteAllTokensForUser(ctx, data.ScopePasswordReset, user.ID))
	_, err = repo.GetUserForToken(ctx, data.ScopePasswordReset, token.Plaintext)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemoryRegisterUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(nil)

	_, err := repo.RegisterUser(ctx, newUser(t, "new@example.com"), data.RoleUser, time.Hour, data.ScopeEmailConfirmation)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = repo.GetUserByEmail(ctx, "new@example.com")
	assert.ErrorIs(t, err, ErrRecordNotFound, "failed registration must leave no user behind")

	require.NoError(t, repo.CreateRole(ctx, data.RoleUser))
	user := newUser(t, "new@example.com")
	token, err := repo.RegisterUser(ctx, user, data.RoleUser, time.Hour, data.ScopeEmailConfirmation)
	require.NoError(t, err)
	assert.Equal(t, []string{data.RoleUser}, user.Roles)
	assert.Equal(t, user.ID, token.UserID)

	got, err := repo.GetUserForToken(ctx, data.ScopeEmailConfirmation, token.Plaintext)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, []string{data.RoleUser}, got.Roles)

	_, err = repo.RegisterUser(ctx, newUser(t, "NEW@example.com"), data.RoleUser, time.Hour, data.ScopeEmailConfirmation)
	assert.ErrorIs(t, err, ErrDuplicateRecord)
}
