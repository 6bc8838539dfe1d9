package repository

import (
	"bytes"
	"context"
	"crypto/sha256"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/emzola/bookstore/data"
)

// memoryRepository keeps every record in process memory. It is built once at
// start-up from a seed and is safe for concurrent use.
type memoryRepository struct {
	mu         sync.RWMutex
	books      []*data.Book
	nextBookID int64
	users      map[int64]*data.User
	nextUserID int64
	roles      map[string]struct{}
	tokens     []*data.Token
}

// NewMemory creates an in-memory Repository holding copies of seed.
func NewMemory(seed []*data.Book) *memoryRepository {
	m := &memoryRepository{
		nextBookID: 1,
		nextUserID: 1,
		users:      make(map[int64]*data.User),
		roles:      make(map[string]struct{}),
	}
	for _, b := range seed {
		book := *b
		m.books = append(m.books, &book)
		if book.ID >= m.nextBookID {
			m.nextBookID = book.ID + 1
		}
	}
	sort.Slice(m.books, func(i, j int) bool { return m.books[i].ID < m.books[j].ID })
	return m
}

// snapshot returns copies of every stored book in id order.
func (m *memoryRepository) snapshot() []*data.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()
	books := make([]*data.Book, len(m.books))
	for i, b := range m.books {
		book := *b
		books[i] = &book
	}
	return books
}

func (m *memoryRepository) indexOf(ID int64) int {
	for i, b := range m.books {
		if b.ID == ID {
			return i
		}
	}
	return -1
}

func (m *memoryRepository) CreateBook(ctx context.Context, book *data.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	book.ID = m.nextBookID
	m.nextBookID++
	stored := *book
	m.books = append(m.books, &stored)
	return nil
}

func (m *memoryRepository) GetBook(ctx context.Context, ID int64) (*data.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(ID)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	book := *m.books[i]
	return &book, nil
}

func (m *memoryRepository) GetAllBooks(ctx context.Context) ([]*data.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.snapshot(), nil
}

func (m *memoryRepository) UpdateBook(ctx context.Context, book *data.Book) error {
	return m.updateBook(ctx, book.ID, func(stored *data.Book) {
		stored.Title = book.Title
		stored.Author = book.Author
		stored.Genre = book.Genre
		stored.Price = book.Price
		stored.Stock = book.Stock
	})
}

func (m *memoryRepository) UpdateBookCover(ctx context.Context, ID int64, coverURL string) error {
	return m.updateBook(ctx, ID, func(stored *data.Book) {
		stored.CoverURL = coverURL
	})
}

func (m *memoryRepository) updateBook(ctx context.Context, ID int64, apply func(*data.Book)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(ID)
	if i < 0 {
		return ErrRecordNotFound
	}
	apply(m.books[i])
	return nil
}

func (m *memoryRepository) DeleteBook(ctx context.Context, ID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(ID); i >= 0 {
		m.books = append(m.books[:i], m.books[i+1:]...)
	}
	return nil
}

func (m *memoryRepository) SearchBooks(ctx context.Context, term string) ([]*data.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data.FilterBooks(m.snapshot(), data.SearchPredicate(term)), nil
}

func (m *memoryRepository) GetFilteredBooks(ctx context.Context, filter data.BookFilter) ([]*data.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data.ApplyBookFilter(m.snapshot(), filter), nil
}

func (m *memoryRepository) GetBooks(ctx context.Context, query data.BookQuery) ([]*data.Book, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	books, total := data.ApplyBookQuery(m.snapshot(), query)
	return books, total, nil
}

// copyUser returns a copy of user that shares no slices with the store.
func copyUser(user *data.User) *data.User {
	u := *user
	u.Roles = append([]string{}, user.Roles...)
	u.Password.Hash = append([]byte(nil), user.Password.Hash...)
	u.Password.Plaintext = nil
	return &u
}

func (m *memoryRepository) userByEmail(email string) *data.User {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func (m *memoryRepository) CreateUser(ctx context.Context, user *data.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userByEmail(user.Email) != nil {
		return ErrDuplicateRecord
	}
	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt = time.Now()
	user.Version = 1
	stored := copyUser(user)
	stored.Roles = nil
	m.users[user.ID] = stored
	return nil
}

func (m *memoryRepository) RegisterUser(ctx context.Context, user *data.User, role string, ttl time.Duration, scope string) (*data.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userByEmail(user.Email) != nil {
		return nil, ErrDuplicateRecord
	}
	if _, ok := m.roles[role]; !ok {
		return nil, ErrRecordNotFound
	}
	token, err := generateToken(m.nextUserID, ttl, scope)
	if err != nil {
		return nil, err
	}
	user.ID = m.nextUserID
	m.nextUserID++
	user.CreatedAt = time.Now()
	user.Version = 1
	user.Roles = []string{role}
	m.users[user.ID] = copyUser(user)
	stored := *token
	stored.Plaintext = ""
	m.tokens = append(m.tokens, &stored)
	return token, nil
}

func (m *memoryRepository) GetUserByID(ctx context.Context, ID int64) (*data.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[ID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return copyUser(user), nil
}

func (m *memoryRepository) GetUserByEmail(ctx context.Context, email string) (*data.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user := m.userByEmail(email)
	if user == nil {
		return nil, ErrRecordNotFound
	}
	return copyUser(user), nil
}

func (m *memoryRepository) UpdateUser(ctx context.Context, user *data.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[user.ID]
	if !ok || stored.Version != user.Version {
		return ErrEditConflict
	}
	if other := m.userByEmail(user.Email); other != nil && other.ID != user.ID {
		return ErrDuplicateRecord
	}
	stored.FullName = user.FullName
	stored.Email = user.Email
	stored.Password.Hash = append([]byte(nil), user.Password.Hash...)
	stored.EmailConfirmed = user.EmailConfirmed
	stored.Version++
	user.Version = stored.Version
	return nil
}

func (m *memoryRepository) GetUserForToken(ctx context.Context, tokenScope string, tokenPlaintext string) (*data.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash := sha256.Sum256([]byte(tokenPlaintext))
	now := time.Now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tokens {
		if t.Scope == tokenScope && t.Expiry.After(now) && bytes.Equal(t.Hash, hash[:]) {
			if user, ok := m.users[t.UserID]; ok {
				return copyUser(user), nil
			}
		}
	}
	return nil, ErrRecordNotFound
}

func (m *memoryRepository) CreateRole(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[name] = struct{}{}
	return nil
}

func (m *memoryRepository) RoleExists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.roles[name]
	return ok, nil
}

func (m *memoryRepository) AddRoleForUser(ctx context.Context, userID int64, role string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return ErrRecordNotFound
	}
	if _, ok := m.roles[role]; !ok {
		return nil
	}
	for _, r := range user.Roles {
		if r == role {
			return nil
		}
	}
	user.Roles = append(user.Roles, role)
	sort.Strings(user.Roles)
	return nil
}

func (m *memoryRepository) CreateNewToken(ctx context.Context, userID int64, ttl time.Duration, scope string) (*data.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	token, err := generateToken(userID, ttl, scope)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *token
	stored.Plaintext = ""
	m.tokens = append(m.tokens, &stored)
	return token, nil
}

func (m *memoryRepository) DeleteAllTokensForUser(ctx context.Context, scope string, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID < 1 {
		return ErrRecordNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.tokens[:0]
	for _, t := range m.tokens {
		if t.Scope != scope || t.UserID != userID {
			kept = append(kept, t)
		}
	}
	m.tokens = kept
	return nil
}
