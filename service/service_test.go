package service

import (
	"context"
	"io"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/emzola/bookstore/config"
	"github.com/emzola/bookstore/data"
	"github.com/emzola/bookstore/internal/jsonlog"
	"github.com/emzola/bookstore/repository"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	recipient    string
	templateFile string
	data         map[string]any
}

// recordingMailer keeps every email instead of sending it.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	values, _ := data.(map[string]any)
	m.sent = append(m.sent, sentMail{recipient: recipient, templateFile: templateFile, data: values})
	return nil
}

func (m *recordingMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no email was sent")
	return m.sent[len(m.sent)-1]
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type memoryStorage struct {
	objects map[string][]byte
}

func (s *memoryStorage) PutObject(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	s.objects[key] = body
	return "https://covers.example.com/" + key, nil
}

type testEnv struct {
	svc     *service
	mailer  *recordingMailer
	storage *memoryStorage
	wg      *sync.WaitGroup
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	var cfg config.Config
	cfg.Server.Port = 4000
	cfg.JWT.Key = "test-signing-key"
	cfg.JWT.Issuer = "bookstore-test"
	cfg.JWT.Audience = "bookstore-test"
	cfg.JWT.TTL = time.Hour
	cfg.Admin.Email = "admin@bookstore.com"
	cfg.Admin.Password = "Adm1n!pass"
	env := &testEnv{
		mailer:  &recordingMailer{},
		storage: &memoryStorage{objects: make(map[string][]byte)},
		wg:      &sync.WaitGroup{},
	}
	logger := jsonlog.New(io.Discard, jsonlog.LevelInfo)
	repo := repository.NewMemory(data.SeedBooks())
	env.svc = New(cfg, env.wg, logger, repo, env.mailer, env.storage)
	require.NoError(t, env.svc.SeedRolesAndAdmin(context.Background()))
	return env
}

// tokenFrom extracts the token query parameter of the link field of an email.
func tokenFrom(t *testing.T, mail sentMail, field string) string {
	t.Helper()
	link, ok := mail.data[field].(string)
	require.True(t, ok, "email has no %s", field)
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}
