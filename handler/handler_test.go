package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/emzola/bookstore/config"
	"github.com/emzola/bookstore/data"
	"github.com/emzola/bookstore/internal/auth"
	"github.com/emzola/bookstore/internal/jsonlog"
	"github.com/emzola/bookstore/repository"
	"github.com/emzola/bookstore/service"
	"github.com/jellydator/ttlcache/v3"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const (
	adminEmail    = "admin@bookstore.com"
	adminPassword = "Adm1n!pass"
)

type outbox struct {
	mu   sync.Mutex
	sent []map[string]any
}

func (o *outbox) Send(recipient, templateFile string, data any) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	values, _ := data.(map[string]any)
	o.sent = append(o.sent, values)
	return nil
}

// tokenFrom returns the token query parameter of the link field of the last email.
func (o *outbox) tokenFrom(t *testing.T, field string) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent)
	link, ok := o.sent[len(o.sent)-1][field].(string)
	require.True(t, ok, "email has no %s", field)
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

type testApp struct {
	handler http.Handler
	issuer  *auth.Issuer
	outbox  *outbox
	wg      *sync.WaitGroup
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	var cfg config.Config
	cfg.Server.Env = "testing"
	cfg.JWT.Key = "handler-test-key"
	cfg.JWT.Issuer = "bookstore-test"
	cfg.JWT.Audience = "bookstore-test"
	cfg.JWT.TTL = time.Hour
	cfg.Admin.Email = adminEmail
	cfg.Admin.Password = adminPassword

	logger := jsonlog.New(io.Discard, jsonlog.LevelInfo)
	app := &testApp{
		issuer: auth.NewIssuer(cfg.JWT.Key, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL),
		outbox: &outbox{},
		wg:     &sync.WaitGroup{},
	}
	repo := repository.NewMemory(data.SeedBooks())
	svc := service.New(cfg, app.wg, logger, repo, app.outbox, nil)
	require.NoError(t, svc.SeedRolesAndAdmin(context.Background()))

	limiters := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](time.Minute))
	app.handler = New(cfg, logger, limiters, svc).Routes()
	return app
}

// do sends a request through the full middleware chain. body is encoded as
// JSON unless it is already an io.Reader.
func (a *testApp) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

// tokenFor signs an access token without going through login.
func (a *testApp) tokenFor(t *testing.T, id int64, roles ...string) string {
	t.Helper()
	token, _, err := a.issuer.Generate(&data.User{ID: id, Email: "reader@example.com", FullName: "Reader", Roles: roles})
	require.NoError(t, err)
	return token
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": adminEmail, "password": adminPassword})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rr, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}

// errorOf returns the error member of a JSON error response.
func errorOf(t *testing.T, rr *httptest.ResponseRecorder) any {
	t.Helper()
	var resp struct {
		Error any `json:"error"`
	}
	decode(t, rr, &resp)
	return resp.Error
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, rr, &resp)
	return resp.Message
}
