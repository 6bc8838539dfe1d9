package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emzola/bookstore/config"
	"github.com/emzola/bookstore/data"
	"github.com/emzola/bookstore/internal/jsonlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJSON(t *testing.T) {
	h := New(config.Config{}, jsonlog.New(io.Discard, jsonlog.LevelInfo), nil, nil)
	headers := make(http.Header)
	headers.Set("Location", "/book/1")
	rr := httptest.NewRecorder()

	err := h.encodeJSON(rr, http.StatusCreated, envelope{"book": data.SeedBooks()[0]}, headers)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "/book/1", rr.Header().Get("Location"))
	assert.Contains(t, rr.Body.String(), "\n  \"book\": {")
	assert.Contains(t, rr.Body.String(), `"price": 20`)

	var resp struct {
		Book data.Book `json:"book"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "The Journey to the West", resp.Book.Title)
}

func TestErrorResponsesAreWritten(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(t, http.MethodGet, "/book/api/books?genre=action&page=1&pageSize=1", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())

	rr = app.do(t, http.MethodGet, "/book/api/books?page=0", "", nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error"`)
}
