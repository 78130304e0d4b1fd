package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tableingest/service/internal/core/domain"
)

type fakeIngest struct {
	docs []domain.Document
	err  error

	gotSource      string
	gotContentType string
}

func (f *fakeIngest) Process(ctx context.Context, content []byte, source, contentType string) ([]domain.Document, error) {
	f.gotSource = source
	f.gotContentType = contentType
	return f.docs, f.err
}

func newTestServer(ingest *fakeIngest) *Server {
	return NewServer(Config{Host: "127.0.0.1", Port: 0, APIKey: "secret"}, ingest, nil)
}

func TestHandleHealth_ReturnsOK(t *testing.T) {
	s := newTestServer(&fakeIngest{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
}

func TestHandleProcess_EmptyBodyReturns400(t *testing.T) {
	s := newTestServer(&fakeIngest{})

	req := httptest.NewRequest(http.MethodPut, "/process", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleProcess_WithoutAuthReturns401(t *testing.T) {
	s := newTestServer(&fakeIngest{})

	req := httptest.NewRequest(http.MethodPut, "/process", strings.NewReader("hello"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleProcess_SuccessReturnsDocuments(t *testing.T) {
	fake := &fakeIngest{docs: []domain.Document{
		{PageContent: "hello", Metadata: domain.Metadata{Source: "a.txt", Format: domain.FormatBasicText}},
	}}
	s := newTestServer(fake)

	req := httptest.NewRequest(http.MethodPut, "/process", strings.NewReader("hello world"))
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-Filename", "a.txt")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a.txt", fake.gotSource)

	var docs []domain.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "hello", docs[0].PageContent)
}

func TestHandleProcess_InternalErrorReturns500(t *testing.T) {
	fake := &fakeIngest{err: domain.ErrInternal}
	s := newTestServer(fake)

	req := httptest.NewRequest(http.MethodPut, "/process", strings.NewReader("hello"))
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
