package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyecheol/ragchat/internal/loader"
	"github.com/hyecheol/ragchat/internal/memory"
	"github.com/hyecheol/ragchat/internal/models"
)

type echoHandler struct {
	lastReq models.Request
	err     error
}

func (h *echoHandler) Handle(_ context.Context, req models.Request) (models.Response, error) {
	h.lastReq = req
	if h.err != nil {
		return models.Response{}, h.err
	}
	return models.Response{StatusCode: 200, Msg: "echo: " + req.Body}, nil
}

func newTestServer(h Handler) *Server {
	return New(":0", h, memory.NewStore(0, false), nil, nil)
}

func postInvoke(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestInvoke_Success(t *testing.T) {
	handler := &echoHandler{}
	s := newTestServer(handler)

	rec := postInvoke(t, s, `{"user-id":"alice","request-id":"r1","type":"text","body":"hello"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "echo: hello", resp.Msg)
	require.Equal(t, "r1", handler.lastReq.RequestID)
}

func TestInvoke_GeneratesRequestID(t *testing.T) {
	handler := &echoHandler{}
	s := newTestServer(handler)

	rec := postInvoke(t, s, `{"user-id":"alice","type":"text","body":"hello"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, handler.lastReq.RequestID, "missing request-id should be generated")
}

func TestInvoke_RejectsMissingFields(t *testing.T) {
	s := newTestServer(&echoHandler{})

	for _, body := range []string{
		`not json`,
		`{"type":"text","body":"no user"}`,
		`{"user-id":"alice","type":"text"}`,
	} {
		rec := postInvoke(t, s, body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestInvoke_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{fmt.Errorf("%w: docx", loader.ErrUnsupportedFileType), http.StatusBadRequest},
		{fmt.Errorf("%w: gone", loader.ErrSourceFetch), http.StatusNotFound},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s := newTestServer(&echoHandler{err: tt.err})
		rec := postInvoke(t, s, `{"user-id":"a","type":"document","body":"f.docx"}`)
		require.Equal(t, tt.wantStatus, rec.Code, "error: %v", tt.err)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&echoHandler{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStats(t *testing.T) {
	s := newTestServer(&echoHandler{})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Contains(t, snap, "uptime_seconds")
}
