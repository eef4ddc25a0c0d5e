package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body["error"]
}

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, map[string]int{"module": 1})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"module":1}`, rr.Body.String())
}

func TestJSON_NilBody(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestText(t *testing.T) {
	rr := httptest.NewRecorder()
	Text(rr, http.StatusOK, "text/markdown; charset=utf-8", []byte("# Module 1"))

	assert.Equal(t, "text/markdown; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "# Module 1", rr.Body.String())
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		err     error
		wantMsg string
	}{
		{"not found passes", http.StatusNotFound, errors.New("lesson not found"), "lesson not found"},
		{"invalid passes", http.StatusBadRequest, errors.New("invalid lesson id"), "invalid lesson id"},
		{"unknown 4xx hidden", http.StatusBadRequest, errors.New("pq: syntax error at or near"), "internal server error"},
		{"5xx always hidden", http.StatusInternalServerError, errors.New("invalid memory address"), "internal server error"},
		{"503 generic", http.StatusServiceUnavailable, errors.New("get lesson m1-l1: lesson store unavailable"), "service unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			SafeError(rr, tt.code, tt.err)

			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rr))
		})
	}
}

func TestSafeError_Nil(t *testing.T) {
	rr := httptest.NewRecorder()
	SafeError(rr, http.StatusInternalServerError, nil)
	assert.Empty(t, rr.Body.String())
}
