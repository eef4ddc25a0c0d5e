package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	w := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, 0, w.BytesWritten())
	assert.False(t, w.HeaderWritten())
}

func TestWrap_Idempotent(t *testing.T) {
	first := Wrap(httptest.NewRecorder())
	assert.Same(t, first, Wrap(first))
}

func TestWriteHeader_FirstCallWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotModified)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusNotModified, w.StatusCode())
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestWrite_ImplicitOKAndByteCount(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte("# Module 1"))
	require.NoError(t, err)
	_, err = w.Write([]byte("\n"))
	require.NoError(t, err)

	assert.Equal(t, 10, n)
	assert.Equal(t, 11, w.BytesWritten())
	assert.True(t, w.HeaderWritten())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# Module 1\n", rec.Body.String())
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Equal(t, http.ResponseWriter(rec), Wrap(rec).Unwrap())
}
