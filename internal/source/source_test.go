package source

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderOpenLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "men.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,tournament\n"), 0o600))

	rc, err := NewLoader(Options{}, noopLogger()).Open(context.Background(), path)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "date,tournament\n", string(data))
}

func TestLoaderOpenMissingFile(t *testing.T) {
	_, err := NewLoader(Options{}, noopLogger()).Open(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoaderOpenEmptyRef(t *testing.T) {
	_, err := NewLoader(Options{}, noopLogger()).Open(context.Background(), "  ")
	require.Error(t, err)
}

func TestLoaderFetchSuccess(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, "date,tournament\n2019-06-07,FIFA World Cup\n")
	}))
	defer srv.Close()

	loader := NewLoader(Options{Timeout: time.Second, UserAgent: "test-agent"}, noopLogger())
	rc, err := loader.Open(context.Background(), srv.URL+"/women_results.csv")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FIFA World Cup")
	assert.Equal(t, "test-agent", gotUA)
}

func TestLoaderFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewLoader(Options{Timeout: time.Second}, noopLogger()).Open(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "not here")
}

func TestLoaderFetchHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "date\n")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(Options{Timeout: time.Second}, noopLogger()).Open(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}
