package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chem-hand/config"
	"chem-hand/pubchem"
)

func newDownloadService(t *testing.T, handler http.Handler) *DownloadService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		PubChemBaseURL: srv.URL,
		RequestTimeout: 5 * time.Second,
		PollInterval:   time.Millisecond,
	}
	client, err := pubchem.NewClient(cfg, zap.NewNop())
	require.NoError(t, err)
	return NewDownloadService(client, zap.NewNop())
}

func TestDownloadWritesFile(t *testing.T) {
	d := newDownloadService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("SDF INHALT"))
	}))

	path := filepath.Join(t.TempDir(), "unter", "cid_2244.sdf")
	spec := pubchem.RequestSpec{Identifier: "2244", Namespace: "cid", Domain: "compound"}
	require.NoError(t, d.Download(context.Background(), "SDF", path, spec, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SDF INHALT", string(data))
}

func TestDownloadRefusesOverwrite(t *testing.T) {
	var requested bool
	d := newDownloadService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
		w.Write([]byte("neu"))
	}))

	path := filepath.Join(t.TempDir(), "cid_2244.sdf")
	require.NoError(t, os.WriteFile(path, []byte("alt"), 0o644))

	spec := pubchem.RequestSpec{Identifier: "2244", Namespace: "cid", Domain: "compound"}
	err := d.Download(context.Background(), "SDF", path, spec, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "existiert bereits")
	// Der Fehler fällt vor der Netzwerkanfrage.
	assert.False(t, requested)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alt", string(data))
}

func TestDownloadOverwrites(t *testing.T) {
	d := newDownloadService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("neu"))
	}))

	path := filepath.Join(t.TempDir(), "cid_2244.sdf")
	require.NoError(t, os.WriteFile(path, []byte("alt"), 0o644))

	spec := pubchem.RequestSpec{Identifier: "2244", Namespace: "cid", Domain: "compound"}
	require.NoError(t, d.Download(context.Background(), "SDF", path, spec, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "neu", string(data))
}
