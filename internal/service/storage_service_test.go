package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"interviewai_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	root := t.TempDir()
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: root}})

	src := filepath.Join(t.TempDir(), "answer.webm")
	require.NoError(t, os.WriteFile(src, []byte("audio"), 0o644))

	url, err := svc.UploadFile(context.Background(), "audio/abc.webm", src, "audio/webm")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/audio/abc.webm", url)

	data, err := os.ReadFile(filepath.Join(root, "audio", "abc.webm"))
	require.NoError(t, err)
	assert.Equal(t, "audio", string(data))

	require.NoError(t, svc.Delete(context.Background(), "audio/abc.webm"))
	_, err = os.Stat(filepath.Join(root, "audio", "abc.webm"))
	assert.True(t, os.IsNotExist(err))
}

func TestStorageFallsBackToLocal(t *testing.T) {
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "minio", MinioEndpoint: "http://bad endpoint", LocalPath: t.TempDir()}})
	_, ok := svc.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}

func TestLocalStorageRejectsEmptyName(t *testing.T) {
	p := &LocalStorageProvider{Root: t.TempDir()}
	_, err := p.UploadFile(context.Background(), "../", "unused", "")
	assert.Error(t, err)
	assert.Equal(t, "/uploads/audio/x.webm", p.GetURL("../audio/x.webm"))
}
