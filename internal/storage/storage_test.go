package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/imanage/imanage-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "branding/logo.png", want: "branding/logo.png"},
		{key: "/backups/a.db", want: "backups/a.db"},
		{key: "../../etc/passwd", want: "etc/passwd"},
		{key: `branding\logo.png`, want: "branding/logo.png"},
		{key: "", wantErr: true},
		{key: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := storage.CleanKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	path, size, err := s.Upload(ctx, "branding/logo.png", "image/png", strings.NewReader("first"))
	require.NoError(t, err)
	assert.Equal(t, "branding/logo.png", path)
	assert.Equal(t, int64(5), size)

	_, _, err = s.Upload(ctx, "branding/logo.png", "image/png", strings.NewReader("second"))
	require.NoError(t, err)

	r, err := s.Download(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, r.Close())
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	require.NoError(t, s.Delete(ctx, path))
	require.NoError(t, s.Delete(ctx, path), "deleting twice is not an error")

	_, err = s.Download(ctx, path)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}
