package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "resumes/u1/cv.pdf", strings.NewReader("%PDF-1.4"), "application/pdf"))

	ok, err := s.Exists(ctx, "resumes/u1/cv.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	obj, err := s.Open(ctx, "resumes/u1/cv.pdf")
	require.NoError(t, err)
	body, _ := io.ReadAll(obj)
	obj.Close()
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, int64(8), obj.Size)

	url, err := s.SignedURL(ctx, "resumes/u1/cv.pdf", time.Minute)
	require.NoError(t, err)
	assert.Empty(t, url)

	require.NoError(t, s.Delete(ctx, "resumes/u1/cv.pdf"))
	_, err = s.Open(ctx, "resumes/u1/cv.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is not an error
	assert.NoError(t, s.Delete(ctx, "resumes/u1/cv.pdf"))
}

func TestLocalStorage_OverwriteLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: base})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "logos/a.png", strings.NewReader("one"), "image/png"))
	require.NoError(t, s.Save(ctx, "logos/a.png", strings.NewReader("two"), "image/png"))

	entries, err := os.ReadDir(filepath.Join(base, "logos"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.png", entries[0].Name())

	_, err = s.Open(ctx, "logos")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_StaysInsideBasePath(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: base})
	require.NoError(t, err)

	full, err := s.resolve("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, base))
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(Config{Type: "cloudflare_r2"})
	assert.Error(t, err, "endpoint is required")
}
