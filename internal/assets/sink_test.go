// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assets

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docpress/pkg/types"
)

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"image/png":     "png",
		"image/jpeg":    "jpeg",
		"image/svg+xml": "svg+xml",
		"image/x-emf":   "x-emf",
		"":              "png",
		"image":         "png",
		"image/":        "png",
	}
	for in, want := range tests {
		assert.Equal(t, want, Extension(in), "content type %q", in)
	}
}

func TestDefaultName(t *testing.T) {
	pattern := regexp.MustCompile(`^img-\d{13}-[0-9a-f]{12}\.jpeg$`)
	a, b := DefaultName("jpeg"), DefaultName("jpeg")
	assert.Regexp(t, pattern, a)
	assert.NotEqual(t, a, b)
}

func TestSequential(t *testing.T) {
	names := Sequential()
	assert.Equal(t, "img-1.png", names("png"))
	assert.Equal(t, "img-2.gif", names("gif"))
}

func TestFileSink_Save(t *testing.T) {
	base := filepath.Join(t.TempDir(), "assets", "articles")
	sink, err := NewFileSink(base, "hello-world", Sequential(), nil)
	require.NoError(t, err)
	assert.DirExists(t, sink.Dir(), "directory exists before any image is saved")

	src, err := sink.Save(context.Background(), types.Image{ContentType: "image/jpeg", Data: []byte("jpg")})
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join("/", base, "hello-world", "img-1.jpeg")), src)

	src2, err := sink.Save(context.Background(), types.Image{Data: []byte("raw")})
	require.NoError(t, err)
	assert.Contains(t, src2, "/hello-world/img-2.png")

	data, err := os.ReadFile(filepath.Join(base, "hello-world", "img-1.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "jpg", string(data))

	assert.Equal(t, []string{src, src2}, sink.Saved())
}

func TestFileSink_RelativeDirSrc(t *testing.T) {
	t.Chdir(t.TempDir())

	sink, err := NewFileSink("assets/articles", "post", Sequential(), nil)
	require.NoError(t, err)

	src, err := sink.Save(context.Background(), types.Image{ContentType: "image/png", Data: []byte("p")})
	require.NoError(t, err)
	assert.Equal(t, "/assets/articles/post/img-1.png", src)
}

func TestFileSink_CancelledContext(t *testing.T) {
	sink, err := NewFileSink(t.TempDir(), "post", Sequential(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = sink.Save(ctx, types.Image{Data: []byte("p")})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.Saved())
}
