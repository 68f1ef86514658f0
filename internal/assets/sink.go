// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assets writes images extracted during conversion to a
// per-article directory and hands back the site path of each file.
package assets

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/docpress/internal/logging"
	"github.com/pdiddy/docpress/pkg/types"
)

const defaultExt = "png"

// NameFunc returns the filename for an image with the given extension.
type NameFunc func(ext string) string

// DefaultName names images img-<unix-millis>-<token>.<ext>, where token is
// a random lowercase alphanumeric string.
func DefaultName(ext string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("img-%d-%s.%s", time.Now().UnixMilli(), token, ext)
}

// Sequential returns a NameFunc yielding img-1.<ext>, img-2.<ext>, ...
// It makes image names predictable in tests.
func Sequential() NameFunc {
	var n atomic.Int64
	return func(ext string) string {
		return fmt.Sprintf("img-%d.%s", n.Add(1), ext)
	}
}

// Extension derives a file extension from a content type: the subtype
// ("image/jpeg" -> "jpeg"), or "png" when the type is missing.
func Extension(contentType string) string {
	_, sub, ok := strings.Cut(contentType, "/")
	if !ok || sub == "" {
		return defaultExt
	}
	return sub
}

// FileSink stores the images of one document under <image-dir>/<slug>/.
type FileSink struct {
	dir   string
	names NameFunc
	log   logging.Logger
	saved []string
}

// NewFileSink creates <imageDir>/<slug>/ and returns a sink writing into
// it. A nil names uses DefaultName; a nil log discards log entries.
func NewFileSink(imageDir, slug string, names NameFunc, log logging.Logger) (*FileSink, error) {
	dir := filepath.Join(imageDir, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory %s: %w", dir, err)
	}
	if names == nil {
		names = DefaultName
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &FileSink{dir: dir, names: names, log: log}, nil
}

// Dir returns the directory images are written to.
func (s *FileSink) Dir() string { return s.dir }

// Save writes img and returns its site path, "/<image-dir>/<slug>/<name>"
// with forward slashes.
func (s *FileSink) Save(ctx context.Context, img types.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := s.names(Extension(img.ContentType))
	target := filepath.Join(s.dir, name)
	if err := os.WriteFile(target, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing image %s: %w", target, err)
	}

	src := path.Join("/", filepath.ToSlash(s.dir), name)
	s.saved = append(s.saved, src)
	s.log.Debug("image written",
		logging.String("path", target),
		logging.String("content_type", img.ContentType),
		logging.Int("bytes", len(img.Data)),
	)
	return src, nil
}

// Saved returns the site paths written so far, in order.
func (s *FileSink) Saved() []string {
	return append([]string(nil), s.saved...)
}
