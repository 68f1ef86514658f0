// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultLang         = "id"
	DefaultArticleClass = "prose max-w-3xl mx-auto px-4 py-8"
)

// PageOptions customizes the page shell.
type PageOptions struct {
	Lang         string
	ArticleClass string
}

// RenderPage wraps markup in a complete HTML document. The title is
// inserted as-is: markup-significant characters in it are not escaped.
func RenderPage(title, markup string, opts PageOptions) string {
	if opts.Lang == "" {
		opts.Lang = DefaultLang
	}
	if opts.ArticleClass == "" {
		opts.ArticleClass = DefaultArticleClass
	}

	var b strings.Builder
	b.WriteString("<!doctype html>\n")
	fmt.Fprintf(&b, `<html lang="%s"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">`, opts.Lang)
	b.WriteString("\n")
	fmt.Fprintf(&b, "<title>%s</title></head>\n", title)
	b.WriteString("<body>\n")
	fmt.Fprintf(&b, `<article class="%s">%s</article>`, opts.ArticleClass, markup)
	b.WriteString("\n</body></html>")
	return b.String()
}

// WritePage writes page to dir/<slug>.html, creating dir if needed and
// replacing any existing file. It returns the path written.
func WritePage(dir, slug, page string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, slug+".html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("writing page %s: %w", path, err)
	}
	return path, nil
}
