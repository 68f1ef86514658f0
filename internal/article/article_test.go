// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"hello-world", "hello-world"},
		{"  Trailing   spaces  ", "trailing-spaces"},
		{"Café Crème Brûlée", "cafe-creme-brulee"},
		{"Q&A: What's new? (2024)", "qanda-whats-new-2024"},
		{"Tips & Trik", "tips-and-trik"},
		{"Straße", "strasse"},
		{"Søren Æble", "soren-aeble"},
		{"Łódź", "lodz"},
		{"Привет мир", "privet-mir"},
		{"Αθήνα", "a8hna"},
		{"Harga 100% Rp", "harga-100percent-rp"},
		{"Laporan © 2024", "laporan-c-2024"},
		{"Vòng quanh Việt Nam", "vong-quanh-viet-nam"},
		{"snake_case_name", "snakecasename"},
		{"Multiple---hyphens -- here", "multiple-hyphens-here"},
		{"Berita Terbaru #1", "berita-terbaru-1"},
		{"日本語", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Slugify(got), "slugify must be idempotent")
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		fallback string
		want     string
	}{
		{"plain heading", "<h1>Hello World</h1><p>Body</p>", "file", "Hello World"},
		{"nested tags stripped", "<h1><strong>Bold</strong> Title</h1>", "file", "Bold Title"},
		{"attributes and case", `<H1 class="x">Upper</H1>`, "file", "Upper"},
		{"first heading wins", "<h1>One</h1><h1>Two</h1>", "file", "One"},
		{"no heading falls back to filename", "<h2>Sub</h2><p>Body</p>", "Hello World", "Hello World"},
		{"entities kept as written", "<h1>Tom &amp; Jerry</h1>", "file", "Tom &amp; Jerry"},
		{"empty markup", "", "Raw Name", "Raw Name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.markup, tt.fallback))
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Hello World Lorem ipsum.", Excerpt("<h1>Hello World</h1><p>Lorem   ipsum.</p>", 180))
	assert.Equal(t, "a b", Excerpt("<p>a</p>\n\n<p>b</p>", 0))
	assert.Equal(t, "", Excerpt("<p></p>", 180))
	assert.Equal(t, "abcde…", Excerpt("<p>abcdefgh</p>", 5))
	assert.Equal(t, "x y z", Excerpt("<p>x\v\vy z</p>", 180))
	assert.Equal(t, "x y", Excerpt("<p>x  y</p>", 180))
}

func TestExcerpt_LengthInvariant(t *testing.T) {
	for _, n := range []int{0, 1, 179, 180, 181, 500} {
		plain := strings.Repeat("é", n)
		got := Excerpt("<p>"+plain+"</p>", DefaultExcerptLength)
		length := utf8.RuneCountInString(got)

		assert.LessOrEqual(t, length, DefaultExcerptLength+1, "n=%d", n)
		if n <= DefaultExcerptLength {
			assert.Equal(t, plain, got, "n=%d: short text is returned whole", n)
		} else {
			assert.True(t, strings.HasSuffix(got, "…"), "n=%d", n)
			assert.Equal(t, DefaultExcerptLength+1, length, "n=%d", n)
		}
	}
}

func TestRenderPage(t *testing.T) {
	page := RenderPage("Hello World", "<h1>Hello World</h1>", PageOptions{})

	want := "<!doctype html>\n" +
		`<html lang="id"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">` + "\n" +
		"<title>Hello World</title></head>\n" +
		"<body>\n" +
		`<article class="prose max-w-3xl mx-auto px-4 py-8"><h1>Hello World</h1></article>` + "\n" +
		"</body></html>"
	assert.Equal(t, want, page)

	custom := RenderPage("T", "", PageOptions{Lang: "en", ArticleClass: "post"})
	assert.Contains(t, custom, `<html lang="en">`)
	assert.Contains(t, custom, `<article class="post"></article>`)
}

func TestRenderPage_TitleNotEscaped(t *testing.T) {
	page := RenderPage("A <b>bold</b> title", "", PageOptions{})
	assert.Contains(t, page, "<title>A <b>bold</b> title</title>")
}

func TestWritePage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "content", "articles")

	path, err := WritePage(dir, "hello-world", "first")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hello-world.html"), path)

	_, err = WritePage(dir, "hello-world", "second")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data), "existing pages are overwritten")
}

func TestWritePage_Unwritable(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := WritePage(filepath.Join(blocker, "articles"), "a", "page")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
}
