// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docpress/internal/assets"
	"github.com/pdiddy/docpress/internal/docx"
	"github.com/pdiddy/docpress/internal/docx/docxtest"
	"github.com/pdiddy/docpress/pkg/types"
)

// fakeConverter returns canned markup per document base name. Images are
// pushed through the sink before the markup is returned, and their site
// paths replace {img0}, {img1}, ... in the output.
type fakeConverter struct {
	outputs map[string]string
	images  map[string][]types.Image
	diags   []types.Diagnostic
	fail    map[string]error
	calls   []string
}

func (f *fakeConverter) Name() string { return "fake" }

func (f *fakeConverter) Convert(ctx context.Context, path string, _ types.StyleMap, sink types.ImageSink) (types.ConversionResult, error) {
	base := filepath.Base(path)
	f.calls = append(f.calls, base)
	if err := f.fail[base]; err != nil {
		return types.ConversionResult{}, err
	}
	markup := f.outputs[base]
	for i, img := range f.images[base] {
		src, err := sink.Save(ctx, img)
		if err != nil {
			return types.ConversionResult{}, err
		}
		markup = strings.ReplaceAll(markup, fmt.Sprintf("{img%d}", i), src)
	}
	return types.ConversionResult{Markup: markup, Diagnostics: f.diags}, nil
}

// workspace switches into a fresh directory laid out like a site checkout
// and writes the named source documents into content/raw.
func workspace(t *testing.T, docs ...string) types.PressConfig {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg := types.DefaultPressConfig()
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0o755))
	for _, name := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.InputDir, name), []byte("docx"), 0o644))
	}
	return cfg
}

func readIndex(t *testing.T, path string) []types.Article {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var articles []types.Article
	require.NoError(t, json.Unmarshal(data, &articles))
	return articles
}

func TestEnumerate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.docx", "a.docx", "notes.txt", "c.DOCX"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	paths, err := Enumerate(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.docx"), filepath.Join(dir, "b.docx")}, paths)
}

func TestEnumerate_MissingDir(t *testing.T) {
	_, err := Enumerate(filepath.Join(t.TempDir(), "nope"), "*.docx")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnumerate_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.docx")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err := Enumerate(file, "*.docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestRun_HelloWorld(t *testing.T) {
	cfg := workspace(t, "Hello World.docx")
	body := strings.Repeat("lorem ipsum ", 20)
	conv := &fakeConverter{outputs: map[string]string{
		"Hello World.docx": "<h1>Hello World</h1><p>" + body + "</p>",
	}}
	var out bytes.Buffer

	result, err := NewPipeline(conv, cfg, nil, WithOutput(&out)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Converted)
	assert.False(t, result.HasFailures())

	page, err := os.ReadFile(filepath.Join("content", "articles", "hello-world.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<html lang="id">`)
	assert.Contains(t, string(page), "<title>Hello World</title>")
	assert.Contains(t, string(page), "<h1>Hello World</h1><p>"+body+"</p>")

	articles := readIndex(t, filepath.Join("data", "articles.json"))
	require.Len(t, articles, 1)
	a := articles[0]
	assert.Equal(t, "Hello World", a.Title)
	assert.Equal(t, "hello-world", a.Slug)
	assert.Equal(t, "/content/articles/hello-world.html", a.URL)
	assert.Nil(t, a.Cover)
	assert.True(t, strings.HasPrefix(a.Excerpt, "Hello World lorem ipsum"))
	assert.True(t, strings.HasSuffix(a.Excerpt, "…"))
	assert.Equal(t, 181, len([]rune(a.Excerpt)))

	entries, err := os.ReadDir(filepath.Join("assets", "articles", "hello-world"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Equal(t, "Done. HTML in /content/articles, images in /assets/articles, index at /data/articles.json\n", out.String())
}

func TestRun_TitleFallsBackToFileName(t *testing.T) {
	cfg := workspace(t, "Catatan Harian.docx")
	conv := &fakeConverter{outputs: map[string]string{"Catatan Harian.docx": "<p>Isi singkat.</p>"}}

	_, err := NewPipeline(conv, cfg, nil).Run(context.Background())
	require.NoError(t, err)

	articles := readIndex(t, cfg.IndexPath)
	require.Len(t, articles, 1)
	assert.Equal(t, "Catatan Harian", articles[0].Title)
	assert.Equal(t, "catatan-harian", articles[0].Slug)
	assert.Equal(t, "Isi singkat.", articles[0].Excerpt)
}

func TestRun_OneEntryPerDocument(t *testing.T) {
	cfg := workspace(t, "c.docx", "a.docx", "b.docx", "readme.txt")
	conv := &fakeConverter{outputs: map[string]string{
		"a.docx": "<h1>A</h1>",
		"b.docx": "<h1>B</h1>",
		"c.docx": "<h1>C</h1>",
	}}

	result, err := NewPipeline(conv, cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.docx", "b.docx", "c.docx"}, conv.calls)
	assert.Equal(t, 3, result.Converted)

	articles := readIndex(t, cfg.IndexPath)
	require.Len(t, articles, 3)
	for i, slug := range []string{"a", "b", "c"} {
		assert.Equal(t, slug, articles[i].Slug)
		assert.FileExists(t, filepath.Join(cfg.HTMLDir, slug+".html"))
	}
	assert.Equal(t, result.Articles, articles)
	for _, doc := range result.Documents {
		assert.Equal(t, types.StateIndexed, doc.State)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	cfg := workspace(t)

	result, err := NewPipeline(&fakeConverter{}, cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Total())

	data, err := os.ReadFile(cfg.IndexPath)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestRun_MissingInputDir(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := types.DefaultPressConfig()

	_, err := NewPipeline(&fakeConverter{}, cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.NoFileExists(t, cfg.IndexPath)
}

func TestRun_PrintsDiagnostics(t *testing.T) {
	cfg := workspace(t, "a.docx")
	conv := &fakeConverter{
		outputs: map[string]string{"a.docx": "<p>x</p>"},
		diags: []types.Diagnostic{
			{Kind: types.DiagnosticWarning, Message: "Unrecognised paragraph style: 'Quote' (Style ID: Quote)"},
		},
	}
	var out bytes.Buffer

	_, err := NewPipeline(conv, cfg, nil, WithOutput(&out)).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[fake] warning: Unrecognised paragraph style: 'Quote' (Style ID: Quote)\n")
}

func TestRun_AbortsOnFailure(t *testing.T) {
	cfg := workspace(t, "a.docx", "b.docx", "c.docx")
	conv := &fakeConverter{
		outputs: map[string]string{"a.docx": "<h1>A</h1>", "c.docx": "<h1>C</h1>"},
		fail:    map[string]error{"b.docx": errors.New("corrupt archive")},
	}

	result, err := NewPipeline(conv, cfg, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt archive")
	assert.Contains(t, err.Error(), "b.docx")

	assert.Equal(t, []string{"a.docx", "b.docx"}, conv.calls)
	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Documents, 2)
	assert.Equal(t, types.StateFailed, result.Documents[1].State)

	assert.FileExists(t, filepath.Join(cfg.HTMLDir, "a.html"))
	assert.NoFileExists(t, cfg.IndexPath)
}

func TestRun_ContinueOnError(t *testing.T) {
	cfg := workspace(t, "a.docx", "b.docx", "c.docx")
	cfg.ContinueOnError = true
	conv := &fakeConverter{
		outputs: map[string]string{"a.docx": "<h1>A</h1>", "c.docx": "<h1>C</h1>"},
		fail:    map[string]error{"b.docx": errors.New("corrupt archive")},
	}
	var out bytes.Buffer

	result, err := NewPipeline(conv, cfg, nil, WithOutput(&out)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.HasFailures())

	articles := readIndex(t, cfg.IndexPath)
	require.Len(t, articles, 2)
	assert.Equal(t, "a", articles[0].Slug)
	assert.Equal(t, "c", articles[1].Slug)

	assert.Contains(t, out.String(), "failed:  b.docx")
	assert.Contains(t, out.String(), "Batch summary: 2 converted, 1 failed (total: 3)")
}

// Two source names that slugify alike share one page; the later document
// wins and the index keeps both records.
func TestRun_SlugCollision(t *testing.T) {
	cfg := workspace(t, "Hello World.docx", "hello-world.docx")
	conv := &fakeConverter{outputs: map[string]string{
		"Hello World.docx": "<h1>First</h1>",
		"hello-world.docx": "<h1>Second</h1>",
	}}

	_, err := NewPipeline(conv, cfg, nil).Run(context.Background())
	require.NoError(t, err)

	articles := readIndex(t, cfg.IndexPath)
	require.Len(t, articles, 2)
	assert.Equal(t, articles[0].URL, articles[1].URL)

	page, err := os.ReadFile(filepath.Join(cfg.HTMLDir, "hello-world.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<h1>Second</h1>")
	assert.NotContains(t, string(page), "<h1>First</h1>")
}

func TestRun_ImagesAndCover(t *testing.T) {
	cfg := workspace(t, "Trip.docx")
	cfg.CoverFromFirstImage = true
	conv := &fakeConverter{
		outputs: map[string]string{"Trip.docx": `<h1>Trip</h1><p><img src="{img0}"/><img src="{img1}"/></p>`},
		images: map[string][]types.Image{"Trip.docx": {
			{ContentType: "image/jpeg", Data: []byte("jpeg")},
			{ContentType: "image/png", Data: []byte("png")},
		}},
	}

	result, err := NewPipeline(conv, cfg, nil, WithNames(assets.Sequential())).Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.ImageDir, "trip", "img-1.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
	assert.FileExists(t, filepath.Join(cfg.ImageDir, "trip", "img-2.png"))

	page, err := os.ReadFile(filepath.Join(cfg.HTMLDir, "trip.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<img src="/assets/articles/trip/img-1.jpeg"/>`)

	require.Len(t, result.Articles, 1)
	require.NotNil(t, result.Articles[0].Cover)
	assert.Equal(t, "/assets/articles/trip/img-1.jpeg", *result.Articles[0].Cover)
}

func TestRun_CoverDisabledByDefault(t *testing.T) {
	cfg := workspace(t, "Trip.docx")
	conv := &fakeConverter{
		outputs: map[string]string{"Trip.docx": `<img src="{img0}"/>`},
		images:  map[string][]types.Image{"Trip.docx": {{ContentType: "image/png", Data: []byte("png")}}},
	}

	result, err := NewPipeline(conv, cfg, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Articles, 1)
	assert.Nil(t, result.Articles[0].Cover)

	raw, err := os.ReadFile(cfg.IndexPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"cover": null`)
}

func TestRun_YAMLIndexAndURLPrefix(t *testing.T) {
	cfg := workspace(t, "a.docx")
	cfg.IndexFormat = types.IndexYAML
	cfg.IndexPath = filepath.Join("data", "articles.yaml")
	cfg.URLPrefix = "/blog/"
	conv := &fakeConverter{outputs: map[string]string{"a.docx": "<h1>A</h1>"}}

	_, err := NewPipeline(conv, cfg, nil).Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.IndexPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "url: /blog/a.html")
}

func TestRun_CanceledContext(t *testing.T) {
	cfg := workspace(t, "a.docx")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(&fakeConverter{}, cfg, nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, cfg.IndexPath)
}

func TestRun_NativeConverter(t *testing.T) {
	cfg := workspace(t)
	doc := docxtest.Document{
		Styles: []docxtest.Style{{ID: "Title", Name: "Title"}, {ID: "Quote", Name: "Quote"}},
		Media:  []docxtest.Media{{RelID: "rIdImg", Name: "image1.png", ContentType: "image/png", Data: []byte("png")}},
		Body: docxtest.Paragraph("Title", "Jalan-Jalan ke Bali") +
			docxtest.Paragraph("Quote", "Indah sekali.") +
			docxtest.StyledParagraph("", docxtest.ImageRun("rIdImg", "Pantai")),
	}
	require.NoError(t, doc.WriteFile(filepath.Join(cfg.InputDir, "Bali Trip.docx")))

	styles, err := docx.ParseStyleMap(cfg.StyleMap)
	require.NoError(t, err)
	var out bytes.Buffer

	result, err := NewPipeline(docx.NewConverter(), cfg, styles,
		WithNames(assets.Sequential()), WithOutput(&out)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Articles, 1)
	assert.Equal(t, "Jalan-Jalan ke Bali", result.Articles[0].Title)
	assert.Equal(t, "bali-trip", result.Articles[0].Slug)

	page, err := os.ReadFile(filepath.Join(cfg.HTMLDir, "bali-trip.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<h1>Jalan-Jalan ke Bali</h1>")
	assert.Contains(t, string(page), `<img src="/assets/articles/bali-trip/img-1.png" alt="Pantai"/>`)
	assert.Contains(t, out.String(), "[docx] warning: Unrecognised paragraph style: 'Quote' (Style ID: Quote)")
}

func TestRun_QuotesStayLiteralInIndex(t *testing.T) {
	cfg := workspace(t)
	doc := docxtest.Document{
		Styles: []docxtest.Style{{ID: "Title", Name: "Title"}},
		Body: docxtest.Paragraph("Title", "Don't Panic") +
			docxtest.Paragraph("", `She said "hi" & left.`),
	}
	require.NoError(t, doc.WriteFile(filepath.Join(cfg.InputDir, "Dont Panic.docx")))
	styles, err := docx.ParseStyleMap(cfg.StyleMap)
	require.NoError(t, err)

	result, err := NewPipeline(docx.NewConverter(), cfg, styles).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Articles, 1)
	assert.Equal(t, "Don't Panic", result.Articles[0].Title)
	assert.Equal(t, `Don't Panic She said "hi" &amp; left.`, result.Articles[0].Excerpt)
}

func TestEnumerate_MetaCharactersInDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "drafts [2024]*")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.docx"), nil, 0o644))

	paths, err := Enumerate(dir, "*.docx")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.docx")}, paths)
}

func TestEnumerate_BadPattern(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.docx"), nil, 0o644))
	_, err := Enumerate(dir, "[")
	require.Error(t, err)
	assert.ErrorIs(t, err, filepath.ErrBadPattern)
}
