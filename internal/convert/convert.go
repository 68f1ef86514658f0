// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the article conversion workflow: enumerate source
// documents, convert each through a pluggable backend, write the page and
// its images, and collect one index record per document.
//
// Documents are processed one at a time. By default the first failing
// document aborts the run before the index is written; with
// ContinueOnError the failure is recorded and the run goes on.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docpress/internal/article"
	"github.com/pdiddy/docpress/internal/assets"
	"github.com/pdiddy/docpress/internal/index"
	"github.com/pdiddy/docpress/internal/logging"
	"github.com/pdiddy/docpress/pkg/types"
)

// Converter transforms a .docx file into HTML markup. Different backends
// (the native reader, pandoc in a container) implement this interface.
type Converter interface {
	// Name identifies the backend in console diagnostics.
	Name() string

	// Convert renders the document at path, mapping paragraph and run
	// styles through styles and saving each embedded image through sink
	// in document order.
	Convert(ctx context.Context, path string, styles types.StyleMap, sink types.ImageSink) (types.ConversionResult, error)
}

// Enumerate lists the entries of dir whose names match pattern (default
// "*.docx") in lexical order. No matches is not an error; an unreadable
// dir or a malformed pattern is.
func Enumerate(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", dir)
	}
	if pattern == "" {
		pattern = "*.docx"
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("matching %s in %s: %w", pattern, dir, err)
	}

	// Match names rather than globbing the joined path, so metacharacters
	// in dir itself are taken literally.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}
	var matches []string
	for _, e := range entries {
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("matching %s in %s: %w", pattern, dir, err)
		}
		if ok {
			matches = append(matches, filepath.Join(dir, e.Name()))
		}
	}
	return matches, nil
}

// DocumentResult records how far one source document got.
type DocumentResult struct {
	Source string
	Slug   string
	State  types.DocumentState
	Err    error
}

// BatchResult holds the outcome of a run.
type BatchResult struct {
	Converted int
	Failed    int

	// Articles are the records written to the index, in processing order.
	Articles []types.Article

	// Documents has one entry per document attempted.
	Documents []DocumentResult
}

// Total returns the number of documents attempted.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Pipeline converts a directory of documents into articles.
type Pipeline struct {
	conv   Converter
	cfg    types.PressConfig
	styles types.StyleMap
	names  assets.NameFunc
	log    logging.Logger
	out    io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNames overrides the image name generator.
func WithNames(names assets.NameFunc) Option {
	return func(p *Pipeline) { p.names = names }
}

// WithLogger sets the operational logger.
func WithLogger(log logging.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// WithOutput sets where console lines (diagnostics, summary) are written.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.out = w }
}

// NewPipeline returns a pipeline using conv and the parsed style rules.
// Console output defaults to io.Discard and logging to a no-op logger.
func NewPipeline(conv Converter, cfg types.PressConfig, styles types.StyleMap, opts ...Option) *Pipeline {
	p := &Pipeline{
		conv:   conv,
		cfg:    cfg,
		styles: styles,
		names:  assets.DefaultName,
		log:    logging.NewNop(),
		out:    io.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run converts every enumerated document and writes the index once at the
// end. The returned result is valid even when err is non-nil.
func (p *Pipeline) Run(ctx context.Context) (BatchResult, error) {
	var result BatchResult

	for _, dir := range []string{p.cfg.HTMLDir, p.cfg.ImageDir, filepath.Dir(p.cfg.IndexPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return result, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	paths, err := Enumerate(p.cfg.InputDir, p.cfg.Pattern)
	if err != nil {
		return result, err
	}
	p.log.Info("documents found",
		logging.String("input_dir", p.cfg.InputDir),
		logging.Int("count", len(paths)),
	)

	var acc index.Accumulator
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		doc := DocumentResult{Source: path, State: types.StatePending}
		art, err := p.process(ctx, path, &doc)
		if err != nil {
			err = fmt.Errorf("processing %s: %w", path, err)
			doc.State, doc.Err = types.StateFailed, err
			result.Documents = append(result.Documents, doc)
			result.Failed++
			p.log.Error("document failed", logging.String("source", path), logging.Error(err))
			if !p.cfg.ContinueOnError {
				return result, err
			}
			fmt.Fprintf(p.out, "failed:  %s (%v)\n", filepath.Base(path), err)
			continue
		}

		acc.Add(art)
		doc.State = types.StateIndexed
		result.Documents = append(result.Documents, doc)
		result.Converted++
	}

	if err := acc.Write(p.cfg.IndexPath, p.cfg.IndexFormat); err != nil {
		return result, err
	}
	result.Articles = acc.Articles()

	if result.HasFailures() {
		fmt.Fprintf(p.out, "Batch summary: %d converted, %d failed (total: %d)\n",
			result.Converted, result.Failed, result.Total())
	}
	fmt.Fprintf(p.out, "Done. HTML in /%s, images in /%s, index at /%s\n",
		filepath.ToSlash(p.cfg.HTMLDir), filepath.ToSlash(p.cfg.ImageDir), filepath.ToSlash(p.cfg.IndexPath))
	return result, nil
}

// ConvertDocument converts one document, writes its page and images, and
// returns its index record.
func (p *Pipeline) ConvertDocument(ctx context.Context, path string) (types.Article, error) {
	doc := DocumentResult{Source: path, State: types.StatePending}
	return p.process(ctx, path, &doc)
}

func (p *Pipeline) process(ctx context.Context, path string, doc *DocumentResult) (types.Article, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	slug := article.Slugify(base)
	doc.Slug = slug
	log := p.log.With(logging.String("source", path), logging.String("slug", slug))

	sink, err := assets.NewFileSink(p.cfg.ImageDir, slug, p.names, log)
	if err != nil {
		return types.Article{}, err
	}

	doc.State = types.StateConverting
	log.Debug("converting document", logging.String("backend", p.conv.Name()))
	res, err := p.conv.Convert(ctx, path, p.styles, sink)
	if err != nil {
		return types.Article{}, err
	}

	title := article.Title(res.Markup, base)
	page := article.RenderPage(title, res.Markup, article.PageOptions{
		Lang:         p.cfg.Lang,
		ArticleClass: p.cfg.ArticleClass,
	})
	pagePath, err := article.WritePage(p.cfg.HTMLDir, slug, page)
	if err != nil {
		return types.Article{}, err
	}
	doc.State = types.StateWritten

	art := types.Article{
		Title:   title,
		Slug:    slug,
		URL:     p.articleURL(slug),
		Excerpt: article.Excerpt(res.Markup, p.cfg.ExcerptLength),
	}
	if p.cfg.CoverFromFirstImage {
		if saved := sink.Saved(); len(saved) > 0 {
			cover := saved[0]
			art.Cover = &cover
		}
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintf(p.out, "[%s] %s\n", p.conv.Name(), d)
	}
	log.Info("page written",
		logging.String("path", pagePath),
		logging.Int("images", len(sink.Saved())),
		logging.Int("diagnostics", len(res.Diagnostics)),
	)
	return art, nil
}

func (p *Pipeline) articleURL(slug string) string {
	return strings.TrimSuffix(p.cfg.URLPrefix, "/") + "/" + slug + ".html"
}
