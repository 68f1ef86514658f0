// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/docpress/internal/container"
	"github.com/pdiddy/docpress/internal/docx"
	"github.com/pdiddy/docpress/pkg/types"
)

const imagePandoc = "pandoc/core:latest"

var pandocArgs = []string{"--from", "docx", "--to", "html"}

// PandocConverter converts documents by piping them through pandoc in a
// container. Pandoc leaves image references pointing into the package
// (media/image1.png); those are read from the .docx and saved through the
// sink like the native backend does.
type PandocConverter struct {
	runtime container.Runtime
}

// NewPandocConverter creates a converter that uses the given container
// runtime. It verifies that the pandoc image exists locally.
func NewPandocConverter(rt container.Runtime) (*PandocConverter, error) {
	if err := rt.ImageExists(imagePandoc); err != nil {
		return nil, fmt.Errorf("pandoc image not available in %s: %w", rt.Name(), err)
	}
	return &PandocConverter{runtime: rt}, nil
}

// Name identifies the backend in console diagnostics.
func (c *PandocConverter) Name() string { return "pandoc" }

// Convert runs pandoc on the document and rewrites its image references.
// Style rules cannot be passed to pandoc; when any are configured a single
// info diagnostic says so.
func (c *PandocConverter) Convert(ctx context.Context, path string, styles types.StyleMap, sink types.ImageSink) (types.ConversionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("opening document %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(ctx, imagePandoc, pandocArgs, f, &out); err != nil {
		return types.ConversionResult{}, fmt.Errorf("converting %s with pandoc: %w", path, err)
	}

	pkg, err := docx.Open(path)
	if err != nil {
		return types.ConversionResult{}, err
	}
	defer pkg.Close()

	markup, err := rewriteImages(ctx, out.String(), pkg, sink)
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("extracting images from %s: %w", path, err)
	}

	var diags []types.Diagnostic
	if len(styles) > 0 {
		diags = append(diags, types.Diagnostic{
			Kind:    types.DiagnosticInfo,
			Message: fmt.Sprintf("%d style map rule(s) ignored: pandoc applies its own style handling", len(styles)),
		})
	}
	return types.ConversionResult{Markup: markup, Diagnostics: diags}, nil
}

// rewriteImages saves every image that markup references inside the
// package and points its src at the saved file.
func rewriteImages(ctx context.Context, markup string, pkg *docx.Package, sink types.ImageSink) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parsing pandoc output: %w", err)
	}

	var saveErr error
	doc.Find("img[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		part := mediaPart(sel.AttrOr("src", ""))
		if part == "" || !pkg.Has(part) {
			return true
		}
		data, err := pkg.Read(part)
		if err != nil {
			saveErr = err
			return false
		}
		src, err := sink.Save(ctx, types.Image{
			ContentType: pkg.ContentType(part),
			AltText:     sel.AttrOr("alt", ""),
			Data:        data,
		})
		if err != nil {
			saveErr = fmt.Errorf("saving image %s: %w", part, err)
			return false
		}
		sel.SetAttr("src", src)
		return true
	})
	if saveErr != nil {
		return "", saveErr
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return "", nil
	}
	return strings.TrimSpace(docx.RenderChildren(body.Get(0))), nil
}

// mediaPart maps a pandoc image reference to its package part name.
func mediaPart(src string) string {
	switch {
	case strings.HasPrefix(src, "media/"):
		return "word/" + src
	case strings.HasPrefix(src, "word/media/"):
		return src
	}
	return ""
}
