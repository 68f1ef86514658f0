// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx converts WordprocessingML (.docx) documents into HTML
// fragments. It reads the package parts directly (archive/zip and
// encoding/xml), maps Word paragraph and run styles onto HTML elements
// through a style map, and hands every embedded image to an ImageSink in
// document order.
package docx

import (
	"context"
	"fmt"

	"github.com/pdiddy/docpress/pkg/types"
)

// Converter is the native .docx backend.
type Converter struct{}

// NewConverter returns the native converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Name identifies the backend in console diagnostics.
func (c *Converter) Name() string { return "docx" }

// Convert renders the document at path. Configured style rules take
// precedence over DefaultStyleMap.
func (c *Converter) Convert(ctx context.Context, path string, styles types.StyleMap, sink types.ImageSink) (types.ConversionResult, error) {
	pkg, err := Open(path)
	if err != nil {
		return types.ConversionResult{}, err
	}
	defer pkg.Close()

	res, err := ConvertPackage(ctx, pkg, styles, sink)
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("converting %s: %w", path, err)
	}
	return res, nil
}

// ConvertPackage renders an opened package.
func ConvertPackage(ctx context.Context, pkg *Package, styles types.StyleMap, sink types.ImageSink) (types.ConversionResult, error) {
	docPart := pkg.MainDocumentPart()
	data, err := pkg.Read(docPart)
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("reading main document: %w", err)
	}
	root, err := parseXML(data)
	if err != nil {
		return types.ConversionResult{}, fmt.Errorf("parsing %s: %w", docPart, err)
	}
	if root.local != "document" {
		return types.ConversionResult{}, fmt.Errorf("%s is not a WordprocessingML document (root element %q)", docPart, root.local)
	}
	body := root.first("body")
	if body == nil {
		return types.ConversionResult{}, fmt.Errorf("%s has no body", docPart)
	}

	rels, err := pkg.Relationships(docPart)
	if err != nil {
		return types.ConversionResult{}, err
	}
	st, err := readStyles(pkg, rels)
	if err != nil {
		return types.ConversionResult{}, err
	}
	num, err := readNumbering(pkg, rels)
	if err != nil {
		return types.ConversionResult{}, err
	}

	rd := &reader{styles: st, numbering: num}
	blocks := rd.readBlocks(body)

	rules := make(types.StyleMap, 0, len(styles)+len(DefaultStyleMap()))
	rules = append(rules, styles...)
	rules = append(rules, DefaultStyleMap()...)

	rn := &renderer{
		ctx:   ctx,
		pkg:   pkg,
		rels:  rels,
		rules: rules,
		sink:  sink,
	}
	markup, err := rn.render(blocks)
	if err != nil {
		return types.ConversionResult{}, err
	}
	return types.ConversionResult{Markup: markup, Diagnostics: rn.diags}, nil
}
