// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"context"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/docpress/pkg/types"
)

// browserImageTypes are the content types rendered without a warning.
var browserImageTypes = map[string]bool{
	"image/png":     true,
	"image/gif":     true,
	"image/jpeg":    true,
	"image/svg+xml": true,
	"image/tiff":    true,
	"image/webp":    true,
	"image/bmp":     true,
}

// renderer writes blocks as HTML nodes, pulling images through the sink.
type renderer struct {
	ctx   context.Context
	pkg   *Package
	rels  map[string]Relationship
	rules types.StyleMap
	sink  types.ImageSink

	diags  []types.Diagnostic
	warned map[string]bool
}

func (r *renderer) render(blocks []block) (string, error) {
	root := element("div")
	if err := r.renderBlocks(root, blocks); err != nil {
		return "", err
	}
	return RenderChildren(root), nil
}

func (r *renderer) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.warned[msg] {
		return
	}
	if r.warned == nil {
		r.warned = map[string]bool{}
	}
	r.warned[msg] = true
	r.diags = append(r.diags, types.Diagnostic{Kind: types.DiagnosticWarning, Message: msg})
}

func (r *renderer) renderBlocks(parent *html.Node, blocks []block) error {
	var (
		lists    []*html.Node
		prevRule *types.StyleRule
		prevEl   *html.Node
	)
	for _, b := range blocks {
		switch b := b.(type) {
		case *paragraph:
			rule, matched := r.paragraphRule(b)
			if b.list != nil && (!matched || rule.Tag == "p") {
				prevRule = nil
				li := element("li")
				if err := r.renderInlines(li, b.children); err != nil {
					return err
				}
				if li.FirstChild != nil {
					appendListItem(parent, &lists, b.list, li)
				}
				continue
			}
			lists = nil

			tag, fresh := "p", true
			if matched {
				tag, fresh = rule.Tag, rule.Fresh
			}
			if tag == "" {
				prevRule = nil
				if err := r.renderInlines(parent, b.children); err != nil {
					return err
				}
				continue
			}

			el := element(tag)
			if err := r.renderInlines(el, b.children); err != nil {
				return err
			}
			if el.FirstChild == nil {
				continue
			}
			if matched && !fresh && prevRule != nil && *prevRule == rule {
				moveChildren(prevEl, el)
				continue
			}
			parent.AppendChild(el)
			prevEl = el
			prevRule = nil
			if matched {
				ruleCopy := rule
				prevRule = &ruleCopy
			}
		case *table:
			lists, prevRule = nil, nil
			if err := r.renderTable(parent, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renderer) paragraphRule(p *paragraph) (types.StyleRule, bool) {
	if p.styleID == "" {
		return types.StyleRule{}, false
	}
	name := p.styleName
	if name == "" {
		name = p.styleID
	}
	rule, ok := match(r.rules, "p", name)
	if !ok {
		r.warn("Unrecognised paragraph style: '%s' (Style ID: %s)", p.styleName, p.styleID)
	}
	return rule, ok
}

// appendListItem places li at its nesting level, opening and closing
// ul/ol elements as the level or list kind changes.
func appendListItem(parent *html.Node, stack *[]*html.Node, lvl *listLevel, li *html.Node) {
	depth := lvl.level + 1
	tag := "ul"
	if lvl.ordered {
		tag = "ol"
	}
	s := *stack
	if len(s) > depth {
		s = s[:depth]
	}
	if len(s) == depth && s[len(s)-1].Data != tag {
		s = s[:len(s)-1]
	}
	for len(s) < depth {
		list := element(tag)
		if len(s) == 0 {
			parent.AppendChild(list)
		} else {
			top := s[len(s)-1]
			host := top.LastChild
			if host == nil {
				host = element("li")
				top.AppendChild(host)
			}
			host.AppendChild(list)
		}
		s = append(s, list)
	}
	s[len(s)-1].AppendChild(li)
	*stack = s
}

func (r *renderer) renderTable(parent *html.Node, t *table) error {
	tbl := element("table")
	for _, row := range t.rows {
		tr := element("tr")
		for _, cell := range row {
			td := element("td")
			if err := r.renderBlocks(td, cell.blocks); err != nil {
				return err
			}
			tr.AppendChild(td)
		}
		tbl.AppendChild(tr)
	}
	parent.AppendChild(tbl)
	return nil
}

func (r *renderer) renderInlines(parent *html.Node, inlines []inline) error {
	for _, in := range inlines {
		switch v := in.(type) {
		case text:
			if v.value == "" {
				continue
			}
			appendMerged(parent, &html.Node{Type: html.TextNode, Data: v.value})
		case tab:
			appendMerged(parent, &html.Node{Type: html.TextNode, Data: "\t"})
		case lineBreak:
			parent.AppendChild(element("br"))
		case *run:
			if err := r.renderRun(parent, v); err != nil {
				return err
			}
		case *hyperlink:
			if err := r.renderHyperlink(parent, v); err != nil {
				return err
			}
		case picture:
			if err := r.renderPicture(parent, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renderer) renderRun(parent *html.Node, rn *run) error {
	var tags []string
	if rn.styleID != "" {
		name := rn.styleName
		if name == "" {
			name = rn.styleID
		}
		if rule, ok := match(r.rules, "r", name); ok {
			if rule.Tag != "" {
				tags = append(tags, rule.Tag)
			}
		} else {
			r.warn("Unrecognised run style: '%s' (Style ID: %s)", rn.styleName, rn.styleID)
		}
	}
	if rn.bold {
		tags = append(tags, "strong")
	}
	if rn.italic {
		tags = append(tags, "em")
	}
	if rn.strike {
		tags = append(tags, "s")
	}
	switch rn.vertAlign {
	case "superscript":
		tags = append(tags, "sup")
	case "subscript":
		tags = append(tags, "sub")
	}

	if len(tags) == 0 {
		return r.renderInlines(parent, rn.children)
	}

	outer := element(tags[0])
	inner := outer
	for _, tag := range tags[1:] {
		el := element(tag)
		inner.AppendChild(el)
		inner = el
	}
	if err := r.renderInlines(inner, rn.children); err != nil {
		return err
	}
	if inner.FirstChild == nil {
		return nil
	}
	appendMerged(parent, outer)
	return nil
}

func (r *renderer) renderHyperlink(parent *html.Node, h *hyperlink) error {
	var href string
	if h.relID != "" {
		if rel, ok := r.rels[h.relID]; ok {
			href = rel.Target
		}
	}
	if h.anchor != "" {
		href += "#" + h.anchor
	}
	if href == "" {
		return r.renderInlines(parent, h.children)
	}
	a := element("a", html.Attribute{Key: "href", Val: href})
	if err := r.renderInlines(a, h.children); err != nil {
		return err
	}
	if a.FirstChild != nil {
		parent.AppendChild(a)
	}
	return nil
}

func (r *renderer) renderPicture(parent *html.Node, pic picture) error {
	rel, ok := r.rels[pic.relID]
	if !ok || rel.External {
		r.warn("An image with relationship ID %s could not be found", pic.relID)
		return nil
	}
	data, err := r.pkg.Read(rel.Target)
	if err != nil {
		return fmt.Errorf("reading image %s: %w", rel.Target, err)
	}
	contentType := r.pkg.ContentType(rel.Target)
	if contentType != "" && !browserImageTypes[contentType] {
		r.warn("Image of type %s is unlikely to display in web browsers", contentType)
	}

	src, err := r.sink.Save(r.ctx, types.Image{
		ContentType: contentType,
		AltText:     pic.alt,
		Data:        data,
	})
	if err != nil {
		return fmt.Errorf("saving image %s: %w", rel.Target, err)
	}

	attrs := []html.Attribute{{Key: "src", Val: src}}
	if pic.alt != "" {
		attrs = append(attrs, html.Attribute{Key: "alt", Val: pic.alt})
	}
	parent.AppendChild(element("img", attrs...))
	return nil
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// appendMerged appends child to parent, joining it with the previous
// sibling when both are text, or both are the same attribute-free
// formatting element. Adjacent runs with equal formatting then render
// as one element.
func appendMerged(parent, child *html.Node) {
	last := parent.LastChild
	if last != nil && child.Type == html.TextNode && last.Type == html.TextNode {
		last.Data += child.Data
		return
	}
	if last != nil && child.Type == html.ElementNode && last.Type == html.ElementNode &&
		last.Data == child.Data && len(last.Attr) == 0 && len(child.Attr) == 0 &&
		child.Data != "br" && child.Data != "img" {
		moveChildren(last, child)
		return
	}
	parent.AppendChild(child)
}

func moveChildren(dst, src *html.Node) {
	for c := src.FirstChild; c != nil; {
		next := c.NextSibling
		src.RemoveChild(c)
		appendMerged(dst, c)
		c = next
	}
}
