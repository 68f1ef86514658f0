// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import "strconv"

type block interface{ isBlock() }

type paragraph struct {
	styleID   string
	styleName string
	list      *listLevel
	children  []inline
}

type listLevel struct {
	numID   string
	level   int
	ordered bool
}

type table struct {
	rows [][]tableCell
}

type tableCell struct {
	blocks []block
}

func (*paragraph) isBlock() {}
func (*table) isBlock()     {}

type inline interface{ isInline() }

type run struct {
	styleID   string
	styleName string
	bold      bool
	italic    bool
	strike    bool
	vertAlign string
	children  []inline
}

type text struct{ value string }

type tab struct{}

type lineBreak struct{}

type picture struct {
	relID string
	alt   string
}

type hyperlink struct {
	relID    string
	anchor   string
	children []inline
}

func (*run) isInline()       {}
func (text) isInline()       {}
func (tab) isInline()        {}
func (lineBreak) isInline()  {}
func (picture) isInline()    {}
func (*hyperlink) isInline() {}

// reader turns the WordprocessingML element tree into blocks and inlines.
type reader struct {
	styles    styles
	numbering numbering
}

func (r *reader) readBlocks(parent *node) []block {
	var blocks []block
	for _, c := range parent.children {
		switch c.local {
		case "p":
			blocks = append(blocks, r.readParagraph(c))
		case "tbl":
			blocks = append(blocks, r.readTable(c))
		case "sdt":
			if content := c.first("sdtContent"); content != nil {
				blocks = append(blocks, r.readBlocks(content)...)
			}
		case "customXml", "ins":
			blocks = append(blocks, r.readBlocks(c)...)
		}
	}
	return blocks
}

func (r *reader) readParagraph(n *node) *paragraph {
	p := &paragraph{}
	if ppr := n.first("pPr"); ppr != nil {
		if s := ppr.first("pStyle"); s != nil {
			p.styleID = s.attr("val")
			p.styleName = r.styles.paragraph[p.styleID]
		}
		if numPr := ppr.first("numPr"); numPr != nil {
			p.list = r.readListLevel(numPr)
		}
	}
	p.children = r.readInlines(n.children)
	return p
}

func (r *reader) readListLevel(numPr *node) *listLevel {
	var numID string
	if id := numPr.first("numId"); id != nil {
		numID = id.attr("val")
	}
	if numID == "" || numID == "0" {
		return nil
	}
	ilvl := 0
	if l := numPr.first("ilvl"); l != nil {
		if v, err := strconv.Atoi(l.attr("val")); err == nil {
			ilvl = v
		}
	}
	ordered, ok := r.numbering.level(numID, ilvl)
	if !ok {
		return nil
	}
	return &listLevel{numID: numID, level: ilvl, ordered: ordered}
}

func (r *reader) readTable(n *node) *table {
	t := &table{}
	for _, tr := range n.all("tr") {
		var row []tableCell
		for _, tc := range tr.all("tc") {
			row = append(row, tableCell{blocks: r.readBlocks(tc)})
		}
		t.rows = append(t.rows, row)
	}
	return t
}

func (r *reader) readInlines(nodes []*node) []inline {
	var out []inline
	for _, c := range nodes {
		switch c.local {
		case "r":
			out = append(out, r.readRun(c))
		case "hyperlink":
			out = append(out, &hyperlink{
				relID:    c.attr("id"),
				anchor:   c.attr("anchor"),
				children: r.readInlines(c.children),
			})
		case "ins", "smartTag", "customXml", "fldSimple", "dir", "bdo":
			out = append(out, r.readInlines(c.children)...)
		case "sdt":
			if content := c.first("sdtContent"); content != nil {
				out = append(out, r.readInlines(content.children)...)
			}
		}
	}
	return out
}

func (r *reader) readRun(n *node) *run {
	rn := &run{}
	if rpr := n.first("rPr"); rpr != nil {
		if s := rpr.first("rStyle"); s != nil {
			rn.styleID = s.attr("val")
			rn.styleName = r.styles.character[rn.styleID]
		}
		rn.bold = toggle(rpr.first("b"))
		rn.italic = toggle(rpr.first("i"))
		rn.strike = toggle(rpr.first("strike")) || toggle(rpr.first("dstrike"))
		if va := rpr.first("vertAlign"); va != nil {
			rn.vertAlign = va.attr("val")
		}
	}
	for _, c := range n.children {
		switch c.local {
		case "t":
			rn.children = append(rn.children, text{value: c.text})
		case "tab":
			rn.children = append(rn.children, tab{})
		case "br":
			if kind := c.attr("type"); kind == "" || kind == "textWrapping" {
				rn.children = append(rn.children, lineBreak{})
			}
		case "cr":
			rn.children = append(rn.children, lineBreak{})
		case "drawing":
			for _, d := range c.children {
				if d.local == "inline" || d.local == "anchor" {
					if pic, ok := readDrawing(d); ok {
						rn.children = append(rn.children, pic)
					}
				}
			}
		case "pict":
			if img := c.find("imagedata"); img != nil && img.attr("id") != "" {
				rn.children = append(rn.children, picture{relID: img.attr("id"), alt: img.attr("title")})
			}
		}
	}
	return rn
}

func readDrawing(n *node) (picture, bool) {
	blip := n.find("blip")
	if blip == nil || blip.attr("embed") == "" {
		return picture{}, false
	}
	pic := picture{relID: blip.attr("embed")}
	if docPr := n.find("docPr"); docPr != nil {
		pic.alt = docPr.attr("descr")
		if pic.alt == "" {
			pic.alt = docPr.attr("title")
		}
	}
	return pic, true
}

// toggle reads an on/off property such as <w:b/> or <w:b w:val="false"/>.
func toggle(n *node) bool {
	if n == nil {
		return false
	}
	switch n.attr("val") {
	case "false", "0", "off", "none":
		return false
	}
	return true
}
