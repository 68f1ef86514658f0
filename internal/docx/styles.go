// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

const (
	defaultStylesPart    = "word/styles.xml"
	defaultNumberingPart = "word/numbering.xml"
)

// styles maps style IDs to display names.
type styles struct {
	paragraph map[string]string
	character map[string]string
}

type stylesXML struct {
	Styles []struct {
		Type    string `xml:"type,attr"`
		StyleID string `xml:"styleId,attr"`
		Name    struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

func readStyles(p *Package, rels map[string]Relationship) (styles, error) {
	st := styles{paragraph: map[string]string{}, character: map[string]string{}}
	part := partFor(rels, relTypeStyles, defaultStylesPart)
	if !p.Has(part) {
		return st, nil
	}
	data, err := p.Read(part)
	if err != nil {
		return st, err
	}
	var doc stylesXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return st, fmt.Errorf("parsing %s: %w", part, err)
	}
	for _, s := range doc.Styles {
		switch s.Type {
		case "paragraph":
			st.paragraph[s.StyleID] = s.Name.Val
		case "character":
			st.character[s.StyleID] = s.Name.Val
		}
	}
	return st, nil
}

// numbering resolves list levels to their number format.
type numbering struct {
	formats map[string]map[int]string // numId -> ilvl -> numFmt
}

type numberingXML struct {
	AbstractNums []struct {
		ID     string `xml:"abstractNumId,attr"`
		Levels []struct {
			Ilvl   string `xml:"ilvl,attr"`
			NumFmt struct {
				Val string `xml:"val,attr"`
			} `xml:"numFmt"`
		} `xml:"lvl"`
	} `xml:"abstractNum"`
	Nums []struct {
		NumID         string `xml:"numId,attr"`
		AbstractNumID struct {
			Val string `xml:"val,attr"`
		} `xml:"abstractNumId"`
	} `xml:"num"`
}

func readNumbering(p *Package, rels map[string]Relationship) (numbering, error) {
	num := numbering{formats: map[string]map[int]string{}}
	part := partFor(rels, relTypeNumbering, defaultNumberingPart)
	if !p.Has(part) {
		return num, nil
	}
	data, err := p.Read(part)
	if err != nil {
		return num, err
	}
	var doc numberingXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return num, fmt.Errorf("parsing %s: %w", part, err)
	}

	abstract := make(map[string]map[int]string, len(doc.AbstractNums))
	for _, a := range doc.AbstractNums {
		levels := map[int]string{}
		for _, l := range a.Levels {
			ilvl, err := strconv.Atoi(l.Ilvl)
			if err != nil {
				continue
			}
			levels[ilvl] = l.NumFmt.Val
		}
		abstract[a.ID] = levels
	}
	for _, n := range doc.Nums {
		if levels, ok := abstract[n.AbstractNumID.Val]; ok {
			num.formats[n.NumID] = levels
		}
	}
	return num, nil
}

// level reports whether the list level exists and, if so, whether it is ordered.
func (n numbering) level(numID string, ilvl int) (ordered, ok bool) {
	levels, found := n.formats[numID]
	if !found {
		return false, false
	}
	format, found := levels[ilvl]
	if !found {
		return false, false
	}
	return format != "bullet", true
}
