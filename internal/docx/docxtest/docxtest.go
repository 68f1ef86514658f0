// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docxtest builds small .docx packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"
)

const namespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"`

const relBase = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"

// Style declares a style in word/styles.xml.
type Style struct {
	ID   string
	Name string
	// Type is "paragraph" (default) or "character".
	Type string
}

// Media is an embedded image stored under word/media/.
type Media struct {
	RelID string
	Name  string
	// ContentType is declared as a Default by extension. Leave empty to
	// leave the type undeclared.
	ContentType string
	Data        []byte
}

// Link is an external hyperlink relationship.
type Link struct {
	RelID  string
	Target string
}

// Document describes the package to build.
type Document struct {
	// Body is the inner XML of w:body.
	Body      string
	Styles    []Style
	Numbering string
	Media     []Media
	Links     []Link
}

// Bytes returns the zipped package.
func (d Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct{ name, body string }{
		{"[Content_Types].xml", d.contentTypes()},
		{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="` + relBase + `officeDocument" Target="word/document.xml"/>` +
			`</Relationships>`},
		{"word/_rels/document.xml.rels", d.documentRels()},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document ` + namespaces + `><w:body>` + d.Body + `</w:body></w:document>`},
	}
	if len(d.Styles) > 0 {
		parts = append(parts, struct{ name, body string }{"word/styles.xml", d.styles()})
	}
	if d.Numbering != "" {
		parts = append(parts, struct{ name, body string }{"word/numbering.xml", d.Numbering})
	}

	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, err
		}
	}
	for _, m := range d.Media {
		w, err := zw.Create("word/media/" + m.Name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(m.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the package to filePath.
func (d Document) WriteFile(filePath string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0o644)
}

func (d Document) contentTypes() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	seen := map[string]bool{}
	for _, m := range d.Media {
		ext := strings.TrimPrefix(path.Ext(m.Name), ".")
		if m.ContentType == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		fmt.Fprintf(&b, `<Default Extension="%s" ContentType="%s"/>`, ext, m.ContentType)
	}
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	b.WriteString(`</Types>`)
	return b.String()
}

func (d Document) documentRels() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	if len(d.Styles) > 0 {
		b.WriteString(`<Relationship Id="rIdStyles" Type="` + relBase + `styles" Target="styles.xml"/>`)
	}
	if d.Numbering != "" {
		b.WriteString(`<Relationship Id="rIdNumbering" Type="` + relBase + `numbering" Target="numbering.xml"/>`)
	}
	for _, m := range d.Media {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%simage" Target="media/%s"/>`, m.RelID, relBase, m.Name)
	}
	for _, l := range d.Links {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%shyperlink" Target="%s" TargetMode="External"/>`, l.RelID, relBase, l.Target)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func (d Document) styles() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:styles ` + namespaces + `>`)
	for _, s := range d.Styles {
		kind := s.Type
		if kind == "" {
			kind = "paragraph"
		}
		fmt.Fprintf(&b, `<w:style w:type="%s" w:styleId="%s"><w:name w:val="%s"/></w:style>`, kind, s.ID, s.Name)
	}
	b.WriteString(`</w:styles>`)
	return b.String()
}

// Paragraph returns a paragraph holding one plain run. An empty styleID
// leaves the paragraph unstyled.
func Paragraph(styleID, text string) string {
	return StyledParagraph(styleID, Run(text))
}

// StyledParagraph wraps pre-built runs in a paragraph.
func StyledParagraph(styleID string, runs ...string) string {
	var ppr string
	if styleID != "" {
		ppr = `<w:pPr><w:pStyle w:val="` + styleID + `"/></w:pPr>`
	}
	return `<w:p>` + ppr + strings.Join(runs, "") + `</w:p>`
}

// ListParagraph returns a numbered paragraph at level ilvl of numID.
func ListParagraph(numID string, ilvl int, text string) string {
	return fmt.Sprintf(`<w:p><w:pPr><w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%s"/></w:numPr></w:pPr>%s</w:p>`,
		ilvl, numID, Run(text))
}

// Run returns a plain text run.
func Run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// FormattedRun returns a run with the given run properties, e.g. "<w:b/>".
func FormattedRun(props, text string) string {
	return `<w:r><w:rPr>` + props + `</w:rPr><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// ImageRun returns a run holding an inline drawing that embeds relID.
func ImageRun(relID, descr string) string {
	return `<w:r><w:drawing><wp:inline><wp:docPr id="1" name="Picture 1" descr="` + descr + `"/>` +
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">` +
		`<pic:pic><pic:blipFill><a:blip r:embed="` + relID + `"/></pic:blipFill></pic:pic>` +
		`</a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`
}

// Hyperlink returns a hyperlink around a plain run.
func Hyperlink(relID, text string) string {
	return `<w:hyperlink r:id="` + relID + `">` + Run(text) + `</w:hyperlink>`
}

// Numbering returns a numbering part declaring numID "1" as bullets and
// numID "2" as decimal, each with two levels.
func Numbering() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:numbering ` + namespaces + `>` +
		`<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl><w:lvl w:ilvl="1"><w:numFmt w:val="bullet"/></w:lvl></w:abstractNum>` +
		`<w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/></w:lvl><w:lvl w:ilvl="1"><w:numFmt w:val="lowerLetter"/></w:lvl></w:abstractNum>` +
		`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
		`<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>` +
		`</w:numbering>`
}
