// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

const (
	contentTypesPart    = "[Content_Types].xml"
	defaultDocumentPart = "word/document.xml"

	relTypeOfficeDocument = "/officeDocument"
	relTypeStyles         = "/styles"
	relTypeNumbering      = "/numbering"
)

// Relationship links a part to another part or to an external target.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Package is an opened .docx file (an OPC zip container).
type Package struct {
	closer    io.Closer
	files     map[string]*zip.File
	defaults  map[string]string
	overrides map[string]string
}

type contentTypesXML struct {
	Defaults []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

type relationshipsXML struct {
	Relationships []struct {
		ID         string `xml:"Id,attr"`
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

// Open opens the .docx file at path. The caller must Close it.
func Open(filePath string) (*Package, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening docx %s: %w", filePath, err)
	}
	p, err := newPackage(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("reading docx %s: %w", filePath, err)
	}
	p.closer = zr
	return p, nil
}

// OpenBytes opens an in-memory .docx file.
func OpenBytes(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening docx: %w", err)
	}
	return newPackage(zr)
}

func newPackage(zr *zip.Reader) (*Package, error) {
	p := &Package{
		files:     make(map[string]*zip.File, len(zr.File)),
		defaults:  map[string]string{},
		overrides: map[string]string{},
	}
	for _, f := range zr.File {
		p.files[strings.TrimPrefix(f.Name, "/")] = f
	}

	if !p.Has(contentTypesPart) {
		return p, nil
	}
	data, err := p.Read(contentTypesPart)
	if err != nil {
		return nil, err
	}
	var ct contentTypesXML
	if err := xml.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", contentTypesPart, err)
	}
	for _, d := range ct.Defaults {
		p.defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	for _, o := range ct.Overrides {
		p.overrides[strings.TrimPrefix(o.PartName, "/")] = o.ContentType
	}
	return p, nil
}

// Close releases the underlying file, if any.
func (p *Package) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// Has reports whether the package contains the named part.
func (p *Package) Has(part string) bool {
	_, ok := p.files[part]
	return ok
}

// Read returns the contents of the named part.
func (p *Package) Read(part string) ([]byte, error) {
	f, ok := p.files[part]
	if !ok {
		return nil, fmt.Errorf("part %s: %w", part, fs.ErrNotExist)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening part %s: %w", part, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading part %s: %w", part, err)
	}
	return data, nil
}

// ContentType returns the declared content type of part: an Override by
// part name first, then a Default by extension. Undeclared parts yield "".
func (p *Package) ContentType(part string) string {
	if ct, ok := p.overrides[part]; ok {
		return ct
	}
	ext := strings.TrimPrefix(path.Ext(part), ".")
	return p.defaults[strings.ToLower(ext)]
}

// Relationships returns the relationships of part keyed by ID. Internal
// targets are resolved to package part names. Use "" for the package
// level relationships.
func (p *Package) Relationships(part string) (map[string]Relationship, error) {
	relsPart := "_rels/.rels"
	if part != "" {
		relsPart = path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
	}
	rels := map[string]Relationship{}
	if !p.Has(relsPart) {
		return rels, nil
	}
	data, err := p.Read(relsPart)
	if err != nil {
		return nil, err
	}
	var doc relationshipsXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", relsPart, err)
	}
	for _, r := range doc.Relationships {
		rel := Relationship{
			ID:       r.ID,
			Type:     r.Type,
			Target:   r.Target,
			External: strings.EqualFold(r.TargetMode, "External"),
		}
		if !rel.External {
			rel.Target = resolveTarget(part, r.Target)
		}
		rels[r.ID] = rel
	}
	return rels, nil
}

// MainDocumentPart returns the part holding the document body.
func (p *Package) MainDocumentPart() string {
	rels, err := p.Relationships("")
	if err == nil {
		for _, r := range rels {
			if strings.HasSuffix(r.Type, relTypeOfficeDocument) && !r.External {
				return r.Target
			}
		}
	}
	return defaultDocumentPart
}

// partFor returns the target of the first relationship of the given type,
// or fallback when there is none.
func partFor(rels map[string]Relationship, relType, fallback string) string {
	for _, r := range rels {
		if strings.HasSuffix(r.Type, relType) && !r.External {
			return r.Target
		}
	}
	return fallback
}

func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	base := ""
	if source != "" {
		base = path.Dir(source)
	}
	return strings.TrimPrefix(path.Join(base, target), "/")
}
