// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index collects article records during a run and writes them
// out once, as JSON or YAML, replacing the previous index.
package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docpress/pkg/types"
)

// Accumulator holds article records in processing order.
type Accumulator struct {
	articles []types.Article
}

// Add appends a record.
func (a *Accumulator) Add(article types.Article) {
	a.articles = append(a.articles, article)
}

// Len returns the number of records collected.
func (a *Accumulator) Len() int {
	return len(a.articles)
}

// Articles returns a copy of the collected records.
func (a *Accumulator) Articles() []types.Article {
	return append([]types.Article{}, a.articles...)
}

// Marshal serializes the records. JSON is an array indented by two spaces
// with a trailing newline; HTML characters are not escaped.
func (a *Accumulator) Marshal(format types.IndexFormat) ([]byte, error) {
	articles := a.Articles()
	switch format {
	case types.IndexJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(articles); err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return buf.Bytes(), nil
	case types.IndexYAML:
		data, err := yaml.Marshal(articles)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported index format %q", format)
	}
}

// Write serializes the records to path, creating its directory and
// overwriting any previous index.
func (a *Accumulator) Write(path string, format types.IndexFormat) error {
	data, err := a.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing index %s: %w", path, err)
	}
	return nil
}
