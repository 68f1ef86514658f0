// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ConversionBackend identifies the document conversion tool.
type ConversionBackend string

const (
	BackendNative ConversionBackend = "native"
	BackendPandoc ConversionBackend = "pandoc"
)

// IndexFormat selects the serialization of the article index.
type IndexFormat string

const (
	IndexJSON IndexFormat = "json"
	IndexYAML IndexFormat = "yaml"
)

// CatalogConfig holds settings for the optional SQLite article catalog.
type CatalogConfig struct {
	// Enabled turns on syncing the index into the catalog after a run.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (e.g. "data/articles.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig holds settings for operational logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Development disables log sampling.
	Development bool `json:"development" yaml:"development" mapstructure:"development"`
}

// PressConfig groups every setting of a conversion run. Paths are relative
// to the working directory unless absolute.
type PressConfig struct {
	// InputDir holds the source .docx files.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// Pattern is the glob matched inside InputDir (default "*.docx").
	Pattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`

	// HTMLDir receives one <slug>.html page per document.
	HTMLDir string `json:"html_dir" yaml:"html_dir" mapstructure:"html_dir"`

	// ImageDir receives one <slug>/ subdirectory of extracted images per document.
	ImageDir string `json:"image_dir" yaml:"image_dir" mapstructure:"image_dir"`

	// IndexPath is the article index file, overwritten on every run.
	IndexPath string `json:"index_path" yaml:"index_path" mapstructure:"index_path"`

	// IndexFormat selects json or yaml for the index file.
	IndexFormat IndexFormat `json:"index_format" yaml:"index_format" mapstructure:"index_format"`

	// URLPrefix is prepended to "<slug>.html" to form each article URL.
	URLPrefix string `json:"url_prefix" yaml:"url_prefix" mapstructure:"url_prefix"`

	// Lang is the lang attribute of generated pages.
	Lang string `json:"lang" yaml:"lang" mapstructure:"lang"`

	// ArticleClass is the class attribute of the article container.
	ArticleClass string `json:"article_class" yaml:"article_class" mapstructure:"article_class"`

	// ExcerptLength is the excerpt budget in characters (default 180).
	ExcerptLength int `json:"excerpt_length" yaml:"excerpt_length" mapstructure:"excerpt_length"`

	// StyleMap lists style-map rules, e.g. "p[style-name='Title'] => h1:fresh".
	StyleMap []string `json:"style_map" yaml:"style_map" mapstructure:"style_map"`

	// Backend selects the converter: native or pandoc.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// CoverFromFirstImage fills Article.Cover with the first extracted image.
	CoverFromFirstImage bool `json:"cover_from_first_image" yaml:"cover_from_first_image" mapstructure:"cover_from_first_image"`

	// ContinueOnError skips failing documents instead of aborting the run.
	ContinueOnError bool `json:"continue_on_error" yaml:"continue_on_error" mapstructure:"continue_on_error"`

	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultPressConfig returns the settings the tool uses when nothing is
// configured.
func DefaultPressConfig() PressConfig {
	return PressConfig{
		InputDir:      "content/raw",
		Pattern:       "*.docx",
		HTMLDir:       "content/articles",
		ImageDir:      "assets/articles",
		IndexPath:     "data/articles.json",
		IndexFormat:   IndexJSON,
		URLPrefix:     "/content/articles",
		Lang:          "id",
		ArticleClass:  "prose max-w-3xl mx-auto px-4 py-8",
		ExcerptLength: 180,
		StyleMap: []string{
			"p[style-name='Title'] => h1:fresh",
			"p[style-name='Subtitle'] => h2:fresh",
		},
		Backend: BackendNative,
		Catalog: CatalogConfig{
			Path: "data/articles.db",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate reports configuration errors before any document is processed.
func (c PressConfig) Validate() error {
	var errs []error
	if c.InputDir == "" {
		errs = append(errs, errors.New("input_dir is required"))
	}
	if c.HTMLDir == "" {
		errs = append(errs, errors.New("html_dir is required"))
	}
	if c.ImageDir == "" {
		errs = append(errs, errors.New("image_dir is required"))
	}
	if c.IndexPath == "" {
		errs = append(errs, errors.New("index_path is required"))
	}
	if c.ExcerptLength <= 0 {
		errs = append(errs, fmt.Errorf("excerpt_length must be positive, got %d", c.ExcerptLength))
	}
	switch c.IndexFormat {
	case IndexJSON, IndexYAML:
	default:
		errs = append(errs, fmt.Errorf("unsupported index_format %q: use json or yaml", c.IndexFormat))
	}
	switch c.Backend {
	case BackendNative, BackendPandoc:
	default:
		errs = append(errs, fmt.Errorf("unsupported backend %q: use native or pandoc", c.Backend))
	}
	if c.Catalog.Enabled && c.Catalog.Path == "" {
		errs = append(errs, errors.New("catalog.path is required when the catalog is enabled"))
	}
	return errors.Join(errs...)
}
