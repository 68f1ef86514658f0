// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "context"

// DiagnosticKind classifies a converter message.
type DiagnosticKind string

const (
	DiagnosticWarning DiagnosticKind = "warning"
	DiagnosticError   DiagnosticKind = "error"
	DiagnosticInfo    DiagnosticKind = "info"
)

// Diagnostic is a non-fatal note emitted while converting a document, such
// as an unmapped paragraph style.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Message string         `json:"message" yaml:"message"`
}

// String formats the diagnostic as "kind: message".
func (d Diagnostic) String() string {
	return string(d.Kind) + ": " + d.Message
}

// ConversionResult is the transient output of converting one document.
type ConversionResult struct {
	// Markup is the generated HTML body fragment.
	Markup string

	// Diagnostics lists converter messages in the order they were raised.
	Diagnostics []Diagnostic
}

// Image is an embedded picture discovered during conversion.
type Image struct {
	// ContentType is the declared MIME type (e.g. "image/png"). Empty when
	// the package does not declare one.
	ContentType string

	// AltText is the picture description, if any.
	AltText string

	// Data holds the raw image bytes.
	Data []byte
}

// ImageSink persists embedded images. Converters call Save once per image,
// in document order, and use the returned src in the generated markup.
type ImageSink interface {
	Save(ctx context.Context, img Image) (string, error)
}

// StyleRule maps a named Word style onto an HTML element.
type StyleRule struct {
	// Element is "p" for paragraph styles or "r" for run (character) styles.
	Element string `json:"element" yaml:"element"`

	// StyleName is the display name of the Word style (e.g. "Title").
	StyleName string `json:"style_name" yaml:"style_name"`

	// Tag is the target HTML element. An empty tag unwraps the content.
	Tag string `json:"tag" yaml:"tag"`

	// Fresh forces a new element even when the previous block used the
	// same rule. Without it, consecutive matches merge into one element.
	Fresh bool `json:"fresh" yaml:"fresh"`
}

// StyleMap is an ordered rule list; the first matching rule wins.
type StyleMap []StyleRule
