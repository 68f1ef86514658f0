// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentState tracks how far a source document got through the workflow.
type DocumentState string

const (
	StatePending    DocumentState = "pending"
	StateConverting DocumentState = "converting"
	StateWritten    DocumentState = "written"
	StateIndexed    DocumentState = "indexed"
	StateFailed     DocumentState = "failed"
)

// Article is the summary record stored in the index for one converted
// document. Records are created once and never updated.
type Article struct {
	// Title is the text of the first top-level heading, or the source
	// filename when the document has none.
	Title string `json:"title" yaml:"title"`

	// Slug is the URL-safe identifier derived from the source filename.
	Slug string `json:"slug" yaml:"slug"`

	// URL is the site path of the rendered page (e.g. "/content/articles/hello-world.html").
	URL string `json:"url" yaml:"url"`

	// Cover is the src of a cover image. It serializes as null when unset.
	Cover *string `json:"cover" yaml:"cover"`

	// Excerpt is the tag-stripped, truncated body text used for listings.
	Excerpt string `json:"excerpt" yaml:"excerpt"`
}
