// Package types provides type definitions for structured data used throughout the title-scorer system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// CatalogEntry is one page under evaluation: its address and the meta title it currently ships with.
type CatalogEntry struct {
	URL   string `json:"Address" validate:"required,http_url"`
	Title string `json:"Title"`
}

// Validate validates the CatalogEntry using the validator.
func (e *CatalogEntry) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// ExtractedContent holds the normalized text pulled from one fetch of one page.
type ExtractedContent struct {
	URL          string `json:"url"`
	Heading      string `json:"heading"`
	Body         string `json:"body"`
	CombinedText string `json:"combined_text"`
}

// ContentSeparator joins the heading and the body in CombinedText.
const ContentSeparator = "\n"

// NewExtractedContent builds an ExtractedContent with heading placed before body.
func NewExtractedContent(url, heading, body string) *ExtractedContent {
	return &ExtractedContent{
		URL:          url,
		Heading:      heading,
		Body:         body,
		CombinedText: heading + ContentSeparator + body,
	}
}
