package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   CatalogEntry
		wantErr bool
	}{
		{name: "valid https", entry: CatalogEntry{URL: "https://example.com/a", Title: "old title"}},
		{name: "valid without title", entry: CatalogEntry{URL: "http://example.com/blog/post"}},
		{name: "missing url", entry: CatalogEntry{Title: "orphan"}, wantErr: true},
		{name: "relative url", entry: CatalogEntry{URL: "/blog/post", Title: "x"}, wantErr: true},
		{name: "not a url", entry: CatalogEntry{URL: "not a url", Title: "x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewExtractedContent_HeadingFirst(t *testing.T) {
	content := NewExtractedContent("https://example.com/a", "widget guide", "install the widget")

	require.NotNil(t, content)
	assert.Equal(t, "widget guide\ninstall the widget", content.CombinedText)
	assert.Equal(t, "widget guide", content.Heading)
	assert.Equal(t, "install the widget", content.Body)
}

func TestCategory_String(t *testing.T) {
	assert.Equal(t, "more work", CategoryMoreWork.String())
	assert.Equal(t, "good", CategoryGood.String())
	assert.Equal(t, "very good", CategoryVeryGood.String())
	assert.Equal(t, "other", Category("other").String())
}

func TestLengthWarning_String(t *testing.T) {
	w := &LengthWarning{Length: 75, Limit: 60, Excess: 15}
	assert.Equal(t, "title is 75 characters, 15 over the 60 character limit", w.String())
}
