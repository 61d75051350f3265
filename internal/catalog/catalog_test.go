package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/title-scorer/internal/types"
)

const sampleCSV = `Address,Title,Status Code
https://example.com/a,Widget Guide,200
https://example.com/b,"Install, Configure, Repeat",200

https://example.com/c,,200
`

func TestLoadCSV(t *testing.T) {
	entries, err := LoadCSV(strings.NewReader(sampleCSV), "sample.csv")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, types.CatalogEntry{URL: "https://example.com/a", Title: "Widget Guide"}, entries[0])
	assert.Equal(t, "Install, Configure, Repeat", entries[1].Title)
	assert.Equal(t, "", entries[2].Title)
}

func TestLoadCSV_ColumnOrderAndBOM(t *testing.T) {
	data := "\ufeffTitle,Address\nFirst,https://example.com/1\n"
	entries, err := LoadCSV(strings.NewReader(data), "bom.csv")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.com/1", entries[0].URL)
	assert.Equal(t, "First", entries[0].Title)
}

func TestLoadCSV_MissingColumns(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("URL,Title\nhttps://example.com,x\n"), "bad.csv")
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "'Address' and 'Title'")
}

func TestLoadCSV_Empty(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""), "empty.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog is empty")
}

func TestLoadCSV_InvalidRow(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("Address,Title\nhttps://example.com/a,ok\n/relative,bad\n"), "rows.csv")
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 2, loadErr.Row)
	assert.Contains(t, err.Error(), "rows.csv row 2")
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`[{"Address":"https://example.com/a","Title":"Widget Guide"},{"Address":" https://example.com/b "}]`)
	entries, err := LoadJSON(data, "catalog.json")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "https://example.com/b", entries[1].URL)
	assert.Equal(t, "", entries[1].Title)
}

func TestLoadJSON_SchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not an array", data: `{"Address":"https://example.com"}`},
		{name: "missing address", data: `[{"Title":"x"}]`},
		{name: "wrong type", data: `[{"Address":42}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJSON([]byte(tt.data), "bad.json")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestLoadJSON_InvalidURL(t *testing.T) {
	_, err := LoadJSON([]byte(`[{"Address":"example.com/no-scheme"}]`), "bad.json")
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 1, loadErr.Row)
}

func TestLoadJSON_Malformed(t *testing.T) {
	_, err := LoadJSON([]byte(`[{`), "broken.json")
	require.Error(t, err)
}

func TestLoad_LocalFiles(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0644))
	entries, err := Load(context.Background(), csvPath, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	jsonPath := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"Address":"https://example.com/a","Title":"t"}]`), 0644))
	entries, err = Load(context.Background(), jsonPath, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	xlsxPath := filepath.Join(dir, "catalog.xlsx")
	require.NoError(t, os.WriteFile(xlsxPath, []byte("binary"), 0644))
	_, err = Load(context.Background(), xlsxPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported catalog format")

	_, err = Load(context.Background(), filepath.Join(dir, "missing.csv"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}

func TestLoad_Remote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	entries, err := Load(context.Background(), server.URL+"/catalog.csv", nil)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestLoad_RemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := Load(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download catalog")
}

func TestSheetExportURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			in:   "https://docs.google.com/spreadsheets/d/1j9fsTrFv3rgHj9aJgUe1LCZn/edit?usp=sharing",
			want: "https://docs.google.com/spreadsheets/d/1j9fsTrFv3rgHj9aJgUe1LCZn/export?format=csv",
		},
		{
			in:   "https://docs.google.com/spreadsheets/d/abc/edit?gid=42#gid=42",
			want: "https://docs.google.com/spreadsheets/d/abc/export?format=csv&gid=42",
		},
		{in: "https://example.com/catalog.csv", want: "https://example.com/catalog.csv"},
		{in: "https://docs.google.com/document/d/abc/edit", want: "https://docs.google.com/document/d/abc/edit"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SheetExportURL(tt.in))
	}
}
