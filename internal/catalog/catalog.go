package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/title-scorer/internal/fetch"
	"github.com/jonathan/title-scorer/internal/schemas"
	"github.com/jonathan/title-scorer/internal/types"
)

// Column names the catalog must carry.
const (
	AddressColumn = "Address"
	TitleColumn   = "Title"
)

// Load reads a catalog from a local .csv or .json file, or downloads a CSV export from an http(s) URL.
func Load(ctx context.Context, source string, opts *fetch.Options) ([]types.CatalogEntry, error) {
	if isRemote(source) {
		return loadRemote(ctx, source, opts)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "failed to read catalog file", Cause: err}
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".csv":
		return LoadCSV(strings.NewReader(string(data)), source)
	case ".json":
		return LoadJSON(data, source)
	default:
		return nil, &LoadError{Source: source, Message: fmt.Sprintf("unsupported catalog format %q", filepath.Ext(source))}
	}
}

func isRemote(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func loadRemote(ctx context.Context, source string, opts *fetch.Options) ([]types.CatalogEntry, error) {
	exportURL := SheetExportURL(source)
	result, err := fetch.URL(ctx, exportURL, opts)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "failed to download catalog", Cause: err}
	}
	return LoadCSV(strings.NewReader(result.HTML), source)
}

// SheetExportURL rewrites a Google Sheets link to its CSV export URL. Other URLs are returned unchanged.
func SheetExportURL(source string) string {
	u, err := url.Parse(source)
	if err != nil || u.Host != "docs.google.com" || !strings.HasPrefix(u.Path, "/spreadsheets/d/") {
		return source
	}

	parts := strings.Split(strings.TrimPrefix(u.Path, "/spreadsheets/d/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return source
	}

	export := url.URL{
		Scheme:   "https",
		Host:     u.Host,
		Path:     "/spreadsheets/d/" + parts[0] + "/export",
		RawQuery: "format=csv",
	}
	if gid := u.Query().Get("gid"); gid != "" {
		export.RawQuery += "&gid=" + url.QueryEscape(gid)
	}
	return export.String()
}

// LoadCSV reads a CSV catalog whose header contains Address and Title columns.
// Blank rows are skipped; other columns are ignored.
func LoadCSV(r io.Reader, source string) ([]types.CatalogEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Source: source, Message: "catalog is empty"}
		}
		return nil, &LoadError{Source: source, Message: "failed to read header", Cause: err}
	}

	addressIdx, titleIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case AddressColumn:
			addressIdx = i
		case TitleColumn:
			titleIdx = i
		}
	}
	if addressIdx < 0 || titleIdx < 0 {
		return nil, &LoadError{
			Source:  source,
			Message: fmt.Sprintf("catalog must contain columns named '%s' and '%s'", AddressColumn, TitleColumn),
		}
	}

	var entries []types.CatalogEntry
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, &LoadError{Source: source, Row: row, Message: "malformed row", Cause: err}
		}
		if isBlank(record) {
			continue
		}

		entry := types.CatalogEntry{
			URL:   strings.TrimSpace(field(record, addressIdx)),
			Title: strings.TrimSpace(field(record, titleIdx)),
		}
		if err := entry.Validate(); err != nil {
			return nil, &LoadError{Source: source, Row: row, Message: "invalid entry", Cause: err}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// LoadJSON reads a JSON catalog after validating it against the catalog schema.
func LoadJSON(data []byte, source string) ([]types.CatalogEntry, error) {
	if err := schemas.Validate(schemas.Catalog, data); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &LoadError{Source: source, Message: "schema validation failed", Cause: err}
		}
		return nil, &LoadError{Source: source, Message: "failed to parse catalog JSON", Cause: err}
	}

	var entries []types.CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &LoadError{Source: source, Message: "failed to decode catalog JSON", Cause: err}
	}

	for i := range entries {
		entries[i].URL = strings.TrimSpace(entries[i].URL)
		entries[i].Title = strings.TrimSpace(entries[i].Title)
		if err := entries[i].Validate(); err != nil {
			return nil, &LoadError{Source: source, Row: i + 1, Message: "invalid entry", Cause: err}
		}
	}
	return entries, nil
}

func field(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
