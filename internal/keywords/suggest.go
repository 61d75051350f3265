// Package keywords looks up the search query a page already ranks for, as an advisory hint for new titles.
package keywords

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/searchconsole/v1"
)

// NoResult is returned when no usable query exists for a page.
const NoResult = ""

const (
	// DefaultRowLimit is the number of query rows requested per page
	DefaultRowLimit = 200
	// DefaultMinClicks is the click count below which rows are ranked by impressions instead
	DefaultMinClicks = 20
	dateLayout       = "2006-01-02"
)

// Suggester returns a suggested keyword for a page, or NoResult.
type Suggester interface {
	Suggest(ctx context.Context, pageURL string) (string, error)
}

// Options configures a SearchConsoleSuggester.
type Options struct {
	SiteURL         string
	StartDate       string
	ExcludedTerms   []string
	CredentialsFile string
	RowLimit        int64
	MinClicks       float64
	Verbose         bool
}

// SearchConsoleSuggester suggests the top Search Console query for a page.
type SearchConsoleSuggester struct {
	svc       *searchconsole.Service
	siteURL   string
	startDate string
	excluded  []string
	rowLimit  int64
	minClicks float64
	verbose   bool
	now       func() time.Time
}

// NewSearchConsoleSuggester creates a suggester. Extra client options are appended after the credentials.
func NewSearchConsoleSuggester(ctx context.Context, opts Options, clientOpts ...option.ClientOption) (*SearchConsoleSuggester, error) {
	if opts.SiteURL == "" {
		return nil, fmt.Errorf("search console site URL is required")
	}
	if opts.StartDate != "" {
		if _, err := time.Parse(dateLayout, opts.StartDate); err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", opts.StartDate, err)
		}
	}

	all := []option.ClientOption{option.WithScopes(searchconsole.WebmastersReadonlyScope)}
	if opts.CredentialsFile != "" {
		all = append(all, option.WithCredentialsFile(opts.CredentialsFile))
	}
	all = append(all, clientOpts...)

	svc, err := searchconsole.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create searchconsole service: %w", err)
	}

	rowLimit := opts.RowLimit
	if rowLimit <= 0 {
		rowLimit = DefaultRowLimit
	}
	minClicks := opts.MinClicks
	if minClicks <= 0 {
		minClicks = DefaultMinClicks
	}

	return &SearchConsoleSuggester{
		svc:       svc,
		siteURL:   opts.SiteURL,
		startDate: opts.StartDate,
		excluded:  opts.ExcludedTerms,
		rowLimit:  rowLimit,
		minClicks: minClicks,
		verbose:   opts.Verbose,
		now:       time.Now,
	}, nil
}

// Suggest implements Suggester.
func (s *SearchConsoleSuggester) Suggest(ctx context.Context, pageURL string) (string, error) {
	endDate := s.now().Format(dateLayout)
	startDate := s.startDate
	if startDate == "" {
		startDate = s.now().AddDate(0, -16, 0).Format(dateLayout)
	}

	req := &searchconsole.SearchAnalyticsQueryRequest{
		StartDate:  startDate,
		EndDate:    endDate,
		Dimensions: []string{"query"},
		DimensionFilterGroups: []*searchconsole.ApiDimensionFilterGroup{
			{
				Filters: []*searchconsole.ApiDimensionFilter{
					{Dimension: "page", Operator: "equals", Expression: pageURL},
				},
			},
		},
		RowLimit: s.rowLimit,
	}

	resp, err := s.svc.Searchanalytics.Query(s.siteURL, req).Context(ctx).Do()
	if err != nil {
		return NoResult, fmt.Errorf("search analytics query failed: %w", err)
	}

	query := PickTopQuery(resp.Rows, s.excluded, s.minClicks)
	if s.verbose {
		log.Printf("[KEYWORDS] %s: %d rows, top query %q", pageURL, len(resp.Rows), query)
	}
	return query, nil
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// PickTopQuery ranks rows by clicks, or by impressions when the best row has fewer than minClicks,
// and returns the first query free of excluded terms, reduced to ASCII letters, digits and spaces.
func PickTopQuery(rows []*searchconsole.ApiDataRow, excluded []string, minClicks float64) string {
	ranked := make([]*searchconsole.ApiDataRow, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Keys) > 0 {
			ranked = append(ranked, row)
		}
	}
	if len(ranked) == 0 {
		return NoResult
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Clicks > ranked[j].Clicks })
	if ranked[0].Clicks < minClicks {
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Impressions > ranked[j].Impressions })
	}

	for _, row := range ranked {
		query := strings.ToLower(row.Keys[0])
		if containsAny(query, excluded) {
			continue
		}
		cleaned := strings.TrimSpace(nonAlphanumeric.ReplaceAllString(query, ""))
		if cleaned != "" {
			return cleaned
		}
	}
	return NoResult
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(s, term) {
			return true
		}
	}
	return false
}
