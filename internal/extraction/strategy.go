package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Strategy turns raw page HTML into heading and body text.
// Implementations return ErrHeadingNotFound or ErrBodyNotFound when a region is absent.
type Strategy interface {
	Extract(html string) (heading string, body string, err error)
}

// StrategyKind names a Strategy implementation in configuration.
type StrategyKind string

const (
	// KindSelector selects heading and body with CSS selectors
	KindSelector StrategyKind = "selector"
	// KindRegex captures heading and body with regular expressions over the raw HTML
	KindRegex StrategyKind = "regex"
)

// Default selectors for typical blog layouts.
const (
	DefaultHeadingSelector = "h1"
	DefaultBodySelector    = ".article-content, article, main"
)

// Default patterns match the blog layout the regex approach was tuned for.
const (
	DefaultHeadingPattern = `<h1 class="mb-4 mt-0 lg:pr-4 ">(.*?)</h1>`
	DefaultBodyPattern    = `(?s)<div class="pb-14 relative article-content">(.*?)</div>`
)

// Config selects and parameterizes an extraction strategy.
type Config struct {
	Kind            StrategyKind `json:"kind,omitempty"`
	HeadingSelector string       `json:"heading_selector,omitempty"`
	BodySelector    string       `json:"body_selector,omitempty"`
	HeadingPattern  string       `json:"heading_pattern,omitempty"`
	BodyPattern     string       `json:"body_pattern,omitempty"`
}

// DefaultConfig returns the selector strategy with default selectors.
func DefaultConfig() Config {
	return Config{
		Kind:            KindSelector,
		HeadingSelector: DefaultHeadingSelector,
		BodySelector:    DefaultBodySelector,
	}
}

// NewStrategy builds the Strategy named by cfg.Kind. Empty fields fall back to defaults.
func NewStrategy(cfg Config) (Strategy, error) {
	switch cfg.Kind {
	case KindSelector, "":
		return NewSelectorStrategy(cfg.HeadingSelector, cfg.BodySelector)
	case KindRegex:
		headingPattern := cfg.HeadingPattern
		if headingPattern == "" {
			headingPattern = DefaultHeadingPattern
		}
		bodyPattern := cfg.BodyPattern
		if bodyPattern == "" {
			bodyPattern = DefaultBodyPattern
		}
		return NewRegexStrategy(headingPattern, bodyPattern)
	default:
		return nil, fmt.Errorf("unknown extraction strategy %q", cfg.Kind)
	}
}

// SelectorStrategy finds the heading and body with CSS selectors.
// A selector group such as ".article-content, article, main" is tried one selector
// at a time in the order written; the first selector that matches wins.
type SelectorStrategy struct {
	HeadingSelector string
	BodySelector    string

	heading []goquery.Matcher
	body    []goquery.Matcher
}

// NewSelectorStrategy compiles the selectors, using defaults for empty ones.
func NewSelectorStrategy(headingSelector, bodySelector string) (*SelectorStrategy, error) {
	if headingSelector == "" {
		headingSelector = DefaultHeadingSelector
	}
	if bodySelector == "" {
		bodySelector = DefaultBodySelector
	}

	heading, err := compileGroup(headingSelector)
	if err != nil {
		return nil, fmt.Errorf("invalid heading selector %q: %w", headingSelector, err)
	}
	body, err := compileGroup(bodySelector)
	if err != nil {
		return nil, fmt.Errorf("invalid body selector %q: %w", bodySelector, err)
	}

	return &SelectorStrategy{
		HeadingSelector: headingSelector,
		BodySelector:    bodySelector,
		heading:         heading,
		body:            body,
	}, nil
}

// DefaultSelectorStrategy returns a SelectorStrategy with the default selectors.
func DefaultSelectorStrategy() *SelectorStrategy {
	s, err := NewSelectorStrategy(DefaultHeadingSelector, DefaultBodySelector)
	if err != nil {
		panic(err)
	}
	return s
}

// compileGroup splits a selector group into one matcher per selector, keeping their order.
func compileGroup(selector string) ([]goquery.Matcher, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, err
	}
	matchers := make([]goquery.Matcher, 0, len(group))
	for _, sel := range group {
		matchers = append(matchers, cascadia.Selector(sel.Match))
	}
	return matchers, nil
}

// firstMatch returns the first node of the earliest matcher that matches anything, and that matcher.
func firstMatch(sel *goquery.Selection, matchers []goquery.Matcher) (*goquery.Selection, goquery.Matcher) {
	for _, m := range matchers {
		if found := sel.FindMatcher(m).First(); found.Length() > 0 {
			return found, m
		}
	}
	return nil, nil
}

// Extract implements Strategy.
func (s *SelectorStrategy) Extract(html string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	heading, headingMatcher := firstMatch(doc.Selection, s.heading)
	if heading == nil {
		return "", "", ErrHeadingNotFound
	}

	body, _ := firstMatch(doc.Selection, s.body)
	if body == nil {
		return "", "", ErrBodyNotFound
	}

	// When the heading sits inside the body it is also the body's first match of headingMatcher.
	if body.Contains(heading.Get(0)) {
		body = body.Clone()
		body.FindMatcher(headingMatcher).First().Remove()
	}

	return selectionText(heading), selectionText(body), nil
}

// RegexStrategy captures the heading and body from raw HTML with one capture group each.
// Captured fragments are stripped of markup.
type RegexStrategy struct {
	heading *regexp.Regexp
	body    *regexp.Regexp
}

// NewRegexStrategy compiles the patterns. Each must contain at least one capture group.
func NewRegexStrategy(headingPattern, bodyPattern string) (*RegexStrategy, error) {
	heading, err := compileCapture(headingPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid heading pattern: %w", err)
	}
	body, err := compileCapture(bodyPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid body pattern: %w", err)
	}
	return &RegexStrategy{heading: heading, body: body}, nil
}

// DefaultRegexStrategy returns a RegexStrategy with the default patterns.
func DefaultRegexStrategy() *RegexStrategy {
	return &RegexStrategy{
		heading: regexp.MustCompile(DefaultHeadingPattern),
		body:    regexp.MustCompile(DefaultBodyPattern),
	}
}

func compileCapture(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("pattern %q has no capture group", pattern)
	}
	return re, nil
}

// Extract implements Strategy.
func (s *RegexStrategy) Extract(html string) (string, string, error) {
	headingMatch := s.heading.FindStringSubmatch(html)
	if headingMatch == nil {
		return "", "", ErrHeadingNotFound
	}
	bodyMatch := s.body.FindStringSubmatch(html)
	if bodyMatch == nil {
		return "", "", ErrBodyNotFound
	}

	heading, err := HTMLToText(headingMatch[1])
	if err != nil {
		return "", "", fmt.Errorf("failed to parse heading HTML: %w", err)
	}
	body, err := HTMLToText(bodyMatch[1])
	if err != nil {
		return "", "", fmt.Errorf("failed to parse body HTML: %w", err)
	}
	return heading, body, nil
}
