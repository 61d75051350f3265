package session

import (
	"context"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/title-scorer/internal/embedding"
	"github.com/jonathan/title-scorer/internal/keywords"
	"github.com/jonathan/title-scorer/internal/similarity"
	"github.com/jonathan/title-scorer/internal/types"
)

// DefaultTitleLimit is the meta title length above which a warning is reported.
const DefaultTitleLimit = 60

// State is the session's position in its lifecycle.
type State string

const (
	// StateIdle means no entry is selected
	StateIdle State = "idle"
	// StateEntrySelected means an entry's content embedding is resolved and titles can be evaluated
	StateEntrySelected State = "entry_selected"
)

// ContentSource resolves the content embedding of a catalog entry.
type ContentSource interface {
	GetOrFetch(ctx context.Context, entry types.CatalogEntry) (embedding.Embedding, error)
}

// Selection is returned when an entry is selected.
type Selection struct {
	Entry types.CatalogEntry
	// Baseline scores the entry's existing title; nil when the entry has no title.
	Baseline *types.Evaluation
	// Suggestion is advisory only and never feeds into scoring.
	Suggestion string
}

// Session is a small state machine: Idle -> EntrySelected -> Idle.
// It is not safe for concurrent use.
type Session struct {
	id         uuid.UUID
	content    ContentSource
	provider   embedding.Provider
	suggester  keywords.Suggester
	titleLimit int
	verbose    bool

	state      State
	entry      types.CatalogEntry
	contentEmb embedding.Embedding
	suggestion string
}

// Option configures a Session.
type Option func(*Session)

// WithSuggester attaches an advisory keyword lookup.
func WithSuggester(s keywords.Suggester) Option {
	return func(sess *Session) { sess.suggester = s }
}

// WithTitleLimit overrides DefaultTitleLimit.
func WithTitleLimit(limit int) Option {
	return func(sess *Session) {
		if limit > 0 {
			sess.titleLimit = limit
		}
	}
}

// WithVerbose enables session logging.
func WithVerbose(verbose bool) Option {
	return func(sess *Session) { sess.verbose = verbose }
}

// New creates an Idle session. The provider must be the one that produced the content embeddings.
func New(content ContentSource, provider embedding.Provider, opts ...Option) *Session {
	s := &Session{
		id:         uuid.New(),
		content:    content,
		provider:   provider,
		titleLimit: DefaultTitleLimit,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Entry returns the selected entry and whether one is selected.
func (s *Session) Entry() (types.CatalogEntry, bool) {
	return s.entry, s.state == StateEntrySelected
}

// SelectEntry resolves the entry's content embedding and moves to EntrySelected.
// On failure the session is Idle and the error is returned unchanged.
func (s *Session) SelectEntry(ctx context.Context, entry types.CatalogEntry) (*Selection, error) {
	s.Exit()

	s.logf("selecting %s", entry.URL)
	emb, err := s.content.GetOrFetch(ctx, entry)
	if err != nil {
		s.logf("selection of %s failed: %v", entry.URL, err)
		return nil, err
	}

	s.state = StateEntrySelected
	s.entry = entry
	s.contentEmb = emb
	s.suggestion = s.lookupSuggestion(ctx, entry.URL)

	selection := &Selection{
		Entry:      entry,
		Suggestion: s.suggestion,
	}

	if entry.Title != "" {
		baseline, err := s.EvaluateTitle(ctx, entry.Title)
		if err != nil {
			// The page is usable even if its current title cannot be scored.
			s.logf("baseline for %s failed: %v", entry.URL, err)
		} else {
			selection.Baseline = baseline
		}
	}

	return selection, nil
}

func (s *Session) lookupSuggestion(ctx context.Context, url string) string {
	if s.suggester == nil {
		return keywords.NoResult
	}
	suggestion, err := s.suggester.Suggest(ctx, url)
	if err != nil {
		s.logf("keyword lookup for %s failed: %v", url, err)
		return keywords.NoResult
	}
	return suggestion
}

// EvaluateTitle scores title against the selected entry's content and reports its length separately.
func (s *Session) EvaluateTitle(ctx context.Context, title string) (*types.Evaluation, error) {
	if s.state != StateEntrySelected {
		return nil, ErrNoEntrySelected
	}

	titleEmb, err := s.provider.Embed(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to embed title: %w", err)
	}

	result, err := similarity.Score(s.contentEmb, titleEmb)
	if err != nil {
		return nil, fmt.Errorf("failed to score title: %w", err)
	}

	s.logf("%q scored %.4f (%s)", title, result.Score, result.Category)

	return &types.Evaluation{
		Title:         title,
		Result:        result,
		LengthWarning: CheckLength(title, s.titleLimit),
		Suggestion:    s.suggestion,
	}, nil
}

// Exit returns the session to Idle from any state.
func (s *Session) Exit() {
	s.state = StateIdle
	s.entry = types.CatalogEntry{}
	s.contentEmb = nil
	s.suggestion = keywords.NoResult
}

// CheckLength returns a warning when title has more than limit characters, otherwise nil.
func CheckLength(title string, limit int) *types.LengthWarning {
	n := utf8.RuneCountInString(title)
	if n <= limit {
		return nil
	}
	return &types.LengthWarning{
		Length: n,
		Limit:  limit,
		Excess: n - limit,
	}
}

func (s *Session) logf(format string, args ...any) {
	if s.verbose {
		log.Printf("[SESSION %s] "+format, append([]any{s.id.String()[:8]}, args...)...)
	}
}
