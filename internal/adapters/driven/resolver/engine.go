package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/swordfish/internal/core/domain"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.ResultResolver = (*Engine)(nil)

// DefaultMaxResults caps results when Config.MaxResults is not set.
const DefaultMaxResults = 50

// Config holds resolver settings.
type Config struct {
	// MaxResults caps results per query, excluding the calculator entry.
	MaxResults int

	// ScriptsDir is listed in Scripts mode.
	ScriptsDir string
}

// Engine resolves queries against local data sources.
// Any source may be nil; its mode then returns no results.
type Engine struct {
	cfg     Config
	index   driven.IndexStore
	history driven.HistorySource
	calc    driven.Calculator
	now     func() time.Time
	log     zerolog.Logger
}

// New creates a resolver engine.
func New(cfg Config, index driven.IndexStore, history driven.HistorySource, calc driven.Calculator) *Engine {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	return &Engine{
		cfg:     cfg,
		index:   index,
		history: history,
		calc:    calc,
		now:     time.Now,
		log:     logger.Component("resolver"),
	}
}

// Resolve implements driven.ResultResolver.
func (e *Engine) Resolve(ctx context.Context, q domain.Query) (*domain.QueryResponse, error) {
	start := e.now()
	term := strings.TrimSpace(q.SearchString)

	var (
		results []domain.ResultEntry
		err     error
	)
	switch q.Mode {
	case domain.ModeSearch:
		results, err = e.searchFiles(ctx, term)
	case domain.ModeBrowserHistory:
		results, err = e.searchHistory(ctx, term)
	case domain.ModeScripts:
		results, err = e.searchScripts(term)
	case domain.ModeChat:
		results = []domain.ResultEntry{}
	default:
		return nil, fmt.Errorf("%w: query mode %d", domain.ErrInvalidInput, int(q.Mode))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s query: %w", q.Mode, err)
	}

	if calc, ok := e.calculate(ctx, term); ok {
		results = append([]domain.ResultEntry{calc}, results...)
	}

	e.log.Debug().
		Str("mode", q.Mode.String()).
		Int("results", len(results)).
		Dur("took", e.now().Sub(start)).
		Msg("resolved query")

	return &domain.QueryResponse{Results: results}, nil
}

// calculate returns a calculator entry when term evaluates to something
// other than itself.
func (e *Engine) calculate(ctx context.Context, term string) (domain.ResultEntry, bool) {
	if e.calc == nil || term == "" {
		return domain.ResultEntry{}, false
	}
	value, ok := e.calc.Evaluate(ctx, term)
	if !ok || value == term {
		return domain.ResultEntry{}, false
	}
	return domain.NewCalculatorResult(value, term, term+" = "+value), true
}

func (e *Engine) limit(n int) int {
	if n > e.cfg.MaxResults {
		return e.cfg.MaxResults
	}
	return n
}
