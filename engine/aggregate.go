/*
aggregate.go - Multi-source claim counting

PURPOSE:
  Evaluates one composed predicate against two structurally different
  claim sources and sums the per-source counts. The engine owns no
  persistent state: everything is constructed per invocation and
  discarded once the count is produced.

SOURCE CONTRACT:
  Each ClaimSource adapts its native row shape onto RecordView and bakes
  in its fixed, non-parameterized exclusions (classification-application
  flags, related-claim linkage, logical deletion, negative amounts).
  A source with no matching rows contributes zero, never an error.

CONCURRENCY:
  The two source counts have no data dependency and run as parallel
  errgroup tasks. Driver resolution is a prerequisite of predicate
  composition and is sequenced before the parallel phase. A failure in
  either source aborts the whole invocation; a partial count is never
  returned, to avoid silently undercounting.

SEE ALSO:
  - engine/store/memory.go: In-memory sources for testing
  - store/sqlite/sqlite.go: Production SQLite sources
*/
package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// =============================================================================
// SOURCE CONTRACT
// =============================================================================

// Scope carries the required criteria fields so a source can narrow its
// scan (e.g. an indexed SQL WHERE) before applying the predicate. The
// composed predicate re-checks both fields, so honoring the scope is an
// optimization, not a correctness requirement.
type Scope struct {
	PolicyID          PolicyID
	PolicyVersionDate Date
}

// ClaimSource is one read-only claim store. Implementations apply their
// fixed exclusions, project each surviving row onto RecordView, and count
// the rows the predicate accepts.
type ClaimSource interface {
	Name() string
	CountMatching(ctx context.Context, scope Scope, match RecordPredicate) (int, error)
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes claim counts across its sources. Stateless per
// invocation; safe for concurrent use.
type Engine struct {
	directory SubjectDirectory
	sources   []ClaimSource
	config    Config
}

// New builds an engine over a subject directory and one source per
// backing store (GIS claims and non-GIS "other" claims in production).
func New(directory SubjectDirectory, config Config, sources ...ClaimSource) *Engine {
	return &Engine{directory: directory, sources: sources, config: config}
}

// CountClaims validates the criteria, resolves the driver filter,
// composes the predicate, and returns the summed match count across all
// sources. Errors: CriteriaError before any collaborator is consulted,
// LookupError if the directory fails, SourceError if any source fails.
func (e *Engine) CountClaims(ctx context.Context, criteria Criteria) (int, error) {
	criteria, err := NewCriteria(criteria)
	if err != nil {
		return 0, err
	}

	subject, err := ResolveSubject(ctx, e.directory, criteria)
	if err != nil {
		return 0, err
	}

	window := ComputeWindow(criteria.AnchorDate, criteria.WindowYears, criteria.Direction)
	classified := NewClassificationPredicate(e.config.ChargeableCode, criteria.AtFault)
	match := Compose(criteria, subject, window, classified)
	scope := Scope{PolicyID: criteria.PolicyID, PolicyVersionDate: criteria.PolicyVersionDate}

	counts := make([]int, len(e.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range e.sources {
		i, src := i, src
		g.Go(func() error {
			n, err := src.CountMatching(gctx, scope, match)
			if err != nil {
				return &SourceError{Source: src.Name(), Err: err}
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}
