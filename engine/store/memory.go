// Package store provides in-memory ClaimSource and SubjectDirectory
// implementations (for testing/dev).
package store

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/claims-engine/engine"
)

// =============================================================================
// GIS SOURCE - In-memory variant of the GIS claim store
// =============================================================================

// GISClaim is one record as the GIS store shapes it: the subject is
// carried directly on the row, and administrative linkage to another
// claim is a plain reference field.
type GISClaim struct {
	Record         engine.RecordView
	Amount         decimal.Decimal
	Application    string // classification-application flag
	RelatedClaimID string // non-empty = administratively linked, excluded
}

type MemoryGIS struct {
	mu     sync.RWMutex
	cfg    engine.Config
	claims []GISClaim
}

func NewMemoryGIS(cfg engine.Config) *MemoryGIS {
	return &MemoryGIS{cfg: cfg}
}

func (m *MemoryGIS) Add(claims ...GISClaim) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claims = append(m.claims, claims...)
}

func (m *MemoryGIS) Name() string { return "gis" }

// CountMatching applies the GIS fixed exclusions, then the composed
// predicate. The scope is ignored: the predicate re-checks its fields,
// and a full scan is fine in memory.
func (m *MemoryGIS) CountMatching(_ context.Context, _ engine.Scope, match engine.RecordPredicate) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, c := range m.claims {
		if c.RelatedClaimID != "" {
			continue
		}
		if !m.cfg.CountedApplication(c.Application) {
			continue
		}
		if match(c.Record) {
			count++
		}
	}
	return count, nil
}

// =============================================================================
// OTHER-CLAIMS SOURCE - In-memory variant of the non-GIS claim store
// =============================================================================

// OtherClaim is one record as the non-GIS store shapes it: no subject on
// the row (linkage goes through a party table), a logical-delete marker,
// and a signed amount.
type OtherClaim struct {
	ID          string
	Record      engine.RecordView // SubjectID left empty; filled via party linkage
	Amount      decimal.Decimal
	Application string
	Deleted     bool
}

type MemoryOther struct {
	mu      sync.RWMutex
	cfg     engine.Config
	claims  []OtherClaim
	parties map[string]engine.SubjectID // claim ID -> linked subject
}

func NewMemoryOther(cfg engine.Config) *MemoryOther {
	return &MemoryOther{cfg: cfg, parties: make(map[string]engine.SubjectID)}
}

// Add stores a claim and its party linkage. The empty subject means the
// claim has no linked party; driver-scoped queries will never match it.
func (m *MemoryOther) Add(claim OtherClaim, subject engine.SubjectID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claims = append(m.claims, claim)
	if subject != "" {
		m.parties[claim.ID] = subject
	}
}

func (m *MemoryOther) Name() string { return "other" }

// CountMatching applies the non-GIS fixed exclusions (logical deletion,
// negative amount, application flag), resolves the subject through the
// party linkage, then applies the composed predicate.
func (m *MemoryOther) CountMatching(_ context.Context, _ engine.Scope, match engine.RecordPredicate) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, c := range m.claims {
		if c.Deleted {
			continue
		}
		if c.Amount.IsNegative() {
			continue
		}
		if !m.cfg.CountedApplication(c.Application) {
			continue
		}
		rec := c.Record
		rec.SubjectID = m.parties[c.ID]
		if match(rec) {
			count++
		}
	}
	return count, nil
}

// =============================================================================
// SUBJECT DIRECTORY - In-memory driver-to-subject lookup
// =============================================================================

type MemoryDirectory struct {
	mu      sync.RWMutex
	entries map[engine.SubjectKey]engine.SubjectID
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{entries: make(map[engine.SubjectKey]engine.SubjectID)}
}

func (d *MemoryDirectory) Put(key engine.SubjectKey, id engine.SubjectID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[key] = id
}

func (d *MemoryDirectory) Lookup(_ context.Context, key engine.SubjectKey) (engine.SubjectID, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.entries[key]
	return id, ok, nil
}
