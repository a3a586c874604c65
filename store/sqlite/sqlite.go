/*
Package sqlite provides a SQLite-backed implementation of the engine's
storage collaborators.

PURPOSE:
  Implements engine.ClaimSource (twice, once per claim store shape) and
  engine.SubjectDirectory using SQLite. In production the same patterns
  apply to any SQL store - only dialect differences.

KEY TABLES:
  gis_claims:          Claims from the GIS feed; subject carried on row
  other_claims:        Non-GIS claims; subject linked through a party table
  other_claim_parties: Claim-to-subject linkage (the extra join)
  policy_drivers:      Driver-to-canonical-subject directory

FIXED EXCLUSIONS (baked into the adapters, not exposed as criteria):
  Both sources:  application_flag must be overridden or automatic
  gis_claims:    related_claim_id IS NULL (administratively linked claims
                 are excluded)
  other_claims:  deleted = 0, amount >= 0

PREDICATE EVALUATION:
  SQL narrows each scan to the query scope (policy version) plus the
  fixed exclusions; the composed predicate then runs in Go against the
  projected RecordView. One predicate, two row shapes, one adapter each.

WAL MODE:
  SQLite is opened with WAL for better read concurrency; the engine is
  read-only per query, so readers never block each other.

USAGE:
  st, err := sqlite.New("./claims.db", engine.DefaultConfig())
  eng := engine.New(st.Subjects(), cfg, st.GISClaims(), st.OtherClaims())

SEE ALSO:
  - engine/aggregate.go: Source contract
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/claims-engine/engine"
)

// Store implements the engine's storage collaborators over one database.
type Store struct {
	db  *sql.DB
	cfg engine.Config
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string, cfg engine.Config) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, cfg: cfg}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- GIS-sourced claims (subject carried directly on the row)
	CREATE TABLE IF NOT EXISTS gis_claims (
		id TEXT PRIMARY KEY,
		policy_id TEXT NOT NULL,
		policy_version_date TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		location_id TEXT,
		classification_code INTEGER NOT NULL,
		claim_type_code TEXT,
		plan_code TEXT,
		loss_date TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		application_flag TEXT NOT NULL,
		related_claim_id TEXT
	);

	-- Hot path: one policy version per query
	CREATE INDEX IF NOT EXISTS idx_gis_claims_policy
		ON gis_claims(policy_id, policy_version_date, loss_date);

	-- Non-GIS "other" claims (subject linked through parties)
	CREATE TABLE IF NOT EXISTS other_claims (
		id TEXT PRIMARY KEY,
		policy_id TEXT NOT NULL,
		policy_version_date TEXT NOT NULL,
		location_id TEXT,
		classification_code INTEGER NOT NULL,
		claim_type_code TEXT,
		plan_code TEXT,
		loss_date TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		application_flag TEXT NOT NULL,
		deleted INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_other_claims_policy
		ON other_claims(policy_id, policy_version_date, loss_date);

	CREATE TABLE IF NOT EXISTS other_claim_parties (
		claim_id TEXT NOT NULL REFERENCES other_claims(id),
		subject_id TEXT NOT NULL,
		PRIMARY KEY (claim_id, subject_id)
	);

	-- Driver directory: caller-facing driver id -> canonical subject id
	CREATE TABLE IF NOT EXISTS policy_drivers (
		policy_id TEXT NOT NULL,
		policy_version_date TEXT NOT NULL,
		driver_id TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		PRIMARY KEY (policy_id, policy_version_date, driver_id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SOURCE ACCESSORS
// =============================================================================

func (s *Store) GISClaims() engine.ClaimSource     { return &gisSource{store: s} }
func (s *Store) OtherClaims() engine.ClaimSource   { return &otherSource{store: s} }
func (s *Store) Subjects() engine.SubjectDirectory { return &subjectDirectory{store: s} }

// =============================================================================
// GIS SOURCE
// =============================================================================

type gisSource struct {
	store *Store
}

func (g *gisSource) Name() string { return "gis" }

func (g *gisSource) CountMatching(ctx context.Context, scope engine.Scope, match engine.RecordPredicate) (int, error) {
	const q = `
		SELECT subject_id, location_id, classification_code, claim_type_code, plan_code, loss_date
		FROM gis_claims
		WHERE policy_id = ? AND policy_version_date = ?
		  AND application_flag IN (?, ?)
		  AND related_claim_id IS NULL`

	rows, err := g.store.db.QueryContext(ctx, q,
		string(scope.PolicyID), scope.PolicyVersionDate.String(),
		g.store.cfg.ApplicationOverridden, g.store.cfg.ApplicationAutomatic)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var (
			subjectID string
			location  sql.NullString
			classCode int
			claimType sql.NullString
			planCode  sql.NullString
			lossDate  string
		)
		if err := rows.Scan(&subjectID, &location, &classCode, &claimType, &planCode, &lossDate); err != nil {
			return 0, err
		}
		rec, err := buildView(scope, subjectID, location, classCode, claimType, planCode, lossDate)
		if err != nil {
			return 0, err
		}
		if match(rec) {
			count++
		}
	}
	return count, rows.Err()
}

// =============================================================================
// OTHER-CLAIMS SOURCE
// =============================================================================

type otherSource struct {
	store *Store
}

func (o *otherSource) Name() string { return "other" }

func (o *otherSource) CountMatching(ctx context.Context, scope engine.Scope, match engine.RecordPredicate) (int, error) {
	// LEFT JOIN: a claim with no linked party still counts for
	// driver-less queries; its empty subject just never matches a
	// driver-scoped predicate.
	const q = `
		SELECT p.subject_id, c.location_id, c.classification_code, c.claim_type_code, c.plan_code, c.loss_date, c.amount
		FROM other_claims c
		LEFT JOIN other_claim_parties p ON p.claim_id = c.id
		WHERE c.policy_id = ? AND c.policy_version_date = ?
		  AND c.application_flag IN (?, ?)
		  AND c.deleted = 0`

	rows, err := o.store.db.QueryContext(ctx, q,
		string(scope.PolicyID), scope.PolicyVersionDate.String(),
		o.store.cfg.ApplicationOverridden, o.store.cfg.ApplicationAutomatic)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var (
			subjectID sql.NullString
			location  sql.NullString
			classCode int
			claimType sql.NullString
			planCode  sql.NullString
			lossDate  string
			amountStr string
		)
		if err := rows.Scan(&subjectID, &location, &classCode, &claimType, &planCode, &lossDate, &amountStr); err != nil {
			return 0, err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return 0, fmt.Errorf("bad amount %q: %w", amountStr, err)
		}
		if amount.IsNegative() {
			continue
		}
		rec, err := buildView(scope, subjectID.String, location, classCode, claimType, planCode, lossDate)
		if err != nil {
			return 0, err
		}
		if match(rec) {
			count++
		}
	}
	return count, rows.Err()
}

func buildView(scope engine.Scope, subjectID string, location sql.NullString, classCode int, claimType, planCode sql.NullString, lossDate string) (engine.RecordView, error) {
	loss, err := engine.ParseDate(lossDate)
	if err != nil {
		return engine.RecordView{}, fmt.Errorf("bad loss_date %q: %w", lossDate, err)
	}
	return engine.RecordView{
		PolicyID:           scope.PolicyID,
		PolicyVersionDate:  scope.PolicyVersionDate,
		SubjectID:          engine.SubjectID(subjectID),
		LocationID:         engine.LocationID(location.String),
		ClassificationCode: classCode,
		ClaimTypeCode:      engine.ClaimTypeCode(claimType.String),
		PlanCode:           engine.PlanCode(planCode.String),
		LossDate:           loss,
	}, nil
}

// =============================================================================
// SUBJECT DIRECTORY
// =============================================================================

type subjectDirectory struct {
	store *Store
}

func (d *subjectDirectory) Lookup(ctx context.Context, key engine.SubjectKey) (engine.SubjectID, bool, error) {
	const q = `
		SELECT subject_id FROM policy_drivers
		WHERE policy_id = ? AND policy_version_date = ? AND driver_id = ?`

	var id string
	err := d.store.db.QueryRowContext(ctx, q,
		string(key.PolicyID), key.PolicyVersionDate.String(), string(key.DriverID)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return engine.SubjectID(id), true, nil
}

// =============================================================================
// WRITE HELPERS - Seeding for tests, demos, and feed loaders
// =============================================================================
// The engine itself never writes; these exist for the surrounding
// application to load claim data.

// GISClaimRow is one row destined for gis_claims.
type GISClaimRow struct {
	ID             string
	Record         engine.RecordView
	Amount         decimal.Decimal
	Application    string
	RelatedClaimID string
}

func (s *Store) InsertGISClaim(ctx context.Context, row GISClaimRow) error {
	related := sql.NullString{String: row.RelatedClaimID, Valid: row.RelatedClaimID != ""}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gis_claims
			(id, policy_id, policy_version_date, subject_id, location_id,
			 classification_code, claim_type_code, plan_code, loss_date,
			 amount, application_flag, related_claim_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID,
		string(row.Record.PolicyID), row.Record.PolicyVersionDate.String(),
		string(row.Record.SubjectID), string(row.Record.LocationID),
		row.Record.ClassificationCode, string(row.Record.ClaimTypeCode),
		string(row.Record.PlanCode), row.Record.LossDate.String(),
		row.Amount.String(), row.Application, related)
	return err
}

// OtherClaimRow is one row destined for other_claims, plus its party
// linkage (empty Subject = no linked party).
type OtherClaimRow struct {
	ID          string
	Record      engine.RecordView // SubjectID ignored; linkage goes through Subject
	Subject     engine.SubjectID
	Amount      decimal.Decimal
	Application string
	Deleted     bool
}

func (s *Store) InsertOtherClaim(ctx context.Context, row OtherClaimRow) error {
	deleted := 0
	if row.Deleted {
		deleted = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO other_claims
			(id, policy_id, policy_version_date, location_id,
			 classification_code, claim_type_code, plan_code, loss_date,
			 amount, application_flag, deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID,
		string(row.Record.PolicyID), row.Record.PolicyVersionDate.String(),
		string(row.Record.LocationID), row.Record.ClassificationCode,
		string(row.Record.ClaimTypeCode), string(row.Record.PlanCode),
		row.Record.LossDate.String(), row.Amount.String(),
		row.Application, deleted)
	if err != nil {
		return err
	}
	if row.Subject != "" {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO other_claim_parties (claim_id, subject_id) VALUES (?, ?)`,
			row.ID, string(row.Subject))
	}
	return err
}

// PutDriver registers a driver-to-subject mapping in the directory.
func (s *Store) PutDriver(ctx context.Context, key engine.SubjectKey, subject engine.SubjectID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO policy_drivers
			(policy_id, policy_version_date, driver_id, subject_id)
		VALUES (?, ?, ?, ?)`,
		string(key.PolicyID), key.PolicyVersionDate.String(),
		string(key.DriverID), string(subject))
	return err
}
