package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/claims-engine/api"
	"github.com/warp/claims-engine/engine"
	"github.com/warp/claims-engine/engine/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestRouter(t *testing.T) (http.Handler, *store.MemoryGIS, *store.MemoryOther, *store.MemoryDirectory) {
	t.Helper()
	cfg := engine.DefaultConfig()
	gis := store.NewMemoryGIS(cfg)
	other := store.NewMemoryOther(cfg)
	directory := store.NewMemoryDirectory()
	eng := engine.New(directory, cfg, gis, other)
	return api.NewRouter(api.NewHandler(eng)), gis, other, directory
}

func seedClaim(gis *store.MemoryGIS, subject engine.SubjectID, loss engine.Date) {
	gis.Add(store.GISClaim{
		Record: engine.RecordView{
			PolicyID:           "pol-1",
			PolicyVersionDate:  engine.NewDate(2024, time.January, 1),
			SubjectID:          subject,
			LocationID:         "loc-1",
			ClassificationCode: 100,
			ClaimTypeCode:      "COLL",
			PlanCode:           "STD",
			LossDate:           loss,
		},
		Amount:      decimal.NewFromInt(1000),
		Application: "O",
	})
}

func postCount(t *testing.T, router http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/claims/count", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

func TestCountClaims_OK(t *testing.T) {
	router, gis, _, _ := newTestRouter(t)
	seedClaim(gis, "subj-1", engine.NewDate(2023, time.June, 15))
	seedClaim(gis, "subj-2", engine.NewDate(2023, time.August, 1))
	seedClaim(gis, "subj-1", engine.NewDate(2019, time.March, 1)) // outside window

	rec := postCount(t, router, api.CountClaimsRequest{
		PolicyID:          "pol-1",
		PolicyVersionDate: "2024-01-01",
		AnchorDate:        "2025-01-01",
		WindowYears:       3,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.CountClaimsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestCountClaims_OptionalFiltersApplied(t *testing.T) {
	router, gis, _, _ := newTestRouter(t)
	seedClaim(gis, "subj-1", engine.NewDate(2023, time.June, 15))

	rec := postCount(t, router, api.CountClaimsRequest{
		PolicyID:          "pol-1",
		PolicyVersionDate: "2024-01-01",
		AnchorDate:        "2025-01-01",
		WindowYears:       3,
		LocationID:        "loc-99",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.CountClaimsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
}

func TestCountClaims_MissingRequiredField_400(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	rec := postCount(t, router, api.CountClaimsRequest{
		PolicyVersionDate: "2024-01-01",
		AnchorDate:        "2025-01-01",
		WindowYears:       3,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "policy_id")
}

func TestCountClaims_BadDate_400(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	rec := postCount(t, router, api.CountClaimsRequest{
		PolicyID:          "pol-1",
		PolicyVersionDate: "2024-01-01",
		AnchorDate:        "01/01/2025",
		WindowYears:       3,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "anchor_date")
}

func TestCountClaims_MalformedBody_400(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/claims/count", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCountClaims_SourceFailure_503(t *testing.T) {
	cfg := engine.DefaultConfig()
	eng := engine.New(store.NewMemoryDirectory(), cfg, brokenSource{})
	router := api.NewRouter(api.NewHandler(eng))

	rec := postCount(t, router, api.CountClaimsRequest{
		PolicyID:          "pol-1",
		PolicyVersionDate: "2024-01-01",
		AnchorDate:        "2025-01-01",
		WindowYears:       3,
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth_OK(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

type brokenSource struct{}

func (brokenSource) Name() string { return "gis" }
func (brokenSource) CountMatching(context.Context, engine.Scope, engine.RecordPredicate) (int, error) {
	return 0, errors.New("connection refused")
}
