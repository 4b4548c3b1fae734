package webex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"local-tp/core/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL}, "test-token", zap.NewNop()), server
}

func TestResolveLocation_ExactMatch(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/locations", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "Kansas City", r.URL.Query().Get("name"))

		// Webex name filtering is a substring match; the client must pick
		// the exact one.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []Location{
				{ID: "loc-1", Name: "Kansas City North"},
				{ID: "loc-2", Name: "Kansas City"},
			},
		})
	}))

	loc, err := client.ResolveLocation(context.Background(), "Kansas City")
	require.NoError(t, err)
	assert.Equal(t, "loc-2", loc.ID)
}

func TestResolveLocation_NotFound(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []Location{}})
	}))

	_, err := client.ResolveLocation(context.Background(), "Nowhere")

	var notFound *LocationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Nowhere", notFound.Name)
}

func TestListManagedRules_FiltersForeignNames(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, patternsPath, r.URL.Path)
		assert.Equal(t, "loc-1", r.URL.Query().Get("limitToLocationId"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"translationPatterns": []translationPattern{
				{ID: "id-1", Name: "TP_81622", MatchingPattern: "+181622(XXXXX)", ReplacementPattern: "9081622$1"},
				{ID: "id-2", Name: "Customer emergency override"},
				{ID: "id-3", Name: "TP_8162"},
				{ID: "id-4", Name: "TP_91355", MatchingPattern: "+191355(XXXXX)", ReplacementPattern: "9091355$1"},
			},
		})
	}))

	rules, err := client.PatternStore("loc-1").ListManagedRules(context.Background())
	require.NoError(t, err)

	require.Len(t, rules, 2)
	assert.Equal(t, pattern.RuleName("TP_81622"), rules[0].Rule.Name)
	assert.Equal(t, "id-1", rules[0].ID)
	assert.Equal(t, pattern.RuleName("TP_91355"), rules[1].Rule.Name)
}

func TestListManagedRules_WalksPages(t *testing.T) {
	var starts []string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := r.URL.Query().Get("start")
		starts = append(starts, start)

		patterns := make([]translationPattern, 0, listPageSize)
		if start == "0" {
			for i := 0; i < listPageSize; i++ {
				patterns = append(patterns, translationPattern{
					ID:   fmt.Sprintf("id-%d", i),
					Name: fmt.Sprintf("TP_%05d", i),
				})
			}
		}
		// Second page comes back empty, ending the walk.
		_ = json.NewEncoder(w).Encode(map[string]any{"translationPatterns": patterns})
	}))

	rules, err := client.PatternStore("loc-1").ListManagedRules(context.Background())
	require.NoError(t, err)
	assert.Len(t, rules, listPageSize)
	assert.Equal(t, []string{"0", "500"}, starts)
}

func TestPatternStore_CreateUpdateDelete(t *testing.T) {
	type call struct {
		method string
		path   string
		body   translationPattern
	}
	var calls []call

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&c.body)
		}
		calls = append(calls, c)
		w.WriteHeader(http.StatusNoContent)
	}))

	store := client.PatternStore("loc-1")
	rule := pattern.Rule{
		Name:               "TP_81622",
		MatchingPattern:    "+181622(XXXXX)",
		ReplacementPattern: "9081622$1",
	}
	ctx := context.Background()

	require.NoError(t, store.CreateRule(ctx, rule))
	require.NoError(t, store.UpdateRule(ctx, "id-1", rule))
	require.NoError(t, store.DeleteRule(ctx, "id-1"))

	require.Len(t, calls, 3)

	assert.Equal(t, http.MethodPost, calls[0].method)
	assert.Equal(t, patternsPath, calls[0].path)
	assert.Equal(t, "TP_81622", calls[0].body.Name)
	assert.Equal(t, "Location", calls[0].body.Level)
	assert.Equal(t, "loc-1", calls[0].body.LocationID)

	assert.Equal(t, http.MethodPut, calls[1].method)
	assert.Equal(t, patternsPath+"/id-1", calls[1].path)
	assert.Equal(t, "+181622(XXXXX)", calls[1].body.MatchingPattern)

	assert.Equal(t, http.MethodDelete, calls[2].method)
	assert.Equal(t, patternsPath+"/id-1", calls[2].path)
}

func TestClient_APIError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Trackingid", "ROUTER_abc123")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "duplicate name"})
	}))

	err := client.PatternStore("loc-1").CreateRule(context.Background(), pattern.Rule{Name: "TP_81622"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "duplicate name", apiErr.Message)
	assert.Equal(t, "ROUTER_abc123", apiErr.TrackingID)
}
