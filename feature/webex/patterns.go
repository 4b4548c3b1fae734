package webex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"local-tp/core/pattern"
	"local-tp/core/reconcile"
)

const (
	patternsPath = "/v1/telephony/config/callRouting/translationPatterns"

	// listPageSize is the page size used when walking the translation
	// pattern list.
	listPageSize = 500
)

// translationPattern is the wire form of a location-level translation
// pattern.
type translationPattern struct {
	ID                 string `json:"id,omitempty"`
	Name               string `json:"name"`
	MatchingPattern    string `json:"matchingPattern"`
	ReplacementPattern string `json:"replacementPattern"`
	Level              string `json:"level,omitempty"`
	LocationID         string `json:"locationId,omitempty"`
}

// PatternStore binds a client to one location. It lists the rules this
// tool manages there and implements reconcile.Store for the apply phase.
type PatternStore struct {
	client     *Client
	locationID string
}

// PatternStore returns a store scoped to the given location.
func (c *Client) PatternStore(locationID string) *PatternStore {
	return &PatternStore{client: c, locationID: locationID}
}

// ListManagedRules fetches every translation pattern of the location and
// keeps only those named under this tool's convention. Filtering happens
// here, at the fetch boundary: foreign patterns never reach the
// reconciliation engine and are never touched. The list endpoint is
// paginated, so pages are walked until exhaustion.
func (s *PatternStore) ListManagedRules(ctx context.Context) ([]reconcile.ExistingRule, error) {
	var rules []reconcile.ExistingRule

	for start := 0; ; start += listPageSize {
		query := url.Values{}
		query.Set("limitToLocationId", s.locationID)
		query.Set("max", strconv.Itoa(listPageSize))
		query.Set("start", strconv.Itoa(start))

		var out struct {
			TranslationPatterns []translationPattern `json:"translationPatterns"`
		}
		if err := s.client.do(ctx, http.MethodGet, patternsPath, query, nil, &out); err != nil {
			return nil, fmt.Errorf("failed to list translation patterns: %w", err)
		}

		for _, tp := range out.TranslationPatterns {
			name, ok := pattern.ParseRuleName(tp.Name)
			if !ok {
				continue
			}
			rules = append(rules, reconcile.ExistingRule{
				ID: tp.ID,
				Rule: pattern.Rule{
					Name:               name,
					MatchingPattern:    tp.MatchingPattern,
					ReplacementPattern: tp.ReplacementPattern,
				},
			})
		}

		if len(out.TranslationPatterns) < listPageSize {
			return rules, nil
		}
	}
}

// CreateRule provisions a new location-level translation pattern.
func (s *PatternStore) CreateRule(ctx context.Context, rule pattern.Rule) error {
	body := translationPattern{
		Name:               string(rule.Name),
		MatchingPattern:    rule.MatchingPattern,
		ReplacementPattern: rule.ReplacementPattern,
		Level:              "Location",
		LocationID:         s.locationID,
	}
	if err := s.client.do(ctx, http.MethodPost, patternsPath, nil, body, nil); err != nil {
		return fmt.Errorf("failed to create %s: %w", rule.Name, err)
	}
	return nil
}

// UpdateRule rewrites the patterns of an existing translation pattern.
func (s *PatternStore) UpdateRule(ctx context.Context, id string, rule pattern.Rule) error {
	body := translationPattern{
		Name:               string(rule.Name),
		MatchingPattern:    rule.MatchingPattern,
		ReplacementPattern: rule.ReplacementPattern,
	}
	if err := s.client.do(ctx, http.MethodPut, patternsPath+"/"+id, nil, body, nil); err != nil {
		return fmt.Errorf("failed to update %s: %w", rule.Name, err)
	}
	return nil
}

// DeleteRule removes a translation pattern.
func (s *PatternStore) DeleteRule(ctx context.Context, id string) error {
	if err := s.client.do(ctx, http.MethodDelete, patternsPath+"/"+id, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete translation pattern %s: %w", id, err)
	}
	return nil
}
