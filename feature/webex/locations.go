package webex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Location is a Webex Calling location, the scope that owns
// location-level translation patterns.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LocationNotFoundError reports that no location carries the requested
// name. Provisioning cannot proceed without a resolvable location.
type LocationNotFoundError struct {
	Name string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("location %q not found", e.Name)
}

// ResolveLocation resolves a location name to the location object. The
// list endpoint matches names loosely, so the result is filtered to an
// exact match.
func (c *Client) ResolveLocation(ctx context.Context, name string) (Location, error) {
	query := url.Values{}
	query.Set("name", name)

	var out struct {
		Items []Location `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/locations", query, nil, &out); err != nil {
		return Location{}, fmt.Errorf("failed to list locations: %w", err)
	}

	for _, loc := range out.Items {
		if loc.Name == name {
			return loc, nil
		}
	}
	return Location{}, &LocationNotFoundError{Name: name}
}
