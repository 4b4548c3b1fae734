package lookup

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"local-tp/core/pattern"
)

// Config holds settings for the local calling guide client.
type Config struct {
	// BaseURL is the root of the localcallingguide.com API.
	BaseURL string `mapstructure:"base_url" default:"https://www.localcallingguide.com"`
}

// LookupError reports that the guide rejected an NPA/NXX pair. It is an
// input defect, not a transient condition.
type LookupError struct {
	NPA     string
	NXX     string
	Message string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup for npa=%s nxx=%s failed: %s", e.NPA, e.NXX, e.Message)
}

// Client queries the xmllocalprefix endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a lookup client.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// lcaResponse mirrors the xmllocalprefix document shape. The root element
// either carries an error or an lca-data element listing local prefixes.
type lcaResponse struct {
	Error    string      `xml:"error"`
	Prefixes []lcaPrefix `xml:"lca-data>prefix"`
}

type lcaPrefix struct {
	NPA string `xml:"npa"`
	NXX string `xml:"nxx"`
}

// LocalPrefixes returns the 6-digit NPA+NXX blocks local to the given
// NPA/NXX. An error element in the response becomes a *LookupError.
func (c *Client) LocalPrefixes(ctx context.Context, npa, nxx string) ([]pattern.Prefix, error) {
	query := url.Values{}
	query.Set("npa", npa)
	query.Set("nxx", nxx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/xmllocalprefix.php?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query local calling guide: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("local calling guide returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup response: %w", err)
	}

	var parsed lcaResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse lookup response: %w", err)
	}

	if parsed.Error != "" {
		return nil, &LookupError{NPA: npa, NXX: nxx, Message: parsed.Error}
	}

	prefixes := make([]pattern.Prefix, 0, len(parsed.Prefixes))
	for _, p := range parsed.Prefixes {
		prefix := pattern.Prefix(p.NPA + p.NXX)
		if err := prefix.Validate(); err != nil {
			return nil, fmt.Errorf("local calling guide returned malformed prefix: %w", err)
		}
		prefixes = append(prefixes, prefix)
	}

	return prefixes, nil
}
