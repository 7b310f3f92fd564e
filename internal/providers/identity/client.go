// Package identity queries the identity-graph provider's identify endpoint
// and selects the strongest candidate match.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rented123/tenant-screener/internal/providers"
	"github.com/rented123/tenant-screener/internal/types"
)

const (
	defaultBaseURL = "https://api.peopledatalabs.com/v5/person/identify"
	requestTimeout = 15 * time.Second
)

// Client calls the identity-graph identify API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the identify endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New returns a Client authenticated with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// identifyResponse is the identify endpoint's envelope. Matches arrive in
// descending relevance but the ordering is not contractual, so the best
// match is re-derived from the scores.
type identifyResponse struct {
	Status  int                   `json:"status"`
	Matches []types.IdentityMatch `json:"matches"`
}

// Lookup resolves the prospect against the identity graph. A prospect that
// cannot be queried, a no-match reply, and a transport failure all come back
// as a failed result; only a scored match yields a success.
func (c *Client) Lookup(ctx context.Context, prospect types.ProspectInfo) types.ProviderResult[types.IdentityMatch] {
	if c.apiKey == "" {
		return types.Failure[types.IdentityMatch]("identity lookup skipped: no API key configured")
	}
	if prospect.FirstName == "" || prospect.LastName == "" || prospect.City == "" || prospect.State == "" {
		return types.Failure[types.IdentityMatch]("identity lookup skipped: name and location are required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return types.Failure[types.IdentityMatch](fmt.Sprintf("build identify request: %v", err))
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.URL.RawQuery = c.queryParams(prospect).Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Failure[types.IdentityMatch](fmt.Sprintf("identify request: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return types.Failure[types.IdentityMatch]("no identity record found")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return types.Failure[types.IdentityMatch](fmt.Sprintf("identify returned %d: %s", resp.StatusCode, body))
	}

	var envelope identifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return types.Failure[types.IdentityMatch](fmt.Sprintf("decode identify response: %v", err))
	}
	if len(envelope.Matches) == 0 {
		return types.Failure[types.IdentityMatch]("no identity record found")
	}

	best := bestMatch(envelope.Matches)
	best.Profile.Experience = sanitizeExperience(best.Profile.Experience)
	return types.Success(&best)
}

func (c *Client) queryParams(prospect types.ProspectInfo) url.Values {
	params := url.Values{}
	params.Set("first_name", prospect.FirstName)
	params.Set("last_name", prospect.LastName)
	params.Set("locality", prospect.City)
	params.Set("region", prospect.State)
	if prospect.OtherNames != "" {
		params.Set("middle_name", prospect.OtherNames)
	}
	if prospect.DOB != "" {
		params.Set("birth_date", prospect.DOB)
	}
	return params
}

func bestMatch(matches []types.IdentityMatch) types.IdentityMatch {
	best := matches[0]
	for _, m := range matches[1:] {
		if m.MatchScore > best.MatchScore {
			best = m
		}
	}
	return best
}

// sanitizeExperience drops experience entries whose company name fails the
// shared placeholder filter. Unlike the AI branch the original list is not
// restored on a full wipe; identity-graph records are curated and an
// all-invalid list means the record is junk.
func sanitizeExperience(entries []types.IdentityExperience) []types.IdentityExperience {
	kept := make([]types.IdentityExperience, 0, len(entries))
	for _, e := range entries {
		if e.Company == nil || !providers.ValidCompanyName(e.Company.Name) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
