// Package linkcheck verifies that source links returned by the providers
// are live before they go into a report. Investigator output in particular
// includes dead or fabricated URLs.
package linkcheck

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/rented123/tenant-screener/internal/report"
	"github.com/rented123/tenant-screener/internal/types"
)

const (
	checkTimeout   = 8 * time.Second
	maxConcurrent  = 5
	userAgentValue = "Mozilla/5.0 (compatible; Rented123Screener/1.0)"
)

// Checker probes URLs for liveness.
type Checker struct {
	client *http.Client
}

// New returns a Checker with a bounded per-request timeout.
func New() *Checker {
	return &Checker{client: &http.Client{Timeout: checkTimeout}}
}

// NewWithClient returns a Checker using the given HTTP client.
func NewWithClient(client *http.Client) *Checker {
	return &Checker{client: client}
}

// IsLive reports whether the URL resolves to a non-error HTML page. A page
// that loads but titles itself as not-found also counts as dead; many sites
// serve soft 404s with a 200 status.
func (c *Checker) IsLive(ctx context.Context, rawURL string) bool {
	abs := report.ToAbsoluteURL(rawURL)
	if abs == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, abs, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgentValue)

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		// Non-HTML (a PDF, an image) still counts as live.
		return true
	}
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").First().Text()))
	for _, marker := range []string{"page not found", "404", "does not exist", "no longer available"} {
		if strings.Contains(title, marker) {
			return false
		}
	}
	return true
}

// Scrub removes dead links from a merged person record in place. Entries
// keep their text; only the link field is cleared, since a finding without a
// working source is still a finding.
func (c *Checker) Scrub(ctx context.Context, person *types.CanonicalPerson) {
	links := collectLinks(person)
	live := c.probeAll(ctx, links)

	keep := func(link string) string {
		if link == "" || live[link] {
			return link
		}
		return ""
	}
	for i := range person.LegalAppearances {
		person.LegalAppearances[i].Link = keep(person.LegalAppearances[i].Link)
	}
	for i := range person.PressMentions {
		person.PressMentions[i].Link = keep(person.PressMentions[i].Link)
	}
	for i := range person.CompanyRegistrations {
		person.CompanyRegistrations[i].Link = keep(person.CompanyRegistrations[i].Link)
	}
	for i := range person.PublicComments {
		person.PublicComments[i].Link = keep(person.PublicComments[i].Link)
	}
	for i := range person.Others {
		person.Others[i].Link = keep(person.Others[i].Link)
	}

	// Profile entries are nothing but a link, so dead ones drop entirely.
	profiles := person.SocialMediaProfiles[:0]
	for _, p := range person.SocialMediaProfiles {
		if p.Link == "" || live[p.Link] {
			profiles = append(profiles, p)
		}
	}
	person.SocialMediaProfiles = profiles
}

func collectLinks(person *types.CanonicalPerson) []string {
	seen := map[string]struct{}{}
	var links []string
	add := func(link string) {
		if link == "" {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	for _, e := range person.LegalAppearances {
		add(e.Link)
	}
	for _, e := range person.PressMentions {
		add(e.Link)
	}
	for _, e := range person.SocialMediaProfiles {
		add(e.Link)
	}
	for _, e := range person.CompanyRegistrations {
		add(e.Link)
	}
	for _, e := range person.PublicComments {
		add(e.Link)
	}
	for _, e := range person.Others {
		add(e.Link)
	}
	return links
}

func (c *Checker) probeAll(ctx context.Context, links []string) map[string]bool {
	live := make(map[string]bool, len(links))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrent)

	for _, link := range links {
		wg.Add(1)
		sem <- struct{}{}
		go func(link string) {
			defer wg.Done()
			defer func() { <-sem }()
			ok := c.IsLive(ctx, link)
			mu.Lock()
			live[link] = ok
			mu.Unlock()
		}(link)
	}
	wg.Wait()
	return live
}
