package report

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rented123/tenant-screener/internal/types"
)

func TestNewID(t *testing.T) {
	pattern := regexp.MustCompile(`^BCR-[0-9A-Z]{6}$`)
	seen := map[string]struct{}{}
	for i := 0; i < 200; i++ {
		id := NewID()
		assert.Regexp(t, pattern, id)
		seen[id] = struct{}{}
	}
	// Collisions in 200 draws from a 36^6 space would point at a broken source.
	assert.Len(t, seen, 200)
}

func TestLinkSignerRoundTrip(t *testing.T) {
	signer := NewLinkSigner([]byte("s3cret"))
	now := time.Now()

	token, err := signer.Issue("BCR-ABC123", now)
	require.NoError(t, err)
	assert.NoError(t, signer.Verify(token, "BCR-ABC123"))
}

func TestLinkSignerRejects(t *testing.T) {
	signer := NewLinkSigner([]byte("s3cret"))
	now := time.Now()

	t.Run("wrong report", func(t *testing.T) {
		token, err := signer.Issue("BCR-ABC123", now)
		require.NoError(t, err)
		assert.ErrorIs(t, signer.Verify(token, "BCR-ZZZ999"), ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := signer.Issue("BCR-ABC123", now.Add(-25*time.Hour))
		require.NoError(t, err)
		assert.ErrorIs(t, signer.Verify(token, "BCR-ABC123"), ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewLinkSigner([]byte("other")).Issue("BCR-ABC123", now)
		require.NoError(t, err)
		assert.ErrorIs(t, signer.Verify(token, "BCR-ABC123"), ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.ErrorIs(t, signer.Verify("not-a-token", "BCR-ABC123"), ErrInvalidToken)
	})
}

func TestToAbsoluteURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"https://example.com/a", "https://example.com/a"},
		{"http://example.com/a", "http://example.com/a"},
		{"example.com/profile", "https://example.com/profile"},
		{"linkedin.com/in/jane", "https://linkedin.com/in/jane"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToAbsoluteURL(tt.in), "input %q", tt.in)
	}
}

func TestRenderHTMLFound(t *testing.T) {
	person := types.NewCanonicalPerson()
	person.ShortSummary = "Jane Doe has 5 years experience across 1 company."
	person.EmploymentHistory = []types.Employment{
		{StartDate: "2020-01", Company: "Acme Corporation", Position: "Engineer"},
	}
	person.SocialMediaProfiles = []types.SocialProfile{
		{Platform: "LinkedIn", Link: "linkedin.com/in/jane"},
	}

	html, err := RenderHTML(Document{
		ID:          "BCR-ABC123",
		FullName:    "Jane Doe",
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Found:       true,
		Person:      person,
		Risk: types.RiskAssessment{
			Score:   2,
			Level:   types.RiskLow,
			Reasons: []string{"High identity confidence"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Report BCR-ABC123")
	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "Generated June 1, 2025")
	assert.Contains(t, html, "badge-low")
	assert.Contains(t, html, person.ShortSummary)
	assert.Contains(t, html, "High identity confidence")
	assert.Contains(t, html, "Acme Corporation")
	assert.Contains(t, html, `https://linkedin.com/in/jane`)
	assert.NotContains(t, html, "No public records matching")
}

func TestRenderHTMLNotFound(t *testing.T) {
	html, err := RenderHTML(Document{
		ID:          "BCR-ABC123",
		FullName:    "Jane Doe",
		GeneratedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Found:       false,
		Person:      types.NewCanonicalPerson(),
		Risk:        types.RiskAssessment{Level: types.RiskLow, Reasons: []string{}},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "No public records matching this individual were found.")
	assert.NotContains(t, html, "<h2>Summary</h2>")
}
