package report

import (
	"strings"
	"time"

	"github.com/rented123/tenant-screener/internal/dates"
)

// ToAbsoluteURL prefixes scheme-less links so they open from a PDF viewer.
// Providers frequently return bare hostnames like "linkedin.com/in/jane".
func ToAbsoluteURL(link string) string {
	trimmed := strings.TrimSpace(link)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + strings.TrimPrefix(trimmed, "//")
}

func formatRangeNow(start, end string) string {
	return dates.FormatRange(start, end, time.Now())
}
