// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/rented123/tenant-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProspect outputs the intake details a check will run against.
func (p *Printer) PrintProspect(prospect types.ProspectInfo) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", prospect.FullName()))
	sb.WriteString(fmt.Sprintf("Location: %s, %s\n", prospect.City, prospect.State))
	if prospect.City2 != "" {
		sb.WriteString(fmt.Sprintf("Also:     %s, %s\n", prospect.City2, prospect.State2))
	}
	if prospect.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", prospect.Email))
	}
	sb.WriteString(fmt.Sprintf("DOB:      %s", prospect.DOB))
	p.printBox("PROSPECT", sb.String())
}

// PrintProviderOutcome outputs one provider branch's success or failure.
func (p *Printer) PrintProviderOutcome(name string, ok bool, detail string) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	content := fmt.Sprintf("Status: %s", status)
	if detail != "" {
		content += "\n" + detail
	}
	p.printBox("PROVIDER: "+strings.ToUpper(name), content)
}

// PrintPerson outputs category counts for the merged person record.
func (p *Printer) PrintPerson(person types.CanonicalPerson) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Employment entries:    %d\n", len(person.EmploymentHistory)))
	sb.WriteString(fmt.Sprintf("Education entries:     %d\n", len(person.EducationHistory)))
	sb.WriteString(fmt.Sprintf("Locations:             %d\n", len(person.LocationHistory)))
	sb.WriteString(fmt.Sprintf("Legal appearances:     %d\n", len(person.LegalAppearances)))
	sb.WriteString(fmt.Sprintf("Press mentions:        %d\n", len(person.PressMentions)))
	sb.WriteString(fmt.Sprintf("Online profiles:       %d\n", len(person.SocialMediaProfiles)))
	sb.WriteString(fmt.Sprintf("Company registrations: %d\n", len(person.CompanyRegistrations)))
	sb.WriteString(fmt.Sprintf("Public comments:       %d", len(person.PublicComments)))
	p.printBox("MERGED RECORD", sb.String())
}

// PrintRisk outputs the assessment score, tier, and leading reasons.
func (p *Printer) PrintRisk(risk types.RiskAssessment) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d\n", risk.Score))
	sb.WriteString(fmt.Sprintf("Level: %s\n", risk.Level))
	if len(risk.Reasons) > 0 {
		sb.WriteString("\nReasons:\n")
		count := min(len(risk.Reasons), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", risk.Reasons[i]))
		}
		if len(risk.Reasons) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(risk.Reasons)-maxItemsToShow))
		}
	}
	p.printBox("RISK ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}
