// Package aiagent runs the LLM web-search investigator and turns its raw
// JSON reply into validated findings.
package aiagent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rented123/tenant-screener/internal/llm"
	"github.com/rented123/tenant-screener/internal/prompts"
	"github.com/rented123/tenant-screener/internal/providers"
	"github.com/rented123/tenant-screener/internal/schemas"
	"github.com/rented123/tenant-screener/internal/types"
)

const promptFile = "investigator.json"

// Agent wraps an LLM client with the investigator prompts.
type Agent struct {
	client llm.Client
}

// New returns an Agent backed by the given LLM client.
func New(client llm.Client) *Agent {
	return &Agent{client: client}
}

// Investigate searches the open web for the prospect and returns categorized
// findings. Lookup failures are reported inside the result rather than as an
// error so a failed branch never aborts the sibling provider.
func (a *Agent) Investigate(ctx context.Context, prospect types.ProspectInfo) types.ProviderResult[types.AiFindings] {
	system, err := prompts.Get(promptFile, "system")
	if err != nil {
		return types.Failure[types.AiFindings](fmt.Sprintf("load system prompt: %v", err))
	}
	template, err := prompts.Get(promptFile, "investigate")
	if err != nil {
		return types.Failure[types.AiFindings](fmt.Sprintf("load investigate prompt: %v", err))
	}

	secondLocation := ""
	if prospect.City2 != "" && prospect.State2 != "" {
		secondLocation = fmt.Sprintf("Location 2: %s, %s\n", prospect.City2, prospect.State2)
	}
	prompt := prompts.Format(template, map[string]string{
		"FullName":       prospect.FullName(),
		"City":           prospect.City,
		"State":          prospect.State,
		"SecondLocation": secondLocation,
		"Email":          prospect.Email,
		"DOB":            prospect.DOB,
	})

	raw, err := a.client.GenerateJSON(ctx, system, prompt, llm.TierAdvanced)
	if err != nil {
		return types.Failure[types.AiFindings](fmt.Sprintf("investigator call: %v", err))
	}

	findings, err := decodeFindings([]byte(raw))
	if err != nil {
		return types.Failure[types.AiFindings](err.Error())
	}
	return types.Success(findings)
}

// decodeFindings validates the raw reply against the findings schema,
// unmarshals it, sanitizes the employment list, and derives the found flag.
func decodeFindings(raw []byte) (*types.AiFindings, error) {
	if err := schemas.ValidateFindings(raw); err != nil {
		return nil, fmt.Errorf("investigator reply rejected: %w", err)
	}

	var findings types.AiFindings
	if err := json.Unmarshal(raw, &findings); err != nil {
		return nil, fmt.Errorf("decode investigator reply: %w", err)
	}

	findings.EmploymentHistory = providers.SanitizeEmployment(findings.EmploymentHistory)
	findings.FoundPerson = anyFindings(findings)
	return &findings, nil
}

// anyFindings reports whether the reply contains substantive results.
// Location history alone does not count; the investigator echoes the input
// locations even when it finds nothing.
func anyFindings(f types.AiFindings) bool {
	return len(f.CompanyRegistrations) > 0 ||
		len(f.SocialMediaProfiles) > 0 ||
		len(f.EmploymentHistory) > 0 ||
		len(f.PublicComments) > 0 ||
		len(f.LegalAppearances) > 0 ||
		len(f.PressMentions) > 0
}
