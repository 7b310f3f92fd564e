// Package pipeline provides the high-level orchestration for a screening
// check: provider fan-out, fusion, risk assessment, summary synthesis, and
// report delivery.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rented123/tenant-screener/internal/db"
	"github.com/rented123/tenant-screener/internal/fusion"
	"github.com/rented123/tenant-screener/internal/linkcheck"
	"github.com/rented123/tenant-screener/internal/mailer"
	"github.com/rented123/tenant-screener/internal/observability"
	"github.com/rented123/tenant-screener/internal/report"
	"github.com/rented123/tenant-screener/internal/risk"
	"github.com/rented123/tenant-screener/internal/summary"
	"github.com/rented123/tenant-screener/internal/types"
)

// Investigator is the AI web-search provider branch.
type Investigator interface {
	Investigate(ctx context.Context, prospect types.ProspectInfo) types.ProviderResult[types.AiFindings]
}

// IdentityLookup is the identity-graph provider branch.
type IdentityLookup interface {
	Lookup(ctx context.Context, prospect types.ProspectInfo) types.ProviderResult[types.IdentityMatch]
}

// PDFRenderer prints report HTML to PDF bytes.
type PDFRenderer interface {
	Render(ctx context.Context, htmlDoc string) ([]byte, error)
}

// Notifier announces a finished report.
type Notifier interface {
	Send(n mailer.Notification) error
}

// RunOptions holds the collaborators and settings for running a check.
// Database, renderer, notifier, and link signer are optional: without them
// the pipeline still produces an in-memory result, which is how the CLI
// runs a dry check.
type RunOptions struct {
	Investigator Investigator
	Identity     IdentityLookup
	Assessor     *risk.Assessor
	Database     *db.DB
	Renderer     PDFRenderer
	LinkChecker  *linkcheck.Checker
	Notifier     Notifier
	LinkSigner   *report.LinkSigner
	BaseURL      string
	Recipients   []string
	Verbose      bool
	Now          func() time.Time
}

// RunResult is the outcome of one screening check.
type RunResult struct {
	CheckID     uuid.UUID             `json:"check_id,omitempty"`
	ReportID    string                `json:"report_id"`
	FullName    string                `json:"full_name"`
	Found       bool                  `json:"found"`
	Person      types.CanonicalPerson `json:"person"`
	Risk        types.RiskAssessment  `json:"risk"`
	AiError     string                `json:"ai_error,omitempty"`
	IdentityErr string                `json:"identity_error,omitempty"`
	DownloadURL string                `json:"download_url,omitempty"`
	PDF         []byte                `json:"-"`
}

// Run executes a full screening check for one prospect.
func Run(ctx context.Context, prospect types.ProspectInfo, opts RunOptions) (*RunResult, error) {
	if err := prospect.Validate(); err != nil {
		return nil, fmt.Errorf("invalid prospect: %w", err)
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	printer := observability.NewPrinter(os.Stdout)
	if opts.Verbose {
		printer.PrintProspect(prospect)
	}

	result := &RunResult{
		ReportID: report.NewID(),
		FullName: prospect.FullName(),
	}

	var checkID uuid.UUID
	if opts.Database != nil {
		id, err := opts.Database.CreateCheck(ctx, result.ReportID, result.FullName, prospect.Email)
		if err != nil {
			return nil, err
		}
		checkID = id
		result.CheckID = id
	}

	res, err := assess(ctx, prospect, opts, printer, now())
	if err != nil {
		failCheck(ctx, opts.Database, checkID, err)
		return nil, err
	}
	result.Found = res.found
	result.Person = res.person
	result.Risk = res.risk
	result.AiError = res.aiError
	result.IdentityErr = res.identityErr

	if opts.Database != nil {
		if err := opts.Database.SaveAssessment(ctx, checkID, result.Person, result.Risk); err != nil {
			failCheck(ctx, opts.Database, checkID, err)
			return nil, err
		}
	}

	if opts.Renderer != nil {
		if err := deliver(ctx, result, checkID, opts, now); err != nil {
			failCheck(ctx, opts.Database, checkID, err)
			return nil, err
		}
	}
	return result, nil
}

type assessment struct {
	found       bool
	person      types.CanonicalPerson
	risk        types.RiskAssessment
	aiError     string
	identityErr string
}

// assess runs both provider branches, merges their output, and scores it.
// Each branch stores its result instead of returning an error; one provider
// failing never cancels the other, and a check with zero successful
// branches still completes as "not found".
func assess(ctx context.Context, prospect types.ProspectInfo, opts RunOptions, printer *observability.Printer, now time.Time) (*assessment, error) {
	var aiResult types.ProviderResult[types.AiFindings]
	var identityResult types.ProviderResult[types.IdentityMatch]

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if opts.Investigator == nil {
			aiResult = types.Failure[types.AiFindings]("investigator not configured")
			return nil
		}
		aiResult = opts.Investigator.Investigate(gCtx, prospect)
		return nil
	})
	g.Go(func() error {
		if opts.Identity == nil {
			identityResult = types.Failure[types.IdentityMatch]("identity lookup not configured")
			return nil
		}
		identityResult = opts.Identity.Lookup(gCtx, prospect)
		return nil
	})
	// branches never return errors, but keep the contract honest
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Verbose {
		printer.PrintProviderOutcome("investigator", aiResult.OK, aiResult.Error)
		printer.PrintProviderOutcome("identity", identityResult.OK, identityResult.Error)
	}

	out := &assessment{
		aiError:     aiResult.Error,
		identityErr: identityResult.Error,
		found:       fusion.Found(aiResult, identityResult),
	}

	aiFrag := fusion.NormalizeAiFindings(aiResult)
	identityFrag := fusion.NormalizeIdentityMatch(identityResult)
	out.person = fusion.Merge(aiFrag, identityFrag)

	if opts.LinkChecker != nil {
		opts.LinkChecker.Scrub(ctx, &out.person)
	}

	meta := types.RiskMeta{IdentityOK: identityResult.OK}
	if identityResult.OK {
		score := identityResult.Data.MatchScore
		meta.IdentityConfidence = &score
	}

	assessor := opts.Assessor
	if assessor == nil {
		assessor = risk.DefaultAssessor()
	}
	out.risk = assessor.Assess(out.person, meta, now)

	if out.found {
		synthetic := summary.Synthesize(out.person, prospect.FullName(), now)
		out.person.ShortSummary = summary.Merge(out.person.ShortSummary, synthetic)
	} else {
		out.person.ShortSummary = ""
	}

	if opts.Verbose {
		printer.PrintPerson(out.person)
		printer.PrintRisk(out.risk)
	}
	return out, nil
}

// deliver renders the PDF, persists it, and emails the download link.
func deliver(ctx context.Context, result *RunResult, checkID uuid.UUID, opts RunOptions, now func() time.Time) error {
	htmlDoc, err := report.RenderHTML(report.Document{
		ID:          result.ReportID,
		FullName:    result.FullName,
		GeneratedAt: now(),
		Found:       result.Found,
		Person:      result.Person,
		Risk:        result.Risk,
	})
	if err != nil {
		return err
	}

	pdf, err := opts.Renderer.Render(ctx, htmlDoc)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	result.PDF = pdf

	if opts.Database != nil {
		if err := opts.Database.TransitionStatus(ctx, checkID, db.StatusGenerating, db.StatusUploading); err != nil {
			return err
		}
		if err := opts.Database.SaveReport(ctx, result.ReportID, checkID, result.FullName, pdf); err != nil {
			return err
		}
		if err := opts.Database.CompleteCheck(ctx, checkID, string(result.Risk.Level), result.Risk.Score, result.Found); err != nil {
			return err
		}
	}

	if opts.LinkSigner != nil && opts.BaseURL != "" {
		token, err := opts.LinkSigner.Issue(result.ReportID, now())
		if err != nil {
			return err
		}
		result.DownloadURL = fmt.Sprintf("%s/reports/%s?token=%s", opts.BaseURL, result.ReportID, token)
	}

	if opts.Notifier != nil && len(opts.Recipients) > 0 {
		err := opts.Notifier.Send(mailer.Notification{
			Recipients:  opts.Recipients,
			FullName:    result.FullName,
			ReportID:    result.ReportID,
			RiskLevel:   string(result.Risk.Level),
			DownloadURL: result.DownloadURL,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func failCheck(ctx context.Context, database *db.DB, checkID uuid.UUID, cause error) {
	if database == nil || checkID == uuid.Nil {
		return
	}
	if err := database.FailCheck(ctx, checkID, cause.Error()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not mark check failed: %v\n", err)
	}
}
