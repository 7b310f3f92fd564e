package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rented123/tenant-screener/internal/db"
	"github.com/rented123/tenant-screener/internal/pipeline"
	"github.com/rented123/tenant-screener/internal/report"
	"github.com/rented123/tenant-screener/internal/types"
)

var checkCommand = &cobra.Command{
	Use:   "check",
	Short: "Run a background check for one prospect",
	Long: `Runs both lookup providers, merges their findings, scores the result,
and prints the assessment as JSON. With --pdf the report is also rendered to
a local file; with a database configured the check and report are persisted.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runCheckCmd,
}

var (
	checkConfigPath  string
	checkFirstName   string
	checkLastName    string
	checkOtherNames  string
	checkEmail       string
	checkCity        string
	checkState       string
	checkCity2       string
	checkState2      string
	checkDOB         string
	checkPDFPath     string
	checkRecipients  []string
	checkAPIKey      string
	checkIdentityKey string
	checkDatabaseURL string
	checkVerbose     bool
)

func init() {
	checkCommand.Flags().StringVar(&checkConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	checkCommand.Flags().StringVar(&checkFirstName, "first-name", "", "Prospect first name (required)")
	checkCommand.Flags().StringVar(&checkLastName, "last-name", "", "Prospect last name (required)")
	checkCommand.Flags().StringVar(&checkOtherNames, "other-names", "", "Middle or other names")
	checkCommand.Flags().StringVar(&checkEmail, "email", "", "Prospect email")
	checkCommand.Flags().StringVar(&checkCity, "city", "", "Current city (required)")
	checkCommand.Flags().StringVar(&checkState, "state", "", "Current state or province (required)")
	checkCommand.Flags().StringVar(&checkCity2, "city2", "", "Previous city")
	checkCommand.Flags().StringVar(&checkState2, "state2", "", "Previous state or province")
	checkCommand.Flags().StringVar(&checkDOB, "dob", "", "Date of birth, YYYY-MM-DD (required)")
	checkCommand.Flags().StringVar(&checkPDFPath, "pdf", "", "Write the rendered report PDF to this path")
	checkCommand.Flags().StringSliceVar(&checkRecipients, "email-to", nil, "Email the report link to these addresses")
	checkCommand.Flags().StringVar(&checkAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	checkCommand.Flags().StringVar(&checkIdentityKey, "identity-key", "", "Identity provider API key (optional, defaults to IDENTITY_API_KEY env var)")
	checkCommand.Flags().StringVar(&checkDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	checkCommand.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(checkCommand)
}

func runCheckCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(checkConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.GeminiAPIKey = checkAPIKey
	}
	if cmd.Flags().Changed("identity-key") {
		cfg.IdentityAPIKey = checkIdentityKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = checkDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = checkVerbose
	}

	prospect := types.ProspectInfo{
		FirstName:  checkFirstName,
		LastName:   checkLastName,
		OtherNames: checkOtherNames,
		Email:      checkEmail,
		City:       checkCity,
		State:      checkState,
		City2:      checkCity2,
		State2:     checkState2,
		DOB:        checkDOB,
	}
	if err := prospect.Validate(); err != nil {
		return fmt.Errorf("invalid prospect: %w", err)
	}

	opts, cleanup, err := buildRunOptions(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to connect to database: %v\n", err)
			fmt.Fprintln(os.Stderr, "Continuing without persistence...")
		} else {
			defer database.Close()
			opts.Database = database
		}
	}

	if len(checkRecipients) > 0 {
		notifier := buildNotifier(cfg)
		if notifier == nil {
			return fmt.Errorf("--email-to requires SMTP settings (config or SMTP_* env vars)")
		}
		if cfg.LinkSecret == "" || cfg.BaseURL == "" {
			return fmt.Errorf("--email-to requires link_secret and base_url so the mailed link works")
		}
		opts.Notifier = notifier
		opts.Recipients = checkRecipients
		opts.LinkSigner = report.NewLinkSigner([]byte(cfg.LinkSecret))
		opts.BaseURL = cfg.BaseURL
	}
	if checkPDFPath == "" && opts.Database == nil && opts.Notifier == nil {
		// dry run: skip the PDF render entirely
		opts.Renderer = nil
	}

	result, err := pipeline.Run(ctx, prospect, opts)
	if err != nil {
		return err
	}

	if checkPDFPath != "" && len(result.PDF) > 0 {
		if err := os.WriteFile(checkPDFPath, result.PDF, 0o644); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", checkPDFPath)
	}

	return printResult(result)
}

func printResult(result *pipeline.RunResult) error {
	out := map[string]any{
		"report_id": result.ReportID,
		"full_name": result.FullName,
		"found":     result.Found,
		"risk":      result.Risk,
		"person":    result.Person,
	}
	if result.DownloadURL != "" {
		out["download_url"] = result.DownloadURL
	}
	var errs []string
	if result.AiError != "" {
		errs = append(errs, "investigator: "+result.AiError)
	}
	if result.IdentityErr != "" {
		errs = append(errs, "identity: "+result.IdentityErr)
	}
	if len(errs) > 0 {
		out["provider_errors"] = strings.Join(errs, "; ")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
