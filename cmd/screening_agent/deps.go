package main

import (
	"context"
	"fmt"

	"github.com/rented123/tenant-screener/internal/config"
	"github.com/rented123/tenant-screener/internal/linkcheck"
	"github.com/rented123/tenant-screener/internal/llm"
	"github.com/rented123/tenant-screener/internal/mailer"
	"github.com/rented123/tenant-screener/internal/pipeline"
	"github.com/rented123/tenant-screener/internal/providers/aiagent"
	"github.com/rented123/tenant-screener/internal/providers/identity"
	"github.com/rented123/tenant-screener/internal/report"
	"github.com/rented123/tenant-screener/internal/risk"
)

// buildRunOptions wires the pipeline collaborators from configuration. The
// returned cleanup closes the LLM client and must run after the pipeline
// finishes.
func buildRunOptions(ctx context.Context, cfg config.Config) (pipeline.RunOptions, func(), error) {
	opts := pipeline.RunOptions{Verbose: cfg.Verbose}
	cleanup := func() {}

	if cfg.GeminiAPIKey == "" {
		return opts, cleanup, fmt.Errorf("GEMINI_API_KEY is required (flag, config, or environment)")
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return opts, cleanup, fmt.Errorf("failed to create LLM client: %w", err)
	}
	cleanup = func() { _ = client.Close() }
	opts.Investigator = aiagent.New(client)

	if cfg.IdentityAPIKey != "" {
		opts.Identity = identity.New(cfg.IdentityAPIKey)
	}

	assessor := risk.DefaultAssessor()
	if cfg.KeywordFile != "" {
		keywords, err := risk.LoadKeywords(cfg.KeywordFile)
		if err != nil {
			cleanup()
			return opts, func() {}, err
		}
		assessor, err = risk.NewAssessor(keywords)
		if err != nil {
			cleanup()
			return opts, func() {}, err
		}
	}
	opts.Assessor = assessor
	opts.LinkChecker = linkcheck.New()
	opts.Renderer = report.NewPDFRenderer()
	return opts, cleanup, nil
}

// buildNotifier returns a mailer when SMTP is configured, nil otherwise.
func buildNotifier(cfg config.Config) pipeline.Notifier {
	if cfg.SMTP.Host == "" || cfg.SMTP.From == "" {
		return nil
	}
	return mailer.New(cfg.SMTP)
}

// loadConfig merges the config file, environment, and nothing else; flag
// overrides happen at each command after this.
func loadConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
