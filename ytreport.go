package ytreport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ytreport/config"
	ythttp "ytreport/http"
	"ytreport/internal/retry"
	"ytreport/pipeline"
	"ytreport/report"
	"ytreport/youtube"
)

// Result describes a finished report run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string
	// Table is the report that was written.
	Table *report.Table
	// Summary counts pages, scanned items, and public and dropped videos.
	Summary pipeline.Summary
	// QuotaUsed is the number of API quota units consumed.
	QuotaUsed int64
	// OutputPath and Format describe the written file.
	OutputPath string
	Format     report.Format
	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// Generate walks the configured playlist, enriches and classifies every
// public video, and writes the report file. A nil cfg uses the defaults.
//
// The run is all-or-nothing: on any error no file is written and an existing
// file at the output path is left untouched.
func Generate(ctx context.Context, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	started := time.Now()
	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = cfg.MaxRetries
	retryCfg.InitialBackoff = time.Duration(cfg.InitialBackoff)
	retryCfg.MaxBackoff = time.Duration(cfg.MaxBackoff)
	retryCfg.Multiplier = cfg.BackoffMultiplier

	httpCfg := ythttp.DefaultConfig()
	httpCfg.APIKey = cfg.APIKey
	httpCfg.Timeout = time.Duration(cfg.Timeout)
	httpCfg.Retry = retryCfg
	httpCfg.RateLimiter.DefaultRPS = cfg.RequestsPerSecond
	httpCfg.Transport = httpCfg.Transport.ForWorkers(cfg.Workers)

	client, err := youtube.NewAPIClient(ctx, ythttp.NewClient(httpCfg), cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("playlist", cfg.PlaylistID).
		Int("workers", cfg.Workers).
		Int("max_retries", cfg.MaxRetries).
		Msg("generating report")

	p := pipeline.New(client, pipeline.Options{
		PageSize:    cfg.PageSize,
		Workers:     cfg.Workers,
		Unavailable: cfg.Unavailable,
		Classifier:  report.NewClassifier(cfg.Groups, cfg.Fallback),
	})
	table, sum, err := p.Run(ctx, cfg.PlaylistID)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	format := cfg.OutputFormat()
	if err := report.Save(cfg.Output, format, table); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:      runID,
		Table:      table,
		Summary:    sum,
		QuotaUsed:  client.QuotaUsed(),
		OutputPath: cfg.Output,
		Format:     format,
		Elapsed:    time.Since(started),
	}

	logger.Info().
		Str("output", res.OutputPath).
		Str("format", string(res.Format)).
		Int("rows", table.Len()).
		Int64("quota", res.QuotaUsed).
		Dur("elapsed", res.Elapsed).
		Msg("report written")
	return res, nil
}
