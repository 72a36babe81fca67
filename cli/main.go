package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"ytreport"
	"ytreport/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ytreport",
		Usage: "Write a statistics spreadsheet for every public video of a YouTube playlist",
		Description: `Reads YOUTUBE_API_KEY and PLAYLIST_ID from the environment (or a .env file),
walks the playlist, and writes resultado.xlsx in the working directory.

Examples:
  ytreport                              # Default run
  ytreport -o report.csv                # CSV output
  ytreport --workers 8 --log-level debug`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (default: ytreport.json or ~/.config/ytreport/ytreport.json)",
			},
			&cli.StringFlag{
				Name:  "playlist",
				Usage: "playlist ID (overrides PLAYLIST_ID)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: xlsx, csv or json (default: from the output extension)",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "concurrent video lookups",
			},
			&cli.IntFlag{
				Name:  "max-retries",
				Usage: "retries for rate-limited or failed requests",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "write logs as JSON instead of console text",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", c.Args().Slice())
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(c.App.ErrWriter, cfg.LogLevel, c.Bool("log-json"))
	ctx := logger.WithContext(c.Context)

	res, err := ytreport.Generate(ctx, cfg)
	if err != nil {
		return err
	}

	printSummary(c.App.Writer, res)
	return nil
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("playlist") {
		cfg.PlaylistID = c.String("playlist")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("max-retries") {
		cfg.MaxRetries = c.Int("max-retries")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
}

func newLogger(w io.Writer, level string, asJSON bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if !asJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func printSummary(w io.Writer, res *ytreport.Result) {
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "Wrote %d videos to %s (%d scanned, %d not public, %d quota units)\n",
		res.Table.Len(), res.OutputPath, res.Summary.Scanned, res.Summary.Dropped, res.QuotaUsed)
	if res.Table.Len() == 0 {
		return
	}

	counts := res.Table.CountByGroup()
	groups := make([]string, 0, len(counts))
	for g := range counts {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tVIDEOS")
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\t%d\n", g, counts[g])
	}
	tw.Flush()
}
