// Package pipeline runs the playlist report: walk, enrich, classify.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"ytreport/report"
	"ytreport/youtube"
)

// Summary counts what a run saw.
type Summary struct {
	Pages   int `json:"pages"`
	Scanned int `json:"scanned"`
	Public  int `json:"public"`
	Dropped int `json:"dropped"`
}

// Options configure a Pipeline. Zero values select the defaults.
type Options struct {
	// PageSize is the playlistItems page size (default youtube.DefaultPageSize).
	PageSize int64

	// Workers bounds concurrent enrichment. 0 or 1 runs sequentially.
	Workers int

	// Unavailable replaces hidden like and comment counts.
	Unavailable string

	// Classifier assigns groups (default report.NewClassifier(nil, "")).
	Classifier *report.Classifier

	// Headers are the table column titles (default report.DefaultHeaders).
	Headers []string
}

// Pipeline turns a playlist into a report table.
type Pipeline struct {
	client     youtube.Client
	enricher   *youtube.Enricher
	classifier *report.Classifier
	pageSize   int64
	workers    int
	headers    []string
}

// New creates a pipeline reading from client.
func New(client youtube.Client, opts Options) *Pipeline {
	if opts.Classifier == nil {
		opts.Classifier = report.NewClassifier(nil, "")
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Pipeline{
		client:     client,
		enricher:   youtube.NewEnricher(client, opts.Unavailable),
		classifier: opts.Classifier,
		pageSize:   opts.PageSize,
		workers:    opts.Workers,
		headers:    opts.Headers,
	}
}

// Run walks playlistID and returns the report table in playlist order.
// Any error aborts the run; no partial table is returned.
func (p *Pipeline) Run(ctx context.Context, playlistID string) (*report.Table, Summary, error) {
	log := zerolog.Ctx(ctx)
	walker := youtube.NewWalker(p.client, playlistID, p.pageSize)

	var (
		videos []youtube.Video
		sum    Summary
		err    error
	)
	if p.workers > 1 {
		videos, sum, err = p.runPool(ctx, walker)
	} else {
		videos, sum, err = p.runSequential(ctx, walker)
	}
	sum.Pages = walker.Pages()
	if err != nil {
		return nil, sum, err
	}

	table := report.NewTable(p.headers)
	for _, v := range videos {
		table.Append(report.NewRecord(v, p.classifier.Classify(v.Title)))
	}

	log.Info().
		Str("playlist", playlistID).
		Int("pages", sum.Pages).
		Int("scanned", sum.Scanned).
		Int("public", sum.Public).
		Int("dropped", sum.Dropped).
		Msg("playlist enriched")
	return table, sum, nil
}

func (p *Pipeline) runSequential(ctx context.Context, w *youtube.Walker) ([]youtube.Video, Summary, error) {
	var (
		videos []youtube.Video
		sum    Summary
	)
	for w.Next(ctx) {
		item := w.Item()
		sum.Scanned++

		v, ok, err := p.enricher.Enrich(ctx, item)
		if err != nil {
			return nil, sum, enrichError(item, err)
		}
		if !ok {
			sum.Dropped++
			continue
		}
		sum.Public++
		videos = append(videos, v)
	}
	if err := w.Err(); err != nil {
		return nil, sum, fmt.Errorf("walk playlist: %w", err)
	}
	return videos, sum, nil
}

// slot holds the result for one walked item; slots are filled by workers and
// read back in walk order once the group has finished.
type slot struct {
	video youtube.Video
	ok    bool
}

func (p *Pipeline) runPool(ctx context.Context, w *youtube.Walker) ([]youtube.Video, Summary, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	var slots []*slot
	for gctx.Err() == nil && w.Next(gctx) {
		item := w.Item()
		s := &slot{}
		slots = append(slots, s)

		g.Go(func() error {
			v, ok, err := p.enricher.Enrich(gctx, item)
			if err != nil {
				return enrichError(item, err)
			}
			s.video, s.ok = v, ok
			return nil
		})
	}
	walkErr := w.Err()

	sum := Summary{Scanned: len(slots)}
	if err := g.Wait(); err != nil {
		return nil, sum, err
	}
	if walkErr == nil {
		walkErr = ctx.Err()
	}
	if walkErr != nil {
		return nil, sum, fmt.Errorf("walk playlist: %w", walkErr)
	}

	videos := make([]youtube.Video, 0, len(slots))
	for _, s := range slots {
		if !s.ok {
			sum.Dropped++
			continue
		}
		sum.Public++
		videos = append(videos, s.video)
	}
	return videos, sum, nil
}

func enrichError(item youtube.PlaylistItem, err error) error {
	return fmt.Errorf("enrich item %d (%s): %w", item.Position, item.VideoID, err)
}
