package youtube

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Enricher joins playlist items with their visibility and statistics.
// It does not cache: a video listed twice is looked up twice.
type Enricher struct {
	src         VideoSource
	unavailable string
}

// NewEnricher creates an enricher. An empty unavailable label selects
// DefaultUnavailable.
func NewEnricher(src VideoSource, unavailable string) *Enricher {
	if unavailable == "" {
		unavailable = DefaultUnavailable
	}
	return &Enricher{src: src, unavailable: unavailable}
}

// IsPublic reports whether the video exists and its privacy status is
// exactly "public". Private, unlisted, deleted and unknown statuses are not.
func (e *Enricher) IsPublic(ctx context.Context, videoID string) (bool, error) {
	privacy, found, err := e.src.VideoStatus(ctx, videoID)
	if err != nil {
		return false, err
	}
	return found && privacy == PrivacyPublic, nil
}

// Statistics returns the counters of a video. A video the API does not return
// yields Stats{Absent: true}. Missing like and comment counts are replaced by
// the unavailable label independently of each other; a missing view count is
// a malformed response.
func (e *Enricher) Statistics(ctx context.Context, videoID string) (Stats, error) {
	raw, err := e.src.VideoStatistics(ctx, videoID)
	if err != nil {
		return Stats{}, err
	}
	if raw == nil {
		return Stats{Absent: true}, nil
	}
	if raw.ViewCount == nil {
		return Stats{}, &APIError{
			Op:  "videos.list(statistics)",
			ID:  videoID,
			Err: fmt.Errorf("%w: no viewCount", ErrMalformedResponse),
		}
	}

	return Stats{
		Views:    *raw.ViewCount,
		Likes:    e.orUnavailable(raw.LikeCount),
		Comments: e.orUnavailable(raw.CommentCount),
	}, nil
}

func (e *Enricher) orUnavailable(v *string) string {
	if v == nil {
		return e.unavailable
	}
	return *v
}

// Enrich checks visibility and, for public videos only, fetches statistics.
// ok is false when the item was dropped as not public.
func (e *Enricher) Enrich(ctx context.Context, item PlaylistItem) (Video, bool, error) {
	public, err := e.IsPublic(ctx, item.VideoID)
	if err != nil {
		return Video{}, false, err
	}
	if !public {
		zerolog.Ctx(ctx).Debug().
			Str("video", item.VideoID).
			Int("position", item.Position).
			Msg("skipping non-public video")
		return Video{}, false, nil
	}

	stats, err := e.Statistics(ctx, item.VideoID)
	if err != nil {
		return Video{}, false, err
	}
	return Video{PlaylistItem: item, Stats: stats}, true, nil
}
