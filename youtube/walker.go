package youtube

import (
	"context"

	"github.com/rs/zerolog"
)

// Walker iterates over every item of a playlist, one page at a time.
//
// It follows nextPageToken until a page arrives without one. A Walker is
// single-use: the cursor is internal and cannot be rewound.
//
//	w := youtube.NewWalker(client, playlistID, youtube.DefaultPageSize)
//	for w.Next(ctx) {
//		item := w.Item()
//		...
//	}
//	if err := w.Err(); err != nil {
//		...
//	}
type Walker struct {
	src        PageFetcher
	playlistID string
	pageSize   int64

	token    string
	buf      []PlaylistItem
	item     PlaylistItem
	pages    int
	position int
	done     bool
	err      error
}

// NewWalker creates a walker over playlistID. A non-positive pageSize selects
// DefaultPageSize.
func NewWalker(src PageFetcher, playlistID string, pageSize int64) *Walker {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Walker{
		src:        src,
		playlistID: playlistID,
		pageSize:   pageSize,
	}
}

// Next advances to the next item, fetching a new page when the current one is
// exhausted. It returns false at the end of the playlist or on error; once it
// has returned false it always does.
func (w *Walker) Next(ctx context.Context) bool {
	for len(w.buf) == 0 {
		if w.done || w.err != nil {
			return false
		}
		if w.pages > 0 && w.token == "" {
			w.done = true
			return false
		}
		if err := ctx.Err(); err != nil {
			w.err = err
			return false
		}

		page, err := w.src.PlaylistPage(ctx, w.playlistID, w.token, w.pageSize)
		if err != nil {
			w.err = err
			return false
		}
		w.pages++
		w.buf = page.Items
		w.token = page.NextPageToken

		zerolog.Ctx(ctx).Debug().
			Str("playlist", w.playlistID).
			Int("page", w.pages).
			Int("items", len(page.Items)).
			Bool("more", w.token != "").
			Msg("fetched playlist page")
	}

	w.item = w.buf[0]
	w.item.Position = w.position
	w.buf = w.buf[1:]
	w.position++
	return true
}

// Item returns the item produced by the last successful call to Next.
func (w *Walker) Item() PlaylistItem {
	return w.item
}

// Err returns the error that stopped the walk, if any.
func (w *Walker) Err() error {
	return w.err
}

// Pages returns how many pages have been fetched.
func (w *Walker) Pages() int {
	return w.pages
}

// Collect drains the walker into a slice. It returns ErrWalkerFinished if the
// walker was already used.
func (w *Walker) Collect(ctx context.Context) ([]PlaylistItem, error) {
	if w.pages > 0 || w.done || w.err != nil {
		return nil, ErrWalkerFinished
	}
	var items []PlaylistItem
	for w.Next(ctx) {
		items = append(items, w.Item())
	}
	return items, w.Err()
}
