// Package youtube walks YouTube playlists and enriches their items with
// visibility and statistics from the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
)

// Sentinel errors for playlist operations.
var (
	ErrMalformedResponse = errors.New("youtube: malformed response")
	ErrWalkerFinished    = errors.New("youtube: walker already finished")
)

// DefaultPageSize is the number of playlist items requested per page.
const DefaultPageSize = 25

// PrivacyPublic is the only privacy status that makes a video reportable.
const PrivacyPublic = "public"

// DefaultUnavailable stands in for like/comment counts hidden by the uploader.
const DefaultUnavailable = "Não disponível"

// PageFetcher fetches one page of a playlist listing.
type PageFetcher interface {
	// PlaylistPage returns the items of the page identified by pageToken.
	// An empty token requests the first page.
	PlaylistPage(ctx context.Context, playlistID, pageToken string, pageSize int64) (*Page, error)
}

// VideoSource looks up per-video resources.
type VideoSource interface {
	// VideoStatus returns the privacy status of a video. found is false when
	// the API returned no item for the id.
	VideoStatus(ctx context.Context, videoID string) (privacy string, found bool, err error)

	// VideoStatistics returns the raw statistics of a video, or nil when the
	// API returned no item for the id.
	VideoStatistics(ctx context.Context, videoID string) (*RawStatistics, error)
}

// Client is everything the report pipeline needs from the API.
type Client interface {
	PageFetcher
	VideoSource
}

// Page is one page of a playlist listing.
type Page struct {
	Items         []PlaylistItem
	NextPageToken string
}

// PlaylistItem is a video reference read from a playlist page.
type PlaylistItem struct {
	// Position is the zero-based index of the item in walk order.
	Position int `json:"position"`

	// Title is the video title as shown in the playlist.
	Title string `json:"title"`

	// VideoID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	VideoID string `json:"video_id"`

	// PublishedAt is the snippet timestamp, kept exactly as the API sent it.
	PublishedAt string `json:"published_at"`
}

// RawStatistics mirrors the statistics object of a videos resource. Nil
// fields were absent from the response.
type RawStatistics struct {
	ViewCount    *string `json:"viewCount"`
	LikeCount    *string `json:"likeCount"`
	CommentCount *string `json:"commentCount"`
}

// Stats are the counters reported for a video. Values are carried as the API
// returned them, without numeric parsing.
type Stats struct {
	Views    string `json:"views"`
	Likes    string `json:"likes"`
	Comments string `json:"comments"`

	// Absent is set when the statistics lookup found no video; all counters
	// are then empty.
	Absent bool `json:"absent,omitempty"`
}

// Video is a public playlist item joined with its statistics.
type Video struct {
	PlaylistItem
	Stats Stats `json:"stats"`
}

// APIError wraps API failures with the operation and resource involved.
// Use errors.As() to extract it:
//
//	var apiErr *youtube.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s %s failed: %v\n", apiErr.Op, apiErr.ID, apiErr.Err)
//	}
type APIError struct {
	// Op is the API method, e.g. "playlistItems.list".
	Op string
	// ID is the playlist or video ID the call was about.
	ID string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the API error.
func (e *APIError) Error() string {
	return "youtube: " + e.Op + " " + e.ID + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *APIError) Unwrap() error { return e.Err }
