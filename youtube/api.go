package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// DefaultEndpoint is the base URL of the YouTube Data API.
const DefaultEndpoint = "https://youtube.googleapis.com/"

// APIClient implements Client using YouTube Data API v3.
// Authentication is left to the HTTP client's transport, which is expected to
// append the API key to every request.
type APIClient struct {
	service  *ytapi.Service
	httpc    *http.Client
	endpoint string

	// Each list call costs one quota unit.
	quotaUsed atomic.Int64
}

// NewAPIClient creates a YouTube Data API client on top of hc. An empty
// endpoint selects DefaultEndpoint.
func NewAPIClient(ctx context.Context, hc *http.Client, endpoint string) (*APIClient, error) {
	if hc == nil {
		return nil, fmt.Errorf("http client required")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	recording := *hc
	recording.Transport = recordingTransport{base: hc.Transport}

	service, err := ytapi.NewService(ctx, option.WithHTTPClient(&recording), option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &APIClient{
		service:  service,
		httpc:    hc,
		endpoint: endpoint,
	}, nil
}

// PlaylistPage fetches one page of playlistItems.list with part=snippet.
func (a *APIClient) PlaylistPage(ctx context.Context, playlistID, pageToken string, pageSize int64) (*Page, error) {
	const op = "playlistItems.list"

	ctx, rec := withBodyRecorder(ctx)
	resp, err := a.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(pageSize).
		PageToken(pageToken).
		Context(ctx).
		Do()
	a.quotaUsed.Add(1)
	if err != nil {
		return nil, &APIError{Op: op, ID: playlistID, Err: err}
	}
	if err := rec.requireItems(); err != nil {
		return nil, &APIError{Op: op, ID: playlistID, Err: err}
	}

	page := &Page{
		Items:         make([]PlaylistItem, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for i, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			return nil, &APIError{
				Op:  op,
				ID:  playlistID,
				Err: fmt.Errorf("%w: item %d has no snippet.resourceId", ErrMalformedResponse, i),
			}
		}
		page.Items = append(page.Items, PlaylistItem{
			Title:       item.Snippet.Title,
			VideoID:     item.Snippet.ResourceId.VideoId,
			PublishedAt: item.Snippet.PublishedAt,
		})
	}
	return page, nil
}

// VideoStatus fetches videos.list with part=status for one video.
func (a *APIClient) VideoStatus(ctx context.Context, videoID string) (string, bool, error) {
	const op = "videos.list(status)"

	ctx, rec := withBodyRecorder(ctx)
	resp, err := a.service.Videos.List([]string{"status"}).
		Id(videoID).
		Context(ctx).
		Do()
	a.quotaUsed.Add(1)
	if err != nil {
		return "", false, &APIError{Op: op, ID: videoID, Err: err}
	}
	if err := rec.requireItems(); err != nil {
		return "", false, &APIError{Op: op, ID: videoID, Err: err}
	}

	if len(resp.Items) == 0 {
		return "", false, nil
	}
	status := resp.Items[0].Status
	if status == nil {
		return "", false, &APIError{Op: op, ID: videoID, Err: fmt.Errorf("%w: no status", ErrMalformedResponse)}
	}
	return status.PrivacyStatus, true, nil
}

// bodyRecorder holds the raw body of the response to the request whose
// context carries it. The generated list responses decode a missing items key
// as an empty slice, so the raw body is checked separately.
type bodyRecorder struct {
	body []byte
}

type bodyRecorderKey struct{}

func withBodyRecorder(ctx context.Context) (context.Context, *bodyRecorder) {
	rec := &bodyRecorder{}
	return context.WithValue(ctx, bodyRecorderKey{}, rec), rec
}

// requireItems returns ErrMalformedResponse unless the recorded body has an
// items key.
func (r *bodyRecorder) requireItems() error {
	var envelope struct {
		Items *json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(r.body, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if envelope.Items == nil {
		return fmt.Errorf("%w: no items", ErrMalformedResponse)
	}
	return nil
}

// recordingTransport copies response bodies into the request's bodyRecorder.
type recordingTransport struct {
	base http.RoundTripper
}

func (t recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	rec, ok := req.Context().Value(bodyRecorderKey{}).(*bodyRecorder)
	if err != nil || !ok {
		return resp, err
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	rec.body = data
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}

// statisticsResponse is the subset of a videos.list response read by
// VideoStatistics. Items is a pointer so a missing key can be told apart
// from an empty list.
type statisticsResponse struct {
	Items *[]struct {
		Statistics *RawStatistics `json:"statistics"`
	} `json:"items"`
}

// VideoStatistics fetches videos.list with part=statistics for one video.
//
// The generated ytapi.VideoStatistics decodes a hidden like or comment count
// as 0, so this call decodes the response itself to keep absent fields nil.
func (a *APIClient) VideoStatistics(ctx context.Context, videoID string) (*RawStatistics, error) {
	const op = "videos.list(statistics)"

	params := url.Values{
		"part": {"statistics"},
		"id":   {videoID},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint+"youtube/v3/videos?"+params.Encode(), nil)
	if err != nil {
		return nil, &APIError{Op: op, ID: videoID, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := a.httpc.Do(req)
	a.quotaUsed.Add(1)
	if err != nil {
		return nil, &APIError{Op: op, ID: videoID, Err: err}
	}
	defer googleapi.CloseBody(res)

	if err := googleapi.CheckResponse(res); err != nil {
		return nil, &APIError{Op: op, ID: videoID, Err: err}
	}

	var body statisticsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, &APIError{Op: op, ID: videoID, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}
	if body.Items == nil {
		return nil, &APIError{Op: op, ID: videoID, Err: fmt.Errorf("%w: no items", ErrMalformedResponse)}
	}
	if len(*body.Items) == 0 {
		return nil, nil
	}

	stats := (*body.Items)[0].Statistics
	if stats == nil {
		return nil, &APIError{Op: op, ID: videoID, Err: fmt.Errorf("%w: no statistics", ErrMalformedResponse)}
	}
	return stats, nil
}

// QuotaUsed returns the number of quota units consumed so far.
func (a *APIClient) QuotaUsed() int64 {
	return a.quotaUsed.Load()
}
