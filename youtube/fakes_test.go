package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// fakePager serves playlist pages from memory, keyed by page token.
type fakePager struct {
	pages  map[string]*Page
	errAt  map[string]error
	tokens []string
}

func (f *fakePager) PlaylistPage(ctx context.Context, playlistID, pageToken string, pageSize int64) (*Page, error) {
	f.tokens = append(f.tokens, pageToken)
	if err, ok := f.errAt[pageToken]; ok {
		return nil, err
	}
	page, ok := f.pages[pageToken]
	if !ok {
		return nil, fmt.Errorf("unexpected page token %q", pageToken)
	}
	cp := *page
	cp.Items = append([]PlaylistItem(nil), page.Items...)
	return &cp, nil
}

// makeItems returns n items whose ids start with prefix.
func makeItems(prefix string, n int) []PlaylistItem {
	items := make([]PlaylistItem, n)
	for i := range items {
		items[i] = PlaylistItem{
			Title:       fmt.Sprintf("%s video %d", prefix, i),
			VideoID:     fmt.Sprintf("%s%02d", prefix, i),
			PublishedAt: "2023-05-01T12:00:00Z",
		}
	}
	return items
}

// fakeVideos answers status and statistics lookups from memory.
type fakeVideos struct {
	mu         sync.Mutex
	status     map[string]string
	stats      map[string]*RawStatistics
	err        error
	statusHits int
	statsHits  int
}

func (f *fakeVideos) VideoStatus(ctx context.Context, videoID string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusHits++
	if f.err != nil {
		return "", false, f.err
	}
	privacy, ok := f.status[videoID]
	return privacy, ok, nil
}

func (f *fakeVideos) VideoStatistics(ctx context.Context, videoID string) (*RawStatistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statsHits++
	if f.err != nil {
		return nil, f.err
	}
	return f.stats[videoID], nil
}

func strPtr(s string) *string { return &s }

// fakeAPI is an httptest handler speaking the subset of the Data API used here.
type fakeAPI struct {
	mu       sync.Mutex
	pages    map[string]fakePage
	status   map[string]string
	stats    map[string]map[string]string
	rawStats map[string]string
	// rawPages and rawStatus override the generated body for a page token
	// or a video ID.
	rawPages  map[string]string
	rawStatus map[string]string
	requests []url.URL
}

type fakePage struct {
	items []map[string]any
	next  string
}

func snippetItem(title, videoID, publishedAt string) map[string]any {
	return map[string]any{
		"kind": "youtube#playlistItem",
		"snippet": map[string]any{
			"title":       title,
			"publishedAt": publishedAt,
			"resourceId": map[string]any{
				"kind":    "youtube#video",
				"videoId": videoID,
			},
		},
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, *r.URL)
	f.mu.Unlock()

	q := r.URL.Query()
	switch r.URL.Path {
	case "/youtube/v3/playlistItems":
		if raw, ok := f.rawPages[q.Get("pageToken")]; ok {
			writeRaw(w, raw)
			return
		}
		page, ok := f.pages[q.Get("pageToken")]
		if !ok {
			writeAPIError(w, http.StatusNotFound, "playlistNotFound")
			return
		}
		items := page.items
		if items == nil {
			items = []map[string]any{}
		}
		resp := map[string]any{
			"kind":  "youtube#playlistItemListResponse",
			"items": items,
		}
		if page.next != "" {
			resp["nextPageToken"] = page.next
		}
		writeJSON(w, resp)

	case "/youtube/v3/videos":
		id := q.Get("id")
		items := []map[string]any{}
		switch q.Get("part") {
		case "status":
			if raw, ok := f.rawStatus[id]; ok {
				writeRaw(w, raw)
				return
			}
			if privacy, ok := f.status[id]; ok {
				items = append(items, map[string]any{
					"id":     id,
					"status": map[string]any{"privacyStatus": privacy},
				})
			}
		case "statistics":
			if raw, ok := f.rawStats[id]; ok {
				writeRaw(w, raw)
				return
			}
			if stats, ok := f.stats[id]; ok {
				items = append(items, map[string]any{"id": id, "statistics": stats})
			}
		default:
			writeAPIError(w, http.StatusBadRequest, "invalidPart")
			return
		}
		writeJSON(w, map[string]any{"kind": "youtube#videoListResponse", "items": items})

	default:
		writeAPIError(w, http.StatusNotFound, "notFound")
	}
}

func (f *fakeAPI) requestsTo(path string) []url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []url.URL
	for _, u := range f.requests {
		if u.Path == path {
			out = append(out, u)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func writeAPIError(w http.ResponseWriter, code int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": reason,
			"errors":  []map[string]any{{"reason": reason, "message": reason}},
		},
	})
}

// newTestAPIClient starts f on an httptest server and returns a client for it.
func newTestAPIClient(t *testing.T, f *fakeAPI) *APIClient {
	t.Helper()
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	client, err := NewAPIClient(context.Background(), server.Client(), server.URL)
	if err != nil {
		t.Fatalf("NewAPIClient() error = %v", err)
	}
	return client
}

var errBoom = errors.New("boom")
