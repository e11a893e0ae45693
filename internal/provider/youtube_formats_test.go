package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/mathieu-neron/tubegate/internal/model"
)

func TestToFormat_Capabilities(t *testing.T) {
	tests := []struct {
		name        string
		in          youtube.Format
		wantVideo   bool
		wantAudio   bool
		wantBitrate int
	}{
		{"muxed 360p", youtube.Format{ItagNo: 18, QualityLabel: "360p", MimeType: "video/mp4", AudioChannels: 2}, true, true, 96},
		{"audio m4a", youtube.Format{ItagNo: 140, MimeType: "audio/mp4", AudioChannels: 2}, false, true, 128},
		{"audio opus", youtube.Format{ItagNo: 251, MimeType: "audio/webm", AudioChannels: 2}, false, true, 160},
		{"video only", youtube.Format{ItagNo: 137, QualityLabel: "1080p", MimeType: "video/mp4"}, true, false, 0},
		{"unknown itag with audio", youtube.Format{ItagNo: 600, MimeType: "audio/webm", AudioChannels: 2, AverageBitrate: 70400}, false, true, 70},
		{"unknown itag falls back to bitrate", youtube.Format{ItagNo: 601, MimeType: "audio/webm", AudioChannels: 1, Bitrate: 49600}, false, true, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toFormat(tt.in)
			if got.HasVideo != tt.wantVideo {
				t.Errorf("HasVideo = %v, want %v", got.HasVideo, tt.wantVideo)
			}
			if got.HasAudio != tt.wantAudio {
				t.Errorf("HasAudio = %v, want %v", got.HasAudio, tt.wantAudio)
			}
			if got.AudioBitrate != tt.wantBitrate {
				t.Errorf("AudioBitrate = %d, want %d", got.AudioBitrate, tt.wantBitrate)
			}
			if got.Itag != tt.in.ItagNo || got.MimeType != tt.in.MimeType {
				t.Errorf("itag/mime not copied: %+v", got)
			}
		})
	}
}

func TestNewYouTubeFormats_DefaultClient(t *testing.T) {
	p := NewYouTubeFormats(nil)
	if p.client == nil {
		t.Fatal("expected a default client")
	}
}

// The second format is video-only and carries neither a url nor a
// signatureCipher.
const playerBody = `{
  "playabilityStatus": {"status": "OK", "playableInEmbed": true},
  "videoDetails": {
    "videoId": "dQw4w9WgXcQ", "title": "Sample", "author": "Someone", "lengthSeconds": "213",
    "thumbnail": {"thumbnails": [{"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", "width": 120, "height": 90}]}
  },
  "streamingData": {
    "formats": [
      {"itag": 18, "url": "https://cdn.example/18", "mimeType": "video/mp4", "qualityLabel": "360p", "bitrate": 500000, "audioChannels": 2}
    ],
    "adaptiveFormats": [
      {"itag": 137, "mimeType": "video/mp4", "qualityLabel": "1080p", "bitrate": 400000},
      {"itag": 140, "url": "https://cdn.example/140", "mimeType": "audio/mp4", "bitrate": 130000, "averageBitrate": 128000, "audioChannels": 2}
    ]
  }
}`

// rewriteTransport sends every request to target, keeping path and query.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	r.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func newTestFormats(t *testing.T, handler http.HandlerFunc) *YouTubeFormats {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	return NewYouTubeFormats(&youtube.Client{
		HTTPClient: &http.Client{Transport: rewriteTransport{target: target}},
	})
}

func playerHandler(playerCalls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/youtubei/v1/player"):
			playerCalls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(playerBody))
		case r.Method == http.MethodGet && r.URL.Path == "/":
			// Home page fetched for a visitor id; none is offered.
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}
}

func TestGetFormats_ListsWithoutResolving(t *testing.T) {
	var playerCalls atomic.Int32
	p := newTestFormats(t, playerHandler(&playerCalls))

	info, err := p.GetFormats(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetFormats: %v", err)
	}
	if n := playerCalls.Load(); n != 1 {
		t.Errorf("player calls = %d, want 1", n)
	}
	if info.Title != "Sample" || info.Author != "Someone" || info.Duration != 213*time.Second {
		t.Errorf("metadata = %+v", info)
	}
	if len(info.Thumbnails) != 1 || info.Thumbnails[0].Width != 120 {
		t.Errorf("thumbnails = %+v", info.Thumbnails)
	}
	if len(info.Formats) != 3 {
		t.Fatalf("got %d formats, want 3", len(info.Formats))
	}
	if info.ResolveURL == nil {
		t.Fatal("expected a ResolveURL hook")
	}

	byItag := make(map[int]model.Format)
	for i, f := range info.Formats {
		if f.Index != i {
			t.Errorf("itag %d: Index = %d, want %d", f.Itag, f.Index, i)
		}
		byItag[f.Itag] = f
	}
	if f := byItag[137]; !f.HasVideo || f.HasAudio || f.URL != "" {
		t.Errorf("video-only format = %+v", f)
	}
	if f := byItag[140]; f.HasVideo || !f.HasAudio || f.AudioBitrate != 128 {
		t.Errorf("audio format = %+v", f)
	}
}

func TestGetFormats_ResolveURLReportsMissingCipher(t *testing.T) {
	var playerCalls atomic.Int32
	p := newTestFormats(t, playerHandler(&playerCalls))

	info, err := p.GetFormats(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetFormats: %v", err)
	}
	var videoOnly model.Format
	for _, f := range info.Formats {
		if f.Itag == 137 {
			videoOnly = f
		}
	}

	_, err = info.ResolveURL(context.Background(), videoOnly)
	if !errors.Is(err, youtube.ErrCipherNotFound) {
		t.Fatalf("err = %v, want ErrCipherNotFound", err)
	}
}

func TestGetFormats_ResolveURLRejectsForeignFormat(t *testing.T) {
	var playerCalls atomic.Int32
	p := newTestFormats(t, playerHandler(&playerCalls))

	info, err := p.GetFormats(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetFormats: %v", err)
	}
	if _, err := info.ResolveURL(context.Background(), model.Format{Itag: 22, Index: 7}); err == nil {
		t.Fatal("expected an error for a format the video does not list")
	}
}

func TestGetFormats_PlayerError(t *testing.T) {
	p := newTestFormats(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			_, _ = w.Write([]byte("<html></html>"))
			return
		}
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	if _, err := p.GetFormats(context.Background(), "dQw4w9WgXcQ"); err == nil {
		t.Fatal("expected error from failing player endpoint")
	}
}
