package provider

import (
	"context"
	"fmt"
	"math"

	"github.com/kkdai/youtube/v2"

	"github.com/mathieu-neron/tubegate/internal/model"
)

// audioBitrates maps well-known itags to their audio bitrate in kbps.
var audioBitrates = map[int]int{
	17: 24, 18: 96, 22: 192, 36: 38, 43: 128,
	91: 48, 92: 48, 93: 128, 94: 128, 95: 256, 96: 256,
	139: 48, 140: 128, 141: 256, 171: 128, 172: 192,
	249: 48, 250: 64, 251: 160,
}

// YouTubeFormats lists video formats through github.com/kkdai/youtube.
type YouTubeFormats struct {
	client *youtube.Client
}

// NewYouTubeFormats wraps client; a nil client gets the library defaults.
func NewYouTubeFormats(client *youtube.Client) *YouTubeFormats {
	if client == nil {
		client = &youtube.Client{}
	}
	return &YouTubeFormats{client: client}
}

// GetFormats fetches the video and lists its formats. Stream URLs are left
// to info.ResolveURL, since deciphering runs the player script and some
// formats carry neither a URL nor a cipher.
func (p *YouTubeFormats) GetFormats(ctx context.Context, videoID string) (*model.VideoInfo, error) {
	video, err := p.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", videoID, err)
	}

	info := &model.VideoInfo{
		ID:         video.ID,
		Title:      video.Title,
		Author:     video.Author,
		Duration:   video.Duration,
		Thumbnails: make([]model.Thumbnail, 0, len(video.Thumbnails)),
		Formats:    make([]model.Format, 0, len(video.Formats)),
	}
	for _, t := range video.Thumbnails {
		info.Thumbnails = append(info.Thumbnails, model.Thumbnail{URL: t.URL, Width: t.Width, Height: t.Height})
	}
	for i, f := range video.Formats {
		format := toFormat(f)
		format.Index = i
		info.Formats = append(info.Formats, format)
	}
	info.ResolveURL = func(ctx context.Context, f model.Format) (string, error) {
		return p.streamURL(ctx, video, f)
	}
	return info, nil
}

// streamURL deciphers the link of f, located by its index in video.Formats.
func (p *YouTubeFormats) streamURL(ctx context.Context, video *youtube.Video, f model.Format) (string, error) {
	if f.Index < 0 || f.Index >= len(video.Formats) || video.Formats[f.Index].ItagNo != f.Itag {
		return "", fmt.Errorf("itag %d not listed for %s", f.Itag, video.ID)
	}
	u, err := p.client.GetStreamURLContext(ctx, video, &video.Formats[f.Index])
	if err != nil {
		return "", fmt.Errorf("resolve itag %d: %w", f.Itag, err)
	}
	return u, nil
}

func toFormat(f youtube.Format) model.Format {
	bitrate := audioBitrate(f)
	return model.Format{
		Itag:         f.ItagNo,
		QualityLabel: f.QualityLabel,
		AudioBitrate: bitrate,
		URL:          f.URL,
		MimeType:     f.MimeType,
		HasVideo:     f.QualityLabel != "",
		HasAudio:     bitrate > 0,
	}
}

// audioBitrate looks the itag up first; unknown itags carrying audio fall
// back to the reported average bitrate.
func audioBitrate(f youtube.Format) int {
	if kbps, ok := audioBitrates[f.ItagNo]; ok {
		return kbps
	}
	if f.AudioChannels == 0 {
		return 0
	}
	bps := f.AverageBitrate
	if bps == 0 {
		bps = f.Bitrate
	}
	return int(math.Round(float64(bps) / 1000))
}
