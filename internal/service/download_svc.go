package service

import (
	"context"
	"strconv"

	"github.com/mathieu-neron/tubegate/internal/model"
	"github.com/mathieu-neron/tubegate/internal/provider"
)

// DefaultQuality is picked for mp4 requests that name no quality.
const DefaultQuality = "360p"

type DownloadService struct {
	provider provider.FormatProvider
}

func NewDownloadService(p provider.FormatProvider) *DownloadService {
	return &DownloadService{provider: p}
}

// Resolve fetches the formats of videoID and returns a direct link to the
// one selected by SelectFormat. Only the selected format is resolved.
func (s *DownloadService) Resolve(ctx context.Context, videoID string, media model.MediaType, quality string) (*model.DownloadResponse, error) {
	if videoID == "" {
		return nil, &ValidationError{Message: "Query parameter 'id' is required"}
	}
	if media != model.MediaMP4 && media != model.MediaMP3 {
		return nil, &ValidationError{Message: "Invalid 'type' parameter, must be 'mp3' or 'mp4'"}
	}

	info, err := s.provider.GetFormats(ctx, videoID)
	if err != nil {
		return nil, &UpstreamError{Op: "get formats", Err: err}
	}

	format, ok := SelectFormat(FilterFormats(info.Formats, media), media, quality)
	if !ok {
		return nil, ErrNotFound
	}

	link := format.URL
	if info.ResolveURL != nil {
		if link, err = info.ResolveURL(ctx, format); err != nil {
			return nil, &UpstreamError{Op: "resolve stream url", Err: err}
		}
	}

	var thumbnail *string
	if len(info.Thumbnails) > 0 {
		u := info.Thumbnails[0].URL
		thumbnail = &u
	}

	return &model.DownloadResponse{
		Title:         info.Title,
		VideoID:       videoID,
		Quality:       format.DisplayQuality(),
		DownloadLink:  link,
		Thumbnail:     thumbnail,
		LengthSeconds: strconv.Itoa(int(info.Duration.Seconds())),
		Author:        info.Author,
	}, nil
}

// FilterFormats keeps muxed video+audio formats for mp4 and audio-only
// formats for mp3, in the order given.
func FilterFormats(formats []model.Format, media model.MediaType) []model.Format {
	out := make([]model.Format, 0, len(formats))
	for _, f := range formats {
		switch media {
		case model.MediaMP4:
			if f.HasVideo && f.HasAudio {
				out = append(out, f)
			}
		case model.MediaMP3:
			if f.HasAudio && !f.HasVideo {
				out = append(out, f)
			}
		}
	}
	return out
}

// SelectFormat picks the first exact quality match, or DefaultQuality when
// quality is empty, falling back to the first candidate. Candidates are not
// re-sorted, so the fallback follows provider order.
func SelectFormat(candidates []model.Format, media model.MediaType, quality string) (model.Format, bool) {
	if len(candidates) == 0 {
		return model.Format{}, false
	}

	match := func(f model.Format) bool { return f.QualityLabel == DefaultQuality }
	if quality != "" {
		if media == model.MediaMP3 {
			match = func(f model.Format) bool { return f.AudioBitrate > 0 && f.BitrateLabel() == quality }
		} else {
			match = func(f model.Format) bool { return f.QualityLabel == quality }
		}
	}

	for _, f := range candidates {
		if match(f) {
			return f, true
		}
	}
	return candidates[0], true
}
