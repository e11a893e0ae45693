package model

import "fmt"

// Format is one rendition of a video.
type Format struct {
	Itag         int
	QualityLabel string // e.g. "360p"; empty for audio-only formats
	AudioBitrate int    // kbps; zero when the format has no audio
	URL          string
	MimeType     string
	HasVideo     bool
	HasAudio     bool

	// Index is the position of the format in the provider's own listing.
	Index int
}

// BitrateLabel formats the audio bitrate as "<n>kbps".
func (f Format) BitrateLabel() string {
	return fmt.Sprintf("%dkbps", f.AudioBitrate)
}

// DisplayQuality returns the video quality label, or the bitrate label for
// formats that have none.
func (f Format) DisplayQuality() string {
	if f.QualityLabel != "" {
		return f.QualityLabel
	}
	return f.BitrateLabel()
}

// MediaType is the kind of file a caller asks to resolve.
type MediaType string

const (
	MediaMP4 MediaType = "mp4"
	MediaMP3 MediaType = "mp3"
)

// DownloadResponse is the API response for GET /download.
type DownloadResponse struct {
	Title         string  `json:"title"`
	VideoID       string  `json:"videoId"`
	Quality       string  `json:"quality"`
	DownloadLink  string  `json:"downloadLink"`
	Thumbnail     *string `json:"thumbnail"`
	LengthSeconds string  `json:"lengthSeconds"`
	Author        string  `json:"author"`
}
