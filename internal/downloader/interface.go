package downloader

import "context"

// Downloader wraps the external video download service.
type Downloader interface {
	// ExtractInfo fetches video metadata without downloading media.
	ExtractInfo(ctx context.Context, url string) (*VideoInfo, error)

	// Download fetches the video and writes it to destPath.
	Download(ctx context.Context, url, destPath string) error
}

// VideoInfo is the subset of yt-dlp metadata the pipeline uses.
type VideoInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Channel     string   `json:"channel"`
	WebpageURL  string   `json:"webpage_url"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Duration    float64  `json:"duration"`
	ViewCount   int64    `json:"view_count"`
	LikeCount   int64    `json:"like_count"`
}
