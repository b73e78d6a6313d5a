package downloader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"ytnote/internal/errs"
)

// ExtractInfo fetches video metadata via yt-dlp --dump-json.
func (d *implDownloader) ExtractInfo(ctx context.Context, videoURL string) (*VideoInfo, error) {
	if err := ValidateURL(videoURL); err != nil {
		return nil, err
	}

	d.logger.Debug(ctx, "Extracting video info: %s", videoURL)

	out, err := d.executor.Execute(ctx, d.cfg.YtDlp.BinaryPath,
		"--dump-json",
		"--no-download",
		"--no-warnings",
		videoURL,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: yt-dlp extract info: %v", errs.ErrDownload, err)
	}

	var info VideoInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return nil, fmt.Errorf("%w: parse yt-dlp metadata: %v", errs.ErrDownload, err)
	}
	if info.ID == "" {
		// yt-dlp metadata without an id cannot name an output bundle;
		// fall back to the URL itself.
		info.ID = VideoID(videoURL)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("%w: no video id in yt-dlp metadata", errs.ErrDownload)
	}

	return &info, nil
}

// Download fetches the video into destPath as a merged mp4.
func (d *implDownloader) Download(ctx context.Context, videoURL, destPath string) error {
	if err := ValidateURL(videoURL); err != nil {
		return err
	}

	d.logger.Info(ctx, "Downloading video: %s -> %s", videoURL, destPath)

	_, err := d.executor.Execute(ctx, d.cfg.YtDlp.BinaryPath,
		"-f", d.cfg.YtDlp.Format,
		"--merge-output-format", "mp4",
		"--no-warnings",
		"-o", destPath,
		videoURL,
	)
	if err != nil {
		return fmt.Errorf("%w: yt-dlp download: %v", errs.ErrDownload, err)
	}

	d.logger.Info(ctx, "Video downloaded successfully: %s", destPath)
	return nil
}

// ValidateURL rejects anything that is not a syntactically valid YouTube URL.
func ValidateURL(videoURL string) error {
	u, err := url.Parse(videoURL)
	if err != nil {
		return fmt.Errorf("%w: parse url %q: %v", errs.ErrInvalidInput, videoURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", errs.ErrInvalidInput, u.Scheme)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "youtu.be":
		return nil
	}
	return fmt.Errorf("%w: not a YouTube url: %q", errs.ErrInvalidInput, videoURL)
}

// VideoID extracts the stable video identifier from a YouTube URL.
// Returns "" when the URL carries no recognizable id.
func VideoID(videoURL string) string {
	u, err := url.Parse(videoURL)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "youtu.be" {
		return strings.Trim(u.Path, "/")
	}

	if id := u.Query().Get("v"); id != "" {
		return id
	}

	// youtube.com/shorts/<id> and youtube.com/embed/<id>
	for _, prefix := range []string{"/shorts/", "/embed/"} {
		if strings.HasPrefix(u.Path, prefix) {
			rest := strings.TrimPrefix(u.Path, prefix)
			if i := strings.Index(rest, "/"); i >= 0 {
				rest = rest[:i]
			}
			return rest
		}
	}

	return ""
}
