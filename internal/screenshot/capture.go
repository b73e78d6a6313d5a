package screenshot

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"ytnote/internal/errs"
)

// capture grabs a single JPEG frame at the given timestamp via ffmpeg,
// piping the image through stdout.
func (s *implSelector) capture(ctx context.Context, videoPath string, seconds, duration float64) ([]byte, error) {
	if duration > 0 && seconds > duration {
		return nil, fmt.Errorf("%w: timestamp %.2fs exceeds video duration %.2fs", errs.ErrCapture, seconds, duration)
	}

	args := []string{
		"-ss", strconv.FormatFloat(seconds, 'f', 2, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"-q:v", strconv.Itoa(s.cfg.Screenshots.JPEGQuality),
		"pipe:1",
	}

	out, err := s.executor.ExecuteRaw(ctx, s.cfg.FFmpeg.BinaryPath, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg frame at %.2fs: %v", errs.ErrCapture, seconds, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: ffmpeg produced no frame at %.2fs", errs.ErrCapture, seconds)
	}

	return out, nil
}

func writeImage(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: write image %s: %v", errs.ErrCapture, path, err)
	}
	return nil
}
