package downloader

import (
	"ytnote/internal/config"
	"ytnote/internal/logger"
	"ytnote/pkg/executor"
)

type implDownloader struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Downloader backed by the yt-dlp binary.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Downloader {
	return &implDownloader{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
