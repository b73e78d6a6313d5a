package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"ytnote/internal/bundle"
	"ytnote/internal/config"
	"ytnote/internal/downloader"
	"ytnote/internal/enhancer"
	"ytnote/internal/errs"
	"ytnote/internal/logger"
	"ytnote/internal/screenshot"
	"ytnote/internal/summarizer"
	"ytnote/internal/transcriber"
)

// Pipeline sequences the download -> transcribe -> summarize ->
// screenshot -> enhance stages for a single URL. Each stage persists
// its artifact before the next one starts, and stages whose artifact
// already exists are skipped, so an interrupted run can be resumed.
type Pipeline struct {
	cfg         *config.Config
	downloader  downloader.Downloader
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	selector    screenshot.Selector
	logger      logger.Logger

	// OnInfo, when set, is called once video metadata is known, before
	// the download starts. Used by the CLI to show the info table.
	OnInfo func(info *downloader.VideoInfo)
}

// Result describes a completed run.
type Result struct {
	VideoID     string
	Info        *downloader.VideoInfo
	Stage       Stage
	SummaryPath string
	DocxPath    string
	Screenshots []bundle.Screenshot
	Warnings    []string
}

// New creates a Pipeline from its stage adapters.
func New(cfg *config.Config, dl downloader.Downloader, tr transcriber.Transcriber, sum summarizer.Summarizer, sel screenshot.Selector, log logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		downloader:  dl,
		transcriber: tr,
		summarizer:  sum,
		selector:    sel,
		logger:      log,
	}
}

func fail(stage Stage, err error) (*Result, error) {
	return &Result{Stage: StageFailed}, &StageError{Stage: stage, Err: err}
}

// Run executes the whole pipeline for one URL.
func (p *Pipeline) Run(ctx context.Context, url string) (*Result, error) {
	unlock, err := p.acquireLock()
	if err != nil {
		return fail(StageIdle, err)
	}
	defer unlock()

	// Downloading
	p.logger.Info(ctx, "Extracting video info: %s", url)
	info, err := p.downloader.ExtractInfo(ctx, url)
	if err != nil {
		return fail(StageDownloading, err)
	}
	if p.OnInfo != nil {
		p.OnInfo(info)
	}

	b, err := bundle.Prepare(p.cfg.Paths.Results, info.ID)
	if err != nil {
		return fail(StageDownloading, err)
	}

	result := &Result{
		VideoID:     info.ID,
		Info:        info,
		SummaryPath: b.SummaryPath,
		DocxPath:    b.DocxPath,
	}

	if b.Exists(b.VideoPath) {
		p.logger.Info(ctx, "Video already downloaded, skipping download")
	} else if err := p.downloader.Download(ctx, url, b.VideoPath); err != nil {
		return fail(StageDownloading, err)
	}

	// Transcribing
	segments, err := p.loadOrTranscribe(ctx, b)
	if err != nil {
		return fail(StageTranscribing, err)
	}

	// Summarizing
	summary, err := p.loadOrSummarize(ctx, b, info, segments)
	if err != nil {
		return fail(StageSummarizing, err)
	}

	// Capturing screenshots. Individual frame failures are warnings;
	// only a wholesale failure aborts the run.
	shots, warnings, err := p.loadOrCapture(ctx, b, info, summary, segments)
	if err != nil {
		return fail(StageCapturing, err)
	}
	result.Screenshots = shots
	result.Warnings = warnings

	// Enhancing
	p.logger.Info(ctx, "Merging %d screenshots into the summary", len(shots))
	enhanced := enhancer.Enhance(summary, shots)
	if err := b.WriteText(b.SummaryPath, enhanced); err != nil {
		return fail(StageEnhancing, err)
	}

	if err := summarizer.ExportDocx(info.Title, enhanced, b.DocxPath); err != nil {
		warning := fmt.Sprintf("docx export failed: %v", err)
		p.logger.Warn(ctx, "%s", warning)
		result.Warnings = append(result.Warnings, warning)
		result.DocxPath = ""
	}

	result.Stage = StageDone
	p.logger.Info(ctx, "Summary saved to %s", b.SummaryPath)
	return result, nil
}

// acquireLock takes the results-root lock so that only one invocation
// writes bundles at a time.
func (p *Pipeline) acquireLock() (func(), error) {
	if err := os.MkdirAll(p.cfg.Paths.Results, 0755); err != nil {
		return nil, fmt.Errorf("%w: create results dir: %v", errs.ErrFilesystem, err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.Results, ".ytnote.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: acquire lock: %v", errs.ErrFilesystem, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: another run is already using %s", errs.ErrFilesystem, p.cfg.Paths.Results)
	}
	return func() { _ = lock.Unlock() }, nil
}

func (p *Pipeline) loadOrTranscribe(ctx context.Context, b *bundle.Bundle) ([]transcriber.Segment, error) {
	if b.Exists(b.TranscriptPath) {
		content, err := b.ReadText(b.TranscriptPath)
		if err != nil {
			return nil, err
		}
		if segments := transcriber.ParseTranscript(content); len(segments) > 0 {
			p.logger.Info(ctx, "Transcript already exists, skipping transcription")
			return segments, nil
		}
		p.logger.Warn(ctx, "Existing transcript is unusable, re-transcribing")
	}

	p.logger.Info(ctx, "Transcribing video...")
	segments, err := p.transcriber.Transcribe(ctx, b.VideoPath)
	if err != nil {
		return nil, err
	}

	if err := b.WriteText(b.TranscriptPath, transcriber.FormatSegments(segments)); err != nil {
		return nil, err
	}
	p.logger.Info(ctx, "Transcript saved to %s", b.TranscriptPath)
	return segments, nil
}

func (p *Pipeline) loadOrSummarize(ctx context.Context, b *bundle.Bundle, info *downloader.VideoInfo, segments []transcriber.Segment) (string, error) {
	if b.Exists(b.RawSummaryPath) {
		p.logger.Info(ctx, "Summary already exists, skipping summarization")
		return b.ReadText(b.RawSummaryPath)
	}

	p.logger.Info(ctx, "Generating video summary...")
	summary, err := p.summarizer.Summarize(ctx, info, segments)
	if err != nil {
		return "", err
	}

	if err := b.WriteText(b.RawSummaryPath, summary); err != nil {
		return "", err
	}
	p.logger.Info(ctx, "Summary saved to %s", b.RawSummaryPath)
	return summary, nil
}

func (p *Pipeline) loadOrCapture(ctx context.Context, b *bundle.Bundle, info *downloader.VideoInfo, summary string, segments []transcriber.Segment) ([]bundle.Screenshot, []string, error) {
	existing, err := b.Screenshots()
	if err == nil && len(existing) > 0 {
		p.logger.Info(ctx, "Found %d existing screenshots, skipping capture", len(existing))
		return existing, nil, nil
	}

	p.logger.Info(ctx, "Selecting and capturing screenshots...")
	return p.selector.SelectAndCapture(ctx, b, info, summary, segments)
}
