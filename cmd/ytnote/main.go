package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/joho/godotenv"

	"ytnote/internal/config"
	"ytnote/internal/downloader"
	"ytnote/internal/gemini"
	"ytnote/internal/logger"
	"ytnote/internal/pipeline"
	"ytnote/internal/screenshot"
	"ytnote/internal/summarizer"
	"ytnote/internal/transcriber"
	"ytnote/pkg/executor"
)

func main() {
	// Load .env file if it exists; environment variables may also be
	// set manually.
	_ = godotenv.Load()

	urlFlag := flag.String("url", "", "YouTube video URL (prompted for when omitted)")
	configPath := flag.String("config", "config.yaml", "Path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	fmt.Println(colorize(text.Colors{text.Bold, text.FgRed}, "YT Video Note"))
	fmt.Println(strings.Repeat("-", 40))

	url := strings.TrimSpace(*urlFlag)
	if url == "" {
		fmt.Print(colorize(text.Colors{text.FgYellow}, "Please enter a YouTube URL: "))
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			fmt.Fprintln(os.Stderr, "No URL provided")
			os.Exit(1)
		}
		url = strings.TrimSpace(scanner.Text())
	}
	fmt.Println(strings.Repeat("-", 40))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown on interrupt; the current external call aborts
	// via the context and the run fails with the stage named.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupt received, cancelling...")
		cancel()
	}()

	exec := executor.New()
	gem := gemini.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)

	p := pipeline.New(cfg,
		downloader.New(cfg, exec, log),
		transcriber.New(cfg, exec, log),
		summarizer.New(gem, log),
		screenshot.New(cfg, gem, exec, log),
		log,
	)
	p.OnInfo = func(info *downloader.VideoInfo) {
		fmt.Println(renderVideoInfo(info))
	}

	result, err := p.Run(ctx, url)
	if err != nil {
		fmt.Fprintln(os.Stderr, colorize(text.Colors{text.FgRed}, fmt.Sprintf("Pipeline failed in the %v", err)))
		os.Exit(1)
	}

	for _, warning := range result.Warnings {
		fmt.Println(colorize(text.Colors{text.FgYellow}, "Warning: "+warning))
	}

	fmt.Println(strings.Repeat("-", 40))
	fmt.Println(colorize(text.Colors{text.FgGreen}, "Done."))
	fmt.Printf("Summary:     %s\n", result.SummaryPath)
	if result.DocxPath != "" {
		fmt.Printf("Docx:        %s\n", result.DocxPath)
	}
	fmt.Printf("Screenshots: %d\n", len(result.Screenshots))
}
