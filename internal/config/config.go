package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ytnote/internal/errs"
)

type Config struct {
	YtDlp       YtDlpConfig       `yaml:"ytdlp"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Paths       PathsConfig       `yaml:"paths"`
	Screenshots ScreenshotsConfig `yaml:"screenshots"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type YtDlpConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Format     string `yaml:"format"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`

	// APIKeys is populated from the environment, never from the file.
	APIKeys []string `yaml:"-"`
}

type PathsConfig struct {
	Results string `yaml:"results"`
}

type ScreenshotsConfig struct {
	MaxCount    int `yaml:"max_count"`
	JPEGQuality int `yaml:"jpeg_quality"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// The 480p mp4 recipe keeps downloads small while staying decodable by
// both whisper audio extraction and ffmpeg frame capture.
const defaultFormat = "bestvideo[ext=mp4][height<=480]+bestaudio[ext=m4a]/best[ext=mp4][height<=480]"

// Load reads the YAML config file, overlays secrets from the environment
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.Gemini.APIKeys = apiKeysFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// apiKeysFromEnv reads GEMINI_API_KEYS (comma separated) or GEMINI_API_KEY.
func apiKeysFromEnv() []string {
	var keys []string
	for _, raw := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if k := strings.TrimSpace(raw); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		if k := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("%w: whisper.model_path is required", errs.ErrConfiguration)
	}
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("%w: Gemini API key is required (set GEMINI_API_KEY or GEMINI_API_KEYS)", errs.ErrConfiguration)
	}

	if c.YtDlp.BinaryPath == "" {
		c.YtDlp.BinaryPath = "yt-dlp"
	}
	if c.YtDlp.Format == "" {
		c.YtDlp.Format = defaultFormat
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Paths.Results == "" {
		c.Paths.Results = "results"
	}
	if c.Screenshots.MaxCount == 0 {
		c.Screenshots.MaxCount = 8
	}
	if c.Screenshots.JPEGQuality == 0 {
		c.Screenshots.JPEGQuality = 5
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
