package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fmueller/distill/internal/platform"
)

// DefaultFileName is the config file looked up in the working directory
// before falling back to the per-user location.
const DefaultFileName = "config.toml"

// Settings is the decoded config.toml.
type Settings struct {
	AWS       AWS       `toml:"aws"`
	Prompt    Prompt    `toml:"prompt"`
	Model     Model     `toml:"model"`
	Anthropic Anthropic `toml:"anthropic"`
}

type AWS struct {
	// S3BucketName is the upload destination. When empty, the CLI requires
	// an explicit --bucket flag.
	S3BucketName string `toml:"s3_bucket_name"`
	// Region is the default client region; bucket-regional clients are
	// derived from the bucket's actual location.
	Region string `toml:"region"`
}

type Prompt struct {
	// Template is prepended to the transcript to form the summarization
	// prompt.
	Template string `toml:"template"`
}

type Model struct {
	ModelID     string  `toml:"model_id"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
	TopP        float64 `toml:"top_p"`
	TopK        int     `toml:"top_k"`
}

type Anthropic struct {
	Version string `toml:"anthropic_version"`
	System  string `toml:"system"`
}

// Load decodes the settings file at path and fills in defaults for model
// parameters that were left out.
func Load(path string) (Settings, error) {
	var settings Settings
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return Settings{}, fmt.Errorf("load config %s: %w", path, err)
	}

	settings.applyDefaults()
	return settings, nil
}

// ResolvePath picks the settings file to load: the explicit override if
// given, else config.toml in the working directory, else the per-user
// config location.
func ResolvePath(override string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}

	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName, nil
	}

	return platform.ResolveConfigPath()
}

func (s *Settings) applyDefaults() {
	if s.AWS.Region == "" {
		s.AWS.Region = "us-east-1"
	}
	if s.Model.ModelID == "" {
		s.Model.ModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	}
	if s.Model.MaxTokens == 0 {
		s.Model.MaxTokens = 2000
	}
	if s.Anthropic.Version == "" {
		s.Anthropic.Version = "bedrock-2023-05-31"
	}
	if s.Prompt.Template == "" {
		s.Prompt.Template = "Summarize the following transcript into one or more clear and readable paragraphs."
	}
}
