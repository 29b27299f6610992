package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/luxgs/eofetch/utils"
)

const (
	DefaultBaseURL   = "https://collgs.lu/catalog/oseo/search"
	DefaultLinkBase  = "https://collgs.lu/"
	DefaultOutputDir = "downloads"
	DefaultUserAgent = "eo-downloader/1.0"
	DefaultTimeout   = 120 // seconds
	DefaultRetries   = 3
	DefaultChunkSize = 65536
)

// SampleFileName is where a sample config is written when no usable config
// is supplied.
const SampleFileName = "sample_config.json"

type Connection struct {
	Timeout   int    `json:"timeout"`
	Retries   int    `json:"retries"`
	UserAgent string `json:"user_agent"`
}

func (c Connection) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

type DownloadOptions struct {
	ChunkSize    int  `json:"chunk_size"`
	SkipExisting bool `json:"skip_existing"`
}

// Mirror configures the optional S3 upload of completed downloads.
type Mirror struct {
	Enabled bool   `json:"enabled"`
	Bucket  string `json:"bucket"`
	Prefix  string `json:"prefix"`
	Region  string `json:"region"`
}

type Config struct {
	BaseURL         string          `json:"base_url"`
	Parameters      map[string]any  `json:"parameters"`
	OutputDirectory string          `json:"output_directory"`
	LinkBase        string          `json:"link_base"`
	Connection      Connection      `json:"connection"`
	DownloadOptions DownloadOptions `json:"download_options"`
	Mirror          *Mirror         `json:"mirror,omitempty"`
}

// Default returns a Config with every documented default applied.
func Default() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		Parameters:      map[string]any{"httpAccept": "json"},
		OutputDirectory: DefaultOutputDir,
		LinkBase:        DefaultLinkBase,
		Connection: Connection{
			Timeout:   DefaultTimeout,
			Retries:   DefaultRetries,
			UserAgent: DefaultUserAgent,
		},
		DownloadOptions: DownloadOptions{
			ChunkSize:    DefaultChunkSize,
			SkipExisting: true,
		},
	}
}

// fileConfig mirrors Config with pointer fields so that explicitly provided
// values, including zero values, are distinguishable from absent keys.
type fileConfig struct {
	BaseURL         *string        `json:"base_url"`
	Parameters      map[string]any `json:"parameters"`
	OutputDirectory *string        `json:"output_directory"`
	LinkBase        *string        `json:"link_base"`
	Connection      *struct {
		Timeout   *int    `json:"timeout"`
		Retries   *int    `json:"retries"`
		UserAgent *string `json:"user_agent"`
	} `json:"connection"`
	DownloadOptions *struct {
		ChunkSize    *int  `json:"chunk_size"`
		SkipExisting *bool `json:"skip_existing"`
	} `json:"download_options"`
	Mirror *Mirror `json:"mirror"`
}

// Load reads a JSON config file and backfills documented defaults for keys
// the file does not set. Parameter values are not validated, malformed
// values travel to the query string verbatim.
func Load(path string) (*Config, error) {
	log := utils.GetLogger("config")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	cfg := Default()
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.Parameters != nil {
		cfg.Parameters = fc.Parameters
		if _, ok := cfg.Parameters["httpAccept"]; !ok {
			cfg.Parameters["httpAccept"] = "json"
		}
	}
	if fc.OutputDirectory != nil {
		cfg.OutputDirectory = *fc.OutputDirectory
	}
	if fc.LinkBase != nil {
		cfg.LinkBase = *fc.LinkBase
	}
	if fc.Connection != nil {
		if fc.Connection.Timeout != nil {
			cfg.Connection.Timeout = *fc.Connection.Timeout
		}
		if fc.Connection.Retries != nil {
			cfg.Connection.Retries = *fc.Connection.Retries
		}
		if fc.Connection.UserAgent != nil {
			cfg.Connection.UserAgent = *fc.Connection.UserAgent
		}
	}
	if fc.DownloadOptions != nil {
		if fc.DownloadOptions.ChunkSize != nil {
			cfg.DownloadOptions.ChunkSize = *fc.DownloadOptions.ChunkSize
		}
		if fc.DownloadOptions.SkipExisting != nil {
			cfg.DownloadOptions.SkipExisting = *fc.DownloadOptions.SkipExisting
		}
	}
	if fc.Mirror != nil {
		cfg.Mirror = fc.Mirror
	}
	log.Debug().Str("file", path).Str("baseURL", cfg.BaseURL).Int("parameters", len(cfg.Parameters)).Msg("Config loaded")
	return cfg, nil
}
