package utils

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LinkEntry is one resolved asset link and the file it maps to, as written
// by the --export flag.
type LinkEntry struct {
	OutputPath string `yaml:"op"`
	URL        string `yaml:"link"`
}

// WriteLinkList writes discovered links as a YAML list so a run can be
// inspected before committing to the downloads.
func WriteLinkList(filePath string, entries []LinkEntry) error {
	log := GetLogger("config")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("error encoding link list: %v", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing link list: %v", err)
	}
	log.Debug().Int("count", len(entries)).Str("file", filePath).Msg("Link list exported")
	return nil
}

// retryTransport retries requests that failed at the connection level. A
// request that produced any HTTP response, success or not, is never resent.
type retryTransport struct {
	base    http.RoundTripper
	retries int
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	for attempt := 0; attempt <= t.retries; attempt++ {
		resp, err = t.base.RoundTrip(req)
		if err == nil {
			return resp, nil
		}
		// Only bodyless GETs pass through here, safe to resend.
	}
	return nil, fmt.Errorf("request failed after %d attempts: %v", t.retries+1, err)
}

func CreateHTTPClient(timeout time.Duration, retries int) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100, // for connection reuse
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  true,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &retryTransport{base: transport, retries: retries},
	}
}

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
