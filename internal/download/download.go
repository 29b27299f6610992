package download

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/luxgs/eofetch/utils"
)

// FallbackName is used when a URL has no usable final path segment.
const FallbackName = "download.zip"

// Downloader streams ZIP assets to the output directory one at a time.
type Downloader struct {
	Client       *http.Client
	OutputDir    string
	ChunkSize    int
	SkipExisting bool
	UserAgent    string
}

// FileName derives the local file name from the URL's final path segment.
func FileName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return FallbackName
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return FallbackName
	}
	return name
}

// Download streams one URL to disk, reporting progress through pm. Returns
// the destination path and whether the file was skipped because it already
// existed.
func (d *Downloader) Download(rawURL string, pm *ProgressManager) (string, bool, error) {
	log := utils.GetLogger("download")
	if err := os.MkdirAll(d.OutputDir, 0755); err != nil {
		return "", false, fmt.Errorf("error creating output directory: %v", err)
	}
	name := FileName(rawURL)
	dest := filepath.Join(d.OutputDir, name)
	pm.Register(name, -1)

	if d.SkipExisting {
		if _, err := os.Stat(dest); err == nil {
			log.Debug().Str("file", dest).Msg("Skipping existing file")
			pm.Skip(name)
			return dest, true, nil
		}
	}

	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		pm.Fail(name, err)
		return "", false, fmt.Errorf("error creating GET request: %v", err)
	}
	req.Header.Set("User-Agent", d.UserAgent)
	req.Header.Set("Connection", "keep-alive")
	log.Debug().Str("url", rawURL).Msg("Starting download")
	resp, err := d.Client.Do(req)
	if err != nil {
		pm.Fail(name, err)
		return "", false, fmt.Errorf("error executing GET request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		pm.Fail(name, err)
		return "", false, err
	}
	if resp.ContentLength > 0 {
		pm.SetTotal(name, resp.ContentLength)
	}

	outFile, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		pm.Fail(name, err)
		return "", false, fmt.Errorf("error creating output file: %v", err)
	}
	defer outFile.Close()

	buffer := make([]byte, d.ChunkSize)
	var totalDownloaded int64
	for {
		bytesRead, err := resp.Body.Read(buffer)
		if bytesRead > 0 {
			if _, writeErr := outFile.Write(buffer[:bytesRead]); writeErr != nil {
				pm.Fail(name, writeErr)
				return "", false, fmt.Errorf("error writing to output file: %v", writeErr)
			}
			totalDownloaded += int64(bytesRead)
			pm.Update(name, int64(bytesRead))
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			pm.Fail(name, err)
			return "", false, fmt.Errorf("error reading response body: %v", err)
		}
	}
	pm.Complete(name)
	log.Debug().Str("file", dest).Int64("bytes", totalDownloaded).Msg("Download completed")
	return dest, false, nil
}
