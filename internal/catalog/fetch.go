package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/luxgs/eofetch/utils"
)

// ErrNotJSON marks a catalog response body that could not be parsed as JSON.
// The CLI maps it to its own exit status.
var ErrNotJSON = errors.New("catalog response is not valid JSON")

// Fetch performs the single catalog search GET and decodes the body. The
// decoded value is an arbitrary JSON tree, shape is not contractual, only
// FindZipLinks looks inside it.
func Fetch(client *http.Client, searchURL string, userAgent string) (any, error) {
	log := utils.GetLogger("catalog")
	req, err := http.NewRequest("GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating search request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	log.Debug().Str("url", searchURL).Msg("Fetching catalog")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing search request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	log.Debug().Int("bytes", len(body)).Msg("Catalog response decoded")
	return payload, nil
}
