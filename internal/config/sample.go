package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteSample writes a fully populated sample config with example Sentinel-2
// query values so a first run has something to edit.
func WriteSample(path string) error {
	sample := Config{
		BaseURL: DefaultBaseURL,
		Parameters: map[string]any{
			"parentIdentifier": "S2_MSIL2A",
			"box":              "-73.3533267672645,45.78947623450331,-73.2349231864892,45.879022657149314",
			"timeStart":        "2025-03-01T00:00:00.000Z",
			"timeEnd":          "2025-08-26T00:00:00.000Z",
			"cloudCover":       "[0,49]",
			"httpAccept":       "json",
			"productType":      "S2MSI2A",
			"platform":         "Sentinel-2",
			"orbitDirection":   "ASCENDING",
			"maxRecords":       100,
		},
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
	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding sample config: %v", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("error writing sample config: %v", err)
	}
	return nil
}
