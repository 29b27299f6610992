package download

import (
	"github.com/google/uuid"
	"github.com/luxgs/eofetch/utils"
)

// Mirrorer uploads a completed download somewhere else, such as an S3
// bucket. Mirror failures are per-file and never stop the batch.
type Mirrorer interface {
	Upload(path string) error
}

type Result struct {
	ID      string
	URL     string
	Path    string
	Skipped bool
	Err     error
}

type Report struct {
	Results []Result
}

func (r Report) FailedCount() int {
	count := 0
	for _, res := range r.Results {
		if res.Err != nil {
			count++
		}
	}
	return count
}

func (r Report) SkippedCount() int {
	count := 0
	for _, res := range r.Results {
		if res.Skipped {
			count++
		}
	}
	return count
}

// RunBatch downloads every URL in order, one at a time. A failed URL is
// reported and the loop moves on, so one bad asset never aborts the rest.
func (d *Downloader) RunBatch(urls []string, pm *ProgressManager, mirror Mirrorer) Report {
	log := utils.GetLogger("batch")
	var report Report
	for _, u := range urls {
		res := Result{ID: uuid.New().String(), URL: u}
		logger := log.With().Str("jobID", res.ID).Str("url", u).Logger()
		logger.Debug().Msg("Starting download job")
		dest, skipped, err := d.Download(u, pm)
		res.Path = dest
		res.Skipped = skipped
		res.Err = err
		if err != nil {
			logger.Error().Err(err).Msg("Download failed")
		} else if !skipped && mirror != nil {
			if err := mirror.Upload(dest); err != nil {
				logger.Error().Err(err).Str("file", dest).Msg("Mirror upload failed")
			}
		}
		report.Results = append(report.Results, res)
	}
	return report
}
