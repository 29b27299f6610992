package download

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/luxgs/eofetch/utils"
)

type ProgressInfo struct {
	Name          string
	TotalSize     int64 // -1 when unknown
	Downloaded    int64
	Completed     bool
	Skipped       bool
	Failure       string
	CompletedSize int64
	StartTime     time.Time
}

// ProgressManager tracks per-file download progress and redraws the status
// lines in place. Downloads are sequential, but the display goroutine reads
// concurrently, so access stays behind the mutex.
type ProgressManager struct {
	progressMap map[string]*ProgressInfo
	mutex       sync.RWMutex
	doneCh      chan struct{}
	numLines    int
	started     time.Time
}

func NewProgressManager() *ProgressManager {
	return &ProgressManager{
		progressMap: make(map[string]*ProgressInfo),
		doneCh:      make(chan struct{}),
		started:     time.Now(),
	}
}

func (pm *ProgressManager) Register(name string, totalSize int64) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.progressMap[name] = &ProgressInfo{
		Name:      name,
		TotalSize: totalSize,
		StartTime: time.Now(),
	}
}

// SetTotal records the size once response headers are in.
func (pm *ProgressManager) SetTotal(name string, totalSize int64) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if info, exists := pm.progressMap[name]; exists {
		info.TotalSize = totalSize
	}
}

func (pm *ProgressManager) Update(name string, bytesDownloaded int64) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if info, exists := pm.progressMap[name]; exists {
		info.Downloaded += bytesDownloaded
	}
}

func (pm *ProgressManager) Complete(name string) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if info, exists := pm.progressMap[name]; exists {
		info.Completed = true
		info.CompletedSize = info.Downloaded
	}
}

func (pm *ProgressManager) Skip(name string) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if info, exists := pm.progressMap[name]; exists {
		info.Completed = true
		info.Skipped = true
	}
}

func (pm *ProgressManager) Fail(name string, err error) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if info, exists := pm.progressMap[name]; exists {
		info.Completed = true
		info.Failure = fmt.Sprintf("%v", err)
	}
}

func (pm *ProgressManager) StartDisplay() {
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pm.updateDisplay()
			case <-pm.doneCh:
				return
			}
		}
	}()
}

func (pm *ProgressManager) Stop() {
	close(pm.doneCh)
}

func (pm *ProgressManager) updateDisplay() {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	if pm.numLines != 0 {
		fmt.Printf("\033[%dA\033[J", pm.numLines)
	}
	names := make([]string, 0, len(pm.progressMap))
	for name := range pm.progressMap {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Println(pm.renderLine(pm.progressMap[name]))
	}
	pm.numLines = len(names)
}

func (pm *ProgressManager) renderLine(info *ProgressInfo) string {
	name := info.Name
	if len(name) > 40 {
		name = "..." + name[len(name)-37:]
	}
	switch {
	case info.Failure != "":
		return utils.FError(fmt.Sprintf("%s %s: %s", utils.StyleSymbols["fail"], name, info.Failure))
	case info.Skipped:
		return utils.FStream(fmt.Sprintf("%s %s: skipped, already exists", utils.StyleSymbols["pass"], name))
	case info.Completed:
		return utils.FSuccess(fmt.Sprintf("%s %s: %s", utils.StyleSymbols["pass"], name, utils.FormatBytes(uint64(info.CompletedSize))))
	case info.TotalSize > 0:
		percent := float64(info.Downloaded) / float64(info.TotalSize)
		return utils.FInfo(fmt.Sprintf("%s %s [%.0f%%] %s/%s", progressBar(percent), name, percent*100,
			utils.FormatBytes(uint64(info.Downloaded)), utils.FormatBytes(uint64(info.TotalSize))))
	default:
		// total size unknown, no percentage attempted
		return utils.FInfo(fmt.Sprintf("%s %s %s", utils.StyleSymbols["arrow"], name, utils.FormatBytes(uint64(info.Downloaded))))
	}
}

func progressBar(percent float64) string {
	const width = 30
	filled := int(percent * width)
	if filled > width {
		filled = width
	}
	bar := "[" + strings.Repeat("=", filled)
	if filled < width {
		bar += ">" + strings.Repeat(" ", width-filled-1)
	}
	return bar + "]"
}

// ShowSummary prints the final state of every file plus batch totals.
func (pm *ProgressManager) ShowSummary() {
	pm.updateDisplay()
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	var totalBytes int64
	for _, info := range pm.progressMap {
		totalBytes += info.CompletedSize
	}
	elapsed := time.Since(pm.started).Seconds()
	fmt.Printf("Total Data: %s, Time Elapsed: %.2fs\n", utils.FormatBytes(uint64(totalBytes)), elapsed)
}
