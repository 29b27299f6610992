package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luxgs/eofetch/internal/catalog"
	"github.com/luxgs/eofetch/internal/config"
	"github.com/luxgs/eofetch/internal/download"
	"github.com/luxgs/eofetch/internal/mirror"
	"github.com/luxgs/eofetch/utils"
)

var (
	debug      bool
	listOnly   bool
	exportPath string
	userAgent  string
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "eofetch <config_file.json> [output_dir]",
	Short:   "eofetch downloads the ZIP assets found in an EO catalog search result",
	Version: Version,
	Args:    cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
		if code := run(args); code != 0 {
			os.Exit(code)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&listOnly, "list", false, "Print resolved asset URLs without downloading")
	rootCmd.Flags().StringVar(&exportPath, "export", "", "Write resolved asset URLs to a YAML link list")
	rootCmd.Flags().StringVarP(&userAgent, "user-agent", "a", "", "Override the configured user agent")
}

// run is the single place that maps outcomes to process exit codes: 1 for
// usage/config problems, 2 for a non-JSON catalog response, 0 otherwise.
// Per-file download failures never change the exit code.
func run(args []string) int {
	if len(args) < 1 || !strings.HasSuffix(args[0], ".json") {
		utils.PrintError("Usage: eofetch <config_file.json> [output_dir]")
		offerSampleConfig()
		return 1
	}
	configPath := args[0]
	if _, err := os.Stat(configPath); err != nil {
		utils.PrintError(fmt.Sprintf("Config file '%s' not found", configPath))
		offerSampleConfig()
		return 1
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		utils.PrintError(fmt.Sprintf("%v", err))
		return 1
	}
	if len(args) > 1 {
		cfg.OutputDirectory = args[1]
	}
	if userAgent != "" {
		cfg.Connection.UserAgent = userAgent
	}

	searchURL := catalog.BuildSearchURL(cfg.BaseURL, cfg.Parameters)
	utils.PrintInfo("Fetching catalog from: " + searchURL)
	client := utils.CreateHTTPClient(cfg.Connection.TimeoutDuration(), cfg.Connection.Retries)
	payload, err := catalog.Fetch(client, searchURL, cfg.Connection.UserAgent)
	if err != nil {
		if errors.Is(err, catalog.ErrNotJSON) {
			utils.PrintError("The response is not valid JSON. Make sure the URL includes httpAccept=json.")
			return 2
		}
		utils.PrintError(fmt.Sprintf("Catalog request failed: %v", err))
		return 1
	}

	candidates := catalog.FindZipLinks(payload)
	if len(candidates) == 0 {
		utils.PrintWarning("No .zip links found in the catalog response")
		return 0
	}
	urls := resolveAll(cfg.LinkBase, candidates)

	if exportPath != "" {
		entries := make([]utils.LinkEntry, 0, len(urls))
		for _, u := range urls {
			entries = append(entries, utils.LinkEntry{URL: u, OutputPath: download.FileName(u)})
		}
		if err := utils.WriteLinkList(exportPath, entries); err != nil {
			utils.PrintError(fmt.Sprintf("%v", err))
			return 1
		}
		utils.PrintSuccess("Link list written to " + exportPath)
	}
	if listOnly {
		for _, u := range urls {
			utils.PrintDetail(u)
		}
		return 0
	}

	utils.PrintSuccess(fmt.Sprintf("Found %d ZIP file(s). Starting downloads to: %s", len(urls), cfg.OutputDirectory))
	downloader := &download.Downloader{
		Client:       utils.CreateHTTPClient(cfg.Connection.TimeoutDuration(), cfg.Connection.Retries),
		OutputDir:    cfg.OutputDirectory,
		ChunkSize:    cfg.DownloadOptions.ChunkSize,
		SkipExisting: cfg.DownloadOptions.SkipExisting,
		UserAgent:    cfg.Connection.UserAgent,
	}
	var m download.Mirrorer
	if cfg.Mirror != nil && cfg.Mirror.Enabled {
		uploader, err := mirror.NewUploader(cfg.Mirror.Bucket, cfg.Mirror.Prefix, cfg.Mirror.Region)
		if err != nil {
			utils.PrintWarning(fmt.Sprintf("Mirror disabled: %v", err))
		} else {
			m = uploader
		}
	}

	pm := download.NewProgressManager()
	pm.StartDisplay()
	report := downloader.RunBatch(urls, pm, m)
	pm.Stop()
	pm.ShowSummary()

	if failed := report.FailedCount(); failed > 0 {
		utils.PrintWarning(fmt.Sprintf("%d of %d download(s) failed", failed, len(report.Results)))
	} else {
		utils.PrintSuccess("All downloads completed")
	}
	return 0
}

// resolveAll maps candidates through relative-URL resolution, dedupes again
// since two candidates can resolve to the same URL, and sorts the result for
// a deterministic processing order.
func resolveAll(base string, candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		seen[catalog.ResolveURL(base, c)] = struct{}{}
	}
	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

func offerSampleConfig() {
	if _, err := os.Stat(config.SampleFileName); err == nil {
		utils.PrintInfo("Sample config already exists: " + config.SampleFileName)
		return
	}
	if err := config.WriteSample(config.SampleFileName); err != nil {
		utils.PrintError(fmt.Sprintf("%v", err))
		return
	}
	utils.PrintInfo("Created a sample config file '" + config.SampleFileName + "'")
	utils.PrintInfo("Edit it and run again with: eofetch " + config.SampleFileName)
}
