package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/downloader"
	"github.com/brogergvhs/noveld/internal/providers/generic"
	"github.com/brogergvhs/noveld/internal/ui"
	"github.com/brogergvhs/noveld/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagURL string

	// runtime
	flagOutput     string
	flagTimeout    int
	flagDelayMS    int
	flagMaxPages   int
	flagNoProgress bool

	// headers/decoding
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagEncoding   string
	flagCloudflare bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download [url]",
		Short: "Follow a novel's pages from a start URL and save all chapters into one text file. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVarP(&flagURL, "url", "u", "", "URL of the first chapter page")

	// runtime
	downloadCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output text file (default \"novel.txt\")")
	downloadCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "request timeout in seconds (default 10)")
	downloadCmd.Flags().IntVar(&flagDelayMS, "delay", 0, "pause before every request in milliseconds (default 1000)")
	downloadCmd.Flags().IntVar(&flagMaxPages, "max-pages", 0, "stop after this many pages (0 = no limit)")
	downloadCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "disable the progress line")

	// headers/decoding
	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	downloadCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	downloadCmd.Flags().StringVar(&flagEncoding, "encoding", "", "force page encoding (e.g. gbk), skipping detection")
	downloadCmd.Flags().BoolVar(&flagCloudflare, "cloudflare", false, "use the Cloudflare bypass transport")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	url := flagURL
	if url == "" && len(args) == 1 {
		url = args[0]
	}

	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		NoProgress:   flagNoProgress,
		Output:       flagOutput,
		Timeout:      flagTimeout,
		MaxPages:     flagMaxPages,
		DefaultURL:   url,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		UserAgent:    flagUserAgent,
		Encoding:     flagEncoding,
		Cloudflare:   flagCloudflare,
	})
	if err != nil {
		return err
	}

	// --delay 0 is a valid choice, so it cannot go through the zero-means-unset merge.
	if cmd.Flags().Changed("delay") {
		cfg.DelayMS = max(0, flagDelayMS)
	}

	if cfg.DefaultURL == "" {
		return fmt.Errorf("missing --url and no default_url in config")
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}
	if cfg.Debug {
		fmt.Println("Full config:")
		cfg.Print()
		fmt.Println()
	}

	fmt.Printf("Start:  %s\n", cfg.DefaultURL)
	fmt.Printf("Output: %s\n", cfg.Output)

	start := time.Now()
	stats := ui.Stats{Output: cfg.Output}

	defer func() {
		if r := recover(); r != nil {
			logSvc.Errorf("Unexpected error: %v\n", r)
			stats.Stopped = string(downloader.StopFailed)
		}
		stats.Elapsed = time.Since(start)
		ui.PrintSummary(os.Stdout, stats)
	}()

	if err := download(cfg, logSvc, &stats); err != nil {
		logSvc.Errorf("%v\n", err)
		if stats.Stopped == "" {
			stats.Stopped = string(downloader.StopFailed)
		}
	}

	return nil
}

// download runs one walk and fills stats. Page failures are logged by the
// walker and only show up as the stop reason; other errors are returned.
func download(cfg *config.Config, logSvc *ui.Logger, stats *ui.Stats) error {
	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     cfg.RequestTimeout(),
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		Cloudflare:  cfg.Cloudflare,
		DebugLogger: logSvc,
	})
	if err != nil {
		return err
	}

	sink, err := chapters.NewFileSink(cfg.Output)
	if err != nil {
		return err
	}

	ctx, stop := util.SetupInterruptHandler(context.Background())
	defer stop()

	opts := downloader.Options{
		Delay:    cfg.Delay(),
		MaxPages: cfg.MaxPages,
		Log:      logSvc,
	}

	var pm *ui.MPBProgressManager
	if !cfg.NoProgress {
		pm = ui.NewProgressManager(os.Stdout)
		opts.Progress = pm.Register("Pages")
	}

	scr := generic.NewScraper(client, logSvc, cfg.Encoding)
	sum, walkErr := downloader.New(scr, sink, opts).Run(ctx, cfg.DefaultURL)

	if pm != nil {
		pm.Close()
	}

	stats.Chapters = sum.Chapters
	stats.Pages = sum.Pages
	stats.Bytes = sum.Bytes
	stats.Written = sink.Written()
	stats.Stopped = string(sum.Reason)

	if sum.Reason == downloader.StopInterrupted {
		fmt.Println("Download interrupted, chapters fetched so far were saved.")
	}

	// Page failures were already logged with their URL by the walker.
	var (
		fe *downloader.FetchError
		pe *downloader.PageError
	)
	if errors.As(walkErr, &fe) || errors.As(walkErr, &pe) {
		return nil
	}

	return walkErr
}
