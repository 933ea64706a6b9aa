package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"webdoc/lib/configutil"
	"webdoc/lib/osutil"
	"webdoc/lib/render"
	"webdoc/lib/session"
)

var rootCmd = &cobra.Command{
	Use:   "webdoc",
	Short: "webdoc fetches web pages and runs queries against their parsed HTML.",
}

// Config is the optional webdoc.json5 configuration, searched upward
// from the working directory. Flags override whatever it sets.
type Config struct {
	UserAgent        string        `json:"user_agent"`
	MockBrowser      bool          `json:"mock_browser"`
	TimeoutSeconds   int           `json:"timeout_seconds"`
	CloudflareBypass bool          `json:"cloudflare_bypass"`
	CacheDir         string        `json:"cache_dir"`
	CacheTTLMinutes  int           `json:"cache_ttl_minutes"`
	Browser          BrowserConfig `json:"browser"`
}

type BrowserConfig struct {
	Bin        string `json:"bin"`
	NoHeadless bool   `json:"no_headless"`
}

var (
	flagUserAgent   *string
	flagMockBrowser *bool
	flagTimeout     *time.Duration
	flagCacheDir    *string
	flagCacheTTL    *time.Duration
	flagCloudflare  *bool
	flagBrowserBin  *string
	flagNoHeadless  *bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flagUserAgent = flags.String("user-agent", "", "Override the User-Agent header.")
	flagMockBrowser = flags.Bool("mock-browser", false, "Send a randomized real-browser User-Agent.")
	flagTimeout = flags.Duration("timeout", 0, "Per-request timeout.")
	flagCacheDir = flags.String("cache-dir", "", "Serve repeat fetches from a page cache at this directory.")
	flagCacheTTL = flags.Duration("cache-ttl", 0, "How long cached pages stay fresh.")
	flagCloudflare = flags.Bool("cloudflare-bypass", false, "Install the cloudflare bypass transport.")
	flagBrowserBin = flags.String("browser-bin", "", "Path to the browser binary used when rendering.")
	flagNoHeadless = flags.Bool("no-headless", false, "Show the browser window when rendering.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() Config {
	cfg, err := configutil.ReadRecursively[Config]("webdoc.json5")
	if err != nil && !os.IsNotExist(err) {
		osutil.Fatal("failed to read config", err)
	}
	return cfg
}

func sessionOptions(cfg Config) session.Options {
	opts := session.Options{
		UserAgent:        cfg.UserAgent,
		MockBrowser:      cfg.MockBrowser,
		Timeout:          time.Duration(cfg.TimeoutSeconds) * time.Second,
		CloudflareBypass: cfg.CloudflareBypass,
		CacheDir:         cfg.CacheDir,
		CacheTTL:         time.Duration(cfg.CacheTTLMinutes) * time.Minute,
		Browser: render.BrowserOptions{
			Bin:        cfg.Browser.Bin,
			NoHeadless: cfg.Browser.NoHeadless,
		},
	}

	if *flagUserAgent != "" {
		opts.UserAgent = *flagUserAgent
	}
	if *flagMockBrowser {
		opts.MockBrowser = true
	}
	if *flagTimeout != 0 {
		opts.Timeout = *flagTimeout
	}
	if *flagCacheDir != "" {
		opts.CacheDir = *flagCacheDir
	}
	if *flagCacheTTL != 0 {
		opts.CacheTTL = *flagCacheTTL
	}
	if *flagCloudflare {
		opts.CloudflareBypass = true
	}
	if *flagBrowserBin != "" {
		opts.Browser.Bin = *flagBrowserBin
	}
	if *flagNoHeadless {
		opts.Browser.NoHeadless = true
	}
	return opts
}

func newSession() *session.Session {
	s, err := session.New(sessionOptions(loadConfig()))
	if err != nil {
		osutil.Fatal("failed to create session", err)
	}
	return s
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
