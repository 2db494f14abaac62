package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/page-loader/internal/build"
	"github.com/rohmanhakim/page-loader/internal/config"
	"github.com/rohmanhakim/page-loader/internal/metadata"
	"github.com/rohmanhakim/page-loader/internal/mirror"
	"github.com/rohmanhakim/page-loader/pkg/hashutil"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	outputDir string
	logLevel  string
	userAgent string
	timeout   time.Duration
	hashAlgo  string
)

// parseRootURL accepts only absolute http(s) URLs.
func parseRootURL(raw string) (url.URL, error) {
	parsedURL, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, fmt.Errorf("error parsing URL %s: %w", raw, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return url.URL{}, fmt.Errorf("URL %s must start with http:// or https://", raw)
	}
	if parsedURL.Host == "" {
		return url.URL{}, fmt.Errorf("URL %s has no host", raw)
	}
	return *parsedURL, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "page-loader [flags] <url>",
	Short: "Download a web page together with its local resources.",
	Long: `page-loader downloads a single web page into a directory and mirrors the
images, scripts and stylesheets it references from the same host.

The saved page is rewritten so that those references point at the local
copies, which makes it viewable offline. References to other hosts are left
untouched. On success the absolute path of the saved page is printed.`,
	Args:          cobra.ExactArgs(1),
	Version:       build.FullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootURL, err := parseRootURL(args[0])
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
			return err
		}

		cfg, err := InitConfigWithError(rootURL)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
			return err
		}

		indexPagePath, err := runMirror(cmd, cfg)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), indexPagePath)
		return nil
	},
}

// runMirror performs one run and returns the absolute path of the saved page.
// Failures are logged before they are returned.
func runMirror(cmd *cobra.Command, cfg config.Config) (string, error) {
	// Build validated the level already
	level, _ := metadata.ParseLevel(cfg.LogLevel())
	logger := metadata.NewLogger(level, cmd.ErrOrStderr())
	recorder := metadata.NewRecorder(logger)

	m := mirror.NewMirror(cfg, &recorder)
	result, mirrorErr := m.Run(cmd.Context(), cfg.RootURL(), cfg.OutputDir())
	if mirrorErr != nil {
		logger.WithError(mirrorErr).Error("page could not be mirrored")
		return "", mirrorErr
	}

	indexPagePath, err := filepath.Abs(result.IndexPagePath())
	if err != nil {
		logger.WithError(err).Error("cannot resolve saved page path")
		return "", err
	}
	return indexPagePath, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/page-loader.json)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "existing output directory (default: current directory)")
	rootCmd.Flags().StringVarP(&logLevel, "log", "l", metadata.LevelError, "log verbosity: error, warning or debug")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "timeout for each HTTP request (default 30s)")
	rootCmd.Flags().StringVar(&hashAlgo, "hash-algo", "", "hash recorded for saved files: sha256 or blake3 (default sha256)")
}

// InitConfigWithError builds the run configuration for rootURL, returning any errors.
// When a config file is given, the remaining flags are ignored.
func InitConfigWithError(rootURL url.URL) (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile, rootURL)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// Start with default config and apply overrides using method chaining
	configBuilder := config.WithDefault(rootURL)

	// Override with CLI flag values where provided
	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if hashAlgo != "" {
		configBuilder = configBuilder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}

	return configBuilder.Build()
}

// ResetFlags resets all flag variables to their default values.
// This is primarily used for testing.
func ResetFlags() {
	cfgFile = ""
	outputDir = ""
	logLevel = metadata.LevelError
	userAgent = ""
	timeout = 0
	hashAlgo = ""
}

// NewRootCommandForTest returns the root command with its output streams
// redirected, so tests can run it end to end.
func NewRootCommandForTest(stdout, stderr io.Writer, args []string) *cobra.Command {
	// cobra adds these lazily and keeps their parsed values between runs
	for _, name := range []string{"help", "version"} {
		if f := rootCmd.Flags().Lookup(name); f != nil {
			_ = f.Value.Set("false")
		}
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	return rootCmd
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetLogLevelForTest(level string) {
	logLevel = level
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}
