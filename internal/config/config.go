package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/rohmanhakim/page-loader/internal/build"
	"github.com/rohmanhakim/page-loader/internal/metadata"
	"github.com/rohmanhakim/page-loader/pkg/hashutil"
)

type Config struct {
	//===============
	// Target
	//===============
	// The single page to mirror. Only resources on the same host are downloaded.
	rootURL url.URL

	//===============
	// Fetch
	//===============
	// Maximum time of a single fetch request, the page and every resource alike
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string

	//===============
	// Output
	//===============
	// Existing directory that receives the page and its resource directory
	outputDir string
	// Algorithm used to fingerprint every saved file in the logs
	hashAlgo hashutil.HashAlgo

	//===============
	// Logging
	//===============
	// One of error, warning or debug
	logLevel string
}

type configDTO struct {
	RootURL   string `json:"rootUrl"`
	Timeout   string `json:"timeout,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	OutputDir string `json:"outputDir,omitempty"`
	HashAlgo  string `json:"hashAlgo,omitempty"`
	LogLevel  string `json:"logLevel,omitempty"`
}

func newConfigFromDTO(dto configDTO, rootURL url.URL) (Config, error) {
	// The caller's URL wins; the file only fills in a missing one
	if rootURL.Host == "" && dto.RootURL != "" {
		parsed, err := url.Parse(dto.RootURL)
		if err != nil {
			return Config{}, fmt.Errorf("%w: rootUrl: %s", ErrInvalidConfig, err.Error())
		}
		rootURL = *parsed
	}

	// Start with default config
	cfg := WithDefault(rootURL)

	// Only override what the file provides
	if dto.Timeout != "" {
		timeout, err := time.ParseDuration(dto.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("%w: timeout: %s", ErrInvalidConfig, err.Error())
		}
		cfg.WithTimeout(timeout)
	}
	if dto.UserAgent != "" {
		cfg.WithUserAgent(dto.UserAgent)
	}
	if dto.OutputDir != "" {
		cfg.WithOutputDir(dto.OutputDir)
	}
	if dto.HashAlgo != "" {
		cfg.WithHashAlgo(hashutil.HashAlgo(dto.HashAlgo))
	}
	if dto.LogLevel != "" {
		cfg.WithLogLevel(dto.LogLevel)
	}

	return cfg.Build()
}

// WithConfigFile builds a Config from the JSON file at path. rootURL, when it
// has a host, takes precedence over the file's rootUrl.
func WithConfigFile(path string, rootURL url.URL) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO, rootURL)
}

// WithDefault creates a new Config for rootURL with default values for all other fields.
// rootURL is mandatory: Build fails unless it is an absolute http(s) URL.
func WithDefault(rootURL url.URL) *Config {
	defaultConfig := Config{
		rootURL:   rootURL,
		timeout:   30 * time.Second,
		userAgent: build.DefaultUserAgent(),
		outputDir: ".",
		hashAlgo:  hashutil.HashAlgoSHA256,
		logLevel:  metadata.LevelError,
	}
	return &defaultConfig
}

func (c *Config) WithRootURL(rootURL url.URL) *Config {
	c.rootURL = rootURL
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) Build() (Config, error) {
	if c.rootURL.Scheme != "http" && c.rootURL.Scheme != "https" {
		return Config{}, fmt.Errorf("%w: rootUrl must be an http or https URL, got '%s'", ErrInvalidConfig, c.rootURL.String())
	}
	if c.rootURL.Host == "" {
		return Config{}, fmt.Errorf("%w: rootUrl must have a host", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidConfig, c.timeout)
	}
	if c.outputDir == "" {
		return Config{}, fmt.Errorf("%w: outputDir cannot be empty", ErrInvalidConfig)
	}
	algo, err := hashutil.ParseHashAlgo(string(c.hashAlgo))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	c.hashAlgo = algo
	if _, err := metadata.ParseLevel(c.logLevel); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	return *c, nil
}

func (c Config) RootURL() url.URL {
	return c.rootURL
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) LogLevel() string {
	return c.logLevel
}
