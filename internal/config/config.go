package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output     string `yaml:"output"`
	Timeout    int    `yaml:"timeout"`
	DelayMS    int    `yaml:"delay_ms"`
	MaxPages   int    `yaml:"max_pages"`
	Debug      bool   `yaml:"debug"`
	NoProgress bool   `yaml:"no_progress"`

	DefaultURL string `yaml:"default_url"`

	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`
	Encoding   string `yaml:"encoding"`
	Cloudflare bool   `yaml:"cloudflare"`
}

// Options carries CLI values; zero values mean "not set" and keep the
// profile value.
type Options struct {
	IgnoreConfig bool
	Debug        bool
	NoProgress   bool
	Output       string
	Timeout      int
	DelayMS      int
	MaxPages     int
	DefaultURL   string
	Cookie       string
	CookieFile   string
	UserAgent    string
	Encoding     string
	Cloudflare   bool
}

const (
	DefaultOutput  = "novel.txt"
	DefaultTimeout = 10
	DefaultDelayMS = 1000
)

func DefaultConfig() *Config {
	return &Config{
		Output:     DefaultOutput,
		Timeout:    DefaultTimeout,
		DelayMS:    DefaultDelayMS,
		MaxPages:   0,
		Debug:      false,
		NoProgress: false,
		DefaultURL: "",
		Cookie:     "",
		CookieFile: "",
		UserAgent:  "",
		Encoding:   "",
		Cloudflare: false,
	}
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// CheckFile reports whether path holds a config that loads and carries
// sane values.
func CheckFile(path string) error {
	c, err := loadYAML(path)
	if err != nil {
		return err
	}
	if c.Timeout < 0 || c.DelayMS < 0 || c.MaxPages < 0 {
		return fmt.Errorf("timeout, delay_ms and max_pages must not be negative")
	}
	return nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `noveld config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.DelayMS != 0 {
		c.DelayMS = o.DelayMS
	}
	if o.MaxPages != 0 {
		c.MaxPages = o.MaxPages
	}
	if o.Debug {
		c.Debug = true
	}
	if o.NoProgress {
		c.NoProgress = true
	}
	if o.DefaultURL != "" {
		c.DefaultURL = o.DefaultURL
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Encoding != "" {
		c.Encoding = o.Encoding
	}
	if o.Cloudflare {
		c.Cloudflare = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.DelayMS < 0 {
		c.DelayMS = 0
	}
	if c.MaxPages < 0 {
		c.MaxPages = 0
	}
}

func (c *Config) Print() {
	fmt.Printf(" -output: %s\n", c.Output)
	fmt.Printf(" -timeout: %ds\n", c.Timeout)
	fmt.Printf(" -delay_ms: %d\n", c.DelayMS)
	if c.MaxPages > 0 {
		fmt.Printf(" -max_pages: %d\n", c.MaxPages)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.NoProgress {
		fmt.Printf(" -no_progress: %t\n", c.NoProgress)
	}
	if c.DefaultURL != "" {
		fmt.Printf(" -url: %s\n", c.DefaultURL)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.Encoding != "" {
		fmt.Printf(" -encoding: %s\n", c.Encoding)
	}
	if c.Cloudflare {
		fmt.Printf(" -cloudflare: %t\n", c.Cloudflare)
	}
}
