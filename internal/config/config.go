package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/careerwatch/internal/models"
	"github.com/joho/godotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName        = "careerwatch"
	ConfigFileName = "config.json"
	DotEnvFileName = ".env"
)

const (
	DefaultTargetURL    = "https://www.google.com/about/careers/applications/jobs/results?location=United%20States&target_level=MID&target_level=EARLY&employment_type=FULL_TIME&degree=ASSOCIATE&degree=BACHELORS&degree=MASTERS&q=%22Data%22&sort_by=relevance"
	DefaultSelector     = "span.SWhIm"
	DefaultStateFile    = "known_job_count.txt"
	DefaultSMTPServer   = "smtp.gmail.com"
	DefaultSMTPPort     = 587
	DefaultFetchTimeout = 30
	DefaultSMTPTimeout  = 30
)

// Config is built once at startup and handed to every component.
type Config struct {
	TargetURL           string   `json:"target_url"`
	Selector            string   `json:"selector"`
	Pattern             string   `json:"pattern,omitempty"`
	StateFile           string   `json:"state_file"`
	HistoryDB           string   `json:"history_db,omitempty"`
	MetricsFile         string   `json:"metrics_file,omitempty"`
	FetchTimeoutSeconds int      `json:"fetch_timeout_seconds"`
	SMTPTimeoutSeconds  int      `json:"smtp_timeout_seconds"`
	UserAgent           string   `json:"user_agent,omitempty"`
	Proxies             []string `json:"proxies,omitempty"`

	// SMTP settings only come from the environment.
	SMTP SMTPConfig `json:"-"`
}

// SMTPConfig holds the mail relay settings and credentials.
type SMTPConfig struct {
	Server    string `json:"server"`
	Port      int    `json:"port"`
	Sender    string `json:"sender"`
	Password  string `json:"password,omitempty"`
	Recipient string `json:"recipient"`
}

// Missing lists the environment variables that are required to send mail but unset.
func (s SMTPConfig) Missing() []string {
	var missing []string
	if strings.TrimSpace(s.Sender) == "" {
		missing = append(missing, "SENDER_EMAIL")
	}
	if s.Password == "" {
		missing = append(missing, "SENDER_PASSWORD")
	}
	if strings.TrimSpace(s.Recipient) == "" {
		missing = append(missing, "RECIPIENT_EMAIL")
	}
	return missing
}

func (s SMTPConfig) Complete() bool {
	return len(s.Missing()) == 0
}

func DefaultConfig() Config {
	return Config{
		TargetURL:           DefaultTargetURL,
		Selector:            DefaultSelector,
		StateFile:           DefaultStateFile,
		FetchTimeoutSeconds: DefaultFetchTimeout,
		SMTPTimeoutSeconds:  DefaultSMTPTimeout,
		SMTP: SMTPConfig{
			Server: DefaultSMTPServer,
			Port:   DefaultSMTPPort,
		},
	}
}

func (c Config) Target() models.Target {
	return models.Target{URL: c.TargetURL, Selector: c.Selector, Pattern: c.Pattern}
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func (c Config) SMTPTimeout() time.Duration {
	return time.Duration(c.SMTPTimeoutSeconds) * time.Second
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	out := c
	if out.SMTP.Password != "" {
		out.SMTP.Password = "********"
	}
	return out
}

func (c Config) Validate() error {
	var errs []error

	parsed, err := url.Parse(strings.TrimSpace(c.TargetURL))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		errs = append(errs, fmt.Errorf("target_url must be an absolute http(s) URL, got %q", c.TargetURL))
	}
	if strings.TrimSpace(c.Selector) == "" {
		errs = append(errs, errors.New("selector is required"))
	}
	if c.Pattern != "" {
		if _, err := regexp.Compile(c.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("pattern: %w", err))
		}
	}
	if strings.TrimSpace(c.StateFile) == "" {
		errs = append(errs, errors.New("state_file is required"))
	}
	if c.FetchTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("fetch_timeout_seconds must be positive"))
	}
	if c.SMTPTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("smtp_timeout_seconds must be positive"))
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("SMTP_PORT out of range: %d", c.SMTP.Port))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// ResolvePath picks the config file: explicit flag, then CAREERWATCH_CONFIG,
// then the user config dir. explicit is false only for the last case.
func ResolvePath(flagValue string) (path string, explicit bool, err error) {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue, true, nil
	}
	if env := strings.TrimSpace(os.Getenv("CAREERWATCH_CONFIG")); env != "" {
		return env, true, nil
	}
	path, err = ConfigPath()
	return path, false, err
}

// Load builds the effective config: defaults, then the json5 file at path,
// then environment overrides. A missing file is only an error when explicit.
func Load(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if len(strings.TrimSpace(string(data))) > 0 {
				if err := json5.Unmarshal(data, &cfg); err != nil {
					return cfg, fmt.Errorf("parse config %s: %w", path, err)
				}
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DotEnvFileName
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Init writes a default config file at path if none exists yet.
func Init(path string) ([]string, error) {
	var created []string

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return created, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(path, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, path)
	}
	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func applyEnv(cfg *Config) {
	cfg.TargetURL = envString("CAREERWATCH_TARGET_URL", cfg.TargetURL)
	cfg.Selector = envString("CAREERWATCH_SELECTOR", cfg.Selector)
	cfg.Pattern = envString("CAREERWATCH_PATTERN", cfg.Pattern)
	cfg.StateFile = envString("CAREERWATCH_STATE_FILE", cfg.StateFile)
	cfg.HistoryDB = envString("CAREERWATCH_HISTORY_DB", cfg.HistoryDB)
	cfg.MetricsFile = envString("CAREERWATCH_METRICS_FILE", cfg.MetricsFile)
	cfg.UserAgent = envString("CAREERWATCH_USER_AGENT", cfg.UserAgent)
	if env := strings.TrimSpace(os.Getenv("CAREERWATCH_PROXIES")); env != "" {
		cfg.Proxies = splitCSV(env)
	}

	cfg.SMTP.Server = envString("SMTP_SERVER", cfg.SMTP.Server)
	cfg.SMTP.Port = envInt("SMTP_PORT", cfg.SMTP.Port)
	cfg.SMTP.Sender = envString("SENDER_EMAIL", cfg.SMTP.Sender)
	cfg.SMTP.Recipient = envString("RECIPIENT_EMAIL", cfg.SMTP.Recipient)
	// Passwords may legitimately contain surrounding spaces.
	if val := os.Getenv("SENDER_PASSWORD"); val != "" {
		cfg.SMTP.Password = val
	}
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
