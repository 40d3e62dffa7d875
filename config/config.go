// Package config loads apiglot.config.json.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/apiglot/apiglot"
	"github.com/tidwall/gjson"
)

// FileName is the config file looked up in the working directory.
const FileName = "apiglot.config.json"

// Environment variables that override file values.
const (
	EnvAPIKey       = "APIGLOT_API_KEY"
	EnvHost         = "APIGLOT_HOST"
	EnvProjectID    = "APIGLOT_PROJECT_ID"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// Defaults for keys missing from the file.
const (
	DefaultHost           = "https://api.apiglot.com"
	DefaultPagesDir       = "./src/pages"
	DefaultRequestDelayMs = 1000
	DefaultProvider       = "apiglot"
)

// OpenAI configures the openai provider.
type OpenAI struct {
	APIKey  string `json:"apiKey,omitempty"`
	Model   string `json:"model,omitempty"`
	BaseURL string `json:"baseUrl,omitempty"`
}

// Cache configures the project info cache.
type Cache struct {
	RedisURL   string `json:"redisUrl,omitempty"`
	TTLSeconds int    `json:"ttlSeconds,omitempty"`
	KeyPrefix  string `json:"keyPrefix,omitempty"`
}

// Config is the content of apiglot.config.json.
type Config struct {
	ProjectID      string          `json:"projectId"`
	APIKey         string          `json:"apiKey"`
	Host           string          `json:"host,omitempty"`
	PagesDir       string          `json:"pagesDir,omitempty"`
	ExcludedTag    string          `json:"excludedTag,omitempty"`
	RequestDelayMs int             `json:"requestDelayMs"`
	Languages      []string        `json:"languages,omitempty"`
	ProjectInfo    json.RawMessage `json:"projectInfo,omitempty"`
	Provider       string          `json:"provider,omitempty"`
	OpenAI         OpenAI          `json:"openai,omitzero"`
	Cache          Cache           `json:"cache,omitzero"`

	// Found reports whether the values came from a file.
	Found bool `json:"-"`
	// Path is the file the config was loaded from or would be written to.
	Path string `json:"-"`

	// fileValues holds what environment overrides replaced, by variable name.
	fileValues map[string]string
}

// Defaults returns a Config with every default applied.
func Defaults() Config {
	return Config{
		Host:           DefaultHost,
		PagesDir:       DefaultPagesDir,
		ExcludedTag:    apiglot.DefaultExcludedTag,
		RequestDelayMs: DefaultRequestDelayMs,
		Provider:       DefaultProvider,
	}
}

// Load reads FileName from dir. A missing file is not an error: defaults
// are returned with Found false. Unknown keys are rejected. Environment
// variables override file values.
func Load(dir string) (*Config, error) {
	cfg := Defaults()
	cfg.Path = filepath.Join(dir, FileName)

	data, err := os.ReadFile(cfg.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, &apiglot.ConfigError{Field: FileName, Message: "cannot read", Cause: err}
	default:
		if err := checkKeys(data); err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, &apiglot.ConfigError{Field: FileName, Message: "invalid JSON", Cause: err}
		}
		cfg.Found = true
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return &cfg, nil
}

// checkKeys rejects keys that do not match a field name exactly.
// encoding/json would bind "apikey" to apiKey.
func checkKeys(data []byte) error {
	if !gjson.ValidBytes(data) {
		return nil // reported by the decoder
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil
	}
	nested := map[string]reflect.Type{
		"openai": reflect.TypeOf(OpenAI{}),
		"cache":  reflect.TypeOf(Cache{}),
	}

	var err error
	doc.ForEach(func(key, value gjson.Result) bool {
		if !hasKey(reflect.TypeOf(Config{}), key.String()) {
			err = unknownKey(key.String())
			return false
		}
		if t, ok := nested[key.String()]; ok && value.IsObject() {
			value.ForEach(func(k, _ gjson.Result) bool {
				if !hasKey(t, k.String()) {
					err = unknownKey(key.String() + "." + k.String())
					return false
				}
				return true
			})
		}
		return err == nil
	})
	return err
}

func hasKey(t reflect.Type, key string) bool {
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" && name == key {
			return true
		}
	}
	return false
}

func unknownKey(key string) error {
	return &apiglot.ConfigError{Field: FileName, Message: fmt.Sprintf("unknown key %q", key)}
}

func (c *Config) envTargets() map[string]*string {
	return map[string]*string{
		EnvAPIKey:       &c.APIKey,
		EnvHost:         &c.Host,
		EnvProjectID:    &c.ProjectID,
		EnvOpenAIAPIKey: &c.OpenAI.APIKey,
	}
}

func (c *Config) applyEnv() {
	for env, dst := range c.envTargets() {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			if c.fileValues == nil {
				c.fileValues = make(map[string]string)
			}
			c.fileValues[env] = *dst
			*dst = v
		}
	}
}

// withoutEnv returns a copy where values still equal to their environment
// override are put back to what they were before the override.
func (c *Config) withoutEnv() Config {
	out := *c
	for env, dst := range out.envTargets() {
		prev, ok := c.fileValues[env]
		if ok && *dst == strings.TrimSpace(os.Getenv(env)) {
			*dst = prev
		}
	}
	return out
}

// fillDefaults restores defaults a file cleared with empty strings.
func (c *Config) fillDefaults() {
	d := Defaults()
	if strings.TrimSpace(c.Host) == "" {
		c.Host = d.Host
	}
	if strings.TrimSpace(c.PagesDir) == "" {
		c.PagesDir = d.PagesDir
	}
	if strings.TrimSpace(c.ExcludedTag) == "" {
		c.ExcludedTag = d.ExcludedTag
	}
	if c.Provider == "" {
		c.Provider = d.Provider
	}
}

// Validate checks the values remote commands depend on.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return &apiglot.ConfigError{Field: "projectId", Message: "is required (run `apiglot init` or set " + EnvProjectID + ")"}
	}
	if c.APIKey == "" {
		return &apiglot.ConfigError{Field: "apiKey", Message: "is required (run `apiglot init` or set " + EnvAPIKey + ")"}
	}
	if u, err := url.Parse(c.Host); err != nil || u.Scheme == "" || u.Host == "" {
		return &apiglot.ConfigError{Field: "host", Message: fmt.Sprintf("%q is not an absolute URL", c.Host), Cause: err}
	}
	if c.RequestDelayMs < 0 {
		return &apiglot.ConfigError{Field: "requestDelayMs", Message: "must not be negative"}
	}
	if strings.ContainsAny(c.ExcludedTag, "<>/ \t\n") {
		return &apiglot.ConfigError{Field: "excludedTag", Message: fmt.Sprintf("%q is not a tag name", c.ExcludedTag)}
	}
	switch c.Provider {
	case "apiglot":
	case "openai":
		if c.OpenAI.APIKey == "" {
			return &apiglot.ConfigError{Field: "openai.apiKey", Message: "is required by the openai provider (or set " + EnvOpenAIAPIKey + ")"}
		}
	default:
		return &apiglot.ConfigError{Field: "provider", Message: fmt.Sprintf("unknown provider %q", c.Provider)}
	}
	return nil
}

// Write saves c as FileName in dir and returns the written path. The file
// holds the API key, so it is only readable by its owner. Values that came
// from environment variables and were not changed since Load are not saved.
func (c *Config) Write(dir string) (string, error) {
	out := c.withoutEnv()
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	c.Path = path
	c.Found = true
	return path, nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	out := *c
	out.APIKey = mask(c.APIKey)
	out.OpenAI.APIKey = mask(c.OpenAI.APIKey)
	if u, err := url.Parse(c.Cache.RedisURL); err == nil && c.Cache.RedisURL != "" {
		out.Cache.RedisURL = u.Redacted()
	}
	return out
}

func mask(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return strings.Repeat("*", len(secret))
	default:
		return secret[:4] + strings.Repeat("*", len(secret)-4)
	}
}

// RequestDelay is the pause between two translation requests.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMs) * time.Millisecond
}

// Snapshot parses the project info stored by `apiglot init`.
// It returns nil when no snapshot is stored.
func (c *Config) Snapshot() (*apiglot.ProjectInfo, error) {
	if len(bytes.TrimSpace(c.ProjectInfo)) == 0 || string(bytes.TrimSpace(c.ProjectInfo)) == "null" {
		return nil, nil
	}
	info, err := apiglot.ParseProjectInfo(c.ProjectInfo)
	if err != nil {
		return nil, &apiglot.ConfigError{Field: "projectInfo", Message: "invalid snapshot", Cause: err}
	}
	return info, nil
}

// TargetLanguages returns the configured target language codes: the
// languages key when set, otherwise the targets of the stored snapshot.
func (c *Config) TargetLanguages() []string {
	if len(c.Languages) > 0 {
		return c.Languages
	}
	info, err := c.Snapshot()
	if err != nil || info == nil {
		return nil
	}
	codes := make([]string, 0, len(info.TargetLanguages))
	for _, l := range info.TargetLanguages {
		codes = append(codes, l.Code)
	}
	return codes
}
