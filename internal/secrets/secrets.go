// Package secrets resolves optional settings from an ordered chain of
// sources. The first source holding a non-empty value wins.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// WebhookKey is the secret-store key holding the webhook URL
const WebhookKey = "make_webhook"

// WebhookEnv is the environment variable consulted after the secret store
const WebhookEnv = "MAKE_WEBHOOK_URL"

var ErrInvalidKey = errors.New("secrets: invalid key")

// Source is one place a setting may come from
type Source interface {
	// Name identifies the source in logs and messages.
	Name() string
	// Lookup returns the value for key. ok is false when the source has none.
	Lookup(ctx context.Context, key string) (value string, ok bool, err error)
}

// --- Secrets file ---

// FileSource reads a TOML secrets file (e.g. .streamlit/secrets.toml style).
// A missing file simply holds no values.
type FileSource struct {
	path string
	v    *viper.Viper
	err  error
}

// NewFileSource loads path eagerly. Parse errors are reported on Lookup.
func NewFileSource(path string) *FileSource {
	s := &FileSource{path: path}
	if path == "" {
		return s
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			s.err = fmt.Errorf("secrets: failed to stat %s: %w", path, err)
		}
		return s
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		s.err = fmt.Errorf("secrets: failed to read %s: %w", path, err)
		return s
	}
	s.v = v
	return s
}

func (s *FileSource) Name() string { return "secrets file " + s.path }

func (s *FileSource) Lookup(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrInvalidKey
	}
	if s.err != nil {
		return "", false, s.err
	}
	if s.v == nil || !s.v.IsSet(key) {
		return "", false, nil
	}
	val := strings.TrimSpace(s.v.GetString(key))
	return val, val != "", nil
}

// --- Environment ---

// EnvSource maps setting keys to environment variables
type EnvSource struct {
	vars map[string]string
}

// NewEnvSource creates an env source. vars maps key -> variable name; keys
// without a mapping are looked up as upper-cased variable names.
func NewEnvSource(vars map[string]string) *EnvSource {
	return &EnvSource{vars: vars}
}

func (s *EnvSource) Name() string { return "env" }

func (s *EnvSource) Lookup(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrInvalidKey
	}
	name, ok := s.vars[key]
	if !ok {
		name = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	}
	val, ok := os.LookupEnv(name)
	val = strings.TrimSpace(val)
	return val, ok && val != "", nil
}

// --- Static values ---

// MapSource serves fixed values; used for tests and overrides
type MapSource map[string]string

func (m MapSource) Name() string { return "static" }

func (m MapSource) Lookup(_ context.Context, key string) (string, bool, error) {
	val, ok := m[key]
	return val, ok && val != "", nil
}

// --- Chain ---

// Chain consults its sources in order
type Chain struct {
	sources []Source
	logger  *zap.Logger
}

// NewChain creates a chain. A nil logger discards lookup errors.
func NewChain(logger *zap.Logger, sources ...Source) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{sources: sources, logger: logger}
}

// Resolve returns the first present value for key and the source it came
// from. A failing source is logged and skipped.
func (c *Chain) Resolve(ctx context.Context, key string) (value, source string, ok bool) {
	for _, s := range c.sources {
		val, found, err := s.Lookup(ctx, key)
		if err != nil {
			c.logger.Warn("secret source lookup failed",
				zap.String("source", s.Name()),
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		if found {
			return val, s.Name(), true
		}
	}
	return "", "", false
}

// WebhookChain is the lookup order for the webhook URL: secrets file key
// make_webhook, then MAKE_WEBHOOK_URL.
func WebhookChain(logger *zap.Logger, secretsPath string) *Chain {
	return NewChain(logger,
		NewFileSource(secretsPath),
		NewEnvSource(map[string]string{WebhookKey: WebhookEnv}),
	)
}
