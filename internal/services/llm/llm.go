package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tagwise/internal/config"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMaxTokens   = 256
)

// TextGenerator turns a prompt into free-form text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config captures the runtime settings required to talk to a provider.
type Config struct {
	Provider       config.Provider
	APIKey         string
	Endpoint       string
	Model          string
	TimeoutSeconds int
	Temperature    float64
	MaxTokens      int
}

// ConfigFromAPI converts the file configuration into client settings.
func ConfigFromAPI(api config.APIConfig) Config {
	return Config{
		Provider:       api.Provider,
		APIKey:         api.APIKey,
		Endpoint:       api.Endpoint,
		Model:          api.Model,
		TimeoutSeconds: api.TimeoutSeconds,
		Temperature:    api.Temperature,
		MaxTokens:      api.MaxTokens,
	}
}

// Timeout returns the per-request timeout, falling back to the default when
// TimeoutSeconds is unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds > 0 {
		return time.Duration(c.TimeoutSeconds) * time.Second
	}
	return defaultHTTPTimeout
}

// DefaultHTTPTimeout returns the default timeout used for provider requests.
func DefaultHTTPTimeout() time.Duration {
	return defaultHTTPTimeout
}

// Option customizes a client.
type Option func(*clientBase)

// WithHTTPClient overrides the default HTTP client. The client's own Timeout
// is kept if set.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientBase) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(agent string) Option {
	return func(c *clientBase) {
		c.userAgent = strings.TrimSpace(agent)
	}
}

// New returns the TextGenerator for cfg.Provider. Missing credentials are
// reported by Generate rather than here so a generator can be wired before
// the key is known to be usable.
func New(cfg Config, opts ...Option) (TextGenerator, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = config.ProviderGemini
	}
	info, ok := Lookup(provider)
	if !ok {
		return nil, fmt.Errorf("llm: unsupported provider %q", cfg.Provider)
	}
	cfg.Provider = provider
	base := newClientBase(cfg, info, opts...)
	if provider == config.ProviderGemini {
		return &GeminiClient{clientBase: base}, nil
	}
	return &ChatClient{clientBase: base}, nil
}

// clientBase holds the settings shared by both wire formats.
type clientBase struct {
	cfg        Config
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

func newClientBase(cfg Config, info ProviderInfo, opts ...Option) clientBase {
	timeout := cfg.Timeout()
	c := clientBase{
		cfg: Config{
			Provider:       cfg.Provider,
			APIKey:         strings.TrimSpace(cfg.APIKey),
			Endpoint:       strings.TrimSpace(cfg.Endpoint),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
			Temperature:    cfg.Temperature,
			MaxTokens:      cfg.MaxTokens,
		},
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.cfg.Endpoint == "" {
		c.cfg.Endpoint = info.Endpoint
	}
	if c.cfg.Model == "" {
		c.cfg.Model = info.Model
	}
	if c.cfg.MaxTokens <= 0 {
		c.cfg.MaxTokens = defaultMaxTokens
	}
	return c
}

// Provider reports which provider the client talks to.
func (c *clientBase) Provider() config.Provider { return c.cfg.Provider }

// Model reports the model the client requests.
func (c *clientBase) Model() string { return c.cfg.Model }

func (c *clientBase) checkReady() error {
	if c.cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.cfg.Endpoint == "" {
		return ErrMissingEndpoint
	}
	return nil
}
