package statelessauth

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/auth0/go-stateless-auth/core"
	"github.com/auth0/go-stateless-auth/token"
)

// Config is the file form of the default wiring.
//
//	secret: ${AUTH_SECRET}
//	expiration:
//	  duration: 30
//	  unit: minutes
//	cookie_path: /
//	success_url: /
type Config struct {
	// Secret signs and verifies tokens. Environment variables are expanded.
	Secret string `yaml:"secret"`

	// Expiration is optional; leave both fields empty for tokens that never
	// expire.
	Expiration ExpirationConfig `yaml:"expiration"`

	// CookiePath defaults to "/".
	CookiePath string `yaml:"cookie_path"`

	// SuccessURL is where a successful login is redirected. Defaults to "/".
	SuccessURL string `yaml:"success_url"`
}

// ExpirationConfig is a duration in a named unit.
type ExpirationConfig struct {
	Duration int64  `yaml:"duration"`
	Unit     string `yaml:"unit"`
}

var units = map[string]time.Duration{
	"nanoseconds":  time.Nanosecond,
	"microseconds": time.Microsecond,
	"milliseconds": time.Millisecond,
	"seconds":      time.Second,
	"minutes":      time.Minute,
	"hours":        time.Hour,
	"days":         24 * time.Hour,
}

// LoadConfig reads and validates the YAML configuration at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewError(core.KindConfiguration, "could not read configuration", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration, expands environment variables in
// the secret, applies defaults and validates the result. Unknown keys are
// rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, core.NewError(core.KindConfiguration, "could not parse configuration", err)
	}

	cfg.Secret = os.ExpandEnv(cfg.Secret)
	if cfg.CookiePath == "" {
		cfg.CookiePath = DefaultCookiePath
	}
	if cfg.SuccessURL == "" {
		cfg.SuccessURL = "/"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first problem with c as a core.KindConfiguration
// error.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return core.Configurationf("secret is required")
	}
	if _, err := c.Expiration.Parse(); err != nil {
		return err
	}
	if !strings.HasPrefix(c.CookiePath, "/") {
		return core.Configurationf("cookie_path %q must start with /", c.CookiePath)
	}
	if c.SuccessURL == "" {
		return core.Configurationf("success_url cannot be empty")
	}
	return nil
}

// Parse converts the configured pair into a token.Expiration.
func (e ExpirationConfig) Parse() (token.Expiration, error) {
	var unit time.Duration
	if e.Unit != "" {
		var ok bool
		unit, ok = units[strings.ToLower(e.Unit)]
		if !ok {
			return token.Expiration{}, core.Configurationf("unknown expiration unit %q", e.Unit)
		}
	}
	return token.NewExpiration(e.Duration, unit)
}

// Stateless is the default wiring for string subjects: the principal name
// of an identity is the token subject.
type Stateless struct {
	Codec          *token.Codec[string]
	Transport      *Transport[string]
	Binder         *Binder[string]
	Middleware     *Middleware
	SuccessHandler *SuccessHandler
}

// FromConfig builds the codec, transport, binder, middleware and success
// handler described by cfg. opts configure the middleware; its logger,
// metrics and error mapper are shared with the codec and the success
// handler.
//
// Example:
//
//	cfg, err := statelessauth.LoadConfig("auth.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	auth, err := statelessauth.FromConfig(cfg, statelessauth.WithLogger(slog.Default()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mux.Handle("/", auth.Middleware.Authenticate(app))
func FromConfig(cfg *Config, opts ...Option) (*Stateless, error) {
	if cfg == nil {
		return nil, core.Configurationf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := newMiddleware(opts)
	if err != nil {
		return nil, err
	}

	expiration, err := cfg.Expiration.Parse()
	if err != nil {
		return nil, err
	}

	codecOpts := []token.Option{}
	if expiration.Enabled() {
		codecOpts = append(codecOpts, token.WithExpiration(int64(expiration.TTL()), time.Nanosecond))
	}
	if m.logger != nil {
		codecOpts = append(codecOpts, token.WithLogger(m.logger))
	}

	codec, err := token.New[string]([]byte(cfg.Secret), codecOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not create token codec: %w", err)
	}

	transport, err := NewTransport[string](codec, WithCookiePath(cfg.CookiePath))
	if err != nil {
		return nil, err
	}

	binder, err := NewBinder(transport, core.DefaultConverter())
	if err != nil {
		return nil, err
	}
	m.binder = binder

	successOpts := []SuccessOption{
		WithSuccessDelegate(RedirectSuccessHandler(cfg.SuccessURL)),
		WithSuccessErrorMapper(m.errorMapper),
		WithSuccessMetrics(m.metrics),
		WithSuccessTracer(m.tracer),
	}
	if m.logger != nil {
		successOpts = append(successOpts, WithSuccessLogger(m.logger))
	}

	success, err := NewSuccessHandler(binder, successOpts...)
	if err != nil {
		return nil, err
	}

	return &Stateless{
		Codec:          codec,
		Transport:      transport,
		Binder:         binder,
		Middleware:     m,
		SuccessHandler: success,
	}, nil
}
