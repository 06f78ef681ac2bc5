// Package config loads client profiles from YAML:
//
//	timeouts:
//	  connect: 5s
//	  read: 30s
//	  write: 30s
//	max_redirects: 5
//	headers:
//	  - User-Agent: go-fetch
//	  - Accept: "*/*"
//	dns:
//	  server: 1.1.1.1:53
//	  network: ip4
//	  hosts:
//	    api.internal: 10.0.0.7
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/frankli0324/go-fetch/internal"
	"github.com/frankli0324/go-fetch/internal/dialer"
	"github.com/frankli0324/go-fetch/internal/http"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Timeouts     Timeouts `yaml:"timeouts"`
	MaxRedirects *int     `yaml:"max_redirects"`
	Headers      []Header `yaml:"headers"`
	DNS          *DNS     `yaml:"dns"`
}

type Timeouts struct {
	Connect time.Duration `yaml:"connect"`
	Read    time.Duration `yaml:"read"`
	Write   time.Duration `yaml:"write"`
}

// Header is a single "name: value" mapping, a list of them keeps order and
// allows repeating a name.
type Header struct {
	Name, Value string
}

func (h *Header) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]string
	if err := node.Decode(&m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("line %d: header entry must have exactly one field, got %d", node.Line, len(m))
	}
	for k, v := range m {
		h.Name, h.Value = k, v
	}
	return nil
}

type DNS struct {
	Server  string            `yaml:"server"`
	Network string            `yaml:"network"`
	Hosts   map[string]string `yaml:"hosts"`
}

// Default returns the profile used when none is given.
func Default() *Config {
	n := internal.DefaultMaxRedirects
	return &Config{MaxRedirects: &n}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a profile, unknown fields are rejected.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.MaxRedirects != nil && *c.MaxRedirects < 0 {
		return fmt.Errorf("max_redirects must not be negative, got %d", *c.MaxRedirects)
	}
	if c.Timeouts.Connect < 0 || c.Timeouts.Read < 0 || c.Timeouts.Write < 0 {
		return errors.New("timeouts must not be negative")
	}
	if c.DNS != nil {
		switch c.DNS.Network {
		case "", "ip", "ip4", "ip6":
		default:
			return fmt.Errorf("dns.network must be one of ip, ip4, ip6, got %q", c.DNS.Network)
		}
	}
	return nil
}

// ClientOptions turns the profile into options for [internal.NewClient].
func (c *Config) ClientOptions() []internal.Option {
	var opts []internal.Option
	if c.MaxRedirects != nil {
		opts = append(opts, internal.WithMaxRedirects(*c.MaxRedirects))
	}
	if c.DNS != nil {
		opts = append(opts, internal.WithDialer(&dialer.Connector{
			ResolveConfig: &dialer.ResolveConfig{
				CustomDNSServer: c.DNS.Server,
				Network:         c.DNS.Network,
				StaticHosts:     c.DNS.Hosts,
			},
		}))
	}
	return opts
}

// Apply fills in what req leaves unset: zero timeouts and the profile
// headers, which go before the request's own.
func (c *Config) Apply(req *http.Request) {
	if req.Timeouts.Connect == 0 {
		req.Timeouts.Connect = c.Timeouts.Connect
	}
	if req.Timeouts.Read == 0 {
		req.Timeouts.Read = c.Timeouts.Read
	}
	if req.Timeouts.Write == 0 {
		req.Timeouts.Write = c.Timeouts.Write
	}
	if len(c.Headers) == 0 {
		return
	}
	h := make(http.Header, 0, len(c.Headers)+len(req.Header))
	for _, f := range c.Headers {
		if req.Header.Has(f.Name) {
			continue
		}
		h.Add(f.Name, f.Value)
	}
	req.Header = append(h, req.Header...)
}
