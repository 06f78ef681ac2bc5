package dialer

import (
	"context"
	"net"
)

// Resolver turns a hostname into addresses. Only the first one is dialed.
type Resolver interface {
	LookupIP(ctx context.Context, host string) ([]net.IP, error)
}

type ResolveConfig struct {
	CustomDNSServer string
	Network         string            // one of "ip4", "ip6", default is "ip"
	StaticHosts     map[string]string // resembles /etc/hosts
}

func (c *ResolveConfig) Clone() *ResolveConfig {
	if c == nil {
		return nil
	}
	hosts := make(map[string]string, len(c.StaticHosts))
	for k, v := range c.StaticHosts {
		hosts[k] = v
	}
	return &ResolveConfig{
		CustomDNSServer: c.CustomDNSServer,
		Network:         c.Network,
		StaticHosts:     hosts,
	}
}

// this type should not be used outside this file.
// prevents non-custom DNS server contexts to iterate through all keys
type dnsServerCtx struct {
	context.Context
	server string
}

var dnsServerCtxKey = &dnsServerCtx{nil, "dns-server"} // non-nil pointer to any object, definitely unique

func (c dnsServerCtx) Value(key interface{}) interface{} {
	if key == dnsServerCtxKey {
		return c.server
	}
	return c.Context.Value(key)
}

var zeroDialer net.Dialer

var customServerResolver = net.Resolver{
	PreferGo: true,
	Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
		if v, ok := ctx.Value(dnsServerCtxKey).(string); ok && v != "" {
			return zeroDialer.DialContext(ctx, network, v)
		}
		return zeroDialer.DialContext(ctx, network, address)
	},
}

// configResolver resolves with the static hosts table first, then DNS.
type configResolver struct {
	cfg *ResolveConfig
}

func (r *configResolver) LookupIP(ctx context.Context, host string) ([]net.IP, error) {
	if r.cfg == nil {
		return net.DefaultResolver.LookupIP(ctx, "ip", host)
	}
	if static, ok := r.cfg.StaticHosts[host]; ok {
		if ip := net.ParseIP(static); ip != nil {
			return []net.IP{ip}, nil
		}
		host = static
	}
	network := r.cfg.Network
	if network == "" {
		network = "ip"
	}
	if r.cfg.CustomDNSServer == "" {
		return net.DefaultResolver.LookupIP(ctx, network, host)
	}
	return LookupIPServer(ctx, network, host, r.cfg.CustomDNSServer)
}

// LookupIPServer performs DNS lookup for a host on a custom dns server,
// it calls [net.Resolver.LookupIP] with a Go Resolver behind the scenes.
func LookupIPServer(ctx context.Context, network, host, dns string) ([]net.IP, error) {
	return customServerResolver.LookupIP(dnsServerCtx{ctx, dns}, network, host)
}
