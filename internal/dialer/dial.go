package dialer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/frankli0324/go-fetch/internal/http"
	"github.com/frankli0324/go-fetch/internal/transport"
	"golang.org/x/net/idna"
)

var schemes = map[string]string{
	"http": "80", "https": "443",
}

func (d *Connector) Dial(ctx context.Context, u *url.URL, t http.Timeouts) (transport.Stream, error) {
	port, ok := schemes[u.Scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", http.ErrUnknownScheme, u.Scheme)
	}
	host := u.Hostname()
	if p := u.Port(); p != "" {
		port = p
	}
	sock, err := d.connectHost(ctx, host, port, t)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "https" {
		return d.secure(host, sock)
	}
	return transport.NewPlain(sock), nil
}

func (d *Connector) connectHost(ctx context.Context, host, port string, t http.Timeouts) (net.Conn, error) {
	var ips []net.IP
	if ip := net.ParseIP(host); ip != nil {
		ips = []net.IP{ip}
	} else {
		var err error
		if ips, err = d.resolver().LookupIP(ctx, host); err != nil {
			return nil, fmt.Errorf("%w: %v", http.ErrDNSFailed, err)
		}
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("%w: no ip address for %s", http.ErrDNSFailed, host)
	}

	// always the first address, no randomization and no fallback
	addr := net.JoinHostPort(ips[0].String(), port)

	// a zero Timeout is an untimed connect
	dialer := net.Dialer{Timeout: t.Connect, Control: control(t)}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", http.ErrConnectionFailed, err)
	}
	return withTimeouts(conn, t), nil
}

// secure sets up a TLS client session over sock. The handshake is left to
// the first Read or Write on the returned stream.
func (d *Connector) secure(host string, sock net.Conn) (transport.Stream, error) {
	if err := validServerName(host); err != nil {
		sock.Close()
		return nil, fmt.Errorf("%w: invalid TLS name: %s", http.ErrConnectionFailed, host)
	}
	config := &tls.Config{
		RootCAs:    d.RootCAs,
		ServerName: host,
		NextProtos: []string{"http/1.1"},
		MinVersion: tls.VersionTLS12,
	}
	return transport.NewSecure(tls.Client(sock, config), sock), nil
}

func validServerName(host string) error {
	if host == "" {
		return errors.New("empty server name")
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	_, err := idna.Lookup.ToASCII(host)
	return err
}
