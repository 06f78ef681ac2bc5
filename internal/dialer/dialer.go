package dialer

import (
	"context"
	"crypto/x509"
	"net/url"

	"github.com/frankli0324/go-fetch/internal/http"
	"github.com/frankli0324/go-fetch/internal/transport"
)

// Dialers handle pretty much everything related to the actual connection:
// scheme dispatch, name resolution, timeouts and TLS. Every call to Dial
// opens a new connection, nothing is pooled.
type Dialer interface {
	// Dial returns a connected stream to the host u points to, with t applied.
	Dial(ctx context.Context, u *url.URL, t http.Timeouts) (transport.Stream, error)
}

type Connector struct {
	ResolveConfig *ResolveConfig
	// Resolver overrides the resolver built from ResolveConfig.
	Resolver Resolver

	// RootCAs is the fixed set of trust anchors for every https connection
	// made by this Connector. nil means the system pool.
	RootCAs *x509.CertPool
}

func (d *Connector) Clone() *Connector {
	return &Connector{
		ResolveConfig: d.ResolveConfig.Clone(),
		Resolver:      d.Resolver,
		RootCAs:       d.RootCAs,
	}
}

func (d *Connector) resolver() Resolver {
	if d.Resolver != nil {
		return d.Resolver
	}
	return &configResolver{d.ResolveConfig}
}
