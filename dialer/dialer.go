package dialer

import (
	"github.com/frankli0324/go-fetch/internal/dialer"
	"github.com/frankli0324/go-fetch/internal/transport"
)

// Dialers are responsible for creating underlying streams that http requests could
// be written to and responses could be read from, for example opening a raw TCP
// connection, or a TLS session over one.
//
// A Dialer MUST NOT hold active connection states: every Dial returns a new
// connection that is owned by exactly one hop of one request chain, and a
// Dialer must be able to be swapped out from a [Client] without pain. It
// SHOULD hold the connection related configs like [ResolveConfig] or the
// trust anchors.
type Dialer = dialer.Dialer

// Connector is the default implementation of the [Dialer] interface. It would
// be used by a zero value [Client].
type Connector = dialer.Connector

// Stream is what a Dialer returns, either [*Plain] or [*Secure].
type Stream = transport.Stream
type Plain = transport.Plain
type Secure = transport.Secure

// Resolver turns hostnames into addresses for a [Connector].
type Resolver = dialer.Resolver

// we need a dedicated resolver for two scenarios:
//
//  1. to pin hostnames to addresses, like /etc/hosts would
//  2. to customize the DNS server used for resolving hostname
//
// the standard library didn't provide a intuitive way of
// setting DNS server addresses since it only follows the
// system configuration (e.g. /etc/resolv.conf), leaving us only
// one option of using [net.Resolver.Dial] hook with a Go Resolver.
//
// this part of code tries to take advantage of that
// only option as far as possible to provide a relativly
// intuitive configuration API.
type ResolveConfig = dialer.ResolveConfig

var LookupIPServer = dialer.LookupIPServer
