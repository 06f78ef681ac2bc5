package fetch

import (
	"github.com/frankli0324/go-fetch/internal/dialer"
)

type Dialer = dialer.Dialer
type Connector = dialer.Connector

type Resolver = dialer.Resolver
type ResolveConfig = dialer.ResolveConfig
