package http

import "strings"

type Field struct {
	Name  string
	Value string
}

// Header keeps fields in insertion order. Names are compared
// case-insensitively but never canonicalized, they are written to the wire
// exactly as given.
type Header []Field

func (h *Header) Add(name, value string) {
	*h = append(*h, Field{name, value})
}

// Get returns the first value associated with name, or "".
func (h Header) Get(name string) string {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

func (h Header) Lookup(name string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

func (h Header) Has(name string) bool {
	_, ok := h.Lookup(name)
	return ok
}

// Values returns every value for name in the order received.
func (h Header) Values(name string) []string {
	var vs []string
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			vs = append(vs, f.Value)
		}
	}
	return vs
}

// Without returns a copy of h with every field matching one of names removed.
func (h Header) Without(names ...string) Header {
	out := make(Header, 0, len(h))
outer:
	for _, f := range h {
		for _, n := range names {
			if strings.EqualFold(f.Name, n) {
				continue outer
			}
		}
		out = append(out, f)
	}
	return out
}

func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	return append(Header(nil), h...)
}
