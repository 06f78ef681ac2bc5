package cookie

import (
	"strings"

	"github.com/frankli0324/go-fetch/internal/http"
	"golang.org/x/net/http/httpguts"
)

// Match renders the cookies in j that should be sent to domain and path as
// one Cookie field each. Cookies that cannot be encoded are left out.
//
// A cookie matches when:
//   - it has a domain, and that domain is a suffix of the request domain
//   - it has no path, or its path is a prefix of the request path
//   - it is not secure, or the request is
func Match(j *Jar, domain, path string, isSecure bool) http.Header {
	if j == nil {
		return nil
	}
	var fields http.Header
	for _, c := range j.cookies {
		if !matches(c, domain, path, isSecure) {
			continue
		}
		nv := &http.Cookie{Name: c.Name, Value: c.Value, Quoted: c.Quoted}
		if nv.Valid() != nil {
			continue
		}
		v := nv.String()
		if v == "" || !httpguts.ValidHeaderFieldValue(v) {
			continue
		}
		fields.Add("Cookie", v)
	}
	return fields
}

func matches(c *http.Cookie, domain, path string, isSecure bool) bool {
	// no domain, no match. even for the host that set it
	cdom := strings.ToLower(strings.TrimPrefix(c.Domain, "."))
	if cdom == "" || !strings.HasSuffix(strings.ToLower(domain), cdom) {
		return false
	}
	// a plain prefix test, not RFC 6265 path-match
	if c.Path != "" && !strings.HasPrefix(path, c.Path) {
		return false
	}
	return !c.Secure || isSecure
}
