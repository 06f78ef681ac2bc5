package cookie

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Store parses every Set-Cookie value received from host into j. Values
// without a Domain attribute are scoped to host. Values that don't parse are
// dropped, one bad cookie must not fail the response.
func Store(j *Jar, host string, values []string, log *zap.Logger) {
	if j == nil {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	for _, raw := range values {
		toParse := raw
		if !strings.Contains(strings.ToLower(raw), "domain=") {
			toParse = raw + "; Domain=" + host
		}
		c, err := http.ParseSetCookie(toParse)
		if err != nil {
			log.Debug("dropping unparseable cookie", zap.String("set-cookie", raw), zap.Error(err))
			continue
		}
		if c.Domain == "" { // e.g. "Domain=" with no value
			c.Domain = host
		}
		j.Add(c)
	}
}
