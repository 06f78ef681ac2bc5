// Package cookie keeps the cookies of a request chain and decides which of
// them go out with each request.
//
// A Jar is not safe for concurrent use. It is shared by every hop of a
// redirect chain, which runs on a single goroutine, so callers sharing one
// Jar between concurrent requests must guard it themselves.
package cookie

import (
	"strings"
	"time"

	"github.com/frankli0324/go-fetch/internal/http"
)

type Jar struct {
	cookies []*http.Cookie
}

func NewJar() *Jar {
	return &Jar{}
}

// Add stores c, replacing any cookie with the same name, domain and path.
// A cookie that is already expired removes its counterpart instead.
func (j *Jar) Add(c *http.Cookie) {
	for i, old := range j.cookies {
		if old.Name == c.Name && sameDomain(old.Domain, c.Domain) && old.Path == c.Path {
			j.cookies = append(j.cookies[:i], j.cookies[i+1:]...)
			break
		}
	}
	if expired(c, time.Now()) {
		return
	}
	j.cookies = append(j.cookies, c)
}

// Cookies returns a snapshot of the stored cookies in insertion order.
func (j *Jar) Cookies() []*http.Cookie {
	return append([]*http.Cookie(nil), j.cookies...)
}

func (j *Jar) Len() int {
	return len(j.cookies)
}

func expired(c *http.Cookie, now time.Time) bool {
	if c.MaxAge < 0 {
		return true
	}
	return !c.Expires.IsZero() && c.Expires.Before(now)
}

func sameDomain(a, b string) bool {
	return strings.EqualFold(strings.TrimPrefix(a, "."), strings.TrimPrefix(b, "."))
}
