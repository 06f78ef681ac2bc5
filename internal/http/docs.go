// package http contains the request and response types, which are meant
// to be exported. the package name is meant to be same with the top
// level package name so that IDEs and code editors could pick them up
//
// unlike [net/http.Header], [Header] here is an ordered list of fields,
// since both the request prelude and Set-Cookie processing depend on the
// order headers were given or received in.
package http

import (
	"net/http"
)

// Cookie is the record type stored in cookie jars.
type Cookie = http.Cookie
