// package transport contains implementations to requirements on *message syntaxes*
// defined by http related RFCs.
//
// as of 2022.06, RFCs that were to define HTTP/1.1 (RFC723x) are obsoleted by:
//
//  HTTP Semantics (RFC9110)
//  HTTP Caching (RFC9111) and
//  HTTP/1.1 (RFC9112)
//
// only HTTP/1.1 is spoken here. a request is written as a single prelude
// (request line and header fields) followed by a fixed length or chunked
// payload, see [SendPayload].

package transport
