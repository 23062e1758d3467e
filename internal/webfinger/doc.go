// Package webfinger contains the protocol layer of WebFinger (RFC 7033): the request model and its
// well-known URI, the JSON Resource Descriptor returned by servers, and the extraction of a request
// from the parts of an inbound HTTP request.
//
// Nothing in this package performs I/O. Transports live in the client and wellknown packages.
package webfinger

const (
	// WellKnownPath is the path at which servers expose WebFinger (RFC 7033 section 10.1).
	WellKnownPath = "/.well-known/webfinger"
	// ContentType is the media type of a JRD document.
	ContentType = "application/jrd+json"
)
