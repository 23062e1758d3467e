package webfinger

import (
	"fmt"
	"net/url"
	"strings"
)

// Extract rebuilds a Request from the parts of an inbound request. The host is the authority of the
// request URI if there is one, otherwise the Host header. resource must appear exactly once.
//
// The query is parsed by hand: WebFinger repeats the rel key once per relation type, and values are
// decoded as RFC 3986 escapes, so '+' stays a plus sign.
func Extract(authority, hostHeader, rawQuery string) (Request, error) {
	var (
		resource    string
		hasResource bool
		rels        []Rel
	)

	for _, param := range strings.Split(rawQuery, "&") {
		if param == "" {
			continue
		}
		key, value, _ := strings.Cut(param, "=")
		key, err := url.PathUnescape(key)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %w", ErrInvalidQueryString, err)
		}
		if key != "resource" && key != "rel" {
			continue
		}
		value, err = url.PathUnescape(value)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %s: %w", ErrInvalidQueryString, key, err)
		}

		switch key {
		case "resource":
			if hasResource {
				return Request{}, fmt.Errorf("%w: duplicate resource", ErrInvalidQueryString)
			}
			resource, hasResource = value, true
		case "rel":
			if value == "" {
				return Request{}, fmt.Errorf("%w: empty rel", ErrInvalidQueryString)
			}
			rels = append(rels, Rel(value))
		}
	}

	if !hasResource {
		return Request{}, fmt.Errorf("%w: missing resource", ErrInvalidQueryString)
	}

	host := authority
	if host == "" {
		host = hostHeader
	}
	if host == "" {
		return Request{}, ErrMissingHost
	}

	return NewRequestBuilder(resource).Host(host).Rels(rels...).Build()
}
