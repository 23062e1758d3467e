package webfinger

import (
	"fmt"
	"net/url"
)

// Request is a WebFinger query: the resource being asked about, the host that is asked, and the link
// relation types the caller is interested in. An empty set of rels asks for every link.
//
// The host is independent of any authority embedded in the resource and is never checked against it.
// Requests are built with NewRequestBuilder and cannot be modified afterwards.
type Request struct {
	resource string
	host     string
	rels     []Rel
}

// Resource returns the resource exactly as it was given to the builder.
func (r Request) Resource() string {
	return r.resource
}

func (r Request) Host() string {
	return r.host
}

// Rels returns the requested relation types in the order they were added.
func (r Request) Rels() []Rel {
	if len(r.rels) == 0 {
		return nil
	}
	rels := make([]Rel, len(r.rels))
	copy(rels, r.rels)
	return rels
}

// HasRel reports whether rel was requested.
func (r Request) HasRel(rel Rel) bool {
	for _, v := range r.rels {
		if v == rel {
			return true
		}
	}
	return false
}

func (r Request) String() string {
	return fmt.Sprintf("webfinger request for %s at %q (rels %v)", r.resource, r.host, r.rels)
}

type RequestBuilder struct {
	resource string
	host     string
	rels     []Rel
}

func NewRequestBuilder(resource string) *RequestBuilder {
	return &RequestBuilder{resource: resource}
}

func (b *RequestBuilder) Host(host string) *RequestBuilder {
	b.host = host
	return b
}

// Rel appends a relation type. Duplicates are kept.
func (b *RequestBuilder) Rel(rel Rel) *RequestBuilder {
	b.rels = append(b.rels, rel)
	return b
}

func (b *RequestBuilder) Rels(rels ...Rel) *RequestBuilder {
	b.rels = append(b.rels, rels...)
	return b
}

// Build validates the request. The resource must be an absolute URI and no rel may be empty. The host
// may still be empty here; it is only required when the request is turned into a URL.
func (b *RequestBuilder) Build() (Request, error) {
	if err := parseResource(b.resource); err != nil {
		return Request{}, err
	}

	var rels []Rel
	if len(b.rels) > 0 {
		rels = make([]Rel, 0, len(b.rels))
	}
	for _, rel := range b.rels {
		if _, err := ParseRel(string(rel)); err != nil {
			return Request{}, err
		}
		rels = append(rels, rel)
	}

	return Request{
		resource: b.resource,
		host:     b.host,
		rels:     rels,
	}, nil
}

func parseResource(resource string) error {
	if resource == "" {
		return fmt.Errorf("%w: empty resource", ErrInvalidResource)
	}
	u, err := url.Parse(resource)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResource, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("%w: %q is not an absolute URI", ErrInvalidResource, resource)
	}
	return nil
}
