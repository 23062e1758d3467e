package webfinger

import (
	"fmt"
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// shouldEscape reports whether c is percent-encoded in a query value. The set is the controls and the
// characters RFC 3986 excludes from a query, plus '=' and '&' which delimit WebFinger parameters.
// '@', ':', '?' and '/' are left alone so URIs match the examples of RFC 7033.
func shouldEscape(c byte) bool {
	if c < 0x20 || c >= 0x7F {
		return true
	}
	switch c {
	case ' ', '"', '#', '<', '>', '[', '\\', ']', '^', '`', '{', '|', '}', '=', '&':
		return true
	}
	return false
}

// PercentEncode escapes s for use as a resource or rel value in a WebFinger query string.
func PercentEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// RawQuery returns the encoded query string, without the leading '?'.
func (r Request) RawQuery() string {
	var b strings.Builder
	b.WriteString("resource=")
	b.WriteString(PercentEncode(r.resource))
	for _, rel := range r.rels {
		b.WriteString("&rel=")
		b.WriteString(PercentEncode(string(rel)))
	}
	return b.String()
}

// PathAndQuery returns the well-known path followed by the encoded query, e.g.
// "/.well-known/webfinger?resource=acct:carol@example.com".
func (r Request) PathAndQuery() string {
	return WellKnownPath + "?" + r.RawQuery()
}

// URL returns the full https URL of the request. HTTPS is mandatory in RFC 7033, so the scheme is not
// configurable.
func (r Request) URL() (*url.URL, error) {
	if err := ValidateAuthority(r.host); err != nil {
		return nil, err
	}
	return &url.URL{
		Scheme:   "https",
		Host:     r.host,
		Path:     WellKnownPath,
		RawQuery: r.RawQuery(),
	}, nil
}

// URI is the string form of URL.
func (r Request) URI() (string, error) {
	u, err := r.URL()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// ValidateAuthority checks that host is a bare host[:port], with no userinfo, path, query or fragment.
func ValidateAuthority(host string) error {
	if host == "" {
		return fmt.Errorf("%w: empty host", ErrInvalidAuthority)
	}
	u, err := url.Parse("https://" + host)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAuthority, err)
	}
	switch {
	case u.User != nil, u.Path != "", u.RawQuery != "", u.Fragment != "", u.ForceQuery, u.Host != host:
		return fmt.Errorf("%w: %q is not a host[:port]", ErrInvalidAuthority, host)
	case u.Hostname() == "":
		return fmt.Errorf("%w: %q has no host name", ErrInvalidAuthority, host)
	case strings.HasSuffix(host, ":"):
		return fmt.Errorf("%w: %q has an empty port", ErrInvalidAuthority, host)
	}
	return nil
}
