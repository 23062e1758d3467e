package webfinger

// Rel is a link relation type (RFC 7033 section 4.4.4.1), usually a URI such as
// "http://webfinger.net/rel/profile-page". It is compared as an opaque string.
type Rel string

const (
	RelProfilePage  = Rel("http://webfinger.net/rel/profile-page")
	RelAvatar       = Rel("http://webfinger.net/rel/avatar")
	RelOpenIDIssuer = Rel("http://openid.net/specs/connect/1.0/issuer")
	RelSelf         = Rel("self")
)

// ParseRel returns s as a Rel, failing only when s is empty.
func ParseRel(s string) (Rel, error) {
	if s == "" {
		return "", ErrInvalidRel
	}
	return Rel(s), nil
}

func (r Rel) String() string {
	return string(r)
}
