package webfinger

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Response is a JSON Resource Descriptor (RFC 7033 section 4.4).
//
// A nil Aliases or Properties is left out of the JSON entirely, while a non-nil empty one is written as
// [] or {}. Links is always written, as [] when there are none.
type Response struct {
	Subject    string
	Aliases    []string
	Properties map[string]string
	Links      []Link
}

// Link is a single entry of a JRD's links array. Type and Href are omitted when empty. A nil Titles or
// Properties is omitted; a nil value inside Properties is written as JSON null.
type Link struct {
	Rel        Rel
	Type       string
	Href       string
	Titles     []Title
	Properties map[string]*string
}

// Title is a human readable label for a link. Language is an RFC 5646 tag or "und".
type Title struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// jrd and jrdLink are the encoding shapes. The decoders use pointer members instead, so that missing
// and null members can be told apart.
type jrd struct {
	Subject    string             `json:"subject"`
	Aliases    *[]string          `json:"aliases,omitempty"`
	Properties *map[string]string `json:"properties,omitempty"`
	Links      []Link             `json:"links"`
}

type jrdLink struct {
	Rel        Rel                 `json:"rel"`
	Type       string              `json:"type,omitempty"`
	Href       string              `json:"href,omitempty"`
	Titles     *[]Title            `json:"titles,omitempty"`
	Properties *map[string]*string `json:"properties,omitempty"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	doc := jrd{
		Subject: r.Subject,
		Links:   r.Links,
	}
	if doc.Links == nil {
		doc.Links = []Link{}
	}
	if r.Aliases != nil {
		doc.Aliases = &r.Aliases
	}
	if r.Properties != nil {
		doc.Properties = &r.Properties
	}
	return json.Marshal(doc)
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var doc struct {
		Subject    *string             `json:"subject"`
		Aliases    *[]string           `json:"aliases"`
		Properties *map[string]*string `json:"properties"`
		Links      *[]Link             `json:"links"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Subject == nil {
		return errors.New("missing subject")
	}
	if doc.Links == nil {
		return errors.New("missing links")
	}

	*r = Response{
		Subject: *doc.Subject,
		Links:   *doc.Links,
	}
	if doc.Aliases != nil {
		r.Aliases = *doc.Aliases
	}
	if doc.Properties != nil {
		r.Properties = make(map[string]string, len(*doc.Properties))
		for k, v := range *doc.Properties {
			if v == nil {
				return fmt.Errorf("property %s is null", k)
			}
			r.Properties[k] = *v
		}
	}
	return nil
}

func (l Link) MarshalJSON() ([]byte, error) {
	doc := jrdLink{
		Rel:  l.Rel,
		Type: l.Type,
		Href: l.Href,
	}
	if l.Titles != nil {
		doc.Titles = &l.Titles
	}
	if l.Properties != nil {
		doc.Properties = &l.Properties
	}
	return json.Marshal(doc)
}

func (l *Link) UnmarshalJSON(data []byte) error {
	var doc struct {
		Rel        *Rel                `json:"rel"`
		Type       string              `json:"type"`
		Href       string              `json:"href"`
		Titles     *[]Title            `json:"titles"`
		Properties *map[string]*string `json:"properties"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Rel == nil || *doc.Rel == "" {
		return errors.New("link without rel")
	}

	*l = Link{
		Rel:  *doc.Rel,
		Type: doc.Type,
		Href: doc.Href,
	}
	if doc.Titles != nil {
		l.Titles = *doc.Titles
	}
	if doc.Properties != nil {
		l.Properties = *doc.Properties
	}
	return nil
}

// ParseResponse decodes a JRD document. The subject and links members are required, as is a non-empty
// rel on every link.
func ParseResponse(data []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return resp, nil
}

// String returns the response as indented JSON.
func (r Response) String() string {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf("%#v", r)
	}
	return string(b)
}

// FilterRels returns a copy of r whose links are restricted to rels (RFC 7033 section 4.3). Subject,
// aliases and properties are left untouched. No rels means no filtering.
func FilterRels(r Response, rels []Rel) Response {
	if len(rels) == 0 {
		return r
	}
	wanted := make(map[Rel]struct{}, len(rels))
	for _, rel := range rels {
		wanted[rel] = struct{}{}
	}

	links := make([]Link, 0, len(r.Links))
	for _, l := range r.Links {
		if _, ok := wanted[l.Rel]; ok {
			links = append(links, l)
		}
	}
	r.Links = links
	return r
}

type ResponseBuilder struct {
	response Response
}

func NewResponseBuilder(subject string) *ResponseBuilder {
	return &ResponseBuilder{
		response: Response{
			Subject: subject,
			Links:   []Link{},
		},
	}
}

func (b *ResponseBuilder) Alias(alias string) *ResponseBuilder {
	b.response.Aliases = append(b.response.Aliases, alias)
	return b
}

func (b *ResponseBuilder) Property(key, value string) *ResponseBuilder {
	if b.response.Properties == nil {
		b.response.Properties = make(map[string]string)
	}
	b.response.Properties[key] = value
	return b
}

func (b *ResponseBuilder) Link(link Link) *ResponseBuilder {
	b.response.Links = append(b.response.Links, link)
	return b
}

// Links replaces every link added so far.
func (b *ResponseBuilder) Links(links []Link) *ResponseBuilder {
	b.response.Links = append([]Link{}, links...)
	return b
}

// Build returns the response. The builder must not be reused afterwards.
func (b *ResponseBuilder) Build() Response {
	return b.response
}

type LinkBuilder struct {
	link Link
}

func NewLinkBuilder(rel Rel) *LinkBuilder {
	return &LinkBuilder{link: Link{Rel: rel}}
}

func (b *LinkBuilder) Type(mediaType string) *LinkBuilder {
	b.link.Type = mediaType
	return b
}

func (b *LinkBuilder) Href(href string) *LinkBuilder {
	b.link.Href = href
	return b
}

func (b *LinkBuilder) Title(language, value string) *LinkBuilder {
	b.link.Titles = append(b.link.Titles, Title{Language: language, Value: value})
	return b
}

func (b *LinkBuilder) Titles(titles []Title) *LinkBuilder {
	b.link.Titles = append([]Title{}, titles...)
	return b
}

func (b *LinkBuilder) Property(key, value string) *LinkBuilder {
	b.properties()[key] = &value
	return b
}

// NullProperty asserts key with a null value, which is not the same as leaving it out.
func (b *LinkBuilder) NullProperty(key string) *LinkBuilder {
	b.properties()[key] = nil
	return b
}

func (b *LinkBuilder) Properties(properties map[string]*string) *LinkBuilder {
	b.link.Properties = make(map[string]*string, len(properties))
	for k, v := range properties {
		b.link.Properties[k] = v
	}
	return b
}

func (b *LinkBuilder) properties() map[string]*string {
	if b.link.Properties == nil {
		b.link.Properties = make(map[string]*string)
	}
	return b.link.Properties
}

func (b *LinkBuilder) Build() Link {
	return b.link
}
