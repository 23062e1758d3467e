package webfinger

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr(s string) *string {
	return &s
}

func TestResponse_MarshalJSON(t *testing.T) {
	cases := []struct {
		name     string
		response Response
		expected string
	}{
		{
			"absent optional fields",
			NewResponseBuilder("acct:carol@example.com").Build(),
			`{"subject":"acct:carol@example.com","links":[]}`,
		},
		{
			"nil links",
			Response{Subject: "acct:carol@example.com"},
			`{"subject":"acct:carol@example.com","links":[]}`,
		},
		{
			"empty but present",
			Response{Subject: "acct:carol@example.com", Aliases: []string{}, Properties: map[string]string{}, Links: []Link{}},
			`{"subject":"acct:carol@example.com","aliases":[],"properties":{},"links":[]}`,
		},
		{
			"full link",
			NewResponseBuilder("acct:carol@example.com").
				Alias("https://example.com/carol").
				Property("https://example.com/ns/role", "developer").
				Link(NewLinkBuilder(RelProfilePage).
					Type("text/html").
					Href("https://example.com/carol").
					Title("en-us", "Carol's Profile").
					Property("https://example.com/ns/visible", "yes").
					NullProperty("https://example.com/ns/updated").
					Build()).
				Build(),
			`{"subject":"acct:carol@example.com","aliases":["https://example.com/carol"],` +
				`"properties":{"https://example.com/ns/role":"developer"},"links":[{"rel":"http://webfinger.net/rel/profile-page",` +
				`"type":"text/html","href":"https://example.com/carol","titles":[{"language":"en-us","value":"Carol's Profile"}],` +
				`"properties":{"https://example.com/ns/updated":null,"https://example.com/ns/visible":"yes"}}]}`,
		},
		{
			"bare link",
			NewResponseBuilder("acct:carol@example.com").Link(NewLinkBuilder(RelSelf).Build()).Build(),
			`{"subject":"acct:carol@example.com","links":[{"rel":"self"}]}`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := json.Marshal(c.response)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if string(b) != c.expected {
				t.Errorf("expected\n%s\ngot\n%s", c.expected, b)
			}
		})
	}
}

func TestResponse_RoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		response Response
	}{
		{"minimal", NewResponseBuilder("acct:carol@example.com").Build()},
		{"empty collections", Response{Subject: "acct:carol@example.com", Aliases: []string{}, Properties: map[string]string{}, Links: []Link{}}},
		{
			"everything",
			NewResponseBuilder("acct:carol@example.com").
				Alias("https://example.com/carol").
				Alias("https://example.com/~carol").
				Property("https://example.com/ns/role", "developer").
				Link(NewLinkBuilder(RelAvatar).Type("image/png").Href("https://example.com/carol.png").Build()).
				Link(NewLinkBuilder(RelProfilePage).
					Href("https://example.com/carol").
					Title("en-us", "Carol").
					Title("und", "Carol?").
					Property("k", "v").
					NullProperty("n").
					Build()).
				Link(NewLinkBuilder(RelProfilePage).Titles([]Title{}).Properties(map[string]*string{}).Build()).
				Build(),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := json.Marshal(c.response)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			got, err := ParseResponse(b)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if diff := cmp.Diff(c.response, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestParseResponse_NullVersusAbsentProperty(t *testing.T) {
	resp, err := ParseResponse([]byte(`{"subject":"acct:carol@example.com","links":[{"rel":"self","properties":{"a":null,"b":"x"}}]}`))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	props := resp.Links[0].Properties
	if v, ok := props["a"]; !ok || v != nil {
		t.Errorf("expected a to be present and null, got %v (present: %t)", v, ok)
	}
	if v := props["b"]; v == nil || *v != "x" {
		t.Errorf("expected b to be x, got %v", v)
	}
	if _, ok := props["c"]; ok {
		t.Error("c should be absent")
	}
	if resp.Aliases != nil || resp.Properties != nil {
		t.Errorf("absent fields were decoded as %v and %v", resp.Aliases, resp.Properties)
	}
}

func TestParseResponse_Malformed(t *testing.T) {
	cases := []string{
		``,
		`{"subject":`,
		`{"subject":"acct:carol@example.com","links":{}}`,
		`[]`,
	}

	for _, c := range cases {
		_, err := ParseResponse([]byte(c))
		if !errors.Is(err, ErrDecode) {
			t.Errorf("%q: expected %s, got %v", c, ErrDecode, err)
		}
	}

	var syntaxErr *json.SyntaxError
	if _, err := ParseResponse([]byte(`{`)); !errors.As(err, &syntaxErr) {
		t.Errorf("expected the json error to be wrapped, got %v", err)
	}
}

func TestParseResponse_MissingMembers(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"null document", `null`},
		{"empty object", `{}`},
		{"error body", `{"error":"rate limited"}`},
		{"missing links", `{"subject":"acct:carol@example.com"}`},
		{"null links", `{"subject":"acct:carol@example.com","links":null}`},
		{"missing subject", `{"links":[]}`},
		{"null subject", `{"subject":null,"links":[]}`},
		{"link without rel", `{"subject":"acct:carol@example.com","links":[{}]}`},
		{"link with null rel", `{"subject":"acct:carol@example.com","links":[{"rel":null,"href":"https://example.com"}]}`},
		{"link with empty rel", `{"subject":"acct:carol@example.com","links":[{"rel":""}]}`},
		{"null link", `{"subject":"acct:carol@example.com","links":[null]}`},
		{"null property value", `{"subject":"acct:carol@example.com","properties":{"https://example.com/ns/role":null},"links":[]}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := ParseResponse([]byte(c.body))
			if !errors.Is(err, ErrDecode) {
				t.Errorf("expected %s, got %v (decoded %+v)", ErrDecode, err, resp)
			}
		})
	}
}

func TestParseResponse_NullOptionalMembers(t *testing.T) {
	resp, err := ParseResponse([]byte(`{"subject":"acct:carol@example.com","aliases":null,"properties":null,"links":[]}`))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if resp.Aliases != nil || resp.Properties != nil {
		t.Errorf("expected null members to decode as absent, got %v and %v", resp.Aliases, resp.Properties)
	}
}

func TestFilterRels(t *testing.T) {
	resp := NewResponseBuilder("acct:carol@example.com").
		Alias("https://example.com/carol").
		Link(NewLinkBuilder(RelAvatar).Href("1").Build()).
		Link(NewLinkBuilder(RelProfilePage).Href("2").Build()).
		Link(NewLinkBuilder(RelAvatar).Href("3").Build()).
		Build()

	cases := []struct {
		name  string
		rels  []Rel
		hrefs []string
	}{
		{"no rels", nil, []string{"1", "2", "3"}},
		{"one rel", []Rel{RelAvatar}, []string{"1", "3"}},
		{"both rels keep document order", []Rel{RelProfilePage, RelAvatar}, []string{"1", "2", "3"}},
		{"unknown rel", []Rel{RelSelf}, []string{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			filtered := FilterRels(resp, c.rels)
			hrefs := []string{}
			for _, l := range filtered.Links {
				hrefs = append(hrefs, l.Href)
			}
			if diff := cmp.Diff(c.hrefs, hrefs); diff != "" {
				t.Error(diff)
			}
			if diff := cmp.Diff(resp.Aliases, filtered.Aliases); diff != "" {
				t.Error(diff)
			}
		})
	}

	if len(resp.Links) != 3 {
		t.Errorf("filtering modified the original response: %v", resp.Links)
	}
}

func TestResponse_String(t *testing.T) {
	s := NewResponseBuilder("acct:carol@example.com").Build().String()
	if !strings.Contains(s, "\n  \"subject\": \"acct:carol@example.com\"") {
		t.Errorf("expected indented json, got %s", s)
	}
}

func TestLinkBuilder_PropertyValuesAreDistinct(t *testing.T) {
	link := NewLinkBuilder(RelSelf).Property("a", "1").Property("b", "2").Build()
	if diff := cmp.Diff(map[string]*string{"a": ptr("1"), "b": ptr("2")}, link.Properties); diff != "" {
		t.Error(diff)
	}
}
