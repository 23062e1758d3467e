package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sidereusnuntius/gofinger/internal/db"
	"github.com/sidereusnuntius/gofinger/internal/service"
	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testDirectory(t *testing.T) service.Directory {
	t.Helper()
	migrations, err := filepath.Abs("../../migrations")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "gofinger.yaml", "setup: true\n"+
		"db_url: "+filepath.Join(dir, "gofinger.db")+"\n"+
		"migrations_folder: "+migrations+"\n")

	directory, closeDB, err := openDirectory(cfgPath)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	t.Cleanup(func() { closeDB() })
	return directory
}

func TestDirectoryCommands(t *testing.T) {
	ctx := context.Background()
	dir := testDirectory(t)

	seed := writeFile(t, t.TempDir(), "seed.json", `[
		{"subject": "acct:carol@example.com", "links": []},
		{"subject": "acct:dave@example.com", "links": [{"rel": "self", "href": "https://example.com/dave"}]}
	]`)

	var out bytes.Buffer
	if err := (&PublishCmd{File: seed, out: &out}).Run(ctx, dir); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if out.String() != "published 2 descriptors\n" {
		t.Errorf("unexpected output %q", out.String())
	}

	if err := (&AliasCmd{Subject: "acct:carol@example.com", Alias: "https://example.com/carol"}).Run(ctx, dir); err != nil {
		t.Fatal("unexpected error:", err)
	}
	link := LinkCmd{
		Subject:      "acct:carol@example.com",
		Rel:          string(webfinger.RelProfilePage),
		Href:         "https://example.com/carol",
		Type:         "text/html",
		Title:        map[string]string{"en": "Carol", "und": "Carol"},
		Property:     map[string]string{"https://example.com/ns/role": "developer"},
		NullProperty: []string{"https://example.com/ns/updated"},
	}
	if err := link.Run(ctx, dir); err != nil {
		t.Fatal("unexpected error:", err)
	}

	req, err := webfinger.NewRequestBuilder("https://example.com/carol").Host("example.com").Build()
	if err != nil {
		t.Fatal(err)
	}
	got, err := dir.Resolve(ctx, req)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	expected := webfinger.NewResponseBuilder("acct:carol@example.com").
		Alias("https://example.com/carol").
		Link(webfinger.NewLinkBuilder(webfinger.RelProfilePage).
			Href("https://example.com/carol").
			Type("text/html").
			Title("en", "Carol").
			Title("und", "Carol").
			Property("https://example.com/ns/role", "developer").
			NullProperty("https://example.com/ns/updated").
			Build()).
		Build()
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Error(diff)
	}

	out.Reset()
	if err := (&ListCmd{out: &out}).Run(ctx, dir); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if out.String() != "acct:carol@example.com\nacct:dave@example.com\n" {
		t.Errorf("unexpected subjects %q", out.String())
	}

	if err := (&RemoveCmd{Subject: "acct:dave@example.com"}).Run(ctx, dir); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if err := (&RemoveCmd{Subject: "acct:dave@example.com"}).Run(ctx, dir); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected %s, got %v", db.ErrNotFound, err)
	}

	out.Reset()
	if err := (&ListCmd{out: &out}).Run(ctx, dir); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if out.String() != "acct:carol@example.com\n" {
		t.Errorf("unexpected subjects %q", out.String())
	}
}

func TestLinkCmd_RejectsEmptyRel(t *testing.T) {
	dir := testDirectory(t)
	err := (&LinkCmd{Subject: "acct:carol@example.com"}).Run(context.Background(), dir)
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected %s, got %v", service.ErrInvalidInput, err)
	}
}
