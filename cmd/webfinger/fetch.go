package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sidereusnuntius/gofinger/internal/client"
	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

type FetchCmd struct {
	Resource string        `arg:"" help:"The resource to fetch (e.g., acct:carol@example.com)"`
	Host     string        `arg:"" optional:"" help:"The host to fetch the resource from (defaults to the part of the resource after the first @)"`
	Rel      []string      `short:"r" sep:"none" help:"Link relation types to fetch; repeat for several"`
	Insecure bool          `short:"k" help:"Do not verify the server certificate"`
	Raw      bool          `help:"Print the response body as received"`
	Timeout  time.Duration `default:"30s" help:"Request timeout"`

	out io.Writer `kong:"-"`
}

func (f *FetchCmd) Run(ctx context.Context) error {
	req, err := f.request()
	if err != nil {
		return err
	}

	c := client.NewWithOptions(client.Options{
		Insecure: f.Insecure,
		Timeout:  f.Timeout,
	})

	uri, err := req.URI()
	if err != nil {
		return err
	}

	out := f.out
	if out == nil {
		out = os.Stdout
	}

	if f.Raw {
		body, err := c.FetchRaw(ctx, uri)
		if err != nil {
			return err
		}
		_, err = out.Write(body)
		return err
	}

	res, err := c.FetchURI(ctx, uri)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, res)
	return err
}

func (f *FetchCmd) request() (webfinger.Request, error) {
	host, err := f.host()
	if err != nil {
		return webfinger.Request{}, err
	}

	b := webfinger.NewRequestBuilder(f.Resource).Host(host)
	for _, rel := range f.Rel {
		b.Rel(webfinger.Rel(rel))
	}

	req, err := b.Build()
	if err != nil {
		return webfinger.Request{}, err
	}
	if err = webfinger.ValidateAuthority(host); err != nil {
		return webfinger.Request{}, fmt.Errorf("invalid host %q: %w", host, err)
	}
	return req, nil
}

// host returns the explicit host, or the text after the first '@' of the resource. The default is a
// convenience for acct: URIs and is never checked against an explicit host.
func (f *FetchCmd) host() (string, error) {
	if f.Host != "" {
		return f.Host, nil
	}
	_, host, ok := strings.Cut(f.Resource, "@")
	if !ok || host == "" {
		return "", errors.New("no host provided")
	}
	return host, nil
}
