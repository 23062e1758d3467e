package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

const accept = webfinger.ContentType + ", application/json"

// maxBodySize bounds how much of a response is read; JRD documents are small.
const maxBodySize = 1 << 20

// HttpClient fetches JRD documents. It adds no retries or caching; callers decide what to do with
// transport and status errors.
type HttpClient struct {
	client *http.Client
}

type Options struct {
	// Insecure skips verification of the server certificate, for self-signed development servers.
	Insecure bool
	// RootCAs replaces the system roots when set.
	RootCAs *x509.CertPool
	Timeout time.Duration
}

func New(client *http.Client) *HttpClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HttpClient{client: client}
}

func NewWithOptions(opts Options) *HttpClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Insecure || opts.RootCAs != nil {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: opts.Insecure,
			RootCAs:            opts.RootCAs,
		}
	}
	return New(&http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	})
}

// Fetch sends req to its host over HTTPS and decodes the descriptor.
func (c *HttpClient) Fetch(ctx context.Context, req webfinger.Request) (webfinger.Response, error) {
	uri, err := req.URI()
	if err != nil {
		return webfinger.Response{}, err
	}
	return c.FetchURI(ctx, uri)
}

// FetchURI fetches an already assembled WebFinger URI. A status outside 2xx is returned as a
// *webfinger.StatusError and the body is not decoded.
func (c *HttpClient) FetchURI(ctx context.Context, uri string) (webfinger.Response, error) {
	body, err := c.FetchRaw(ctx, uri)
	if err != nil {
		return webfinger.Response{}, err
	}
	return webfinger.ParseResponse(body)
}

// FetchRaw is FetchURI without decoding.
func (c *HttpClient) FetchRaw(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", webfinger.ErrTransport, err)
	}
	req.Header.Set("Accept", accept)

	log.Debug().Str("uri", uri).Msg("fetching webfinger resource")
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", webfinger.ErrTransport, err)
	}
	defer res.Body.Close()

	content, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Debug().Int("code", res.StatusCode).Bytes("response body", content).Msg("webfinger fetch error")
		return nil, &webfinger.StatusError{
			Code:   res.StatusCode,
			Status: res.Status,
			Body:   content,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", webfinger.ErrTransport, err)
	}

	log.Debug().Str("content type", res.Header.Get("Content-Type")).Bytes("body", content).Msg("webfinger response")
	return content, nil
}
