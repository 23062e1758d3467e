package wellknown

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gofinger/internal/db"
	"github.com/sidereusnuntius/gofinger/internal/state"
	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

// Resolver produces the descriptor for an extracted request.
type Resolver interface {
	Resolve(ctx context.Context, req webfinger.Request) (webfinger.Response, error)
}

// ResolverFunc is a function adapter for Resolver.
type ResolverFunc func(ctx context.Context, req webfinger.Request) (webfinger.Response, error)

func (f ResolverFunc) Resolve(ctx context.Context, req webfinger.Request) (webfinger.Response, error) {
	return f(ctx, req)
}

// HTTP adapts net/http requests and responses to the webfinger package.
type HTTP struct{}

var (
	_ webfinger.RequestExtractor = HTTP{}
	_ webfinger.ResponseEncoder  = HTTP{}
)

// ExtractRequest uses the authority of the request URI, which net/http only sets for absolute-form
// request targets, before falling back to the Host header.
func (HTTP) ExtractRequest(r *http.Request) (webfinger.Request, error) {
	return webfinger.Extract(r.URL.Host, r.Host, r.URL.RawQuery)
}

func (HTTP) EncodeResponse(w http.ResponseWriter, resp webfinger.Response) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", webfinger.ContentType)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
	return err
}

func Mount(state *state.State, r chi.Router) {
	r.Route("/.well-known/", func(r chi.Router) {
		r.Get("/webfinger", WebfingerEndpoint(state.Directory))
	})
}

func WebfingerEndpoint(resolver Resolver) http.HandlerFunc {
	return Endpoint(HTTP{}, HTTP{}, resolver)
}

// Endpoint answers WebFinger requests. Rejected requests get a 400 whose body names the failure.
func Endpoint(extractor webfinger.RequestExtractor, encoder webfinger.ResponseEncoder, resolver Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// RFC 7033 section 5: servers should allow any origin.
		w.Header().Set("Access-Control-Allow-Origin", "*")

		req, err := extractor.ExtractRequest(r)
		if err != nil {
			log.Debug().Err(err).Str("query", r.URL.RawQuery).Msg("rejected webfinger request")
			http.Error(w, err.Error(), handleErr(err))
			return
		}

		res, err := resolver.Resolve(r.Context(), req)
		if err != nil {
			status := handleErr(err)
			if status == http.StatusInternalServerError {
				log.Error().Err(err).Str("resource", req.Resource()).Msg("failed to resolve webfinger resource")
				http.Error(w, "", status)
				return
			}
			http.Error(w, err.Error(), status)
			return
		}

		if err = encoder.EncodeResponse(w, res); err != nil {
			log.Error().Err(err).Msg("unable to marshal webfinger response")
			http.Error(w, "", http.StatusInternalServerError)
		}
	}
}

func handleErr(err error) int {
	switch {
	case errors.Is(err, webfinger.ErrMissingHost),
		errors.Is(err, webfinger.ErrInvalidQueryString),
		errors.Is(err, webfinger.ErrInvalidResource),
		errors.Is(err, webfinger.ErrInvalidRel):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
