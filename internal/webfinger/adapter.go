package webfinger

import "net/http"

// RequestExtractor turns an inbound HTTP request of some server framework into a Request.
type RequestExtractor interface {
	ExtractRequest(r *http.Request) (Request, error)
}

// ResponseEncoder writes a Response with the JRD content type.
type ResponseEncoder interface {
	EncodeResponse(w http.ResponseWriter, resp Response) error
}
