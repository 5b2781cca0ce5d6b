package log

import (
	"context"
	"net/http"
)

// CorrelationIDHeader carries the correlation id between client and server.
const CorrelationIDHeader = "X-Correlation-ID"

// WithCorrelationIDValue stores id on ctx for loggers and outgoing requests.
func WithCorrelationIDValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelatedIDKey, id)
}

type correlationTransport struct {
	base http.RoundTripper
}

// NewCorrelationTransport sets X-Correlation-ID on every outgoing request,
// taken from the request context or freshly generated. A nil base uses
// http.DefaultTransport.
func NewCorrelationTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &correlationTransport{base: base}
}

func (t *correlationTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get(CorrelationIDHeader) != "" {
		return t.base.RoundTrip(r)
	}

	out := r.Clone(r.Context())
	out.Header.Set(CorrelationIDHeader, GetOrGenerateCorrelationID(r.Context()))
	return t.base.RoundTrip(out)
}
