package submission

import (
	apperrors "github.com/akeren/consent-intake/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeAccepted  = "accepted"
	outcomeRejected  = "rejected"
	outcomeMalformed = "malformed"
	outcomeFailed    = "failed"
)

type outcomeRecorder interface {
	Record(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) Record(string) {}

type prometheusRecorder struct {
	submissions *prometheus.CounterVec
}

// newOutcomeRecorder counts submissions by outcome on reg. A nil registerer
// (metrics disabled) yields a recorder that does nothing.
func newOutcomeRecorder(reg prometheus.Registerer) outcomeRecorder {
	if reg == nil {
		return noopRecorder{}
	}

	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consent_submissions_total",
			Help: "Submissions handled by POST /api/submit, by outcome.",
		},
		[]string{"outcome"},
	)

	if err := reg.Register(counter); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			counter = already.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return noopRecorder{}
		}
	}

	return &prometheusRecorder{submissions: counter}
}

func (r *prometheusRecorder) Record(outcome string) {
	r.submissions.WithLabelValues(outcome).Inc()
}

func outcomeFor(err error) string {
	switch apperrors.GetErrorType(err) {
	case "":
		return outcomeAccepted
	case apperrors.ErrorTypeMalformedPayload:
		return outcomeMalformed
	case apperrors.ErrorTypeDatabaseError:
		return outcomeFailed
	default:
		return outcomeRejected
	}
}
