package interceptor

import (
	"net/http"

	"github.com/imposter-project/jsonmock/internal/exchange"
	"github.com/imposter-project/jsonmock/internal/query"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// RejectionMessage is the error returned for a rejected screen sharing technology
const RejectionMessage = "Invalid screen sharing technology error!"

// TechnologyRejectionStage fails POST requests whose body names the rejected technology
type TechnologyRejectionStage struct {
	rejected string
}

func NewTechnologyRejectionStage(rejected string) *TechnologyRejectionStage {
	return &TechnologyRejectionStage{rejected: rejected}
}

func (s *TechnologyRejectionStage) Name() string {
	return "technology-rejection"
}

func (s *TechnologyRejectionStage) Handle(exch *exchange.Exchange) Outcome {
	r := exch.Request
	if r.Method != http.MethodPost || s.rejected == "" {
		return Continue
	}

	technology, ok := query.StringAt(exch.ParsedBody, "$.technology")
	if !ok || technology != s.rejected {
		return Continue
	}

	logger.Infof("handled request (simulated failure: technology %s) - method:%s, path:%s, status:%d",
		technology, r.Method, r.URL.Path, http.StatusInternalServerError)
	respondError(exch.ResponseState, http.StatusInternalServerError, RejectionMessage)
	return Respond
}
