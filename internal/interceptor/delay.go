package interceptor

import (
	"time"

	"github.com/imposter-project/jsonmock/internal/exchange"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// DelayStage holds every request for a fixed duration. The wait is not
// cancelled if the client goes away.
type DelayStage struct {
	delay time.Duration
}

func NewDelayStage(delay time.Duration) *DelayStage {
	return &DelayStage{delay: delay}
}

func (s *DelayStage) Name() string {
	return "delay"
}

func (s *DelayStage) Handle(exch *exchange.Exchange) Outcome {
	if s.delay <= 0 {
		return Continue
	}
	r := exch.Request
	logger.Debugf("delaying request (exact: %dms) - method:%s, path:%s", s.delay.Milliseconds(), r.Method, r.URL.Path)

	timer := time.NewTimer(s.delay)
	<-timer.C
	return Continue
}
