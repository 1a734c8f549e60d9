package interceptor

import (
	"net/http"

	"github.com/imposter-project/jsonmock/internal/config"
	"github.com/imposter-project/jsonmock/internal/exchange"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// Outcome is the result of a stage handling an exchange
type Outcome int

const (
	// Continue passes the exchange to the next stage
	Continue Outcome = iota
	// Respond ends the chain; the exchange's response state is written to the client
	Respond
)

// Stage is a single step of the interceptor chain
type Stage interface {
	Name() string
	Handle(exch *exchange.Exchange) Outcome
}

// Chain runs a fixed, ordered list of stages for every request, then hands
// the request to the terminal handler unless a stage responded.
type Chain struct {
	stages   []Stage
	terminal http.Handler
}

// NewChain creates the request interceptor chain: delay, body parsing and
// technology rejection, in that order, ahead of the terminal handler.
func NewChain(cfg config.InterceptorConfig, terminal http.Handler) *Chain {
	return NewChainWithStages(terminal,
		NewDelayStage(cfg.Delay),
		NewBodyParserStage(cfg.MaxBodySize),
		NewTechnologyRejectionStage(cfg.RejectedTechnology),
	)
}

// NewChainWithStages creates a chain from an explicit list of stages
func NewChainWithStages(terminal http.Handler, stages ...Stage) *Chain {
	return &Chain{
		stages:   stages,
		terminal: terminal,
	}
}

// Stages returns the names of the chain's stages, in execution order
func (c *Chain) Stages() []string {
	names := make([]string, len(c.stages))
	for i, stage := range c.stages {
		names[i] = stage.Name()
	}
	return names
}

// ServeHTTP drives the exchange through each stage in turn
func (c *Chain) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	exch := exchange.NewExchange(r)

	for _, stage := range c.stages {
		if stage.Handle(exch) == Respond {
			logger.Debugf("stage %s responded - method:%s, path:%s, status:%d",
				stage.Name(), r.Method, r.URL.Path, exch.ResponseState.StatusCode)
			exch.ResponseState.WriteToResponseWriter(w)
			return
		}
	}

	logger.Tracef("forwarding request - method:%s, path:%s", r.Method, r.URL.Path)
	c.terminal.ServeHTTP(w, exch.ForwardRequest())
}
