package jira

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eldtechnologies/ticketbot/internal/metrics"
	"github.com/eldtechnologies/ticketbot/internal/models"
)

// Step is one stage of message dispatch. An empty reply passes the message
// on to the next step.
type Step struct {
	Name string
	Run  func(ctx context.Context, msg models.Message) (string, error)
}

// Dispatcher routes a message through its steps in order and returns the
// first non-empty reply.
type Dispatcher struct {
	steps  []Step
	logger zerolog.Logger
}

// NewDispatcher creates the standard add, remove, contextualize dispatcher
// for r.
func NewDispatcher(r *Recognizer, logger zerolog.Logger) *Dispatcher {
	return NewDispatcherWithSteps(logger,
		Step{Name: "add", Run: func(ctx context.Context, msg models.Message) (string, error) {
			return r.AddTicketRE(ctx, msg.Body, msg.IsPublic)
		}},
		Step{Name: "remove", Run: func(ctx context.Context, msg models.Message) (string, error) {
			return r.RemoveTicketRE(ctx, msg.Body, msg.IsPublic)
		}},
		Step{Name: "contextualize", Run: func(_ context.Context, msg models.Message) (string, error) {
			return r.Contextualize(msg.Body), nil
		}},
	)
}

// NewDispatcherWithSteps creates a Dispatcher running steps in the given order.
func NewDispatcherWithSteps(logger zerolog.Logger, steps ...Step) *Dispatcher {
	return &Dispatcher{steps: steps, logger: logger}
}

// Dispatch returns the reply for msg, or "" to stay silent. A step error
// stops dispatch and is returned to the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, msg models.Message) (string, error) {
	for _, step := range d.steps {
		reply, err := step.Run(ctx, msg)
		if err != nil {
			metrics.MessagesDispatched.WithLabelValues("error").Inc()
			d.logger.Error().
				Err(err).
				Str("step", step.Name).
				Str("nick", msg.Nick).
				Str("channel", msg.Channel).
				Msg("dispatch failed")
			return "", err
		}
		if reply != "" {
			metrics.MessagesDispatched.WithLabelValues(step.Name).Inc()
			d.logger.Debug().
				Str("step", step.Name).
				Str("nick", msg.Nick).
				Str("channel", msg.Channel).
				Msg("replying")
			return reply, nil
		}
	}

	metrics.MessagesDispatched.WithLabelValues("silent").Inc()
	return "", nil
}
