package sinks

import "context"

// Sink sends exchange events to a downstream destination (SQS, HTTP, etc).
type Sink interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}
