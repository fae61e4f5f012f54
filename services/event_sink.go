package services

import (
	"context"
	"itsector/types"
)

// EventSink receives an audit record for every dispatched dashboard event.
type EventSink interface {
	Publish(ctx context.Context, event types.AuditEvent) error
	Close() error
}

type noopSink struct{}

// NewNoopSink drops every event.
func NewNoopSink() EventSink { return noopSink{} }

func (noopSink) Publish(context.Context, types.AuditEvent) error { return nil }
func (noopSink) Close() error                                    { return nil }
