package events

import "errors"

var (
	ErrFetch         = errors.New("events.relay: failed to fetch outbox events")
	ErrPublish       = errors.New("events.relay: failed to write messages to kafka")
	ErrMarkPublished = errors.New("events.relay: failed to mark events as published")
)
