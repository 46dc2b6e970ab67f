package kafkaadmin

import (
	"fmt"
)

// ErrorFetchingMetadata is an error encountered fetching Kafka cluster metadata.
type ErrorFetchingMetadata struct {
	Message string
}

func (e ErrorFetchingMetadata) Error() string {
	return fmt.Sprintf("failed to fetch metadata: %s", e.Message)
}

// ErrTopicOperation is returned when the cluster rejects a topic level
// request. Err holds the error reported by the broker.
type ErrTopicOperation struct {
	Op    string
	Topic string
	Err   error
}

func (e ErrTopicOperation) Error() string {
	return fmt.Sprintf("%s failed for %s: %s", e.Op, e.Topic, e.Err)
}

func (e ErrTopicOperation) Unwrap() error {
	return e.Err
}

// ErrGroupOperation is returned when the cluster reports an error for a
// consumer group.
type ErrGroupOperation struct {
	Op    string
	Group string
	Err   error
}

func (e ErrGroupOperation) Error() string {
	return fmt.Sprintf("%s failed for group '%s': %s", e.Op, e.Group, e.Err)
}

func (e ErrGroupOperation) Unwrap() error {
	return e.Err
}

// ErrUnexpectedResult describes a response whose shape doesn't match the
// request, such as a single topic request yielding several results.
type ErrUnexpectedResult struct {
	Message string
}

func (e ErrUnexpectedResult) Error() string {
	return e.Message
}

// ErrInvalidArgument is a locally detected invalid request parameter.
type ErrInvalidArgument struct {
	Message string
}

func (e ErrInvalidArgument) Error() string {
	return e.Message
}

// ErrLibraryVersion is returned when the linked librdkafka doesn't support
// the admin APIs used here.
type ErrLibraryVersion struct {
	Have string
	Want string
}

func (e ErrLibraryVersion) Error() string {
	return fmt.Sprintf("librdkafka %s is linked, %s is required", e.Have, e.Want)
}
