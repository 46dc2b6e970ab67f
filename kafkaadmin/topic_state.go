package kafkaadmin

import (
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// TopicStates is a map of topic names to TopicState.
type TopicStates map[string]TopicState

// TopicState describes the current state of a topic.
type TopicState struct {
	Name              string
	Partitions        int32
	ReplicationFactor int32
	PartitionStates   map[int]PartitionState
}

// PartitionState describes the state of a partition.
type PartitionState struct {
	ID       int32
	Leader   int32
	Replicas []int32
	ISR      []int32
}

// NewTopicStates initializes a TopicStates.
func NewTopicStates() TopicStates {
	return make(TopicStates)
}

// NewTopicState initializes a TopicState.
func NewTopicState(name string) TopicState {
	return TopicState{
		Name:            name,
		PartitionStates: make(map[int]PartitionState),
	}
}

// TopicStatesFromMetadata takes a *kafka.Metadata and translates it to a
// TopicStates.
func TopicStatesFromMetadata(md *kafka.Metadata) (TopicStates, error) {
	if md == nil {
		return nil, fmt.Errorf("nil metadata")
	}

	var ts = NewTopicStates()

	for name, tm := range md.Topics {
		if tm.Error.Code() != kafka.ErrNoError {
			return nil, ErrorFetchingMetadata{fmt.Sprintf("topic %s: %s", name, tm.Error)}
		}

		state := NewTopicState(name)
		state.Partitions = int32(len(tm.Partitions))

		for _, pm := range tm.Partitions {
			// The replication factor is taken as the widest replica set.
			if rf := int32(len(pm.Replicas)); rf > state.ReplicationFactor {
				state.ReplicationFactor = rf
			}

			state.PartitionStates[int(pm.ID)] = PartitionState{
				ID:       pm.ID,
				Leader:   pm.Leader,
				Replicas: pm.Replicas,
				ISR:      pm.Isrs,
			}
		}

		ts[name] = state
	}

	return ts, nil
}

// UnderReplicated returns a TopicStates and only includes under-replicated topics.
func (ts TopicStates) UnderReplicated() TopicStates {
	filtered := TopicStates{}

	// Loop through all topics.
	for topic, state := range ts {
		// confluent-kafka-go reports a non-error PartitionMetadata for an
		// under-replicated partition, e.g.
		// {ID:0 Error:Success Leader:1001 Replicas:[1001 1002 1003] Isrs:[1001 1003]}
		// so len(ISR) < len(Replicas) is the best signal available. This also
		// means under-replicated topics are indistinguishable from reassigning topics.
		for _, partnState := range state.PartitionStates {
			if partnState.UnderReplicated() {
				filtered[topic] = state
				break
			}
		}
	}

	return filtered
}

// UnderReplicated returns whether the partition has fewer in-sync replicas
// than assigned replicas.
func (ps PartitionState) UnderReplicated() bool {
	return len(ps.ISR) < len(ps.Replicas)
}
