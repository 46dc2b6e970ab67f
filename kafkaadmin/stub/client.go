package stub

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/snctl/snctl/kafkaadmin"
)

// Client is a stubbed implementation of KafkaAdmin backed by in-memory
// cluster state. It's safe for concurrent use.
type Client struct {
	mu        sync.Mutex
	metadata  kafka.Metadata
	racks     map[int32]string
	groups    map[string]kafkaadmin.GroupDescription
	committed map[string]kafkaadmin.Offsets
	end       kafkaadmin.Offsets
	configs   kafkaadmin.ResourceConfigs
	// Err, if set, is returned by every call.
	Err    error
	Closed bool
}

// NewClient returns a Client seeded with three brokers, the topics test1 and
// test2, and the consumer groups sub and idle.
func NewClient() *Client {
	return &Client{
		metadata: fakeKafkaMetadata(),
		racks: map[int32]string{
			1001: "a",
			1002: "b",
		},
		groups: map[string]kafkaadmin.GroupDescription{
			"sub": {
				GroupID:     "sub",
				Assignor:    "range",
				State:       "Stable",
				Coordinator: kafkaadmin.Node{ID: 1001, Host: "host-a", Port: 9092, Rack: "a"},
				Members: []kafkaadmin.Member{
					{
						ClientID:   "consumer-1",
						ConsumerID: "consumer-1-0d6e",
						Host:       "/10.0.0.1",
						Assignment: []kafkaadmin.TopicPartition{
							{Topic: "test1", Partition: 0},
							{Topic: "test1", Partition: 1},
						},
					},
				},
			},
			"idle": {
				GroupID:     "idle",
				Assignor:    "",
				State:       "Empty",
				Coordinator: kafkaadmin.Node{ID: 1002, Host: "host-b", Port: 9092, Rack: "b"},
			},
		},
		committed: map[string]kafkaadmin.Offsets{
			"sub": {
				{Topic: "test1", Partition: 0}: 5,
				{Topic: "test1", Partition: 1}: 3,
			},
			"idle": {
				{Topic: "test2", Partition: 0}: 7,
			},
		},
		end: kafkaadmin.Offsets{
			{Topic: "test1", Partition: 0}: 10,
			{Topic: "test2", Partition: 0}: 7,
		},
		configs: kafkaadmin.ResourceConfigs{
			"test1": {"retention.ms": "172800000", "cleanup.policy": "delete"},
			"test2": {"retention.ms": "172800000", "cleanup.policy": "compact"},
		},
	}
}

// AddGroup adds or replaces a consumer group and its committed offsets.
func (c *Client) AddGroup(desc kafkaadmin.GroupDescription, committed kafkaadmin.Offsets) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.groups[desc.GroupID] = desc
	c.committed[desc.GroupID] = committed
}

// SetEndOffset sets the log end offset of a partition.
func (c *Client) SetEndOffset(tp kafkaadmin.TopicPartition, offset int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.end[tp] = offset
}

// SetPartition adds or replaces a partition of an existing topic. A Leader of
// -1 marks the partition as leaderless.
func (c *Client) SetPartition(topic string, pm kafka.PartitionMetadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tm, exists := c.metadata.Topics[topic]
	if !exists {
		return errUnknownTopic
	}

	// Partition slices may be shared with copies handed out by Metadata.
	parts := make([]kafka.PartitionMetadata, 0, len(tm.Partitions)+1)
	replaced := false
	for _, p := range tm.Partitions {
		if p.ID == pm.ID {
			p, replaced = pm, true
		}
		parts = append(parts, p)
	}
	if !replaced {
		parts = append(parts, pm)
	}

	tm.Partitions = parts
	c.metadata.Topics[topic] = tm

	return nil
}

// Metadata returns a copy of the current cluster metadata.
func (c *Client) Metadata() kafka.Metadata {
	c.mu.Lock()
	defer c.mu.Unlock()

	return copyMetadata(c.metadata)
}

func copyMetadata(md kafka.Metadata) kafka.Metadata {
	out := md
	out.Topics = make(map[string]kafka.TopicMetadata, len(md.Topics))
	for name, tm := range md.Topics {
		out.Topics[name] = tm
	}
	return out
}
