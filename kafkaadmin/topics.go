package kafkaadmin

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// CreateTopicConfig holds CreateTopic parameters.
type CreateTopicConfig struct {
	Name              string
	Partitions        int
	ReplicationFactor int
	Config            map[string]string
	ReplicaAssignment ReplicaAssignment
}

// ReplicaAssignment is a [][]int32 of partition assignments. The outer slice
// index maps to the partition ID (ie index position 3 describes partition 3
// for the reference topic), the inner slice is an []int32 of broker assignments.
type ReplicaAssignment [][]int32

// TopicListing is a topic name and its partition count as found in the
// cluster metadata.
type TopicListing struct {
	Name       string
	Partitions int
}

// TopicDescription is the result of a DescribeTopics request for one topic.
// Error is set when the cluster couldn't describe the topic; Partitions is
// empty in that case.
type TopicDescription struct {
	Name       string
	Internal   bool
	Error      error
	Partitions []PartitionDescription
}

// PartitionDescription describes a single partition. Leader is nil for a
// partition without a leader.
type PartitionDescription struct {
	ID       int
	Leader   *Node
	Replicas []Node
	ISR      []Node
}

// Node is a broker as referenced in admin responses.
type Node struct {
	ID   int
	Host string
	Port int
	Rack string
}

// Address returns the host:port of the node.
func (n Node) Address() string {
	return fmt.Sprintf("%s:%d", n.Host, n.Port)
}

// String returns host:port, with the rack ID appended if known.
func (n Node) String() string {
	if n.Rack != "" {
		return fmt.Sprintf("%s (rack: %s)", n.Address(), n.Rack)
	}
	return n.Address()
}

// CreateTopic creates a topic.
func (c *Client) CreateTopic(ctx context.Context, cfg CreateTopicConfig) error {
	if cfg.Partitions < 0 {
		return ErrInvalidArgument{Message: "Number of partitions must be greater than or equal to 0"}
	}

	spec := kafka.TopicSpecification{
		Topic:             cfg.Name,
		NumPartitions:     cfg.Partitions,
		ReplicationFactor: cfg.ReplicationFactor,
		ReplicaAssignment: cfg.ReplicaAssignment,
		Config:            cfg.Config,
	}

	// ReplicaAssignment and ReplicationFactor are
	// mutually exclusive. The assignment also sets the partition count.
	if cfg.ReplicaAssignment != nil {
		if cfg.Partitions != 0 && cfg.Partitions != len(cfg.ReplicaAssignment) {
			return ErrInvalidArgument{Message: fmt.Sprintf(
				"replica assignment has %d partitions, expected %d", len(cfg.ReplicaAssignment), cfg.Partitions)}
		}
		spec.ReplicationFactor = 0
		spec.NumPartitions = len(cfg.ReplicaAssignment)
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	results, err := c.c.CreateTopics(ctx, []kafka.TopicSpecification{spec})
	if err != nil {
		return ErrTopicOperation{Op: "CreateTopics", Topic: cfg.Name, Err: err}
	}

	return singleTopicResult("CreateTopics", cfg.Name, results)
}

// DeleteTopic deletes a topic.
func (c *Client) DeleteTopic(ctx context.Context, name string) error {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	results, err := c.c.DeleteTopics(ctx, []string{name})
	if err != nil {
		return ErrTopicOperation{Op: "DeleteTopics", Topic: name, Err: err}
	}

	return singleTopicResult("DeleteTopics", name, results)
}

// singleTopicResult checks that a single topic request yielded exactly one
// successful result.
func singleTopicResult(op, name string, results []kafka.TopicResult) error {
	if len(results) != 1 {
		return ErrUnexpectedResult{
			Message: fmt.Sprintf("%s response has %d topics", op, len(results)),
		}
	}

	if results[0].Error.Code() != kafka.ErrNoError {
		return ErrTopicOperation{Op: op, Topic: name, Err: results[0].Error}
	}

	return nil
}

// ListTopics returns a TopicListing for every topic in the cluster, sorted by
// name. If names is non-empty, only topics matching at least one of the
// names are returned; names are either literal topic names or regex.
func (c *Client) ListTopics(ctx context.Context, names []string) ([]TopicListing, error) {
	var patterns []*regexp.Regexp
	if len(names) > 0 {
		var err error
		if patterns, err = StringsToRegex(names); err != nil {
			return nil, err
		}
	}

	md, err := c.c.GetMetadata(nil, true, c.metadataTimeoutMs(ctx))
	if err != nil {
		return nil, ErrorFetchingMetadata{err.Error()}
	}

	return topicListingsFromMetadata(md, patterns), nil
}

func topicListingsFromMetadata(md *kafka.Metadata, patterns []*regexp.Regexp) []TopicListing {
	var out []TopicListing

	for name, tm := range md.Topics {
		if len(patterns) > 0 && !MatchesAny(name, patterns) {
			continue
		}
		out = append(out, TopicListing{
			Name:       name,
			Partitions: len(tm.Partitions),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out
}

// DescribeTopic issues a DescribeTopics request for the named topic.
func (c *Client) DescribeTopic(ctx context.Context, name string) ([]TopicDescription, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	res, err := c.c.DescribeTopics(ctx, kafka.NewTopicCollectionOfTopicNames([]string{name}))
	if err != nil {
		return nil, ErrTopicOperation{Op: "DescribeTopics", Topic: name, Err: err}
	}

	var out []TopicDescription
	for _, td := range res.TopicDescriptions {
		out = append(out, topicDescriptionFromResult(td))
	}

	return out, nil
}

func topicDescriptionFromResult(td kafka.TopicDescription) TopicDescription {
	desc := TopicDescription{
		Name:     td.Name,
		Internal: td.IsInternal,
	}

	if td.Error.Code() != kafka.ErrNoError {
		desc.Error = td.Error
		return desc
	}

	for _, p := range td.Partitions {
		pd := PartitionDescription{
			ID:       p.Partition,
			Replicas: nodesFromResult(p.Replicas),
			ISR:      nodesFromResult(p.Isr),
		}
		if p.Leader != nil {
			leader := nodeFromResult(*p.Leader)
			pd.Leader = &leader
		}
		desc.Partitions = append(desc.Partitions, pd)
	}

	return desc
}

func nodeFromResult(n kafka.Node) Node {
	node := Node{
		ID:   n.ID,
		Host: n.Host,
		Port: n.Port,
	}
	if n.Rack != nil {
		node.Rack = *n.Rack
	}
	return node
}

func nodesFromResult(ns []kafka.Node) []Node {
	out := make([]Node, 0, len(ns))
	for _, n := range ns {
		out = append(out, nodeFromResult(n))
	}
	return out
}

// DescribeTopics takes a []string of topic names and regex patterns and
// returns a TopicStates for all matching topics. An empty names list matches
// nothing.
func (c *Client) DescribeTopics(ctx context.Context, topics []string) (TopicStates, error) {
	patterns, err := StringsToRegex(topics)
	if err != nil {
		return nil, err
	}

	md, err := c.c.GetMetadata(nil, true, c.metadataTimeoutMs(ctx))
	if err != nil {
		return nil, ErrorFetchingMetadata{err.Error()}
	}

	for name := range md.Topics {
		if !MatchesAny(name, patterns) {
			delete(md.Topics, name)
		}
	}

	return TopicStatesFromMetadata(md)
}
