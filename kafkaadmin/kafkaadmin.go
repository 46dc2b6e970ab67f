// Package kafkaadmin wraps Kafka admin API calls.
package kafkaadmin

import (
	"context"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// KafkaAdmin interface.
type KafkaAdmin interface {
	Close()
	// Topics.
	CreateTopic(context.Context, CreateTopicConfig) error
	DeleteTopic(context.Context, string) error
	ListTopics(context.Context, []string) ([]TopicListing, error)
	DescribeTopic(context.Context, string) ([]TopicDescription, error)
	DescribeTopics(context.Context, []string) (TopicStates, error)
	// Consumer groups.
	ListGroups(context.Context) (ListGroupsResult, error)
	DescribeGroup(context.Context, string) (GroupDescription, error)
	CommittedOffsets(context.Context, string, []TopicPartition) (Offsets, error)
	EndOffsets(context.Context, []TopicPartition) (Offsets, error)
	// Brokers.
	GetBrokerMetadata(context.Context, bool) (BrokerMetadataMap, error)
	// Configs.
	GetConfigs(context.Context, string, []string) (ResourceConfigs, error)
	GetDynamicConfigs(context.Context, string, []string) (ResourceConfigs, error)
}

// AdminAPI is the subset of *kafka.AdminClient methods used by Client. It
// allows the underlying handle to be swapped out in tests.
type AdminAPI interface {
	CreateTopics(context.Context, []kafka.TopicSpecification, ...kafka.CreateTopicsAdminOption) ([]kafka.TopicResult, error)
	DeleteTopics(context.Context, []string, ...kafka.DeleteTopicsAdminOption) ([]kafka.TopicResult, error)
	GetMetadata(topic *string, allTopics bool, timeoutMs int) (*kafka.Metadata, error)
	DescribeTopics(context.Context, kafka.TopicCollection, ...kafka.DescribeTopicsAdminOption) (kafka.DescribeTopicsResult, error)
	DescribeConfigs(context.Context, []kafka.ConfigResource, ...kafka.DescribeConfigsAdminOption) ([]kafka.ConfigResourceResult, error)
	ListConsumerGroups(context.Context, ...kafka.ListConsumerGroupsAdminOption) (kafka.ListConsumerGroupsResult, error)
	DescribeConsumerGroups(context.Context, []string, ...kafka.DescribeConsumerGroupsAdminOption) (kafka.DescribeConsumerGroupsResult, error)
	ListConsumerGroupOffsets(context.Context, []kafka.ConsumerGroupTopicPartitions, ...kafka.ListConsumerGroupOffsetsAdminOption) (kafka.ListConsumerGroupOffsetsResult, error)
	ListOffsets(context.Context, map[kafka.TopicPartition]kafka.OffsetSpec, ...kafka.ListOffsetsAdminOption) (kafka.ListOffsetsResult, error)
	Close()
}

var (
	_ KafkaAdmin = (*Client)(nil)
	_ AdminAPI   = (*kafka.AdminClient)(nil)
)
