package kafkaadmin

import (
	"context"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/mock"
)

// MockedKafkaAdminClient is a mocked admin handle factory.
type MockedKafkaAdminClient struct {
	mock.Mock
}

// NewAdminClient creates a new AdminAPI instance.
func (m *MockedKafkaAdminClient) NewAdminClient(conf *kafka.ConfigMap) (AdminAPI, error) {
	args := m.Called(conf)
	if h := args.Get(0); h != nil {
		return h.(AdminAPI), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeAdmin is an in-memory AdminAPI. Responses are canned; requests are
// recorded for inspection.
type fakeAdmin struct {
	err error

	createResults   []kafka.TopicResult
	deleteResults   []kafka.TopicResult
	metadata        *kafka.Metadata
	describeTopics  kafka.DescribeTopicsResult
	configs         []kafka.ConfigResourceResult
	listGroups      kafka.ListConsumerGroupsResult
	describeGroups  kafka.DescribeConsumerGroupsResult
	groupOffsets    kafka.ListConsumerGroupOffsetsResult
	listOffsets     kafka.ListOffsetsResult
	created         []kafka.TopicSpecification
	deleted         []string
	metadataTimeout int
	offsetsRequest  []kafka.ConsumerGroupTopicPartitions
	endRequest      map[kafka.TopicPartition]kafka.OffsetSpec
	closed          bool
}

func (f *fakeAdmin) CreateTopics(_ context.Context, topics []kafka.TopicSpecification, _ ...kafka.CreateTopicsAdminOption) ([]kafka.TopicResult, error) {
	f.created = append(f.created, topics...)
	return f.createResults, f.err
}

func (f *fakeAdmin) DeleteTopics(_ context.Context, topics []string, _ ...kafka.DeleteTopicsAdminOption) ([]kafka.TopicResult, error) {
	f.deleted = append(f.deleted, topics...)
	return f.deleteResults, f.err
}

func (f *fakeAdmin) GetMetadata(_ *string, _ bool, timeoutMs int) (*kafka.Metadata, error) {
	f.metadataTimeout = timeoutMs
	return f.metadata, f.err
}

func (f *fakeAdmin) DescribeTopics(context.Context, kafka.TopicCollection, ...kafka.DescribeTopicsAdminOption) (kafka.DescribeTopicsResult, error) {
	return f.describeTopics, f.err
}

func (f *fakeAdmin) DescribeConfigs(context.Context, []kafka.ConfigResource, ...kafka.DescribeConfigsAdminOption) ([]kafka.ConfigResourceResult, error) {
	return f.configs, f.err
}

func (f *fakeAdmin) ListConsumerGroups(context.Context, ...kafka.ListConsumerGroupsAdminOption) (kafka.ListConsumerGroupsResult, error) {
	return f.listGroups, f.err
}

func (f *fakeAdmin) DescribeConsumerGroups(context.Context, []string, ...kafka.DescribeConsumerGroupsAdminOption) (kafka.DescribeConsumerGroupsResult, error) {
	return f.describeGroups, f.err
}

func (f *fakeAdmin) ListConsumerGroupOffsets(_ context.Context, req []kafka.ConsumerGroupTopicPartitions, _ ...kafka.ListConsumerGroupOffsetsAdminOption) (kafka.ListConsumerGroupOffsetsResult, error) {
	f.offsetsRequest = req
	return f.groupOffsets, f.err
}

func (f *fakeAdmin) ListOffsets(_ context.Context, req map[kafka.TopicPartition]kafka.OffsetSpec, _ ...kafka.ListOffsetsAdminOption) (kafka.ListOffsetsResult, error) {
	f.endRequest = req
	return f.listOffsets, f.err
}

func (f *fakeAdmin) Close() {
	f.closed = true
}

// fakeLogAdmin additionally exposes a log channel.
type fakeLogAdmin struct {
	*fakeAdmin
	logs chan kafka.LogEvent
}

func (f fakeLogAdmin) Logs() chan kafka.LogEvent {
	return f.logs
}

func testClient(f *fakeAdmin) *Client {
	c, err := NewClientWithFactory(
		Config{BootstrapServers: "kafka:9092"},
		func(*kafka.ConfigMap) (AdminAPI, error) { return f, nil },
	)
	if err != nil {
		panic(err)
	}
	return c
}

func strPtr(s string) *string {
	return &s
}

var noErr = kafka.NewError(kafka.ErrNoError, "Success", false)
