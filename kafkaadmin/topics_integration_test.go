//go:build integration

package kafkaadmin

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDescribeTopicsSingle(t *testing.T) {
	ctx, ka := testKafkaAdminClient(t)

	// Fetch the topic automatically created by docker compose.
	ts, err := ka.DescribeTopics(ctx, []string{"test1"})
	assert.Nil(t, err)

	assert.Equal(t, "test1", ts["test1"].Name)
	assert.Equal(t, int32(1), ts["test1"].Partitions)
	assert.Equal(t, int32(3), ts["test1"].ReplicationFactor)
	// The partition states of an automatically created topic are non-deterministic,
	// so we'll just spot check that the data approximately exists.
	pLen := len(ts["test1"].PartitionStates[0].Replicas)
	assert.Equal(t, 3, pLen, "unexpected replicas len")
}

func TestTopicLifecycle(t *testing.T) {
	ctx, ka := testKafkaAdminClient(t)

	name := fmt.Sprintf("snctl-it-%d", time.Now().UnixNano())

	err := ka.CreateTopic(ctx, CreateTopicConfig{Name: name, Partitions: 2, ReplicationFactor: 1})
	assert.Nil(t, err)

	topics, err := ka.ListTopics(ctx, []string{name})
	assert.Nil(t, err)
	assert.Equal(t, []TopicListing{{Name: name, Partitions: 2}}, topics)

	descs, err := ka.DescribeTopic(ctx, name)
	assert.Nil(t, err)
	assert.Len(t, descs, 1)
	assert.Nil(t, descs[0].Error)
	assert.Len(t, descs[0].Partitions, 2)

	assert.Nil(t, ka.DeleteTopic(ctx, name))
}

func TestGetBrokerMetadataIntegration(t *testing.T) {
	ctx, ka := testKafkaAdminClient(t)

	bmm, err := ka.GetBrokerMetadata(ctx, true)
	assert.Nil(t, err)
	assert.Equal(t, []int{1001, 1002, 1003}, bmm.IDs(), "unexpected IDs list")
	assert.NotEmpty(t, bmm[1001].FullData)
}
