package kafkaadmin

import (
	"context"
	"errors"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
)

func TestGetBrokerMetadata(t *testing.T) {
	md := fakeKafkaMetadata()
	f := &fakeAdmin{
		metadata: &md,
		configs: []kafka.ConfigResourceResult{
			{
				Type:  brokerResourceType,
				Name:  "1001",
				Error: noErr,
				Config: map[string]kafka.ConfigEntryResult{
					"broker.rack": {Name: "broker.rack", Value: "a"},
					"log.dirs":    {Name: "log.dirs", Value: "/data"},
				},
			},
		},
	}
	c := testClient(f)

	bmm, err := c.GetBrokerMetadata(context.Background(), false)
	assert.Nil(t, err)
	assert.Equal(t, []int{1001, 1002, 1003}, bmm.IDs())
	assert.Equal(t, "a", bmm[1001].Rack)
	assert.Equal(t, "host-b", bmm[1002].Host)
	assert.Nil(t, bmm[1001].FullData)

	bmm, err = c.GetBrokerMetadata(context.Background(), true)
	assert.Nil(t, err)
	assert.Equal(t, "/data", bmm[1001].FullData["log.dirs"])
}

func TestGetBrokerMetadataNoBrokers(t *testing.T) {
	f := &fakeAdmin{metadata: &kafka.Metadata{}}
	c := testClient(f)

	bmm, err := c.GetBrokerMetadata(context.Background(), false)
	assert.Nil(t, err)
	assert.Empty(t, bmm)
}

func TestGetBrokerMetadataError(t *testing.T) {
	f := &fakeAdmin{err: errors.New("timed out")}
	c := testClient(f)

	_, err := c.GetBrokerMetadata(context.Background(), true)
	assert.EqualError(t, err, "failed to fetch metadata: timed out")
}
