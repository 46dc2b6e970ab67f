package kafkaadmin

import (
	"context"
	"errors"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
)

func TestListGroups(t *testing.T) {
	f := &fakeAdmin{
		listGroups: kafka.ListConsumerGroupsResult{
			Valid: []kafka.ConsumerGroupListing{
				{GroupID: "sub-b", State: kafka.ConsumerGroupStateEmpty},
				{GroupID: "sub-a", State: kafka.ConsumerGroupStateStable},
				{GroupID: "manual", State: kafka.ConsumerGroupStateEmpty, IsSimpleConsumerGroup: true},
			},
			Errors: []error{errors.New("broker 1003 unreachable")},
		},
	}
	c := testClient(f)

	res, err := c.ListGroups(context.Background())
	assert.Nil(t, err)

	expected := []GroupListing{
		{GroupID: "manual", State: "Empty", Simple: true},
		{GroupID: "sub-a", State: "Stable"},
		{GroupID: "sub-b", State: "Empty"},
	}
	assert.Equal(t, expected, res.Groups)
	assert.Len(t, res.Errors, 1)
}

func TestListGroupsError(t *testing.T) {
	f := &fakeAdmin{err: errors.New("timed out")}
	c := testClient(f)

	_, err := c.ListGroups(context.Background())
	assert.EqualError(t, err, "ListConsumerGroups failed: timed out")
}

func TestDescribeGroup(t *testing.T) {
	rack := "rack-1"
	f := &fakeAdmin{
		describeGroups: kafka.DescribeConsumerGroupsResult{
			ConsumerGroupDescriptions: []kafka.ConsumerGroupDescription{
				{
					GroupID:           "sub",
					Error:             noErr,
					PartitionAssignor: "range",
					State:             kafka.ConsumerGroupStateStable,
					Coordinator:       kafka.Node{ID: 1001, Host: "host-a", Port: 9092, Rack: &rack},
					Members: []kafka.MemberDescription{
						{
							ClientID:   "consumer-1",
							ConsumerID: "consumer-1-uuid",
							Host:       "/10.0.0.1",
							Assignment: kafka.MemberAssignment{
								TopicPartitions: []kafka.TopicPartition{
									{Topic: strPtr("test1"), Partition: 0},
									{Topic: nil, Partition: 9},
									{Topic: strPtr("test1"), Partition: 2},
								},
							},
						},
					},
				},
			},
		},
	}
	c := testClient(f)

	desc, err := c.DescribeGroup(context.Background(), "sub")
	assert.Nil(t, err)

	assert.Equal(t, "sub", desc.GroupID)
	assert.Equal(t, "range", desc.Assignor)
	assert.Equal(t, "Stable", desc.State)
	assert.Equal(t, "host-a:9092 (rack: rack-1)", desc.Coordinator.String())
	assert.Len(t, desc.Members, 1)

	m := desc.Members[0]
	assert.Equal(t, "consumer-1", m.ClientID)
	assert.Equal(t, "consumer-1-uuid", m.ConsumerID)
	assert.Equal(t, []TopicPartition{{"test1", 0}, {"test1", 2}}, m.Assignment)
}

func TestDescribeGroupErrors(t *testing.T) {
	// Wrong result count.
	f := &fakeAdmin{}
	c := testClient(f)

	_, err := c.DescribeGroup(context.Background(), "sub")
	assert.EqualError(t, err, "Expected exactly one group, but got 0")

	// Group level error.
	f.describeGroups = kafka.DescribeConsumerGroupsResult{
		ConsumerGroupDescriptions: []kafka.ConsumerGroupDescription{
			{
				GroupID: "sub",
				Error:   kafka.NewError(kafka.ErrGroupAuthorizationFailed, "Broker: Group authorization failed", false),
			},
		},
	}

	_, err = c.DescribeGroup(context.Background(), "sub")
	var ge ErrGroupOperation
	assert.True(t, errors.As(err, &ge))
	assert.Equal(t, "DescribeConsumerGroups failed for group 'sub': Broker: Group authorization failed", err.Error())
}

func TestAssignedPartitions(t *testing.T) {
	desc := GroupDescription{
		Members: []Member{
			{Assignment: []TopicPartition{{"b", 0}, {"a", 2}}},
			{Assignment: []TopicPartition{{"a", 0}}},
			{},
		},
	}

	expected := []TopicPartition{
		{"a", 0},
		{"a", 1},
		{"a", 2},
		{"b", 0},
	}

	assert.Equal(t, expected, AssignedPartitions(desc))
	assert.Empty(t, AssignedPartitions(GroupDescription{}))
}
