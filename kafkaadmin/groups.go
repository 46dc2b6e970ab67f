package kafkaadmin

import (
	"context"
	"fmt"
	"sort"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// GroupListing is a consumer group as returned by ListGroups.
type GroupListing struct {
	GroupID string
	State   string
	Simple  bool
}

// ListGroupsResult holds the groups listed and the errors reported by any
// brokers that couldn't be queried.
type ListGroupsResult struct {
	Groups []GroupListing
	Errors []error
}

// GroupDescription describes a consumer group.
type GroupDescription struct {
	GroupID     string
	Assignor    string
	State       string
	Simple      bool
	Coordinator Node
	Members     []Member
}

// Member is a consumer group member and its partition assignment.
type Member struct {
	ClientID        string
	ConsumerID      string
	GroupInstanceID string
	Host            string
	Assignment      []TopicPartition
}

// ListGroups lists all consumer groups known to the cluster, sorted by ID.
func (c *Client) ListGroups(ctx context.Context) (ListGroupsResult, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	res, err := c.c.ListConsumerGroups(ctx)
	if err != nil {
		return ListGroupsResult{}, fmt.Errorf("ListConsumerGroups failed: %w", err)
	}

	return listGroupsFromResult(res), nil
}

func listGroupsFromResult(res kafka.ListConsumerGroupsResult) ListGroupsResult {
	out := ListGroupsResult{Errors: res.Errors}

	for _, g := range res.Valid {
		out.Groups = append(out.Groups, GroupListing{
			GroupID: g.GroupID,
			State:   g.State.String(),
			Simple:  g.IsSimpleConsumerGroup,
		})
	}

	sort.Slice(out.Groups, func(i, j int) bool {
		return out.Groups[i].GroupID < out.Groups[j].GroupID
	})

	return out
}

// DescribeGroup describes a single consumer group.
func (c *Client) DescribeGroup(ctx context.Context, group string) (GroupDescription, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	res, err := c.c.DescribeConsumerGroups(ctx, []string{group})
	if err != nil {
		return GroupDescription{}, ErrGroupOperation{Op: "DescribeConsumerGroups", Group: group, Err: err}
	}

	return groupDescriptionFromResult(group, res)
}

func groupDescriptionFromResult(group string, res kafka.DescribeConsumerGroupsResult) (GroupDescription, error) {
	if n := len(res.ConsumerGroupDescriptions); n != 1 {
		return GroupDescription{}, ErrUnexpectedResult{
			Message: fmt.Sprintf("Expected exactly one group, but got %d", n),
		}
	}

	d := res.ConsumerGroupDescriptions[0]
	if d.Error.Code() != kafka.ErrNoError {
		return GroupDescription{}, ErrGroupOperation{Op: "DescribeConsumerGroups", Group: d.GroupID, Err: d.Error}
	}

	desc := GroupDescription{
		GroupID:     d.GroupID,
		Assignor:    d.PartitionAssignor,
		State:       d.State.String(),
		Simple:      d.IsSimpleConsumerGroup,
		Coordinator: nodeFromResult(d.Coordinator),
	}

	for _, m := range d.Members {
		member := Member{
			ClientID:        m.ClientID,
			ConsumerID:      m.ConsumerID,
			GroupInstanceID: m.GroupInstanceID,
			Host:            m.Host,
		}
		for _, tp := range m.Assignment.TopicPartitions {
			if tp.Topic == nil {
				continue
			}
			member.Assignment = append(member.Assignment, TopicPartition{
				Topic:     *tp.Topic,
				Partition: tp.Partition,
			})
		}
		desc.Members = append(desc.Members, member)
	}

	return desc, nil
}

// AssignedPartitions returns every partition of every topic referenced by the
// group's member assignments. A topic's partition count is inferred as the
// highest assigned partition ID plus one, so partitions that happen to be
// unassigned are still included.
func AssignedPartitions(desc GroupDescription) []TopicPartition {
	counts := map[string]int32{}

	for _, m := range desc.Members {
		for _, tp := range m.Assignment {
			if tp.Partition+1 > counts[tp.Topic] {
				counts[tp.Topic] = tp.Partition + 1
			}
		}
	}

	var out []TopicPartition
	for topic, n := range counts {
		for p := int32(0); p < n; p++ {
			out = append(out, TopicPartition{Topic: topic, Partition: p})
		}
	}

	SortTopicPartitions(out)

	return out
}
