package kafkaadmin

import (
	"context"
	"fmt"
	"sort"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

// TopicPartition identifies a partition of a topic.
type TopicPartition struct {
	Topic     string
	Partition int32
}

// String returns the "<topic>-<partition>" form of the TopicPartition.
func (tp TopicPartition) String() string {
	return fmt.Sprintf("%s-%d", tp.Topic, tp.Partition)
}

// SortTopicPartitions sorts tps by topic, then partition.
func SortTopicPartitions(tps []TopicPartition) {
	sort.Slice(tps, func(i, j int) bool {
		if tps[i].Topic != tps[j].Topic {
			return tps[i].Topic < tps[j].Topic
		}
		return tps[i].Partition < tps[j].Partition
	})
}

// Offsets maps partitions to an offset.
type Offsets map[TopicPartition]int64

// TopicPartitions returns the sorted keys of the Offsets.
func (o Offsets) TopicPartitions() []TopicPartition {
	out := make([]TopicPartition, 0, len(o))
	for tp := range o {
		out = append(out, tp)
	}

	SortTopicPartitions(out)

	return out
}

// PartitionLag is the lag of a group on a single partition. End is only
// meaningful if HasEnd is true.
type PartitionLag struct {
	TopicPartition
	Committed int64
	End       int64
	HasEnd    bool
}

// Lag returns the end offset minus the committed offset.
func (pl PartitionLag) Lag() int64 {
	return pl.End - pl.Committed
}

// CommittedOffsets returns the committed offsets of group for the provided
// partitions. A nil or empty partition list requests every partition the
// group has committed offsets for. Partitions without a valid committed
// offset are omitted.
func (c *Client) CommittedOffsets(ctx context.Context, group string, partitions []TopicPartition) (Offsets, error) {
	req := kafka.ConsumerGroupTopicPartitions{
		Group:      group,
		Partitions: toKafkaTopicPartitions(partitions),
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	res, err := c.c.ListConsumerGroupOffsets(ctx, []kafka.ConsumerGroupTopicPartitions{req})
	if err != nil {
		return nil, ErrGroupOperation{Op: "ListConsumerGroupOffsets", Group: group, Err: err}
	}

	return committedOffsetsFromResult(group, res)
}

func committedOffsetsFromResult(group string, res kafka.ListConsumerGroupOffsetsResult) (Offsets, error) {
	groups := res.ConsumerGroupsTopicPartitions
	if len(groups) != 1 {
		return nil, ErrUnexpectedResult{
			Message: fmt.Sprintf("Expected exactly one group, but got %d in ListConsumerGroupOffsets", len(groups)),
		}
	}

	if groups[0].Group != group {
		return nil, ErrUnexpectedResult{
			Message: fmt.Sprintf("Expected group '%s', but got '%s' in ListConsumerGroupOffsets", group, groups[0].Group),
		}
	}

	offsets := Offsets{}
	for _, tp := range groups[0].Partitions {
		if tp.Topic == nil || tp.Error != nil || tp.Offset == kafka.OffsetInvalid {
			continue
		}
		offsets[TopicPartition{Topic: *tp.Topic, Partition: tp.Partition}] = int64(tp.Offset)
	}

	return offsets, nil
}

// EndOffsets returns the log end offset of each provided partition.
// Partitions the cluster returned an error for are omitted.
func (c *Client) EndOffsets(ctx context.Context, partitions []TopicPartition) (Offsets, error) {
	if len(partitions) == 0 {
		return Offsets{}, nil
	}

	req := make(map[kafka.TopicPartition]kafka.OffsetSpec, len(partitions))
	for _, tp := range toKafkaTopicPartitions(partitions) {
		req[tp] = kafka.LatestOffsetSpec
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	res, err := c.c.ListOffsets(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("ListOffsets failed: %w", err)
	}

	offsets := Offsets{}
	for tp, info := range res.ResultInfos {
		if tp.Topic == nil {
			continue
		}
		key := TopicPartition{Topic: *tp.Topic, Partition: tp.Partition}
		if info.Error.Code() != kafka.ErrNoError {
			c.logger.Debug("skipping end offset",
				zap.String("partition", key.String()),
				zap.String("error", info.Error.String()))
			continue
		}
		offsets[key] = int64(info.Offset)
	}

	return offsets, nil
}

func toKafkaTopicPartitions(tps []TopicPartition) []kafka.TopicPartition {
	if len(tps) == 0 {
		return nil
	}

	out := make([]kafka.TopicPartition, 0, len(tps))
	for _, tp := range tps {
		topic := tp.Topic
		out = append(out, kafka.TopicPartition{
			Topic:     &topic,
			Partition: tp.Partition,
		})
	}

	return out
}

// ComputeLag returns one PartitionLag per committed offset, matching end
// offsets by partition. The result is sorted by topic, then partition.
func ComputeLag(committed, end Offsets) []PartitionLag {
	var out []PartitionLag

	for _, tp := range committed.TopicPartitions() {
		pl := PartitionLag{
			TopicPartition: tp,
			Committed:      committed[tp],
		}
		if e, ok := end[tp]; ok {
			pl.End = e
			pl.HasEnd = true
		}
		out = append(out, pl)
	}

	return out
}

// GroupLag queries the committed offsets of the described group and the end
// offsets of those partitions, and returns the per-partition lag.
func GroupLag(ctx context.Context, ka KafkaAdmin, desc GroupDescription) ([]PartitionLag, error) {
	committed, err := ka.CommittedOffsets(ctx, desc.GroupID, AssignedPartitions(desc))
	if err != nil {
		return nil, err
	}

	if len(committed) == 0 {
		return nil, nil
	}

	end, err := ka.EndOffsets(ctx, committed.TopicPartitions())
	if err != nil {
		return nil, err
	}

	return ComputeLag(committed, end), nil
}
