package stub

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/snctl/snctl/kafkaadmin"
)

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Closed = true
}

func (c *Client) CreateTopic(_ context.Context, cfg kafkaadmin.CreateTopicConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}

	if cfg.Partitions < 0 {
		return kafkaadmin.ErrInvalidArgument{Message: "Number of partitions must be greater than or equal to 0"}
	}

	if _, exists := c.metadata.Topics[cfg.Name]; exists {
		return kafkaadmin.ErrTopicOperation{Op: "CreateTopics", Topic: cfg.Name, Err: errTopicExists}
	}

	tm := kafka.TopicMetadata{Topic: cfg.Name, Error: noErr}

	if cfg.ReplicaAssignment != nil {
		if cfg.Partitions != 0 && cfg.Partitions != len(cfg.ReplicaAssignment) {
			return kafkaadmin.ErrInvalidArgument{Message: fmt.Sprintf(
				"replica assignment has %d partitions, expected %d", len(cfg.ReplicaAssignment), cfg.Partitions)}
		}
		for i, replicas := range cfg.ReplicaAssignment {
			for _, id := range replicas {
				if !c.hasBroker(id) {
					return kafkaadmin.ErrTopicOperation{Op: "CreateTopics", Topic: cfg.Name, Err: errInvalidAssignment}
				}
			}
			tm.Partitions = append(tm.Partitions, kafka.PartitionMetadata{
				ID:       int32(i),
				Error:    noErr,
				Leader:   replicas[0],
				Replicas: append([]int32(nil), replicas...),
				Isrs:     append([]int32(nil), replicas...),
			})
		}
		c.metadata.Topics[cfg.Name] = tm
		return nil
	}

	// Partitions are led round-robin by the sorted brokers.
	brokers := c.metadata.Brokers
	for i := 0; i < cfg.Partitions; i++ {
		leader := brokers[i%len(brokers)].ID
		tm.Partitions = append(tm.Partitions, kafka.PartitionMetadata{
			ID:       int32(i),
			Error:    noErr,
			Leader:   leader,
			Replicas: []int32{leader},
			Isrs:     []int32{leader},
		})
	}

	c.metadata.Topics[cfg.Name] = tm

	return nil
}

func (c *Client) DeleteTopic(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}

	if _, exists := c.metadata.Topics[name]; !exists {
		return kafkaadmin.ErrTopicOperation{Op: "DeleteTopics", Topic: name, Err: errUnknownTopic}
	}

	delete(c.metadata.Topics, name)

	return nil
}

func (c *Client) ListTopics(_ context.Context, names []string) ([]kafkaadmin.TopicListing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	re, err := kafkaadmin.StringsToRegex(names)
	if err != nil {
		return nil, err
	}

	var out []kafkaadmin.TopicListing
	for name, tm := range c.metadata.Topics {
		if len(re) > 0 && !kafkaadmin.MatchesAny(name, re) {
			continue
		}
		out = append(out, kafkaadmin.TopicListing{Name: name, Partitions: len(tm.Partitions)})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (c *Client) DescribeTopic(_ context.Context, name string) ([]kafkaadmin.TopicDescription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	tm, exists := c.metadata.Topics[name]
	if !exists {
		return []kafkaadmin.TopicDescription{{Name: name, Error: errUnknownTopic}}, nil
	}

	desc := kafkaadmin.TopicDescription{Name: name}
	for _, pm := range tm.Partitions {
		pd := kafkaadmin.PartitionDescription{
			ID:       int(pm.ID),
			Replicas: c.nodes(pm.Replicas),
			ISR:      c.nodes(pm.Isrs),
		}
		if pm.Leader >= 0 {
			leader := c.node(pm.Leader)
			pd.Leader = &leader
		}
		desc.Partitions = append(desc.Partitions, pd)
	}

	return []kafkaadmin.TopicDescription{desc}, nil
}

func (c *Client) DescribeTopics(_ context.Context, names []string) (kafkaadmin.TopicStates, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	md := copyMetadata(c.metadata)

	re, err := kafkaadmin.StringsToRegex(names)
	if err != nil {
		return nil, err
	}

	for topic := range md.Topics {
		if !kafkaadmin.MatchesAny(topic, re) {
			delete(md.Topics, topic)
		}
	}

	return kafkaadmin.TopicStatesFromMetadata(&md)
}

func (c *Client) ListGroups(context.Context) (kafkaadmin.ListGroupsResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return kafkaadmin.ListGroupsResult{}, c.Err
	}

	var res kafkaadmin.ListGroupsResult
	for _, g := range c.groups {
		res.Groups = append(res.Groups, kafkaadmin.GroupListing{
			GroupID: g.GroupID,
			State:   g.State,
			Simple:  g.Simple,
		})
	}

	sort.Slice(res.Groups, func(i, j int) bool {
		return res.Groups[i].GroupID < res.Groups[j].GroupID
	})

	return res, nil
}

// DescribeGroup returns a Dead group without members for unknown groups,
// the same as a broker does.
func (c *Client) DescribeGroup(_ context.Context, group string) (kafkaadmin.GroupDescription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return kafkaadmin.GroupDescription{}, c.Err
	}

	desc, exists := c.groups[group]
	if !exists {
		return kafkaadmin.GroupDescription{
			GroupID:     group,
			State:       "Dead",
			Coordinator: c.node(c.metadata.Brokers[0].ID),
		}, nil
	}

	return desc, nil
}

func (c *Client) CommittedOffsets(_ context.Context, group string, partitions []kafkaadmin.TopicPartition) (kafkaadmin.Offsets, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	committed := c.committed[group]
	out := kafkaadmin.Offsets{}

	if len(partitions) == 0 {
		for tp, o := range committed {
			out[tp] = o
		}
		return out, nil
	}

	for _, tp := range partitions {
		if o, ok := committed[tp]; ok {
			out[tp] = o
		}
	}

	return out, nil
}

func (c *Client) EndOffsets(_ context.Context, partitions []kafkaadmin.TopicPartition) (kafkaadmin.Offsets, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	out := kafkaadmin.Offsets{}
	for _, tp := range partitions {
		if o, ok := c.end[tp]; ok {
			out[tp] = o
		}
	}

	return out, nil
}

func (c *Client) GetBrokerMetadata(_ context.Context, fullData bool) (kafkaadmin.BrokerMetadataMap, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	bmm := kafkaadmin.NewBrokerMetadataMap()
	for _, b := range c.metadata.Brokers {
		bm := kafkaadmin.BrokerMetadata{
			Host: b.Host,
			Port: b.Port,
			Rack: c.racks[b.ID],
		}
		if fullData {
			bm.FullData = map[string]string{"broker.id": strconv.Itoa(int(b.ID))}
			if bm.Rack != "" {
				bm.FullData["broker.rack"] = bm.Rack
			}
		}
		bmm[int(b.ID)] = bm
	}

	return bmm, nil
}

func (c *Client) GetConfigs(_ context.Context, kind string, names []string) (kafkaadmin.ResourceConfigs, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	if kind != "topic" {
		return kafkaadmin.ResourceConfigs{}, nil
	}

	matched := kafkaadmin.ResourceConfigs{}
	for _, name := range names {
		if _, exist := c.metadata.Topics[name]; !exist {
			return nil, fmt.Errorf("%s %s: %s", kind, name, errUnknownTopic)
		}
		if _, exist := c.configs[name]; exist {
			matched[name] = c.configs[name]
		}
	}

	return matched, nil
}

// GetDynamicConfigs treats retention.ms as the only dynamic config.
func (c *Client) GetDynamicConfigs(ctx context.Context, kind string, names []string) (kafkaadmin.ResourceConfigs, error) {
	all, err := c.GetConfigs(ctx, kind, names)
	if err != nil {
		return nil, err
	}

	dynamic := kafkaadmin.ResourceConfigs{}
	for name, cfg := range all {
		if v, ok := cfg["retention.ms"]; ok {
			dynamic.AddConfig(name, "retention.ms", v)
		}
	}

	return dynamic, nil
}

func (c *Client) hasBroker(id int32) bool {
	for _, b := range c.metadata.Brokers {
		if b.ID == id {
			return true
		}
	}
	return false
}

func (c *Client) node(id int32) kafkaadmin.Node {
	for _, b := range c.metadata.Brokers {
		if b.ID == id {
			return kafkaadmin.Node{ID: int(b.ID), Host: b.Host, Port: b.Port, Rack: c.racks[b.ID]}
		}
	}
	return kafkaadmin.Node{ID: int(id)}
}

func (c *Client) nodes(ids []int32) []kafkaadmin.Node {
	out := make([]kafkaadmin.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.node(id))
	}
	return out
}
