package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/snctl/snctl/internal/config"
	"github.com/snctl/snctl/kafkaadmin"
)

// plural returns "<n> <noun>", with an "s" suffix unless n is 1.
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func printConfigs(w io.Writer, c *config.Configs) {
	fmt.Fprintf(w, "Config file: %s\n", c.File())
	fmt.Fprintln(w, "[kafka]")
	fmt.Fprintf(w, "bootstrap.servers = %s\n", c.Kafka.BootstrapServers)
	fmt.Fprintf(w, "token = %s\n", c.MaskedToken())
	fmt.Fprintln(w, "[log]")
	fmt.Fprintf(w, "enabled = %t\n", c.Log.Enabled)
	if c.Log.Enabled {
		path := c.Log.Path
		if path == "" {
			path = "(stdout)"
		}
		fmt.Fprintf(w, "path = %s\n", path)
	}
}

func printTopicListings(w io.Writer, topics []kafkaadmin.TopicListing) {
	fmt.Fprintf(w, "topic count: %d\n", len(topics))
	for i, t := range topics {
		fmt.Fprintf(w, "[%d] \"%s\" with %s\n", i, t.Name, plural(t.Partitions, "partition"))
	}
}

func printUnderReplicated(w io.Writer, ts kafkaadmin.TopicStates) {
	names := make([]string, 0, len(ts))
	for name := range ts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "under-replicated topic count: %d\n", len(names))
	for i, name := range names {
		state := ts[name]

		var ids []int
		for id, ps := range state.PartitionStates {
			if ps.UnderReplicated() {
				ids = append(ids, id)
			}
		}
		sort.Ints(ids)

		partitions := make([]string, 0, len(ids))
		for _, id := range ids {
			ps := state.PartitionStates[id]
			partitions = append(partitions, fmt.Sprintf("%d (isr %d/%d)", id, len(ps.ISR), len(ps.Replicas)))
		}

		fmt.Fprintf(w, "[%d] \"%s\" with %s, under-replicated: [%s]\n",
			i, name, plural(int(state.Partitions), "partition"), strings.Join(partitions, ", "))
	}
}

func printTopicDescription(w io.Writer, d kafkaadmin.TopicDescription, configs map[string]string) {
	if d.Error != nil {
		fmt.Fprintf(w, "Topic: %s has error: %s\n", d.Name, d.Error)
		return
	}

	for i, p := range d.Partitions {
		if p.Leader == nil {
			fmt.Fprintln(w, "  has no leader")
			continue
		}
		fmt.Fprintf(w, "Partition[%d] leader: {\"id\": %d, url: \"%s\"}", i, p.Leader.ID, p.Leader.Address())
		fmt.Fprintf(w, " replicas: %s isr: %s\n", nodeIDs(p.Replicas), nodeIDs(p.ISR))
	}

	if configs == nil {
		return
	}

	fmt.Fprintf(w, "Configs for topic %s:\n", d.Name)
	for _, k := range sortedKeys(configs) {
		fmt.Fprintf(w, "  %s = %s\n", k, configs[k])
	}
}

func nodeIDs(nodes []kafkaadmin.Node) string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, fmt.Sprint(n.ID))
	}
	return "[" + strings.Join(ids, ", ") + "]"
}

func printGroupListings(w io.Writer, res kafkaadmin.ListGroupsResult) {
	fmt.Fprintf(w, "There are %s\n", plural(len(res.Groups), "group"))
	for i, g := range res.Groups {
		fmt.Fprintf(w, "[%d] %s %s\n", i, g.GroupID, g.State)
	}
}

func printGroupDescription(w io.Writer, d kafkaadmin.GroupDescription) {
	fmt.Fprintf(w, "Group ID: %s\n", d.GroupID)
	fmt.Fprintf(w, "Assignor: %s\n", d.Assignor)
	fmt.Fprintf(w, "State: %s\n", d.State)
	fmt.Fprintf(w, "Coordinator: %s\n", d.Coordinator)

	if len(d.Members) == 0 {
		fmt.Fprintln(w, "No members")
		return
	}

	fmt.Fprintf(w, "There are %d members:\n", len(d.Members))
	fmt.Fprintln(w, "| index | client id | consumer id | host | assignments |")
	for i, m := range d.Members {
		assignment := make([]string, 0, len(m.Assignment))
		for _, tp := range m.Assignment {
			assignment = append(assignment, tp.String())
		}
		fmt.Fprintf(w, "| %d | %s | %s | %s | [%s] |\n",
			i, m.ClientID, m.ConsumerID, m.Host, strings.Join(assignment, ", "))
	}
}

func printGroupLag(w io.Writer, group string, lag []kafkaadmin.PartitionLag) {
	fmt.Fprintf(w, "Offsets info for group '%s' with %d topic-partitions:\n", group, len(lag))
	fmt.Fprintln(w, "| topic-partition | committed offset | end offset | lag |")
	for _, pl := range lag {
		if !pl.HasEnd {
			fmt.Fprintf(w, "| %s | %d | N/A | N/A |\n", pl.TopicPartition, pl.Committed)
			continue
		}
		fmt.Fprintf(w, "| %s | %d | %d | %d |\n", pl.TopicPartition, pl.Committed, pl.End, pl.Lag())
	}
}

func printBrokers(w io.Writer, bmm kafkaadmin.BrokerMetadataMap) {
	fmt.Fprintf(w, "There are %s\n", plural(len(bmm), "broker"))
	for _, id := range bmm.IDs() {
		b := bmm[id]
		node := kafkaadmin.Node{ID: id, Host: b.Host, Port: b.Port, Rack: b.Rack}
		fmt.Fprintf(w, "[%d] %s\n", id, node)
		for _, k := range sortedKeys(b.FullData) {
			fmt.Fprintf(w, "  %s = %s\n", k, b.FullData[k])
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
