package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snctl/snctl/kafkaadmin"
)

func newTopicsCmd(a *app) *cobra.Command {
	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "Create, delete, list and describe topics",
	}

	createCmd := &cobra.Command{
		Use:   "create <topic>",
		Short: "Create a topic",
		Args:  cobra.ExactArgs(1),
		RunE:  a.createTopic,
	}
	createCmd.Flags().IntP("partitions", "p", 1, "Number of partitions")
	createCmd.Flags().IntP("replication-factor", "r", 1, "Replication factor")
	createCmd.Flags().StringToString("topic-config", nil, "Topic configs as key=value pairs")
	createCmd.Flags().String("replica-assignment", "", "Broker IDs per partition, e.g. 1001:1002,1002:1003 (overrides --replication-factor)")

	deleteCmd := &cobra.Command{
		Use:   "delete <topic>",
		Short: "Delete a topic",
		Args:  cobra.ExactArgs(1),
		RunE:  a.deleteTopic,
	}

	listCmd := &cobra.Command{
		Use:   "list [topic or regex...]",
		Short: "List topics",
		Long: `List topics and their partition counts. If any names are given, only
topics that match one of them are listed. Names containing characters not
allowed in topic names are treated as regex.`,
		RunE: a.listTopics,
	}
	listCmd.Flags().Bool("under-replicated", false, "Only list topics with partitions that have fewer in-sync replicas than replicas")

	describeCmd := &cobra.Command{
		Use:   "describe <topic>",
		Short: "Describe a topic",
		Args:  cobra.ExactArgs(1),
		RunE:  a.describeTopic,
	}
	describeCmd.Flags().Bool("configs", false, "Also print the topic configs")
	describeCmd.Flags().Bool("dynamic", false, "Only print dynamically set topic configs (implies --configs)")

	topicsCmd.AddCommand(createCmd, deleteCmd, listCmd, describeCmd)

	return topicsCmd
}

func (a *app) createTopic(cmd *cobra.Command, args []string) error {
	topic := args[0]
	partitions, _ := cmd.Flags().GetInt("partitions")
	rf, _ := cmd.Flags().GetInt("replication-factor")
	configs, _ := cmd.Flags().GetStringToString("topic-config")
	assignment, _ := cmd.Flags().GetString("replica-assignment")

	// Validated before connecting.
	if partitions < 0 {
		return kafkaadmin.ErrInvalidArgument{Message: "Number of partitions must be greater than or equal to 0"}
	}

	var ra kafkaadmin.ReplicaAssignment
	if cmd.Flags().Changed("replica-assignment") {
		var err error
		if ra, err = kafkaadmin.ParseReplicaAssignment(assignment); err != nil {
			return err
		}
		if !cmd.Flags().Changed("partitions") {
			partitions = len(ra)
		}
		if partitions != len(ra) {
			return kafkaadmin.ErrInvalidArgument{Message: fmt.Sprintf(
				"replica assignment has %d partitions, expected %d", len(ra), partitions)}
		}
	}

	ka, err := a.kafkaAdmin(cmd)
	if err != nil {
		return err
	}

	err = ka.CreateTopic(cmd.Context(), kafkaadmin.CreateTopicConfig{
		Name:              topic,
		Partitions:        partitions,
		ReplicationFactor: rf,
		Config:            configs,
		ReplicaAssignment: ra,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created topic \"%s\" with %s\n", topic, plural(partitions, "partition"))

	return nil
}

func (a *app) deleteTopic(cmd *cobra.Command, args []string) error {
	topic := args[0]

	ka, err := a.kafkaAdmin(cmd)
	if err != nil {
		return err
	}

	if err := ka.DeleteTopic(cmd.Context(), topic); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted topic \"%s\"\n", topic)

	return nil
}

func (a *app) listTopics(cmd *cobra.Command, args []string) error {
	underReplicated, _ := cmd.Flags().GetBool("under-replicated")

	ka, err := a.kafkaAdmin(cmd)
	if err != nil {
		return err
	}

	if underReplicated {
		patterns := args
		if len(patterns) == 0 {
			patterns = []string{".*"}
		}

		ts, err := ka.DescribeTopics(cmd.Context(), patterns)
		if err != nil {
			return fmt.Errorf("Failed to list topics: %w", err)
		}

		printUnderReplicated(cmd.OutOrStdout(), ts.UnderReplicated())

		return nil
	}

	topics, err := ka.ListTopics(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("Failed to list topics: %w", err)
	}

	printTopicListings(cmd.OutOrStdout(), topics)

	return nil
}

func (a *app) describeTopic(cmd *cobra.Command, args []string) error {
	topic := args[0]
	withConfigs, _ := cmd.Flags().GetBool("configs")
	dynamic, _ := cmd.Flags().GetBool("dynamic")

	ka, err := a.kafkaAdmin(cmd)
	if err != nil {
		return err
	}

	descs, err := ka.DescribeTopic(cmd.Context(), topic)
	if err != nil {
		return err
	}

	for _, d := range descs {
		var configs map[string]string
		if (withConfigs || dynamic) && d.Error == nil {
			getConfigs := ka.GetConfigs
			if dynamic {
				getConfigs = ka.GetDynamicConfigs
			}
			rc, err := getConfigs(cmd.Context(), "topic", []string{d.Name})
			if err != nil {
				return err
			}
			configs = rc[d.Name]
			if configs == nil {
				configs = map[string]string{}
			}
		}
		printTopicDescription(cmd.OutOrStdout(), d, configs)
	}

	return nil
}
