package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snctl/snctl/kafkaadmin"
)

func newGroupsCmd(a *app) *cobra.Command {
	groupsCmd := &cobra.Command{
		Use:   "groups",
		Short: "List and describe consumer groups",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all consumer groups",
		Args:  cobra.NoArgs,
		RunE:  a.listGroups,
	}

	describeCmd := &cobra.Command{
		Use:   "describe <group>",
		Short: "Describe a specific consumer group",
		Args:  cobra.ExactArgs(1),
		RunE:  a.describeGroup,
	}
	describeCmd.Flags().Bool("lag", false, "Show the lag of the group")

	groupsCmd.AddCommand(listCmd, describeCmd)

	return groupsCmd
}

func (a *app) listGroups(cmd *cobra.Command, args []string) error {
	ka, err := a.kafkaAdmin(cmd)
	if err != nil {
		return err
	}

	res, err := ka.ListGroups(cmd.Context())
	if err != nil {
		return fmt.Errorf("Failed to list consumer groups: %w", err)
	}

	// Brokers that couldn't be queried make the listing incomplete.
	if len(res.Errors) > 0 {
		for i, e := range res.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d error: %s\n", i, e)
		}
		return fmt.Errorf("Failed to list consumer groups: %s", plural(len(res.Errors), "error"))
	}

	printGroupListings(cmd.OutOrStdout(), res)

	return nil
}

func (a *app) describeGroup(cmd *cobra.Command, args []string) error {
	group := args[0]
	showLag, _ := cmd.Flags().GetBool("lag")

	ka, err := a.kafkaAdmin(cmd)
	if err != nil {
		return err
	}

	desc, err := ka.DescribeGroup(cmd.Context(), group)
	if err != nil {
		return fmt.Errorf("Failed to describe group '%s': %w", group, err)
	}

	printGroupDescription(cmd.OutOrStdout(), desc)

	if !showLag {
		return nil
	}

	lag, err := kafkaadmin.GroupLag(cmd.Context(), ka, desc)
	if err != nil {
		return fmt.Errorf("Failed to describe group '%s': %w", group, err)
	}

	printGroupLag(cmd.OutOrStdout(), desc.GroupID, lag)

	return nil
}
