package commands

import (
	"github.com/spf13/cobra"
)

func newBrokersCmd(a *app) *cobra.Command {
	brokersCmd := &cobra.Command{
		Use:   "brokers",
		Short: "Inspect brokers",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List live brokers with their address and rack",
		Args:  cobra.NoArgs,
		RunE:  a.listBrokers,
	}
	listCmd.Flags().Bool("full", false, "Also print every broker config")

	brokersCmd.AddCommand(listCmd)

	return brokersCmd
}

func (a *app) listBrokers(cmd *cobra.Command, args []string) error {
	full, _ := cmd.Flags().GetBool("full")

	ka, err := a.kafkaAdmin(cmd)
	if err != nil {
		return err
	}

	bmm, err := ka.GetBrokerMetadata(cmd.Context(), full)
	if err != nil {
		return err
	}

	printBrokers(cmd.OutOrStdout(), bmm)

	return nil
}
