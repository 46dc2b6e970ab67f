package commands

import (
	"github.com/spf13/cobra"

	"github.com/snctl/snctl/internal/config"
)

func newConfigsCmd(a *app) *cobra.Command {
	configsCmd := &cobra.Command{
		Use:   "configs",
		Short: "Manage the config file",
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update key-value from the INI section",
		Args:  cobra.NoArgs,
		RunE:  a.updateConfigs,
	}
	updateCmd.Flags().String("kafka-url", "", "The Kafka bootstrap.servers")
	updateCmd.Flags().String("kafka-token", "", "The Kafka token")

	configsCmd.AddCommand(updateCmd)

	return configsCmd
}

func (a *app) updateConfigs(cmd *cobra.Command, args []string) error {
	var req config.UpdateRequest

	// Only flags that were set are applied.
	if cmd.Flags().Changed("kafka-url") {
		v, _ := cmd.Flags().GetString("kafka-url")
		req.KafkaURL = &v
	}
	if cmd.Flags().Changed("kafka-token") {
		v, _ := cmd.Flags().GetString("kafka-token")
		req.KafkaToken = &v
	}

	_, err := a.configs.Update(req, cmd.OutOrStdout())

	return err
}
