package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snctl/snctl/kafkaadmin"
)

// This can be set with
// -ldflags "-X github.com/snctl/snctl/cmd/snctl/commands.version=x.x.x"
var version = "0.0.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// Doesn't need a config file.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "snctl %s (librdkafka %s)\n", version, kafkaadmin.LibraryVersion())
		},
	}
}
