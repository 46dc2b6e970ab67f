package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/jamiealquiza/envy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/snctl/snctl/internal/config"
	"github.com/snctl/snctl/internal/logging"
	"github.com/snctl/snctl/kafkaadmin"
)

// errConfigPrinted stops the command chain after --get-config.
var errConfigPrinted = errors.New("config printed")

// AdminFactory builds a KafkaAdmin from a client config.
type AdminFactory func(kafkaadmin.Config) (kafkaadmin.KafkaAdmin, error)

func newKafkaAdmin(cfg kafkaadmin.Config) (kafkaadmin.KafkaAdmin, error) {
	if err := kafkaadmin.CheckLibraryVersion(); err != nil {
		return nil, err
	}
	return kafkaadmin.NewClient(cfg)
}

// app holds the state shared by the commands of one invocation.
type app struct {
	newAdmin AdminFactory
	// workDir is where a default config file is created.
	workDir string

	configs *config.Configs
	logger  *zap.Logger
	admin   kafkaadmin.KafkaAdmin
}

// Execute runs the snctl command tree and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a := &app{newAdmin: newKafkaAdmin, workDir: wd}
	rootCmd := newRootCmd(a)

	envy.ParseCobra(rootCmd, envy.CobraConfig{Prefix: "SNCTL", Persistent: true, Recursive: false})

	if err := run(ctx, a, rootCmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app, rootCmd *cobra.Command) error {
	defer a.close()

	err := rootCmd.ExecuteContext(ctx)
	if errors.Is(err, errConfigPrinted) {
		return nil
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snctl",
		Short: "Manage topics and consumer groups of a Kafka cluster",
		Long: `snctl manages the topics and consumer groups of a Kafka cluster.

Connection and logging settings are read from an INI config file. The first
existing file of the --config search list is used; if none exists, a file
with the default settings is created in the working directory.`,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringSlice("config", nil, "Config file search list (default [./sncloud.ini, ~/.snctl/sncloud.ini])")
	rootCmd.PersistentFlags().String("client-id", "", "Kafka client.id")
	rootCmd.PersistentFlags().Bool("get-config", false, "Print the resolved config file and settings, then exit")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Admin request timeout (0 waits indefinitely)")

	rootCmd.AddCommand(
		newTopicsCmd(a),
		newGroupsCmd(a),
		newConfigsCmd(a),
		newBrokersCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// setup resolves the config file. Usage errors are reported before this
// runs; errors past this point are runtime errors and don't print usage.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	paths, _ := cmd.Flags().GetStringSlice("config")
	if len(paths) == 0 {
		var err error
		if paths, err = config.DefaultPaths(); err != nil {
			return fmt.Errorf("[config] %s", err)
		}
	}

	loader := config.Loader{
		Paths:       paths,
		DefaultPath: filepath.Join(a.workDir, config.FileName),
		Out:         cmd.OutOrStdout(),
		Err:         cmd.ErrOrStderr(),
	}

	c, err := loader.Load()
	if err != nil {
		return fmt.Errorf("[config] %s", err)
	}

	a.configs = c

	if getConfig, _ := cmd.Flags().GetBool("get-config"); getConfig {
		printConfigs(cmd.OutOrStdout(), c)
		return errConfigPrinted
	}

	return nil
}

func (a *app) close() {
	if a.admin != nil {
		a.admin.Close()
		a.admin = nil
	}
	if a.logger != nil {
		a.logger.Sync()
	}
}

// kafkaAdmin returns the admin client for the loaded config, initializing
// the librdkafka logger and client on first use.
func (a *app) kafkaAdmin(cmd *cobra.Command) (kafkaadmin.KafkaAdmin, error) {
	if a.admin != nil {
		return a.admin, nil
	}

	logger, err := logging.New(logging.Config{
		Enabled: a.configs.Log.Enabled,
		Path:    a.configs.Log.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("[log] %s", err)
	}

	a.logger = logger

	clientID, _ := cmd.Flags().GetString("client-id")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	ka, err := a.newAdmin(kafkaadmin.Config{
		BootstrapServers: a.configs.Kafka.BootstrapServers,
		ClientID:         clientID,
		Token:            a.configs.Kafka.Token,
		Timeout:          timeout,
		Logger:           logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("admin client initialized",
		zap.String("bootstrap.servers", a.configs.Kafka.BootstrapServers),
		zap.String("config", a.configs.File()),
		zap.Duration("timeout", timeout))

	a.admin = ka

	return ka, nil
}
