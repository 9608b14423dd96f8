// Package cli contains the Cobra commands of the uuidgen binary.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	appcfg "github.com/Lzww0608/uuidgen/internal/config"
	"github.com/Lzww0608/uuidgen/internal/logging"
)

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	cfg    *appcfg.Config
	logger *slog.Logger
}

// NewRoot constructs the root command and registers every subcommand.
func NewRoot() *cobra.Command {
	a := &app{cfg: appcfg.Default(), logger: logging.Discard()}

	root := &cobra.Command{
		Use:           "uuidgen",
		Short:         "Generate and inspect RFC 4122 UUIDs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().String("config", "", "Config file (default $"+appcfg.EnvConfigPath+")")
	root.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error")
	root.PersistentFlags().String("log-format", "", "Log format: text|json")

	root.AddCommand(
		newV1Command(a),
		newV4Command(),
		newHashCommand("v3", "Generate a name-based UUID (MD5)", md5Names),
		newHashCommand("v5", "Generate a name-based UUID (SHA-1)", sha1Names),
		newInspectCommand(),
		newParseCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := appcfg.Load(path)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// count reads the shared -n flag.
func count(cmd *cobra.Command) (int, error) {
	n, _ := cmd.Flags().GetInt("count")
	if n < 1 {
		return 0, fmt.Errorf("invalid --count %d; must be at least 1", n)
	}
	return n, nil
}
