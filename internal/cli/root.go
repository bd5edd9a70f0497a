package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/permrank/pkg/buildinfo"
	"github.com/matzehuels/permrank/pkg/config"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the configuration file is loaded (from
// --config, or the XDG default when present) and the log level is set from
// it, with --verbose forcing debug.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "permrank ranks, unranks and enumerates permutations",
		Long: `permrank maps permutations to integers and back.

Several ranking schemes are available: lexicographic (factoradic),
repetition (base-n words), lehmer (mixed radix), bijective (shortlex words of
length 1..k) and myrvold (linear time, not lexicographic).`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/permrank/config.toml)")

	root.AddCommand(c.rankCommand())
	root.AddCommand(c.unrankCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.intervalCommand())
	root.AddCommand(c.nextCommand())
	root.AddCommand(c.enumerateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.schemesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	path := c.configPath
	if path == "" {
		// A missing default file is fine; Load treats it as empty.
		path, _ = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)
	c.Logger.Debug("config loaded", "path", path, "cache", cfg.Cache.Backend)
	return nil
}
