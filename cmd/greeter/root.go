package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agilisium/greeter/internal/config"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

type options struct {
	configFile string
	open       bool
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "greeter",
		Short: "Serve the Agilisium DevOps team greeting pages",
		Long: `greeter serves two pages: a welcome page at / and a personal greeting at
/hello/<name>. By default it listens on 127.0.0.1:5000.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, logger)
		},
	}
	root.SetVersionTemplate("greeter version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default: greeter.{yaml,json,toml} in . or /etc/greeter)")
	flags.String("host", "", "interface to listen on (default 127.0.0.1)")
	flags.Int("port", 0, "port to listen on, 0 for any free port (default 5000)")
	flags.Int("max-conns", 0, "maximum simultaneous connections, 0 for unlimited")
	flags.Bool("compress", false, "compress responses for clients that accept it")

	addOpenFlag(root, opts)

	root.AddCommand(newServeCmd(opts, logger), newConfigCmd(opts), newVersionCmd())
	return root
}

// Flags that override configuration keys when given on the command line
var flagKeys = map[string]string{
	"host":      "server.host",
	"port":      "server.port",
	"max-conns": "server.max_conns",
	"compress":  "server.compress",
}

// Resolve the effective configuration: defaults < file < environment <
// command line.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	v := config.New(opts.configFile)
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}
	return config.Load(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
