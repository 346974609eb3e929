package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agilisium/greeter/internal/greeting"
	"github.com/agilisium/greeter/internal/web"
)

func newServeCmd(opts *options, logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the greeting server (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, logger)
		},
	}
	addOpenFlag(cmd, opts)
	return cmd
}

func runServe(cmd *cobra.Command, opts *options, logger *log.Logger) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	s := web.NewServer(cfg.WebConfig())
	s.SetLogger(log.New(cmd.OutOrStdout(), "", log.Ldate|log.Ltime))
	if err := greeting.Register(s); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.open {
		err = s.RunApp(ctx, cfg.Addr())
	} else {
		err = s.Run(ctx, cfg.Addr())
	}
	if err != nil {
		return err
	}
	logger.Print("stopped")
	return nil
}

func addOpenFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the greeting page in a browser")
}
