package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/oesand/ember"
	"github.com/oesand/ember/router"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type serveOptions struct {
	host       string
	port       int
	readSize   int
	wsReadSize int
	serverName string
	root       string
	configFile string
	logLevel   string
	logFormat  string
}

func newServeCommand() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:           "ember [OPTIONS]",
		Short:         "Serve site directories over HTTP/1.1 and websockets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	installFlags(cmd.Flags(), &opts)
	return cmd
}

func installFlags(flags *pflag.FlagSet, opts *serveOptions) {
	flags.StringVar(&opts.host, "host", ember.DefaultHost, "Address to listen on")
	flags.IntVarP(&opts.port, "port", "p", ember.DefaultPort, "Port to listen on")
	flags.IntVar(&opts.readSize, "read-size", ember.DefaultReadSize, "Size of the single request read")
	flags.IntVar(&opts.wsReadSize, "ws-read-size", ember.DefaultWebSocketReadSize, "Size of websocket frame reads")
	flags.StringVar(&opts.serverName, "server-name", ember.DefaultServerName, "Value of the Server response header")
	flags.StringVar(&opts.root, "root", ".", "Directory holding the site directories")
	flags.StringVar(&opts.configFile, "config", "", "Site configuration file (default <root>/"+router.ConfigFileName+")")
	flags.StringVarP(&opts.logLevel, "log-level", "l", "info", `Set the logging level ("debug"|"info"|"warn"|"error"|"fatal")`)
	flags.StringVar(&opts.logFormat, "log-format", "text", `Set the logging format ("text"|"json")`)
}

func setupLogging(opts serveOptions) error {
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logrus.SetLevel(level)

	switch opts.logFormat {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("unknown log format %q", opts.logFormat)
	}
	return nil
}

func runServe(ctx context.Context, opts serveOptions) error {
	if err := setupLogging(opts); err != nil {
		return err
	}

	configFile := opts.configFile
	if configFile == "" {
		configFile = filepath.Join(opts.root, router.ConfigFileName)
	}
	config, err := router.LoadConfig(configFile)
	if err != nil {
		return err
	}

	logger := logrus.WithField("component", "ember")
	sites, err := router.New(opts.root, config, logger)
	if err != nil {
		return err
	}

	engine := &ember.Engine{
		Host:              opts.host,
		Port:              opts.port,
		ReadSize:          opts.readSize,
		WebSocketReadSize: opts.wsReadSize,
		ServerName:        opts.serverName,
		Logger:            logger,
	}
	engine.OnConnection(sites.Handle)

	if err = engine.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	engine.Stop()
	return nil
}

func main() {
	logrus.SetOutput(os.Stderr)

	cmd := newServeCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
