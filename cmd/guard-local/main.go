package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aura-studio/lambda-sentry/guard"
	"github.com/aura-studio/lambda-sentry/localrun"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	addr     string
	handler  string
	config   string
	function string
	timeout  time.Duration
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:   "guard-local",
	Short: "Run a guarded Lambda handler over HTTP",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a demo handler wrapped with the invocation guard",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := demoHandler(handler)
		if err != nil {
			return err
		}

		log := logrus.StandardLogger()
		if debug {
			log.SetLevel(logrus.DebugLevel)
		}

		return localrun.Serve(addr, guard.WrapHandler(h, guardOptions(config, debug, log)...),
			localrun.WithFunctionName(function),
			localrun.WithTimeout(timeout),
			localrun.WithDebugMode(debug),
			localrun.WithReleaseMode(!debug),
			localrun.WithLogger(log),
		)
	},
}

// guardOptions loads the config file first so the --debug flag wins over it.
func guardOptions(configPath string, debug bool, log logrus.FieldLogger) []guard.Option {
	opts := []guard.Option{guard.WithLogger(log)}
	if configPath != "" {
		opts = append(opts, guard.WithConfigFile(configPath))
	} else if _, err := guard.FindDefaultConfigFile(); err == nil {
		opts = append(opts, guard.WithDefaultConfigFile())
	}
	if debug {
		opts = append(opts, guard.WithDebugMode(true))
	}
	return opts
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&handler, "handler", "echo", "demo handler: echo, fail, panic or slow")
	serveCmd.Flags().StringVar(&config, "config", "", "guard config file")
	serveCmd.Flags().StringVar(&function, "function", "local", "function name reported to sentry")
	serveCmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "invocation timeout")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "debug logging")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
