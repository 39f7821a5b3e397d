package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"frakt-worker/internal/config"
	"frakt-worker/internal/log"
	"frakt-worker/internal/worker"
)

const defaultServerPort = 8787

var (
	workerName  string
	maxWorkload uint32
	rounds      int
	logLevel    string
	logFormat   string
	logFile     string
)

// runCmd implements `frakt-worker run WORKER <server_ip>[:<port>]`: the
// literal mode token WORKER is required, matching the protocol's CLI
// contract (an interactive prompt mode also exists upstream but is out of
// scope here).
var runCmd = &cobra.Command{
	Use:   "run MODE SERVER_ADDR",
	Short: "Connect to a dispatcher and compute fragments until stopped",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, addr := args[0], args[1]
		if mode != "WORKER" {
			return &worker.UsageError{Message: fmt.Sprintf("unsupported mode %q, only WORKER is implemented", mode)}
		}

		host, port, err := splitServerAddr(addr)
		if err != nil {
			return &worker.UsageError{Message: err.Error()}
		}

		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg.ServerHost = host
		cfg.ServerPort = port
		if workerName != "" {
			cfg.WorkerName = workerName
		}
		if maxWorkload != 0 {
			cfg.MaxWorkload = maxWorkload
		}
		if cmd.Flags().Changed("rounds") {
			cfg.Rounds = rounds
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Log.Format = logFormat
		}
		if logFile != "" {
			cfg.Log.File.Enabled = true
			cfg.Log.File.Filename = logFile
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log.Init(cfg.Log.ToLoggerConfig())
		logger := log.GetLogger()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			logger.WithField("signal", sig.String()).Info("shutdown signal received")
			cancel()
		}()

		runner := worker.NewRunner(*cfg, logger)
		return runner.Run(ctx)
	},
}

func init() {
	runCmd.Flags().StringVar(&workerName, "name", "", "worker name sent in each request (overrides config)")
	runCmd.Flags().Uint32Var(&maxWorkload, "max-workload", 0, "maximal work load sent in each request (overrides config)")
	runCmd.Flags().IntVar(&rounds, "rounds", 0, "number of request/compute/result rounds to run, 0 = unbounded")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (trace/debug/info/warn/error)")
	runCmd.Flags().StringVar(&logFormat, "log-format", "", "log format override (text/json)")
	runCmd.Flags().StringVar(&logFile, "log-file", "", "also write rotating log output to this file")
}

// splitServerAddr parses "<ip>[:<port>]", defaulting to defaultServerPort
// when no port is given.
func splitServerAddr(addr string) (host string, port int, err error) {
	if !strings.Contains(addr, ":") {
		return addr, defaultServerPort, nil
	}
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid server address %q: %w", addr, err)
	}
	portNum, err := strconv.Atoi(p)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	return h, portNum, nil
}
