package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/buhcalc/internal/calc"
	"github.com/iwvelando/buhcalc/internal/config"
	"github.com/iwvelando/buhcalc/internal/server"
	"github.com/iwvelando/buhcalc/pkg/constants"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	serverConfigFile string
	maxBodySizeFlag  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators as a JSON HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serverConfigFile, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&maxBodySizeFlag, "max-body-size", "", "request body limit override, e.g. 64K or 1M")
}

func runServe(cmd *cobra.Command, args []string) error {
	srvConf, err := server.LoadConfig(serverConfigFile)
	if err != nil {
		logger.Fatal("failed to load server configuration",
			zap.String("op", "main.serve"),
			zap.String("file", serverConfigFile),
			zap.Error(err),
		)
	}

	if err := srvConf.OverrideMaxBodySize(maxBodySizeFlag); err != nil {
		logger.Error("invalid --max-body-size",
			zap.String("op", "main.serve"),
			zap.String("value", maxBodySizeFlag),
			zap.Error(err),
		)
		return err
	}

	// Server logging settings replace the CLI ones when given.
	if srvConf.Logging != (config.LoggingConfig{}) {
		serverLogger, err := initializeLogger(srvConf.Logging, logLevelOverride)
		if err != nil {
			logger.Fatal("failed to initialize server logger",
				zap.String("op", "main.serve"),
				zap.Error(err),
			)
		}
		logger = serverLogger
	}

	if srvConf.Rates.File != "" {
		serverRates := *conf
		serverRates.Rates = srvConf.Rates
		tables, err := serverRates.LoadRates()
		if err != nil {
			logger.Fatal("failed to load rate tables",
				zap.String("op", "main.serve"),
				zap.String("file", srvConf.Rates.File),
				zap.Error(err),
			)
		}
		if engine, err = calc.NewEngine(tables); err != nil {
			logger.Fatal("failed to initialize calculator",
				zap.String("op", "main.serve"),
				zap.Error(err),
			)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &http.Server{
		Addr:              srvConf.Address,
		Handler:           server.NewHandler(logger, engine, reg, srvConf.BodySizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main.serve"),
			zap.String("address", srvConf.Address),
			zap.Int64("maxBodySize", srvConf.BodySizeBytes()),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed",
				zap.String("op", "main.serve"),
				zap.Error(err),
			)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down",
		zap.String("op", "main.serve"),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
