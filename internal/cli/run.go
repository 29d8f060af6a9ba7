package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kaenlabs/parallel-self-simulator/internal/scheduler"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate the next day for every active character on a schedule",
		Long: "Runs the daily scheduler until interrupted. With --once, processes every active\n" +
			"character a single time and exits.",
		Run: runRun,
	}

	cmd.Flags().Bool("once", false, "Run a single pass and exit")
	cmd.Flags().String("schedule", scheduler.DefaultSchedule, "Cron schedule, evaluated in UTC")
	cmd.Flags().Int("workers", scheduler.DefaultWorkers, "Profiles generated in parallel")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	viper.BindPFlag("schedule", cmd.Flags().Lookup("schedule"))
	viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("metrics_addr", cmd.Flags().Lookup("metrics-addr"))

	RootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) {
	once, _ := cmd.Flags().GetBool("once")
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := scheduler.MustNewMetrics(reg)

	if addr := viper.GetString("metrics_addr"); addr != "" {
		srv := serveMetrics(addr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	runner := scheduler.NewRunner(s, newGenerator(s),
		scheduler.WithWorkers(viper.GetInt("workers")),
		scheduler.WithMetrics(metrics),
		scheduler.WithLogger(logger),
	)

	if once {
		res, err := runner.RunOnce(ctx)
		if err != nil {
			exitErr("run", err)
		}
		output(cmd, res, func(w io.Writer) { renderRunResult(w, res) })
		return
	}

	sched := scheduler.New(runner, viper.GetString("schedule"), logger)
	if err := sched.Start(ctx); err != nil {
		exitErr("run", err)
	}
	logger.Info("waiting for next run", "next", sched.Next())
	<-ctx.Done()
	sched.Stop()
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
	return srv
}
