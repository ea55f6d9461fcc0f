package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example.com/packpal/config"
	"example.com/packpal/internal/cache"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"
)

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background stats worker",
	Long: `Starts the background worker that periodically reconciles the
global sustainability counters against the package ledger. Counter
bumps during package creation are best-effort, so this job corrects
any drift they leave behind.`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db := connectWithRetry(cfg)
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warnf("Failed to connect to Redis, continuing without caching: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	svc := buildServices(cfg, db, redisClient)

	interval := time.Duration(cfg.Worker.StatsIntervalMinutes) * time.Minute

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			log.Info("Running stats reconciliation job")
			if err := svc.Settings.RecomputeStats(ctx); err != nil {
				log.WithError(err).Error("Failed to reconcile global stats")
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	log.WithField("interval", interval).Info("Starting stats worker")
	scheduler.Start()

	// Wait for context cancellation
	<-ctx.Done()

	log.Info("Worker shutting down gracefully")
	return scheduler.Shutdown()
}
