package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/metrics"
	"github.com/Zachkp/folio/internal/page"
	"github.com/Zachkp/folio/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "folio",
		Short:        "Portfolio site server",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newRenderCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var envFile, out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the page and its assets as static files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			p, err := page.New(page.WithTheme(cfg.Theme()))
			if err != nil {
				return err
			}
			if err := exportSite(out, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	visits := db.NewRecorder(logger, 256)
	defer visits.Close()

	p, err := page.New(page.WithTheme(cfg.Theme()))
	if err != nil {
		return err
	}

	var mailer contact.Mailer = contact.LogMailer{Logger: logger}
	if cfg.MailEnabled() {
		mailer = contact.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.Recipient())
	} else {
		logger.Warn("SMTP credentials not configured, contact messages are stored only")
	}

	admin, err := newAdminAuth(cfg)
	if err != nil {
		return err
	}
	if gin.Mode() == gin.DebugMode && cfg.AdminPassword == "admin123" {
		logger.Warn("using default admin credentials, set ADMIN_USERNAME and ADMIN_PASSWORD")
	}

	s := &server{
		cfg:     cfg,
		logger:  logger,
		page:    p,
		store:   db,
		visits:  visits,
		contact: contact.NewService(db, mailer, logger),
		metrics: metrics.New(),
		admin:   admin,
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(s),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		pruneVisits(ctx, s, 24*time.Hour)
		return nil
	})
	return g.Wait()
}

// pruneVisits deletes expired visitor rows now and then once per interval
// until ctx is done.
func pruneVisits(ctx context.Context, s *server, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		n, err := s.store.PruneVisits(ctx, s.cfg.VisitorRetention)
		switch {
		case err != nil && ctx.Err() == nil:
			s.logger.Error("privacy cleanup", zap.Error(err))
		case n > 0:
			s.logger.Info("privacy cleanup", zap.Int64("removed", n))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
