package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "github.com/Wesley-SdS/modern-ecommerce/configs"
	"github.com/Wesley-SdS/modern-ecommerce/internal/auth"
	"github.com/Wesley-SdS/modern-ecommerce/internal/db"
	"github.com/Wesley-SdS/modern-ecommerce/internal/handlers"
	"github.com/Wesley-SdS/modern-ecommerce/internal/notifier"
	"github.com/Wesley-SdS/modern-ecommerce/internal/payment"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema on start")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, gdb, err := bootstrap()
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	if !skipMigrate {
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}

	ctx := cmd.Context()

	opts := handlers.Options{
		DB:       gdb,
		Notifier: buildNotifier(ctx, cfg),
		Config:   cfg,
	}
	if g := payment.NewStripeGateway(cfg.Stripe); g != nil {
		opts.Gateway = g
		if cfg.Stripe.WebhookSecret == "" {
			log.Warn().Msg("STRIPE_WEBHOOK_SECRET not set, webhooks will be rejected and orders stay pending")
		}
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY not set, checkout disabled")
	}
	if cfg.OIDC.Enabled() {
		o, err := auth.NewOIDC(ctx, cfg.OIDC)
		if err != nil {
			return err
		}
		opts.OIDC = o
	}

	router, h := handlers.NewRouter(opts)
	defer h.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Info().Msg("shutdown signal received")
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
		return err
	}
	log.Info().Msg("server shutdown complete")
	return nil
}

// buildNotifier enables email and SMS for whichever providers have
// credentials.
func buildNotifier(ctx context.Context, cfg *config.Config) notifier.Notifier {
	var n notifier.Multi
	if cfg.Email.SenderEmail != "" {
		email, err := notifier.NewSESNotifier(ctx, cfg.Email)
		if err != nil {
			log.Warn().Err(err).Msg("email notifications disabled")
		} else {
			n = append(n, email)
		}
	}
	if cfg.AfricaTalking.APIKey != "" {
		n = append(n, notifier.NewSMSNotifier(cfg.AfricaTalking, nil))
	}
	if len(n) == 0 {
		log.Info().Msg("no notification provider configured")
		return notifier.Nop{}
	}
	return n
}
