package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispute-reconciliation-backend/internal/config"
	"dispute-reconciliation-backend/internal/repository"
	"dispute-reconciliation-backend/internal/services/reconciliation"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	var interval time.Duration

	rootCmd := &cobra.Command{
		Use:   "sweeper",
		Short: "Run the payment auto-match sweep",
		Long: `sweeper scores every unmatched payment record against the case pool,
records the best candidate as a suggestion, and auto-confirms matches at or
above the confidence threshold. With --interval it keeps sweeping until
interrupted; interruption is honored between records.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				log.Println("No .env file found, relying on system env")
			}

			db := config.InitDB()
			engine := reconciliation.NewEngine(
				repository.NewPaymentRecordRepository(db),
				repository.NewSuggestionRepository(db),
				repository.NewCaseRepository(db),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for {
				result, err := engine.AutoMatchSweep(ctx)
				log.Printf("sweep: processed=%d suggested=%d auto_confirmed=%d failed=%d",
					result.Processed, result.Suggested, result.AutoConfirmed, result.Failed)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				if interval <= 0 {
					return nil
				}
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(interval):
				}
			}
		},
	}

	rootCmd.Flags().DurationVar(&interval, "interval", 0, "sweep repeatedly at this interval (one-shot when unset)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
