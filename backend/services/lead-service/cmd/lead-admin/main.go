// Command lead-admin holds operator tasks for the lead gateway: minting
// admin tokens and running a retention sweep by hand.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/app"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/config"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-middleware"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "lead-admin",
	Short:         "Operator tasks for the lead gateway",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin JWT for the estimate viewer and testimonial deletes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		tok, err := middleware.IssueAdminToken(cfg.AdminJWTSecret, tokenSubject, tokenTTL, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Prune expired submitted requests in every scope once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		application, err := app.NewApp(cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		return application.RetentionCleanupService.CleanupHourly(ctx)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "owner", "who the token is issued to")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 12*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd, sweepCmd)
}

func main() {
	utils.InitLogger("lead-admin")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
