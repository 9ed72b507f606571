// wellnessctl runs maintenance tasks against the configured storage backend.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mindora/wellness/internal/cache"
	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/database"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/logging"
	"github.com/mindora/wellness/internal/repository"
	"github.com/mindora/wellness/internal/services"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wellnessctl",
		Short: "Maintenance commands for the wellness API",
		Long: `wellnessctl talks to the same database as the API server, configured
through the usual environment variables (DB_DRIVER, DB_*, MONGO_URI, ...).`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(setupSuperAdminCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore connects using the environment configuration. Opening migrates
// PostgreSQL and ensures Mongo indexes.
func openStore(ctx context.Context) (*config.Config, *repository.Store, error) {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)
	backend, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, backend.Store, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)
			fmt.Printf("schema ready (%s)\n", cfg.DBDriver)
			return nil
		},
	}
}

func setupSuperAdminCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "setup-super-admin",
		Short: "Create the first super admin account",
		Long: `Creates the single super admin. The password is read from the terminal
and must be at least 8 characters with upper and lower case letters and a number.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			password, err := readPassword()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			auth := services.NewAuthService(store.Users, cache.NewMemoryDenylist(), cfg)
			user, err := auth.SetupSuperAdmin(ctx, &dto.SetupSuperAdminRequest{Email: email, Password: password})
			if err != nil {
				return fmt.Errorf("setup failed: %w", err)
			}
			fmt.Printf("super admin %s created (id %s)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "super admin email")
	return cmd
}

func readPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passwords don't match")
	}
	return string(first), nil
}

func exportCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full admin export workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			path, err := writeExport(ctx, adminService(cfg, store), dir)
			if err != nil {
				return err
			}
			fmt.Println("wrote", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print platform statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			stats, err := adminService(cfg, store).Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Print(formatStats(stats))
			return nil
		},
	}
}

func adminService(cfg *config.Config, store *repository.Store) *services.AdminService {
	auth := services.NewAuthService(store.Users, cache.NewMemoryDenylist(), cfg)
	return services.NewAdminService(store, auth)
}

func writeExport(ctx context.Context, admin *services.AdminService, dir string) (string, error) {
	doc, err := admin.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, doc.Body, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func formatStats(s *dto.PlatformStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Users:             %d\n", s.TotalUsers)
	fmt.Fprintf(&b, "Active (30 days):  %d\n", s.ActiveUsers)
	fmt.Fprintf(&b, "Mood entries:      %d\n", s.TotalMoods)
	fmt.Fprintf(&b, "Journal entries:   %d\n", s.TotalJournals)
	fmt.Fprintf(&b, "Exercise sessions: %d\n", s.TotalExercises)
	fmt.Fprintf(&b, "Average mood:      %s\n", s.AverageMood)
	return b.String()
}
