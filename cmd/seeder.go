package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/checklist"
	checklistpg "github.com/frahmantamala/workforce-ops/internal/checklist/postgres"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
	"github.com/frahmantamala/workforce-ops/internal/performance"
	perfpg "github.com/frahmantamala/workforce-ops/internal/performance/postgres"
	userpg "github.com/frahmantamala/workforce-ops/internal/user/postgres"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

var (
	seedTemplatesFile string
	seedAdminEmail    string
	seedAdminPassword string
	seedAdminName     string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed checklist templates and an admin account",
	Long: `Stores a checklist template for every role (defaults, overridden by a YAML file when given)
and creates an admin account when --admin-email is set and the address is not registered yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(context.Background())
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedTemplatesFile, "templates", "", "YAML file with checklist templates (defaults to workforce.checklist_templates_file)")
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "", "email of the admin account to create (env SEED_ADMIN_EMAIL)")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "", "password of the admin account to create (env SEED_ADMIN_PASSWORD)")
	seedCmd.Flags().StringVar(&seedAdminName, "admin-name", "Administrator", "display name of the admin account")
}

func runSeed(ctx context.Context) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.L()

	// .env is loaded by loadConfig, so the fallbacks are read here rather than as flag defaults.
	if seedAdminEmail == "" {
		seedAdminEmail = os.Getenv("SEED_ADMIN_EMAIL")
	}
	if seedAdminPassword == "" {
		seedAdminPassword = os.Getenv("SEED_ADMIN_PASSWORD")
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer db.Close()

	gdb, err := initGorm(db)
	if err != nil {
		return fmt.Errorf("failed to init gorm: %w", err)
	}

	// Roles missing from the file keep their default template.
	var overrides map[role.Role]checklist.Template
	path := seedTemplatesFile
	if path == "" {
		path = cfg.Workforce.ChecklistTemplatesFile
	}
	if path != "" {
		overrides, err = checklist.LoadTemplates(path)
		if err != nil {
			return err
		}
	}

	perfService := performance.NewService(perfpg.NewPerformanceRepository(gdb), nil, lg)
	checklistService := checklist.NewService(
		checklistpg.NewTemplateRepository(gdb),
		checklistpg.NewSubmissionRepository(gdb),
		perfService,
		nil,
		lg,
	)
	if err := checklistService.SeedTemplates(ctx, overrides); err != nil {
		return fmt.Errorf("failed to seed checklist templates: %w", err)
	}
	lg.Info("seeded checklist templates", "custom", len(overrides), "file", path)

	if seedAdminEmail == "" {
		return nil
	}

	provider, err := newIdentityProvider(ctx, cfg, gdb)
	if err != nil {
		return err
	}
	authService := auth.NewService(provider, userpg.NewProfileRepository(db), nil, lg)

	admin, err := authService.Signup(ctx, auth.SignupRequest{
		Email:    seedAdminEmail,
		Password: seedAdminPassword,
		Name:     seedAdminName,
		Role:     role.Admin.String(),
	})
	switch {
	case errors.Is(err, apperrors.ErrEmailTaken):
		lg.Info("admin account already exists", "email", seedAdminEmail)
	case err != nil:
		return fmt.Errorf("failed to create admin account: %w", err)
	default:
		lg.Info("seeded admin account", "email", admin.Email, "user_id", admin.ID)
	}
	return nil
}
