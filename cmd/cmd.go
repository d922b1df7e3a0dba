package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frahmantamala/workforce-ops/internal"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "workforce-ops",
	Short: "Workforce operations service",
	Long:  `Checklists, issues, performance tracking and notifications for employees, supervisors and admins.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig reads .env (if any), then either the environment alone
// (APP_ENV=production or DOCKER_ENV=true) or config.yml with ENV_ overrides.
func loadConfig(path string) (*internal.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	var cfg *internal.Config
	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		cfg = internal.LoadConfigFromEnv()
	} else {
		v := viper.New()
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.SetEnvPrefix("ENV")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}

		cfg = &internal.Config{}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("error unmarshaling config: %w", err)
		}
		cfg.ApplyDefaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	logger.Init(cfg.Env,
		logger.WithLevel(cfg.Observability.Logging.Level),
		logger.WithFormat(cfg.Observability.Logging.Format))

	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory containing config.yml")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
