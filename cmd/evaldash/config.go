package main

import (
	"fmt"
	"os"

	"github.com/newthinker/evaldash/internal/config"
	"github.com/newthinker/evaldash/internal/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showSecrets bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print keys instead of redacting them")
}

func runConfig(cmd *cobra.Command, args []string) error {
	log := logger.Must(logger.Options{Development: debug})
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if !showSecrets {
		redact(cfg)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

func redact(cfg *config.Config) {
	for _, s := range []*string{&cfg.Server.APIKey, &cfg.Report.S3.AccessKey, &cfg.Report.S3.SecretKey} {
		if *s != "" {
			*s = "********"
		}
	}
}
