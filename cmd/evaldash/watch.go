package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/newthinker/evaldash/internal/logger"
	"github.com/newthinker/evaldash/internal/tui"
	"github.com/newthinker/evaldash/internal/view/term"
	"github.com/spf13/cobra"
)

var watchLogFile string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the dashboard in the terminal",
	Long:  `Interactive terminal dashboard. Keys: r refresh, enter retry after an error, q quit.`,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "evaldash.log", "file to write logs to while the UI owns the terminal")
}

func runWatch(cmd *cobra.Command, args []string) error {
	log, err := logger.New(logger.Options{Development: debug, OutputPaths: []string{watchLogFile}})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	screen := term.NewScreen()
	ctrl := newController(cfg, log, nil, screen, screen)
	defer ctrl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.New(ctx, cfg.Dashboard.Title, ctrl, screen)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
