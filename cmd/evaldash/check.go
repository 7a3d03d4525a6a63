package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/newthinker/evaldash/internal/core"
	"github.com/newthinker/evaldash/internal/dashboard"
	"github.com/newthinker/evaldash/internal/gate"
	"github.com/newthinker/evaldash/internal/logger"
	"github.com/newthinker/evaldash/internal/view/page"
	"github.com/spf13/cobra"
)

var (
	checkTimeout time.Duration
	checkDump    bool
)

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	faint    = color.New(color.Faint).SprintFunc()
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one load cycle against the Metrics Service and report the result",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second, "give up after this long")
	checkCmd.Flags().BoolVar(&checkDump, "dump", false, "pretty-print the fetched summary")
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := logger.Must(logger.Options{Development: debug})
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	doc, charts := page.NewDocument(), page.NewRegistry()
	ctrl := newController(cfg, log, nil, doc, charts)
	defer ctrl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	loadErr := ctrl.Reload(ctx, dashboard.TriggerCheck)
	printCheck(os.Stdout, cfg.API.BaseURL, ctrl.State(), doc.Snapshot(), loadErr)

	if loadErr != nil {
		return loadErr
	}
	if checkDump {
		pp.Println(ctrl.State().Summary)
	}
	return printGate(os.Stdout, cfg.Check.Rules, ctrl.State().Summary)
}

// printGate reports each configured rule and fails if any did not hold.
func printGate(w io.Writer, rules []gate.Rule, summary *core.ModelSummary) error {
	if len(rules) == 0 || summary == nil {
		return nil
	}
	failed := gate.Check(rules, *summary)
	for _, f := range failed {
		line := f.Rule.FormatMessage()
		if f.Err != nil {
			line += " (" + f.Err.Error() + ")"
		}
		fmt.Fprintf(w, "%s %s\n", failMark("✗"), line)
	}
	if len(failed) == 0 {
		fmt.Fprintf(w, "%s %d quality rules passed\n", okMark("✓"), len(rules))
		return nil
	}
	return fmt.Errorf("%d of %d quality rules failed", len(failed), len(rules))
}

func printCheck(w io.Writer, baseURL string, state dashboard.State, snap page.Snapshot, err error) {
	fmt.Fprintf(w, "Metrics Service %s\n", faint(baseURL))

	if err != nil {
		fmt.Fprintf(w, "%s %s\n", failMark("✗"), core.Describe(err))
		if se, ok := core.StatusOf(err); ok {
			fmt.Fprintf(w, "  %s\n", faint(fmt.Sprintf("endpoint=%s status=%d", se.Endpoint, se.StatusCode)))
		}
		return
	}

	fmt.Fprintf(w, "%s healthy, %d predictions fetched\n", okMark("✓"), len(state.Predictions))
	fmt.Fprintf(w, "  %-12s %s\n", "Algorithm", snap.Text(dashboard.IDAlgorithm))
	fmt.Fprintf(w, "  %-12s %s\n", "Accuracy", snap.Text(dashboard.IDAccuracy))
	fmt.Fprintf(w, "  %-12s %s\n", "Samples", snap.Text(dashboard.IDDataset))
	fmt.Fprintf(w, "  %-12s %s\n", "Features", snap.Text(dashboard.IDFeatures))
	if snap.Visible(dashboard.IDSplitPanel) {
		fmt.Fprintf(w, "  %-12s %s / %s\n", "Train/Test", snap.Text(dashboard.IDTrainSize), snap.Text(dashboard.IDTestSize))
	}
	fmt.Fprintf(w, "  %-12s %s / %s / %s\n", "P / R / F1",
		snap.Text(dashboard.IDPrecisionAvg), snap.Text(dashboard.IDRecallAvg), snap.Text(dashboard.IDF1ScoreAvg))
}
