package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/scaff/internal/pipeline"
	"github.com/conneroisu/scaff/internal/scaffold"
	"github.com/conneroisu/scaff/internal/store"
	"github.com/conneroisu/scaff/internal/watcher"
)

var (
	watchRunFlags    runFlags
	watchOutDir      string
	watchCreateFiles bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the pipeline whenever the scaffold document changes",
	Long: `Watch the scaffold document and re-run the full pipeline on every
change, with the same saving behavior as 'scaff pipeline'. Runs until
interrupted.

Examples:
  scaff watch --mock
  scaff watch --mock --create-files --out ./generated`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addRunFlags(watchCmd, &watchRunFlags)
	watchCmd.Flags().StringVar(&watchOutDir, "out", "", "output directory (default from tool config)")
	watchCmd.Flags().BoolVar(&watchCreateFiles, "create-files", false, "write one file per generated output under files/")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadToolConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	path := documentPath(cfg)

	if _, err := store.Load(path); err != nil {
		return err
	}

	input, err := watchRunFlags.parseInput()
	if err != nil {
		return err
	}
	outDir := watchOutDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	createFiles := watchCreateFiles || cfg.Output.CreateFiles

	// One pipeline pass over the freshly loaded document.
	runOnce := func() {
		doc, err := store.Load(path)
		if err != nil {
			log.Error(cmd.Context(), err, "reloading scaffold document", "path", path)
			return
		}

		exec, err := buildExecutor(cfg, watchRunFlags.Mock, log)
		if err != nil {
			log.Error(cmd.Context(), err, "building executor")
			return
		}
		opt := buildOptimizer(exec, watchRunFlags.Mock, cfg, log)

		runner := scaffold.NewRunner(doc, exec, opt, log)
		proc := pipeline.NewProcessor(runner, log)
		results, err := proc.Run(cmd.Context(), scaffold.TierInitial, input)
		if err != nil {
			log.Error(cmd.Context(), err, "pipeline run failed")
			return
		}
		if err := pipeline.NewCollector(log).Save(cmd.Context(), results, outDir, createFiles); err != nil {
			log.Error(cmd.Context(), err, "saving outputs")
			return
		}
		printPipelineSummary(results, outDir)
	}

	w, err := watcher.New(cfg.Watch.Debounce(), log)
	if err != nil {
		return err
	}
	defer w.Stop()

	w.AddHandler(func(events []watcher.Event) {
		fmt.Printf("Document changed (%d event(s)), re-running pipeline\n", len(events))
		runOnce()
	})
	if err := w.AddPath(path); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	w.Start(ctx)

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", path)
	runOnce()

	<-ctx.Done()
	fmt.Println("\nStopped watching")

	return nil
}
