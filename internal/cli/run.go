package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hotnet/pkg/config"
	"github.com/matzehuels/hotnet/pkg/pipeline"
)

const defaultConfigFile = "hotnet.toml"

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	configPath string // TOML or HCL configuration file
	jsonOut    bool   // print the result as JSON instead of a summary
	output     string // also write the JSON result to this file
	refresh    bool   // bypass the cache lookup
	seed       uint64 // overrides the configured seed when the flag is set
	size       int    // overrides the configured size when the flag is set
}

// runCommand creates the run command, which builds the configured overlay
// and runs its observers.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build an overlay and run the configured observers",
		Example: `  hotnet run -c hotnet.toml
  hotnet run -c experiment.hcl --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var overrides []config.Override
			if cmd.Flags().Changed("seed") {
				overrides = append(overrides, func(cfg *config.Config) { cfg.Seed = opts.seed })
			}
			if cmd.Flags().Changed("size") {
				overrides = append(overrides, func(cfg *config.Config) { cfg.Size = opts.size })
			}
			cfg, err := config.Load(opts.configPath, overrides...)
			if err != nil {
				return err
			}
			return c.runRun(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", defaultConfigFile, "configuration file (.toml or .hcl)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the full result as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON result to a file")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().Uint64Var(&opts.seed, "seed", config.DefaultSeed, "override the random seed")
	cmd.Flags().IntVar(&opts.size, "size", 0, "override the network size")

	return cmd
}

func (c *CLI) runRun(cmd *cobra.Command, cfg config.Config, opts runOpts) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Checking cache...")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Config:  cfg,
		Refresh: opts.refresh,
		OnStage: func(stage pipeline.Stage) {
			switch stage {
			case pipeline.StageBuild:
				spinner.Update(fmt.Sprintf("Building %d nodes...", cfg.Size))
			case pipeline.StageObserve:
				spinner.Update(fmt.Sprintf("Running %d observers...", len(cfg.Observers)))
			}
		},
	})
	if err != nil {
		if spinner.Cancelled() {
			spinner.StopWithError("Run cancelled")
			return ctx.Err()
		}
		spinner.StopWithError("Run failed")
		return err
	}
	if opts.jsonOut {
		spinner.Stop()
	} else {
		spinner.StopWithSuccess(fmt.Sprintf("Built overlay (seed %d, d=%d, alfa=%s)",
			result.Config.Seed, result.Config.Topology.OutDegree, formatFloat(*result.Config.Topology.Alfa)))
	}
	prog.done(fmt.Sprintf("Run %s finished", result.RunID))

	if opts.output != "" {
		if err := writeResultFile(opts.output, result); err != nil {
			return err
		}
	}
	if opts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	printStats(result.Build.Nodes, result.Edges, result.CacheInfo.Hit)
	printKeyValue("max hop", fmt.Sprint(result.Build.MaxHop))
	printKeyValue("duplicates", fmt.Sprint(result.Build.DuplicateEdges))
	printNewline()

	printReports(result.Reports)
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResultFile(path string, result *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeJSON(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
