package main

import (
	"fmt"
	"io"
	stdos "os"

	"github.com/nikeinikei/love/log"
	"github.com/nikeinikei/love/os"
	"github.com/nikeinikei/love/stress"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "dev"

type stressOptions struct {
	configFile string
	cfg        stress.Config
}

func addStressFlags(flags *pflag.FlagSet, opts *stressOptions) {
	flags.StringVar(&opts.configFile, "config", "", "YAML config file")
	flags.IntVar(&opts.cfg.Threads, "threads", 0, "threads per workload")
	flags.IntVar(&opts.cfg.Iterations, "iterations", 0, "iterations per workload")
	flags.IntVar(&opts.cfg.TimeoutMs, "timeout-ms", 0, "conditional wait timeout in milliseconds (default 50)")
	flags.StringSliceVar(&opts.cfg.Workloads, "workload", nil, "workloads to run (default all)")
	flags.StringVar(&opts.cfg.Debug, "debug", "", "comma separated debug levels: thread,sync,channel")
}

// mergeConfig overlays explicitly set flags on top of the config file.
func mergeConfig(flags *pflag.FlagSet, opts *stressOptions) (*stress.Config, error) {
	if opts.configFile == "" {
		cfg := opts.cfg
		return &cfg, nil
	}
	cfg, err := stress.LoadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "threads":
			cfg.Threads = opts.cfg.Threads
		case "iterations":
			cfg.Iterations = opts.cfg.Iterations
		case "timeout-ms":
			cfg.TimeoutMs = opts.cfg.TimeoutMs
		case "workload":
			cfg.Workloads = opts.cfg.Workloads
		case "debug":
			cfg.Debug = opts.cfg.Debug
		}
	})
	return cfg, nil
}

func runStress(out io.Writer, cfg *stress.Config) error {
	if cfg.Debug != "" {
		log.SetDebugLevelStrs(cfg.Debug)
	}
	results, err := stress.Run(cfg)
	if err != nil {
		return err
	}
	failed := 0
	for _, res := range results {
		status := "ok"
		if res.Err != nil {
			status = res.Err.Error()
			failed++
		}
		fmt.Fprintf(out, "%-10s %12v  locks=%d timeouts=%d  %s\n", res.Name, res.Elapsed,
			res.Stats.Locks, res.Stats.WaitTimeouts, status)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d workloads failed", failed, len(results))
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lovethread",
		Short:         "Exercise the thread primitives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts := &stressOptions{}
	stressCmd := &cobra.Command{
		Use:   "stress",
		Short: "Run contention workloads against mutexes, conditionals and channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mergeConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			return runStress(cmd.OutOrStdout(), cfg)
		},
	}
	addStressFlags(stressCmd.Flags(), opts)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and condition backend",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lovethread %s (cond backend %s)\n", version, os.CondBackend)
		},
	}

	root.AddCommand(stressCmd, versionCmd)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WarnLog("lovethread failed", "err", err)
		fmt.Fprintln(stdos.Stderr, "Error:", err)
		stdos.Exit(1)
	}
}
