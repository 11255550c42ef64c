package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"guide_creator/config"
	"guide_creator/generator"
	"guide_creator/jobs"
	"guide_creator/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve starts the guide creation API.

Endpoints:
  GET  /             liveness message
  POST /create-guide start a guide run: {"topic": "...", "target_audience": "beginner"}
  GET  /jobs         list runs
  GET  /jobs/{id}    status of one run

Each run executes the full pipeline in the background and writes into
<output.dir>/jobs/<id>/. Config file changes apply to runs started after
the change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfgMgr.OnChange(func(c *config.Config) {
		logger.Info("configuration reloaded", "provider", c.LLM.Provider, "model", c.LLM.Model)
	})
	cfgMgr.WatchConfig(func(err error) {
		logger.Warn("ignoring config change", "error", err)
	})

	cfg := cfgMgr.Get()
	runner, err := jobs.NewRunner(jobs.NewStore(), runGuideJob, cfg.Server.JobTimeout, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv, err := server.New(runner, logger)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	return srv.Start(cmd.Context(), addr)
}

// runGuideJob runs the full pipeline for one HTTP request using the
// configuration current at the time the job starts.
func runGuideJob(ctx context.Context, job jobs.Job, progress jobs.Progress) (jobs.Result, error) {
	cfg := cfgMgr.Get()
	outDir := filepath.Join(cfg.Output.Dir, "jobs", job.ID)
	progress.OutputDir(outDir)

	flow, err := buildFlow(cfg, outDir, logger.With("job_id", job.ID))
	if err != nil {
		return jobs.Result{}, err
	}
	flow.OnStage = func(s generator.Stage) { progress.Stage(string(s)) }
	flow.OnSection(func(done, total int, _ string) { progress.Sections(done, total) })

	st, err := flow.Collect(ctx, func(context.Context) (generator.State, error) {
		return generator.PresetInput(job.Topic, job.TargetAudience)
	})
	if err != nil {
		return jobs.Result{}, err
	}
	if st, err = flow.Run(ctx, st); err != nil {
		return jobs.Result{}, err
	}
	return jobs.Result{OutlinePath: st.OutlinePath, GuidePath: st.GuidePath}, nil
}
