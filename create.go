package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"guide_creator/generator"
	"guide_creator/tui"
)

var (
	createTopic    string
	createAudience string
	createTUI      bool
	createOutDir   string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a guide interactively",
	Long: `Create asks for a topic and an audience level, generates an outline,
writes each section in order and compiles the complete guide.

Pass --topic and --audience to skip the questions.`,
	Example: `  guide-creator create
  guide-creator create --tui
  guide-creator create --topic "Home Gardening" --audience beginner`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createTopic, "topic", "", "guide topic (skips the question)")
	createCmd.Flags().StringVar(&createAudience, "audience", "", "audience level: beginner, intermediate or advanced")
	createCmd.Flags().BoolVar(&createTUI, "tui", false, "use the full-screen terminal prompt")
	createCmd.Flags().StringVar(&createOutDir, "output-dir", "", "output directory (overrides output.dir)")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := cfgMgr.Get()
	out := cmd.OutOrStdout()

	outDir := cfg.Output.Dir
	if createOutDir != "" {
		outDir = createOutDir
	}
	flow, err := buildFlow(cfg, outDir, logger)
	if err != nil {
		return err
	}

	var p generator.Prompter = generator.NewLinePrompter(os.Stdin, out)
	if createTUI {
		p = tui.NewPrompter(os.Stdin, out)
	}

	flow.OnStage = func(s generator.Stage) {
		switch s {
		case generator.StageOutline:
			fmt.Fprintln(out, "Creating guide outline...")
		case generator.StageCompile:
			fmt.Fprintln(out, "Writing guide sections and compiling...")
		}
	}
	flow.OnSection(func(done, total int, title string) {
		fmt.Fprintf(out, "Section completed (%d/%d): %s\n", done, total, title)
	})

	st, err := flow.Collect(ctx, func(ctx context.Context) (generator.State, error) {
		return createInput(ctx, p, createTopic, createAudience, cfg.Input.MaxAttempts)
	})
	if err != nil {
		return err
	}
	if st, err = flow.Run(ctx, st); err != nil {
		return err
	}

	fmt.Fprintln(out, tui.Notice("\n=== Flow Complete ==="))
	fmt.Fprintf(out, "Guide outline created with %d sections: %s\n", len(st.Outline.Sections), st.OutlinePath)
	fmt.Fprintf(out, "Your comprehensive guide is ready: %s\n", st.GuidePath)
	return nil
}

// createInput builds the initial state from the flags and asks for
// whatever they leave out.
func createInput(ctx context.Context, p generator.Prompter, topic, audience string, maxAttempts int) (generator.State, error) {
	switch {
	case topic != "" && audience != "":
		return generator.PresetInput(topic, audience)
	case audience != "":
		return generator.State{}, errors.New("--audience requires --topic")
	}
	return generator.CollectInput(ctx, p, generator.CollectOptions{Topic: topic, MaxAttempts: maxAttempts})
}
