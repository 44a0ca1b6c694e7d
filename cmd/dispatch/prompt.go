package main

import (
	"fmt"
	"strings"

	"github.com/routewise/dispatch/internal/cli"
	"github.com/routewise/dispatch/internal/engine"
	"github.com/routewise/dispatch/internal/tui"
	"github.com/spf13/cobra"
)

func promptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt [text]",
		Short: "Analyze a plain-English request and optionally execute it",
		Long: `Run intent detection over a single request, e.g.:

  dispatch prompt "Create a high priority ticket for ACME Market about a missed service"

By default the detected intent is only shown. Pass --execute to carry it out.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPrompt,
	}

	cmd.Flags().Bool("execute", false, "Execute the detected intent instead of just showing it")

	return cmd
}

func runPrompt(cmd *cobra.Command, args []string) error {
	execute, _ := cmd.Flags().GetBool("execute")
	text := strings.Join(args, " ")
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	dispatcher := engine.New(store)
	detected := dispatcher.Analyze(text)
	if detected == nil {
		fmt.Println(cli.FormatWarning("Nothing to analyze: the prompt is empty"))
		return nil
	}

	fmt.Println(cli.RenderBox("Detected", cli.RenderIntent(detected)))

	if !execute {
		fmt.Println(cli.SubtleStyle.Render("Re-run with --execute to carry this out."))
		return nil
	}

	result, err := dispatcher.Execute(ctx, detected)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(result.Message))
	if result.NeedsReview {
		fmt.Println(cli.FormatWarning("Executed with low confidence; please verify the result."))
	}
	for _, name := range result.Coverage {
		fmt.Println(cli.FormatInfo("Available for coverage: " + name))
	}
	return nil
}

func consoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the interactive prompt console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			return tui.Run(engine.New(store))
		},
	}
}
