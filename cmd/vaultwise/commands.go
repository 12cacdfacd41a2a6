package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyperjump/vaultwise/internal/cli"
)

// buildQuestion joins all remaining arguments; multi-word questions work with or without quotes.
func buildQuestion(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// runOneShot builds the app, runs op with a signal-aware context and prints its result.
func runOneShot(cmd *cobra.Command, flags *globalFlags, op func(a *app, cmd *cobra.Command) (interface{}, error)) error {
	a, err := newApp(flags, true)
	if err != nil {
		return err
	}
	defer a.close()
	ctx, cancel := signalContext()
	defer cancel()
	cmd.SetContext(ctx)

	res, err := op(a, cmd)
	if err != nil {
		return err
	}
	return cli.Write(cmd.OutOrStdout(), res, a.format)
}

func newCategorizeCmd(flags *globalFlags) *cobra.Command {
	var vaultPath string
	cmd := &cobra.Command{
		Use:   "categorize <note.md>",
		Short: "Assign a note to one of the vault's top-level folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, flags, func(a *app, cmd *cobra.Command) (interface{}, error) {
				return a.assistant.Categorize(cmd.Context(), a.vaultPath(vaultPath), args[0])
			})
		},
	}
	cmd.Flags().StringVar(&vaultPath, "vault", "", "vault root used to discover categories (default from config)")
	return cmd
}

func newSummarizeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <folder>",
		Short: "Summarize the notes directly inside a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, flags, func(a *app, cmd *cobra.Command) (interface{}, error) {
				return a.assistant.SummarizeFolder(cmd.Context(), args[0])
			})
		},
	}
}

func newAnalyzeCmd(flags *globalFlags) *cobra.Command {
	var noAI bool
	cmd := &cobra.Command{
		Use:   "analyze <folder> <keyword>",
		Short: "Track how a keyword is used across a folder over time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, flags, func(a *app, cmd *cobra.Command) (interface{}, error) {
				return a.assistant.AnalyzePattern(cmd.Context(), args[0], args[1], !noAI)
			})
		},
	}
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "skip the AI insight")
	return cmd
}

func newAskCmd(flags *globalFlags) *cobra.Command {
	var (
		vaultPath string
		maxNotes  int
	)
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from the most relevant notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, flags, func(a *app, cmd *cobra.Command) (interface{}, error) {
				return a.assistant.AnswerQuestion(cmd.Context(), a.vaultPath(vaultPath), buildQuestion(args), maxNotes)
			})
		},
	}
	cmd.Flags().StringVar(&vaultPath, "vault", "", "vault root (default from config)")
	cmd.Flags().IntVar(&maxNotes, "max-notes", 0, "maximum notes used as context (default from config)")
	return cmd
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report [vault]",
		Short: "Generate vault statistics, folder summaries and top themes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, flags, func(a *app, cmd *cobra.Command) (interface{}, error) {
				return a.assistant.GenerateReport(cmd.Context(), a.vaultPath(firstArg(args)))
			})
		},
	}
}

func newCategoriesCmd(flags *globalFlags) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "categories [vault]",
		Short: "List top-level folders with generated descriptions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, flags, func(a *app, cmd *cobra.Command) (interface{}, error) {
				return a.assistant.Categories(cmd.Context(), a.vaultPath(firstArg(args)), refresh)
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild descriptions instead of using the cache")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
