package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/internal/vault"
)

// Action is one entry of the interactive menu.
type Action string

const (
	ActionCategorize Action = "categorize"
	ActionSummarize  Action = "summarize"
	ActionAnalyze    Action = "analyze"
	ActionAsk        Action = "ask"
	ActionReport     Action = "report"
	ActionExit       Action = "exit"
)

// SelectOption represents a single option in a select prompt.
type SelectOption[T any] struct {
	Label string
	Value T
}

// MenuOptions lists the menu entries in display order.
var MenuOptions = []SelectOption[Action]{
	{"Categorize a note", ActionCategorize},
	{"Summarize a folder", ActionSummarize},
	{"Analyze keyword patterns", ActionAnalyze},
	{"Ask a question about your vault", ActionAsk},
	{"Generate a vault report", ActionReport},
	{"Exit", ActionExit},
}

// Prompter collects input from the user.
type Prompter interface {
	Select(title string, options []SelectOption[Action]) (Action, error)
	// Input returns the entered text, or defaultVal when the input is left empty.
	// validate, when set, is applied to the returned value.
	Input(title, defaultVal string, validate func(string) error) (string, error)
	Confirm(title string, defaultYes bool) (bool, error)
}

// Service is the set of vault operations the menu drives.
type Service interface {
	Categorize(ctx context.Context, vaultPath, notePath string) (*models.CategorizeResult, error)
	SummarizeFolder(ctx context.Context, folder string) (*models.FolderSummary, error)
	AnalyzePattern(ctx context.Context, folder, keyword string, includeAI bool) (*models.PatternAnalysis, error)
	AnswerQuestion(ctx context.Context, vaultPath, question string, maxNotes int) (*models.QAResult, error)
	GenerateReport(ctx context.Context, vaultPath string) (*models.VaultReport, error)
}

// Menu is the interactive prompt loop.
type Menu struct {
	svc          Service
	prompter     Prompter
	out          io.Writer
	format       OutputFormat
	defaultVault string
}

// NewMenu creates a menu. defaultVault is offered as the default for every path prompt.
func NewMenu(svc Service, prompter Prompter, out io.Writer, format OutputFormat, defaultVault string) *Menu {
	return &Menu{svc: svc, prompter: prompter, out: out, format: format, defaultVault: defaultVault}
}

// Run shows the menu until the user exits or aborts. Operation errors are printed and the
// loop continues; only prompt failures are returned.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out)
	heading(m.out, "Vaultwise - Interactive Mode")
	for {
		action, err := m.prompter.Select("What would you like to do?", MenuOptions)
		if err != nil {
			return m.aborted(err)
		}
		if action == ActionExit {
			break
		}
		if err := m.runAction(ctx, action); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return m.aborted(err)
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(m.out, "\nError: %v\n\n", err)
		}
		again, err := m.prompter.Confirm("Would you like to do another action?", true)
		if err != nil {
			return m.aborted(err)
		}
		if !again {
			break
		}
	}
	fmt.Fprintln(m.out, "\nGoodbye!")
	return nil
}

func (m *Menu) aborted(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(m.out, "\nGoodbye!")
		return nil
	}
	return err
}

func (m *Menu) runAction(ctx context.Context, action Action) error {
	var (
		res interface{}
		err error
	)
	switch action {
	case ActionCategorize:
		res, err = m.categorize(ctx)
	case ActionSummarize:
		res, err = m.summarize(ctx)
	case ActionAnalyze:
		res, err = m.analyze(ctx)
	case ActionAsk:
		res, err = m.ask(ctx)
	case ActionReport:
		res, err = m.report(ctx)
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		return err
	}
	return Write(m.out, res, m.format)
}

func (m *Menu) categorize(ctx context.Context) (interface{}, error) {
	note, err := m.prompter.Input("Enter note path", "", ValidateNote)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(m.out, "\nCategorizing note...")
	return m.svc.Categorize(ctx, m.defaultVault, note)
}

func (m *Menu) summarize(ctx context.Context) (interface{}, error) {
	folder, err := m.prompter.Input("Enter folder path", m.defaultVault, ValidateDir)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(m.out, "\nAnalyzing folder...")
	return m.svc.SummarizeFolder(ctx, folder)
}

func (m *Menu) analyze(ctx context.Context) (interface{}, error) {
	folder, err := m.prompter.Input("Enter folder path", m.defaultVault, ValidateDir)
	if err != nil {
		return nil, err
	}
	kw, err := m.prompter.Input("Enter keyword to track", "", RequireText("keyword"))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(m.out, "\nAnalyzing pattern for %q...\n", kw)
	return m.svc.AnalyzePattern(ctx, folder, kw, true)
}

func (m *Menu) ask(ctx context.Context) (interface{}, error) {
	vaultPath, err := m.prompter.Input("Enter vault path", m.defaultVault, ValidateDir)
	if err != nil {
		return nil, err
	}
	question, err := m.prompter.Input("Enter your question", "", RequireText("question"))
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(m.out, "\nSearching vault and analyzing...")
	return m.svc.AnswerQuestion(ctx, vaultPath, question, 0)
}

func (m *Menu) report(ctx context.Context) (interface{}, error) {
	vaultPath, err := m.prompter.Input("Enter vault path", m.defaultVault, ValidateDir)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(m.out, "\nGenerating report...")
	return m.svc.GenerateReport(ctx, vaultPath)
}

// ValidateNote accepts an existing markdown file.
func ValidateNote(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.New("file not found, please try again")
	}
	if info.IsDir() || !vault.IsMarkdown(path) {
		return errors.New("must be a markdown (.md) file")
	}
	return nil
}

// ValidateDir accepts an existing directory.
func ValidateDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.New("folder not found, please try again")
	}
	if !info.IsDir() {
		return errors.New("must be a folder")
	}
	return nil
}

// RequireText rejects blank input.
func RequireText(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("please enter a %s", what)
		}
		return nil
	}
}

// HuhPrompter prompts through huh forms.
type HuhPrompter struct{}

// runWithHelp wraps huh fields in a Form with help hints visible at the bottom.
func runWithHelp(fields ...huh.Field) error {
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).Run()
}

// Select shows a single-select list.
func (HuhPrompter) Select(title string, options []SelectOption[Action]) (Action, error) {
	var value Action
	huhOpts := make([]huh.Option[Action], len(options))
	for i, opt := range options {
		huhOpts[i] = huh.NewOption(opt.Label, opt.Value)
	}
	sel := huh.NewSelect[Action]().
		Title(title).
		Options(huhOpts...).
		Value(&value)
	if err := runWithHelp(sel); err != nil {
		return "", err
	}
	return value, nil
}

// Input prompts for text. A non-empty defaultVal is shown as placeholder.
func (HuhPrompter) Input(title, defaultVal string, validate func(string) error) (string, error) {
	var value string
	inp := huh.NewInput().
		Title(title).
		Value(&value)
	if defaultVal != "" {
		inp = inp.Placeholder(defaultVal).Description("Default: " + defaultVal)
	}
	if validate != nil {
		inp = inp.Validate(func(s string) error {
			if s == "" {
				s = defaultVal
			}
			return validate(strings.TrimSpace(s))
		})
	}
	if err := runWithHelp(inp); err != nil {
		return "", err
	}
	if value == "" {
		return defaultVal, nil
	}
	return strings.TrimSpace(value), nil
}

// Confirm asks a yes/no question.
func (HuhPrompter) Confirm(title string, defaultYes bool) (bool, error) {
	value := defaultYes
	c := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if err := runWithHelp(c); err != nil {
		return false, err
	}
	return value, nil
}
