package monitor

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/dmalson/claude-analytics/internal/output"
	"github.com/dmalson/claude-analytics/internal/reconciler"
	"github.com/dmalson/claude-analytics/internal/types"
)

// Monitor periodically recomputes the reconciled usage summary and
// renders it. Every refresh is a fresh read of the files on disk; nothing
// is cached between ticks.
type Monitor struct {
	options Options
}

type Options struct {
	ProjectsRoot string
	StatePath    string
	Interval     time.Duration
	NoColor      bool
	Watch        bool
}

func New(opts Options) *Monitor {
	if opts.Interval == 0 {
		opts.Interval = 5 * time.Second
	}
	return &Monitor{options: opts}
}

func (m *Monitor) Start(ctx context.Context) error {
	if m.options.Watch {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("watch mode requires a terminal")
		}
		return m.startTUI(ctx)
	}
	return m.runOnce(ctx)
}

func (m *Monitor) startTUI(ctx context.Context) error {
	p := tea.NewProgram(
		initialModel(m.options),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}

func (m *Monitor) runOnce(ctx context.Context) error {
	summary := newReconciler(m.options).GetUsage(ctx)
	formatter := output.NewFormatter(m.options.NoColor)
	fmt.Print(formatter.FormatSummary(summary))
	return nil
}

func newReconciler(opts Options) *reconciler.Reconciler {
	return reconciler.New(reconciler.Options{
		ProjectsRoot: opts.ProjectsRoot,
		StatePath:    opts.StatePath,
	})
}

type model struct {
	options    Options
	reconciler *reconciler.Reconciler
	formatter  *output.Formatter
	summary    types.UsageSummary
	lastUpdate time.Time
	quitting   bool
}

type tickMsg time.Time

func initialModel(opts Options) model {
	return model{
		options:    opts,
		reconciler: newReconciler(opts),
		formatter:  output.NewFormatter(opts.NoColor),
	}
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return tickMsg(time.Now()) },
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		m.summary = m.reconciler.GetUsage(context.Background())
		m.lastUpdate = time.Time(msg)
		return m, tickCmd(m.options.Interval)
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true)
	if !m.options.NoColor {
		titleStyle = titleStyle.Foreground(lipgloss.Color("205"))
	}

	view := titleStyle.Render("Claude Analytics Dashboard") + "\n\n"
	view += m.formatter.FormatSummary(m.summary)
	if !m.lastUpdate.IsZero() {
		view += fmt.Sprintf("\nLast update: %s (q to quit)\n", m.lastUpdate.Format("15:04:05"))
	}
	return view
}
