package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// Progress view styles
var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

const barWidth = 32

// =============================================================================
// LayoutModel - Interactive layout progress
// =============================================================================

// tickMsg reports the state after one Run.Tick. It is built in the command
// goroutine so the view never touches the run.
type tickMsg struct {
	ended     bool
	processed int
	total     int
	placed    int
	notPlaced int
}

// LayoutModel is the bubbletea model that drives a layout job one tick at
// a time. Only one tick command is in flight at once, so the run is never
// accessed concurrently.
type LayoutModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	job    *pipeline.Job

	start    time.Time
	last     tickMsg
	quitting bool
	Err      error
}

// NewLayoutModel creates a progress model for job.
func NewLayoutModel(ctx context.Context, job *pipeline.Job) LayoutModel {
	ctx, cancel := context.WithCancel(ctx)
	_, total := job.Run.Progress()
	return LayoutModel{
		ctx:    ctx,
		cancel: cancel,
		job:    job,
		start:  time.Now(),
		last:   tickMsg{total: total},
	}
}

func (m LayoutModel) Init() tea.Cmd {
	return m.tick
}

func (m LayoutModel) tick() tea.Msg {
	ended := m.job.Tick(m.ctx)
	res := m.job.Run.Result()
	processed, total := m.job.Run.Progress()
	return tickMsg{
		ended:     ended,
		processed: processed,
		total:     total,
		placed:    len(res.Placed),
		notPlaced: len(res.NotPlaced),
	}
}

func (m LayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// The in-flight tick sees the canceled context and returns.
			m.quitting = true
			m.cancel()
		}
	case tickMsg:
		m.last = msg
		if msg.ended {
			m.cancel()
			return m, tea.Quit
		}
		if err := m.ctx.Err(); err != nil {
			m.job.Run.Stop()
			m.Err = err
			return m, tea.Quit
		}
		return m, m.tick
	}
	return m, nil
}

func (m LayoutModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Placing words"))
	b.WriteString("\n\n  ")
	b.WriteString(renderBar(m.last.processed, m.last.total))
	b.WriteString(fmt.Sprintf("  %s/%d\n",
		StyleNumber.Render(fmt.Sprint(m.last.processed)), m.last.total))

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  placed %d · not placed %d · %s",
		m.last.placed, m.last.notPlaced, time.Since(m.start).Round(100*time.Millisecond))))
	b.WriteString("\n\n")

	if m.quitting {
		b.WriteString(StyleWarning.Render("  stopping..."))
	} else {
		b.WriteString(listDimStyle.Render("  q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func renderBar(done, total int) string {
	filled := 0
	if total > 0 {
		filled = done * barWidth / total
	}
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// runProgress drives job to completion under the progress view. It returns
// ctx's error if the user quit or ctx was canceled.
func runProgress(ctx context.Context, job *pipeline.Job) error {
	p := tea.NewProgram(NewLayoutModel(ctx, job), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		job.Run.Stop()
		return err
	}
	if m, ok := final.(LayoutModel); ok && m.Err != nil {
		return m.Err
	}
	return nil
}
