package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"shapecheck/internal/domain"
	"shapecheck/internal/storage"
)

// maxStackFrames is how many frames the details pane shows before eliding
const maxStackFrames = 10

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
	logger  *zap.Logger
	app     *tview.Application
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(st storage.Storage, logger *zap.Logger) *ErrorViewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorViewer{
		storage: st,
		logger:  logger,
	}
}

// View browses the failures of a stored run. Pressing R toggles the resolved flag of
// the selected failure and writes it back through the storage.
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := ev.app
	if app == nil {
		app = tview.NewApplication()
	}

	b := newFailureBrowser(ev, app, results)
	if err := app.SetRoot(b.layout(), true).SetFocus(b.list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// failureBrowser is the state of one viewer session
type failureBrowser struct {
	viewer  *ErrorViewer
	app     *tview.Application
	results *domain.TestResultsOutput

	header  *tview.TextView
	list    *tview.List
	stats   *tview.TextView
	details *tview.TextView
}

func newFailureBrowser(ev *ErrorViewer, app *tview.Application, results *domain.TestResultsOutput) *failureBrowser {
	b := &failureBrowser{
		viewer:  ev,
		app:     app,
		results: results,
		header:  tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true),
		list:    tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true),
		stats:   tview.NewTextView().SetDynamicColors(true).SetWrap(false),
		details: tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetWordWrap(true),
	}

	b.list.SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	for i := range results.Details {
		b.list.AddItem(b.itemText(i), "", 0, nil)
	}

	b.list.SetChangedFunc(func(int, string, string, rune) { b.showSelected() })
	b.list.SetInputCapture(b.onListKey)
	b.details.SetInputCapture(b.onDetailsKey)

	b.refreshHeader()
	b.showSelected()
	return b
}

// layout puts the id list on the left third and the selected failure on the right
func (b *failureBrowser) layout() tview.Primitive {
	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.stats, 3, 0, false).
		AddItem(tview.NewFlex().
			AddItem(b.details, 0, 1, false).
			AddItem(tview.NewBox(), 2, 0, false), 0, 1, false)

	body := tview.NewFlex().
		AddItem(b.list, 0, 1, true).
		AddItem(right, 0, 2, false)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.header, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(body, 0, 1, true)
}

func (b *failureBrowser) itemText(i int) string {
	failure := b.results.Details[i]
	id := failure.TestID
	if id == "" {
		id = fmt.Sprintf("Test %d", i+1)
	}
	id = tview.Escape(id)

	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", i+1, id)
	}
	return fmt.Sprintf("[%s]%d.[white] %s", labelTag(failure.Outcome), i+1, id)
}

func (b *failureBrowser) refreshHeader() {
	open := 0
	for _, failure := range b.results.Details {
		if !failure.Resolved {
			open++
		}
	}
	b.header.SetText(fmt.Sprintf(
		" %d failing tests, %d unresolved | ↑↓ select, [yellow]R[white] resolve, → details, ← back, Ctrl+C quit ",
		len(b.results.Details), open))
}

func (b *failureBrowser) showSelected() {
	i := b.list.GetCurrentItem()
	if i < 0 || i >= len(b.results.Details) {
		return
	}
	failure := b.results.Details[i]
	b.stats.SetText(b.viewer.formatFailureStats(failure, i+1))
	b.details.SetText(b.viewer.formatFailureDetails(failure))
	b.details.ScrollToBeginning()
}

// toggleResolved flips the selected failure and persists the whole output
func (b *failureBrowser) toggleResolved() {
	i := b.list.GetCurrentItem()
	if i < 0 || i >= len(b.results.Details) {
		return
	}
	b.results.Details[i].Resolved = !b.results.Details[i].Resolved
	b.list.SetItemText(i, b.itemText(i), "")
	b.refreshHeader()

	if err := b.viewer.storage.SaveOutput(b.results); err != nil {
		b.viewer.logger.Warn("failed to save resolved status",
			zap.String("test", b.results.Details[i].TestID), zap.Error(err))
	}
}

func (b *failureBrowser) onListKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEnter, tcell.KeyRight:
		b.app.SetFocus(b.details)
		return nil
	case tcell.KeyCtrlC:
		b.app.Stop()
		return nil
	case tcell.KeyRune:
		if r := event.Rune(); r == 'r' || r == 'R' {
			b.toggleResolved()
			return nil
		}
	}
	return event
}

func (b *failureBrowser) onDetailsKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft, tcell.KeyEsc:
		b.app.SetFocus(b.list)
		return nil
	case tcell.KeyCtrlC:
		b.app.Stop()
		return nil
	}
	return event
}

// labelTag is the tview color used for an outcome in the list
func labelTag(o domain.Outcome) string {
	if o == domain.OutcomeError {
		return "orange"
	}
	return "red"
}

// formatFailureDetails renders one failure with tview color tags
func (ev *ErrorViewer) formatFailureDetails(failure domain.TestFailure) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[red]✗ Test: %s[white]\n\n", tview.Escape(failure.TestName))
	fmt.Fprintf(&sb, "[cyan]Module: %s[white]\n", failure.Module)
	fmt.Fprintf(&sb, "[cyan]Outcome: %s[white]\n", failure.Outcome.Label())
	if failure.File != "" && failure.Line > 0 {
		fmt.Fprintf(&sb, "[yellow]Location: %s:%d[white]\n", failure.File, failure.Line)
	}
	sb.WriteString("\n")

	if failure.Message != "" {
		fmt.Fprintf(&sb, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}

	if len(failure.StackTrace) > 0 {
		sb.WriteString("[yellow]Stack Trace:[white]\n")
		for i, frame := range failure.StackTrace {
			if i == maxStackFrames {
				fmt.Fprintf(&sb, "  [gray]... and %d more lines[white]\n", len(failure.StackTrace)-maxStackFrames)
				break
			}
			fmt.Fprintf(&sb, "  %s\n", tview.Escape(frame))
		}
	}
	return sb.String()
}

// formatFailureStats renders the "module::case" line above the details pane
func (ev *ErrorViewer) formatFailureStats(failure domain.TestFailure, number int) string {
	module := failure.Module
	if module == "" {
		module = "Unknown module"
	}

	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Test %d", number)
	}

	return fmt.Sprintf("[cyan]module:[white] [yellow]%s[white]::[yellow]%s[white]\n", module, tview.Escape(name))
}
