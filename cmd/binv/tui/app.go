package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/egetools/binv/pkg/binv/eget"
	"github.com/egetools/binv/pkg/binv/history"
	"github.com/egetools/binv/pkg/binv/logging"
	"github.com/egetools/binv/pkg/binv/record"
	"github.com/egetools/binv/pkg/binv/selection"
	"github.com/egetools/binv/pkg/binv/store"
)

var logger = logging.Get("tui")

// Options configures the interactive browser.
type Options struct {
	Store   *store.Store
	Runner  *eget.Runner
	History *history.History // nil when prune history is disabled
}

// viewMode is the input mode of the TUI.
type viewMode int

const (
	modeBrowse viewMode = iota
	modeFilter
	modeConfirm
)

// egetDoneMsg reports the result of an eget subprocess run.
type egetDoneMsg struct {
	repo string
	err  error
}

// Model is the Bubble Tea model for the install log browser.
type Model struct {
	opts Options
	sel  *selection.State

	mode        viewMode
	filterInput textinput.Model

	// Confirmation dialog state.
	confirmTarget  record.InstallRecord
	confirmFocused int // 0 = cancel, 1 = delete

	flash    string
	flashErr bool

	offset int // first visible row in the list pane
	width  int
	height int
}

// NewModel creates the TUI model and loads the install log.
func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	return Model{
		opts:        opts,
		sel:         selection.New(opts.Store.Load()),
		filterInput: ti,
		width:       80,
		height:      24,
	}
}

// Run starts the interactive browser and blocks until the user quits.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("tui: no log store configured")
	}
	if opts.Runner == nil {
		opts.Runner = eget.NewRunner("")
	}

	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case egetDoneMsg:
		// eget may have replaced the binary or appended to the log, so
		// reload no matter how the subprocess exited.
		m.reload()
		if msg.err != nil {
			logger.Error("eget failed", "repo", msg.repo, "error", msg.err)
			m.setFlash(fmt.Sprintf("eget %s failed: %v", msg.repo, msg.err), true)
		} else {
			m.setFlash(fmt.Sprintf("Updated %s", msg.repo), false)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

// updateBrowse handles keys in the normal browsing mode.
func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "j", "down":
		m.sel.Next()
		m.ensureVisible()

	case "k", "up":
		m.sel.Prev()
		m.ensureVisible()

	case "/":
		m.mode = modeFilter
		m.filterInput.SetValue("")
		m.filterInput.Focus()
		m.flash = ""
		return m, textinput.Blink

	case "d":
		if rec, ok := m.sel.Current(); ok {
			if rec.Removed {
				m.setFlash(fmt.Sprintf("%s is already marked removed", rec.Name()), true)
				return m, nil
			}
			m.mode = modeConfirm
			m.confirmTarget = rec
			m.confirmFocused = 0
		}

	case "u", "r":
		if rec, ok := m.sel.Current(); ok {
			repo := rec.Repo
			return m, tea.ExecProcess(m.opts.Runner.Command(repo), func(err error) tea.Msg {
				return egetDoneMsg{repo: repo, err: err}
			})
		}
	}

	return m, nil
}

// updateFilter handles keys while the filter input is focused. Every
// keystroke reapplies the filter so the list narrows live.
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.filterInput.Blur()
		return m, nil

	case "esc", "ctrl+c":
		m.mode = modeBrowse
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.sel.ClearFilter()
		m.ensureVisible()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.sel.SetFilter(m.filterInput.Value())
	m.ensureVisible()
	return m, cmd
}

// updateConfirm handles keys in the delete confirmation dialog.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "right", "l", "tab":
		m.confirmFocused = 1 - m.confirmFocused

	case "y":
		return m.doPrune()

	case "n", "esc", "q", "ctrl+c":
		m.mode = modeBrowse

	case "enter":
		if m.confirmFocused == 1 {
			return m.doPrune()
		}
		m.mode = modeBrowse
	}

	return m, nil
}

// doPrune deletes the confirmed binary, marks it removed in the log,
// records history, and reloads.
func (m Model) doPrune() (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	rec := m.confirmTarget

	var freed int64
	if rec.Size != nil {
		freed = *rec.Size
	}

	if err := m.opts.Store.Prune(rec.Path); err != nil {
		logger.Error("prune failed", "path", rec.Path, "error", err)
		m.setFlash(fmt.Sprintf("Delete failed: %v", err), true)
		return m, nil
	}

	if m.opts.History != nil {
		if _, err := m.opts.History.LogPrune(rec.Repo, rec.Path, freed); err != nil {
			logger.Warn("could not record prune history", "error", err)
		}
	}

	m.reload()
	m.setFlash(fmt.Sprintf("Deleted %s (freed %s)", rec.Name(), record.FormatBytes(freed)), false)
	return m, nil
}

// reload re-reads the install log and rebuilds the selection from
// scratch, dropping any active filter.
func (m *Model) reload() {
	m.sel = selection.New(m.opts.Store.Load())
	m.filterInput.SetValue("")
	m.offset = 0
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
}

// ensureVisible scrolls the list pane so the cursor stays on screen.
func (m *Model) ensureVisible() {
	rows := m.listRows()
	if rows <= 0 {
		m.offset = 0
		return
	}
	cursor := m.sel.Cursor()
	if cursor < m.offset {
		m.offset = cursor
	}
	if cursor >= m.offset+rows {
		m.offset = cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listRows returns how many records fit in the list pane.
func (m *Model) listRows() int {
	// Header line, pane borders and padding, and the status bar.
	return m.height - 8
}

// View implements tea.Model.
func (m Model) View() string {
	if m.mode == modeConfirm {
		return m.viewConfirm()
	}

	header := titleStyle.Render("binv") + mutedTextStyle.Render(
		fmt.Sprintf("  %d of %d binaries", m.sel.Len(), m.sel.Total()))

	listWidth := m.width * 3 / 5
	detailWidth := m.width - listWidth - 6
	if detailWidth < 20 {
		detailWidth = 20
	}

	list := listPaneStyle.Width(listWidth).Render(m.viewList(listWidth))
	detail := detailPaneStyle.Width(detailWidth).Render(m.viewDetail(detailWidth))
	panes := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	return lipgloss.JoinVertical(lipgloss.Left, header, panes, m.viewStatusBar())
}

// viewList renders the filtered record list with the cursor row
// highlighted.
func (m Model) viewList(width int) string {
	visible := m.sel.Visible()
	if len(visible) == 0 {
		if m.sel.Total() == 0 {
			return mutedTextStyle.Render("No binaries in the install log.")
		}
		return mutedTextStyle.Render(fmt.Sprintf("Nothing matches %q.", m.sel.Filter()))
	}

	rows := m.listRows()
	if rows < 1 {
		rows = 1
	}
	end := m.offset + rows
	if end > len(visible) {
		end = len(visible)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		rec := visible[i]

		marker := "  "
		if i == m.sel.Cursor() {
			marker = cursorStyle.Render("> ")
		}

		line := fmt.Sprintf("%-20s %-28s %9s",
			record.Truncate(rec.Name(), 20),
			record.Truncate(rec.Repo, 28),
			record.FormatSize(rec.Size),
		)
		if note := statusNote(rec); note != "" {
			line += " " + note
		}

		style := normalItemStyle
		if rec.Removed {
			style = goneItemStyle
		}
		if i == m.sel.Cursor() {
			style = selectedItemStyle
		}

		b.WriteString(marker + style.Render(record.Truncate(line, width-4)) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// viewDetail renders the detail panel for the record under the cursor.
func (m Model) viewDetail(width int) string {
	rec, ok := m.sel.Current()
	if !ok {
		return mutedTextStyle.Render("Nothing selected.")
	}

	label := func(s string) string { return mutedTextStyle.Render(s) }

	lines := []string{
		titleStyle.Render(record.Truncate(rec.Name(), width-2)),
		"",
		label("Repo      ") + rec.Repo,
		label("Path      ") + truncatePath(rec.Path, width-12),
		label("Size      ") + sizeStyle.Render(record.FormatSize(rec.Size)),
		label("Installed ") + rec.Timestamp.Format("2006-01-02 15:04"),
		label("          ") + mutedTextStyle.Render(humanize.Time(rec.Timestamp)),
	}

	if note := statusNote(rec); note != "" {
		lines = append(lines, "", note)
	}

	return strings.Join(lines, "\n")
}

// viewStatusBar renders the bottom bar: the filter input while editing,
// a flash message when present, otherwise the key hints.
func (m Model) viewStatusBar() string {
	var content string
	switch {
	case m.mode == modeFilter:
		content = m.filterInput.View()
	case m.flash != "":
		if m.flashErr {
			content = errorTextStyle.Render(m.flash)
		} else {
			content = successTextStyle.Render(m.flash)
		}
	default:
		content = keyHints()
		if f := m.sel.Filter(); f != "" {
			content = filterTextStyle.Render("filter: "+f) + keyDescStyle.Render("  •  ") + content
		}
	}
	return statusBarStyle.Width(m.width - 2).Render(content)
}

// viewConfirm renders the delete confirmation dialog centered on screen.
func (m Model) viewConfirm() string {
	rec := m.confirmTarget

	cancel := inactiveButtonStyle.Render("Cancel")
	del := inactiveButtonStyle.Render("Delete")
	if m.confirmFocused == 1 {
		del = activeButtonStyle.Render("Delete")
	} else {
		cancel = activeButtonStyle.Render("Cancel")
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		dialogTitleStyle.Render("Delete binary?"),
		"",
		dialogTextStyle.Render(truncatePath(rec.Path, 44)),
		dialogTextStyle.Render(fmt.Sprintf("%s  •  %s", rec.Repo, record.FormatSize(rec.Size))),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, cancel, del),
		"",
		keyDescStyle.Render("y confirm  n cancel  tab switch"),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		dialogBoxStyle.Render(body))
}

// statusNote returns a live status marker for a record, checking the
// filesystem rather than trusting the log alone.
func statusNote(rec record.InstallRecord) string {
	if rec.Removed {
		return goneItemStyle.Render("[REMOVED]")
	}
	if _, err := os.Stat(rec.Path); err != nil {
		return errorTextStyle.Render("[MISSING]")
	}
	return ""
}

// keyHints renders the browse mode key legend.
func keyHints() string {
	hints := []struct{ key, desc string }{
		{"j/k", "move"},
		{"/", "filter"},
		{"d", "delete"},
		{"u", "update"},
		{"q", "quit"},
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.key)+keyDescStyle.Render(" "+h.desc))
	}
	return strings.Join(parts, keyDescStyle.Render("  •  "))
}
