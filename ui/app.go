package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webtopd/webtop/engine"
	"github.com/webtopd/webtop/model"
)

// Page identifies the current screen.
type Page int

const (
	PageOverview Page = iota
	PageVitals
	PageResources
	PageWarnings
	pageCount
)

var pageNames = []string{"Overview", "Vitals", "Resources", "Warnings"}

type tickMsg time.Time

type collectMsg struct {
	vitals model.Vitals
	snap   *model.MetricsSnapshot
}

// saveConfirmMsg is sent after a save completes.
type saveConfirmMsg struct {
	path string
	err  error
}

// Model is the bubbletea model.
type Model struct {
	ticker   engine.Ticker
	engine   *engine.Engine
	interval time.Duration
	width    int
	height   int

	// Data
	vitals model.Vitals
	snap   *model.MetricsSnapshot

	// Navigation
	page     Page
	showHelp bool
	scroll   int

	// Auto-refresh control
	paused bool

	// Save / status feedback
	saveMsg     string
	saveMsgTime time.Time
}

// NewModel creates a new TUI model.
func NewModel(ticker engine.Ticker, interval time.Duration) Model {
	return Model{
		ticker:   ticker,
		engine:   ticker.Base(),
		interval: interval,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), collectOnce(m.ticker))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func collectOnce(ticker engine.Ticker) tea.Cmd {
	return func() tea.Msg {
		vitals, snap := ticker.Tick()
		return collectMsg{vitals: vitals, snap: snap}
	}
}

// saveSnapshot saves the current state to a JSON file.
func saveSnapshot(v model.Vitals, snap *model.MetricsSnapshot) tea.Cmd {
	return func() tea.Msg {
		ts := time.Now().Format("20060102-150405")
		path := fmt.Sprintf("webtop-%s.json", ts)

		data := map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"vitals":    v,
			"snapshot":  snap,
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return saveConfirmMsg{err: err}
		}
		defer f.Close()

		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return saveConfirmMsg{err: err}
		}

		return saveConfirmMsg{path: path}
	}
}

// exportMarkdown writes a markdown report of the current state.
func exportMarkdown(v model.Vitals, snap *model.MetricsSnapshot) tea.Cmd {
	return func() tea.Msg {
		ts := time.Now().Format("20060102-150405")
		path := fmt.Sprintf("webtop-report-%s.md", ts)
		if err := os.WriteFile(path, []byte(RenderMarkdown(v, snap)), 0600); err != nil {
			return saveConfirmMsg{err: err}
		}
		return saveConfirmMsg{path: path}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = true
		case "a":
			m.paused = !m.paused
			if !m.paused {
				return m, tea.Batch(tick(m.interval), collectOnce(m.ticker))
			}
		case "n":
			// Step one frame when paused in replay mode
			if m.paused {
				if p, ok := m.ticker.(*engine.Player); ok {
					m.vitals, m.snap = p.Tick()
				}
			}
		case "[":
			if p, ok := m.ticker.(*engine.Player); ok {
				m.vitals, m.snap = p.Seek(p.Index() - 10)
			}
		case "]":
			if p, ok := m.ticker.(*engine.Player); ok {
				m.vitals, m.snap = p.Seek(p.Index() + 10)
			}
		case "J":
			if p, ok := m.ticker.(*engine.Player); ok {
				m.vitals, m.snap = p.Seek(0)
			}
		case "K":
			if p, ok := m.ticker.(*engine.Player); ok {
				m.vitals, m.snap = p.Seek(p.Len() - 1)
			}
		case "S":
			if m.snap != nil {
				return m, saveSnapshot(m.vitals, m.snap)
			}
		case "P":
			if m.snap != nil {
				return m, exportMarkdown(m.vitals, m.snap)
			}
		case "r":
			// Force a fresh snapshot on the next collect
			m.engine.InvalidateCache()
			return m, collectOnce(m.ticker)
		case "R":
			// Restart observation from scratch
			m.engine.Reset()
			m.engine.Start()
			return m, collectOnce(m.ticker)
		case "0":
			m.page = PageOverview
			m.scroll = 0
		case "1":
			m.page = PageVitals
			m.scroll = 0
		case "2":
			m.page = PageResources
			m.scroll = 0
		case "3":
			m.page = PageWarnings
			m.scroll = 0
		case "b", "esc":
			m.page = PageOverview
			m.scroll = 0
		case "j", "down":
			m.scroll++
		case "k", "up":
			if m.scroll > 0 {
				m.scroll--
			}
		case "g":
			m.scroll = 0
		case "G":
			m.scroll += 20
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		if m.paused {
			return m, nil
		}
		return m, tea.Batch(tick(m.interval), collectOnce(m.ticker))
	case collectMsg:
		if !m.paused {
			m.vitals = msg.vitals
			m.snap = msg.snap
		}
	case saveConfirmMsg:
		if msg.err != nil {
			m.saveMsg = fmt.Sprintf("Save failed: %v", msg.err)
		} else {
			m.saveMsg = fmt.Sprintf("Saved: %s", msg.path)
		}
		m.saveMsgTime = time.Now()
	}
	return m, nil
}

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.snap == nil {
		return "Waiting for first sample..."
	}

	var content string
	switch m.page {
	case PageOverview:
		content = renderOverview(m.vitals, m.snap, m.engine.History, m.engine.URL(), m.width, m.height)
	case PageVitals:
		content = renderVitalsPage(m.vitals, m.engine.History, m.width, m.height)
	case PageResources:
		content = renderResourcesPage(m.snap, m.width, m.height)
	case PageWarnings:
		content = renderWarningsPage(m.snap, m.width, m.height)
	}

	content = m.injectClock(content)

	// Apply scroll, clamped to the content
	lines := strings.Split(content, "\n")
	if m.scroll >= len(lines) {
		m.scroll = len(lines) - 1
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
	if m.scroll > 0 && m.scroll < len(lines) {
		lines = lines[m.scroll:]
	}
	maxLines := m.height - 2
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	content = strings.Join(lines, "\n")

	return content + "\n" + m.renderStatusBar()
}

func (m Model) renderStatusBar() string {
	var tabs []string
	for i, name := range pageNames {
		label := fmt.Sprintf("%d:%s", i, name)
		if Page(i) == m.page {
			tabs = append(tabs, headerStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, dimStyle.Render(" "+label+" "))
		}
	}
	left := strings.Join(tabs, "")

	if m.paused {
		left += "  " + critStyle.Render("[PAUSED]")
	}
	if m.saveMsg != "" && time.Since(m.saveMsgTime) < 5*time.Second {
		left += "  " + okStyle.Render(m.saveMsg)
	}

	help := helpStyle.Render("a:pause  r:refresh  R:reset  S:save  P:report  ?:help  q:quit")

	leftW := lipgloss.Width(left)
	helpW := lipgloss.Width(help)
	if leftW+helpW+1 <= m.width {
		gap := m.width - leftW - helpW
		return left + strings.Repeat(" ", gap) + help
	}
	if leftW <= m.width {
		return left
	}
	return left[:m.width]
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("webtop — Core Web Vitals Console"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("Navigation"))
	sb.WriteString("\n")
	sb.WriteString("  0         Overview (default)\n")
	sb.WriteString("  1         Vitals detail (thresholds, trends)\n")
	sb.WriteString("  2         Resources (counts, DOM size)\n")
	sb.WriteString("  3         Warnings (findings + fixes)\n")
	sb.WriteString("  b / Esc   Back to overview\n")
	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Controls"))
	sb.WriteString("\n")
	sb.WriteString("  a         Toggle auto-refresh (pause/resume)\n")
	sb.WriteString("  n         Step one frame (replay mode while paused)\n")
	sb.WriteString("  [ / ]     Replay seek -10 / +10 frames\n")
	sb.WriteString("  J / K     Replay jump to start / end\n")
	sb.WriteString("  r         Force snapshot refresh\n")
	sb.WriteString("  R         Reset observers (fresh measurement)\n")
	sb.WriteString("  S         Save snapshot to JSON file\n")
	sb.WriteString("  P         Export report as markdown\n")
	sb.WriteString("  j/k       Scroll down/up\n")
	sb.WriteString("  g/G       Top / jump down\n")
	sb.WriteString("  ?         Toggle this help\n")
	sb.WriteString("  q/Ctrl+C  Quit\n")
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Press any key to close"))
	return sb.String()
}

// injectClock overlays "HH:MM:SS  every Ns" on the top-right of the
// first content line.
func (m Model) injectClock(content string) string {
	if m.width < 40 {
		return content
	}

	now := time.Now().Format("15:04:05")
	intervalStr := fmt.Sprintf("%.0fs", m.interval.Seconds())
	clock := dimStyle.Render(now + "  every " + intervalStr)
	clockW := lipgloss.Width(clock)

	lines := strings.Split(content, "\n")
	if len(lines) == 0 {
		return content
	}

	firstLine := lines[0]
	lineW := lipgloss.Width(firstLine)
	gap := m.width - lineW - clockW
	if gap < 2 {
		return strings.Repeat(" ", m.width-clockW) + clock + "\n" + content
	}
	lines[0] = firstLine + strings.Repeat(" ", gap) + clock
	return strings.Join(lines, "\n")
}
