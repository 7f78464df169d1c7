package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/victordelrosal/epictaskquest/internal/engine"
	"github.com/victordelrosal/epictaskquest/internal/render"
	"github.com/victordelrosal/epictaskquest/internal/storage"
	"github.com/victordelrosal/epictaskquest/internal/ui"
)

const completedKey = render.SectionKey("completed")

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeEdit
	modeSearch
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service
	cfg *storage.ConfigRepo

	width  int
	height int

	toggles *render.ToggleStore
	style   storage.StyleConfig
	filter  render.Filter
	view    render.View
	stats   engine.Stats

	selected int
	mode     inputMode
	input    textinput.Model
	editID   int64

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	view  render.View
	stats engine.Stats
	style storage.StyleConfig
	err   error
}

type mutatedMsg struct {
	log string
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, cfg *storage.ConfigRepo) boardModel {
	ti := textinput.New()
	ti.Placeholder = "task text, #tags, !HH:MM alarm"
	ti.CharLimit = 280
	ti.Width = 60

	toggles := render.NewToggleStore()
	toggles.MarkExpanded(render.ParentKey)
	toggles.MarkExpanded(render.UntaggedKey)

	return boardModel{
		ctx:     ctx,
		svc:     svc,
		cfg:     cfg,
		toggles: toggles,
		style:   storage.DefaultStyleConfig(),
		input:   ti,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	toggles := m.toggles
	filter := m.filter
	return func() tea.Msg {
		toggles.SnapshotBeforeRebuild()
		if err := m.svc.Reload(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		style := storage.DefaultStyleConfig()
		if m.cfg != nil {
			if loaded, err := m.cfg.Load(m.ctx); err == nil {
				style = loaded
			}
		}
		view := render.Build(m.svc.Hierarchy(), m.svc.CompletedTasks(), toggles, style, filter)
		toggles.RestoreAfterRebuild()
		return loadedMsg{view: view, stats: m.svc.Stats(), style: style}
	}
}

func (m boardModel) mutateCmd(log string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{log: log}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.view = msg.view
		m.stats = msg.stats
		m.style = msg.style
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case mutatedMsg:
		if msg.err != nil {
			m.lastLog = msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		return m, m.loadCmd()
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m boardModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		lines := m.lines()
		if m.selected < len(lines)-1 {
			m.selected++
		}
		return m, nil
	case "enter":
		line, ok := m.currentLine()
		if !ok {
			return m, nil
		}
		if line.isSection {
			m.toggles.Toggle(line.key)
			m.rebuildView()
		}
		return m, nil
	case "c", " ":
		line, ok := m.currentLine()
		if !ok || line.isSection {
			return m, nil
		}
		id := line.taskID
		return m, m.mutateCmd(fmt.Sprintf("Toggled %d.", id), func() error {
			return m.svc.ToggleCompletion(m.ctx, id)
		})
	case "w":
		line, ok := m.currentLine()
		if !ok || line.isSection {
			return m, nil
		}
		id := line.taskID
		on := !line.wishlist
		return m, m.mutateCmd(fmt.Sprintf("Cart %d → %v.", id, on), func() error {
			return m.svc.SetWishlist(m.ctx, id, on)
		})
	case "+":
		line, ok := m.currentLine()
		if !ok || line.isSection {
			return m, nil
		}
		id := line.taskID
		return m, m.mutateCmd(fmt.Sprintf("Raised %d.", id), func() error {
			return m.svc.MoveUp(m.ctx, id)
		})
	case "-":
		line, ok := m.currentLine()
		if !ok || line.isSection {
			return m, nil
		}
		id := line.taskID
		return m, m.mutateCmd(fmt.Sprintf("Lowered %d.", id), func() error {
			return m.svc.MoveDown(m.ctx, id)
		})
	case "d":
		line, ok := m.currentLine()
		if !ok || line.isSection {
			return m, nil
		}
		id := line.taskID
		return m, m.mutateCmd(fmt.Sprintf("Deleted %d.", id), func() error {
			return m.svc.Delete(m.ctx, id)
		})
	case "y":
		line, ok := m.currentLine()
		if !ok || line.isSection {
			return m, nil
		}
		if err := clipboard.WriteAll(line.text); err != nil {
			m.lastLog = "Clipboard: " + err.Error()
		} else {
			m.lastLog = "Yanked task text."
		}
		return m, nil
	case "a":
		m.mode = modeAdd
		m.input.SetValue("")
		// A selected tag section prefills its quick-add tag.
		if line, ok := m.currentLine(); ok && line.isSection && line.quickAdd != "" {
			m.input.SetValue(strings.TrimSpace(line.quickAdd) + " ")
		}
		m.input.Focus()
		return m, textinput.Blink
	case "e":
		line, ok := m.currentLine()
		if !ok || line.isSection {
			return m, nil
		}
		m.mode = modeEdit
		m.editID = line.taskID
		m.input.SetValue(line.text)
		m.input.Focus()
		return m, textinput.Blink
	case "/":
		m.mode = modeSearch
		m.input.SetValue(m.filter.Query)
		m.input.Focus()
		return m, textinput.Blink
	case "W":
		m.filter.WishlistOnly = !m.filter.WishlistOnly
		m.selected = 0
		return m, m.loadCmd()
	case "b":
		idx := m.svc.BrowseBadge(-1)
		m.lastLog = fmt.Sprintf("Badge %d: %s", idx+1, engine.BadgeImage(idx))
		return m, nil
	case "B":
		idx := m.svc.BrowseBadge(1)
		m.lastLog = fmt.Sprintf("Badge %d: %s", idx+1, engine.BadgeImage(idx))
		return m, nil
	}
	return m, nil
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		wasSearch := m.mode == modeSearch
		m.mode = modeBrowse
		m.input.Blur()
		if wasSearch {
			m.filter.Query = ""
			return m, m.loadCmd()
		}
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = modeBrowse
		m.input.Blur()
		switch mode {
		case modeAdd:
			if value == "" {
				m.lastLog = "Nothing to add."
				return m, nil
			}
			return m, m.mutateCmd("Added.", func() error {
				_, err := m.svc.AddTask(m.ctx, value, engine.DefaultDifficulty, nil, false)
				return err
			})
		case modeEdit:
			id := m.editID
			return m, m.mutateCmd(fmt.Sprintf("Edited %d.", id), func() error {
				return m.svc.EditText(m.ctx, id, value)
			})
		case modeSearch:
			m.filter.Query = value
			m.selected = 0
			return m, m.loadCmd()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// rebuildView re-derives the section tree from the current snapshot
// without touching the store. Used for pure toggle flips.
func (m *boardModel) rebuildView() {
	m.view = render.Build(m.svc.Hierarchy(), m.svc.CompletedTasks(), m.toggles, m.style, m.filter)
}

type boardLine struct {
	isSection bool
	key       render.SectionKey
	taskID    int64
	depth     int
	text      string
	count     int
	expanded  bool
	points    int
	wishlist  bool
	repeat    bool
	quickAdd  string
}

func (m boardModel) lines() []boardLine {
	var out []boardLine

	appendRows := func(rows []render.Row, depth int) {
		for _, r := range rows {
			out = append(out, boardLine{
				taskID:   r.ID,
				depth:    depth,
				text:     r.Text,
				points:   r.Points,
				wishlist: r.Wishlist,
				repeat:   engine.HasRepeatTag(r.Text),
			})
		}
	}

	for _, sec := range m.view.Sections {
		out = append(out, boardLine{
			isSection: true,
			key:       sec.Key,
			text:      sec.Label,
			count:     sec.Count,
			expanded:  sec.Expanded,
			quickAdd:  sec.QuickAdd,
		})
		if !sec.Expanded {
			continue
		}
		appendRows(sec.Rows, 1)
		for _, child := range sec.Children {
			out = append(out, boardLine{
				isSection: true,
				key:       child.Key,
				depth:     1,
				text:      child.Label,
				count:     child.Count,
				expanded:  child.Expanded,
				quickAdd:  child.QuickAdd,
			})
			if child.Visible {
				appendRows(child.Rows, 2)
			}
		}
	}

	out = append(out, boardLine{
		isSection: true,
		key:       completedKey,
		text:      "Completed",
		count:     len(m.view.Completed),
		expanded:  m.toggles.IsExpanded(completedKey),
	})
	if m.toggles.IsExpanded(completedKey) {
		appendRows(m.view.Completed, 1)
	}
	return out
}

func (m boardModel) currentLine() (boardLine, bool) {
	lines := m.lines()
	if m.selected < 0 || m.selected >= len(lines) {
		return boardLine{}, false
	}
	return lines[m.selected], true
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading…\n")
	} else {
		lines := m.lines()
		if len(lines) == 0 {
			b.WriteString(ui.Muted.Render("(empty)") + "\n")
		}
		sel := m.selected
		if sel >= len(lines) {
			sel = len(lines) - 1
		}
		for i, line := range lines {
			cursor := "  "
			if i == sel {
				cursor = "> "
			}
			b.WriteString(cursor + m.renderLine(line, i == sel) + "\n")
		}
	}

	if m.mode != modeBrowse {
		b.WriteString("\n" + m.inputPrompt() + m.input.View() + "\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	s := m.stats
	bar := progressBar(s.Progress, engine.PointsPerLevel, 30)
	head := fmt.Sprintf("%s Epic Task Quest | Level %d %s | %d pts | %d done",
		ui.IconTrophy, s.Level, bar, s.TotalPoints, s.Completed)
	if m.filter.WishlistOnly {
		head += " | " + ui.IconCart + " wishlist"
	}
	if m.filter.Query != "" {
		head += " | /" + m.filter.Query
	}
	return head
}

func (m boardModel) renderLine(line boardLine, selected bool) string {
	indent := strings.Repeat("  ", line.depth)
	if line.isSection {
		fold := "▸ "
		if line.expanded {
			fold = "▾ "
		}
		label := line.text
		if selected && m.style.For(line.text).EasterEgg != "" {
			label = m.style.For(line.text).EasterEgg
		}
		txt := fmt.Sprintf("%s%s%s (%d)", indent, fold, label, line.count)
		if selected {
			return ui.H2.Render(txt)
		}
		return ui.PanelTitle.Render(txt)
	}
	txt := fmt.Sprintf("%s%d · %s %s%s", indent, line.taskID, line.text,
		ui.Gold.Render(fmt.Sprintf("%dp", line.points)), ui.TaskIcons(line.wishlist, line.repeat))
	if selected {
		return txt
	}
	return txt
}

func (m boardModel) inputPrompt() string {
	switch m.mode {
	case modeAdd:
		return ui.IconPlus + " add: "
	case modeEdit:
		return "✎ edit: "
	case modeSearch:
		return "/ "
	default:
		return ""
	}
}

func (m boardModel) renderFooter() string {
	keys := "j/k move · enter fold · c done · w cart · a add · e edit · +/- points · d delete · / search · W wishlist · y yank · b/B badge · r refresh · q quit"
	return "\n" + ui.Dim.Render(keys) + "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
