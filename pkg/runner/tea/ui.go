package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/document"
	"tableflip.dev/tick/pkg/glyph"
	"tableflip.dev/tick/pkg/runner/tea/internal/detail"
	"tableflip.dev/tick/pkg/runner/tea/internal/theme"
	"tableflip.dev/tick/pkg/task"
)

// Model states and actions
type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeCommand
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionSubtask
	actionEdit
	actionDeadline
	actionEstimate
	actionMove
)

var prompts = map[action]string{
	actionAdd:      "Add: ",
	actionSubtask:  "Subtask: ",
	actionEdit:     "Edit: ",
	actionDeadline: "Deadline (M/D, empty clears): ",
	actionEstimate: "Estimate (empty clears): ",
	actionMove:     "Move to section: ",
}

const ddWindow = 600 * time.Millisecond

// section item for left list
type sectionItem struct {
	name  string
	all   bool
	count int
}

func (s sectionItem) Title() string {
	name := s.name
	switch {
	case s.all:
		name = "All"
	case name == "":
		name = "(top)"
	}
	return fmt.Sprintf("%s (%d)", name, s.count)
}
func (s sectionItem) Description() string { return "" }
func (s sectionItem) FilterValue() string { return s.name }

// task item for right list
type taskItem struct {
	t     task.Task
	today time.Time
}

func (it taskItem) Title() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", it.t.Indent))
	b.WriteString(glyph.For(it.t, it.today).String())
	b.WriteString(" ")
	b.WriteString(it.t.Text)
	if it.t.Estimate != "" {
		fmt.Fprintf(&b, " %s %s", glyph.Estimate, it.t.Estimate)
	}
	if !it.t.Deadline.IsZero() {
		fmt.Fprintf(&b, " %s %s", glyph.Deadline, it.t.Deadline)
	}
	if it.t.Difficulty != task.DefaultDifficulty {
		fmt.Fprintf(&b, " %s", strings.Repeat(glyph.Difficulty.String(), it.t.Difficulty))
	}
	if it.t.IsRoutine() {
		fmt.Fprintf(&b, " %s %s", glyph.Routine, it.t.RoutineType)
	}
	return b.String()
}
func (it taskItem) Description() string { return "" }
func (it taskItem) FilterValue() string { return it.t.Text }

// Model contains UI state
type Model struct {
	session *app.Session
	ctx     context.Context
	now     func() time.Time
	mode    mode
	action  action

	focus int // 0: sections, 1: tasks

	secList  list.Model
	taskList list.Model

	input textinput.Model

	status string
	failed bool

	doc      document.Document
	updates  <-chan document.Document
	rollover bool // run the daily rollover before each load

	awaitingDD bool
	lastDTime  time.Time

	termWidth  int
	termHeight int

	theme    theme.Theme
	focusDel list.DefaultDelegate
	blurDel  list.DefaultDelegate
}

// New creates a new UI model backed by the session.
func New(session *app.Session) Model {
	dFocus := list.NewDefaultDelegate()
	dBlur := list.NewDefaultDelegate()
	// Unfocused list should not visually highlight the selected item
	dBlur.Styles.SelectedTitle = dBlur.Styles.NormalTitle
	dBlur.Styles.SelectedDesc = dBlur.Styles.NormalDesc
	dFocus.ShowDescription = false
	dBlur.ShowDescription = false
	dFocus.SetSpacing(0)
	dBlur.SetSpacing(0)

	l1 := list.New([]list.Item{}, dBlur, 24, 20)
	l1.Title = "Sections"
	l1.SetShowHelp(false)
	l1.SetShowStatusBar(false)
	l1.SetFilteringEnabled(false)

	l2 := list.New([]list.Item{}, dFocus, 80, 20)
	l2.Title = "Tasks"
	l2.SetShowHelp(false)
	l2.SetShowStatusBar(false)
	l2.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")

	m := Model{
		session:  session,
		ctx:      context.Background(),
		now:      time.Now,
		mode:     modeNormal,
		action:   actionNone,
		focus:    1,
		secList:  l1,
		taskList: l2,
		input:    ti,
		status:   "NORMAL: h/l panes, j/k move, o add, a subtask, i edit, x toggle, dd delete, ? help",
		theme:    theme.Default(),
		focusDel: dFocus,
		blurDel:  dBlur,
	}
	m.updateFocusHeaders()
	return m
}

// Init loads the document and starts listening for outside edits.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForChange())
}

// messages
type errMsg struct{ err error }
type documentMsg struct{ doc document.Document }
type changedMsg struct{ doc document.Document }

func (m *Model) load() tea.Cmd {
	session, ctx, now, rollover := m.session, m.ctx, m.now, m.rollover
	return func() tea.Msg {
		if session == nil {
			return documentMsg{}
		}
		if rollover {
			if _, err := session.Rollover(ctx, now()); err != nil {
				return errMsg{err}
			}
		}
		d, err := session.Document(ctx)
		if err != nil {
			return errMsg{err}
		}
		return documentMsg{d}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	updates := m.updates
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		d, ok := <-updates
		if !ok {
			return nil
		}
		return changedMsg{d}
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.fail(msg.err)
	case documentMsg:
		m.setDocument(msg.doc)
	case changedMsg:
		m.setDocument(msg.doc)
		m.setStatus("Reloaded after outside edit")
		cmds = append(cmds, m.waitForChange())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
			}
		case modeInsert:
			switch msg.String() {
			case "enter":
				m.submit(strings.TrimSpace(m.input.Value()))
				m.mode = modeNormal
				m.action = actionNone
				m.input.Reset()
				m.input.Blur()
			case "esc":
				m.mode = modeNormal
				m.action = actionNone
				m.input.Reset()
				m.input.Blur()
				m.setStatus("Cancelled")
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeCommand:
			switch msg.String() {
			case "enter":
				if cmd := m.command(strings.TrimSpace(m.input.Value())); cmd != nil {
					cmds = append(cmds, cmd)
				}
				if m.mode == modeCommand {
					m.mode = modeNormal
				}
				m.input.Reset()
				m.input.Blur()
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.setStatus("Command cancelled")
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeNormal:
			m.normal(msg.String(), &cmds)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) normal(key string, cmds *[]tea.Cmd) {
	if key != "d" {
		m.awaitingDD = false
	}
	switch key {
	case ":":
		m.startInput(modeCommand, actionNone, "command", "", cmds)

	// pane focus
	case "h", "left":
		m.focus = 0
		m.updateFocusHeaders()
	case "l", "right", "tab":
		m.focus = 1
		m.updateFocusHeaders()

	// movement
	case "j", "down":
		if m.focus == 0 {
			m.secList.CursorDown()
			m.fillTasks("")
		} else {
			m.taskList.CursorDown()
		}
	case "k", "up":
		if m.focus == 0 {
			m.secList.CursorUp()
			m.fillTasks("")
		} else {
			m.taskList.CursorUp()
		}
	case "g":
		if m.focus == 0 {
			m.secList.Select(0)
			m.fillTasks("")
		} else {
			m.taskList.Select(0)
		}
	case "G":
		if m.focus == 0 {
			m.secList.Select(len(m.secList.Items()) - 1)
			m.fillTasks("")
		} else {
			m.taskList.Select(len(m.taskList.Items()) - 1)
		}

	case "o", "O":
		m.startInput(modeInsert, actionAdd, "New task", "", cmds)
	case "a":
		if m.currentTask() != nil {
			m.startInput(modeInsert, actionSubtask, "New subtask", "", cmds)
		}
	case "i":
		if it := m.currentTask(); it != nil {
			m.startInput(modeInsert, actionEdit, "Edit text", it.t.Text, cmds)
		}
	case "@":
		if it := m.currentTask(); it != nil {
			m.startInput(modeInsert, actionDeadline, "M/D", it.t.Deadline.String(), cmds)
		}
	case "e":
		if it := m.currentTask(); it != nil {
			m.startInput(modeInsert, actionEstimate, "30m, 2h, 1d", it.t.Estimate, cmds)
		}
	case ">":
		if m.currentTask() != nil {
			m.startInput(modeInsert, actionMove, "Section", "", cmds)
		}

	case "x", "space":
		if it := m.currentTask(); it != nil {
			m.apply(document.Toggle{ID: it.t.ID}, it.t.ID, "Toggled")
		}
	case "s":
		if it := m.currentTask(); it != nil {
			m.apply(document.CycleDifficulty{ID: it.t.ID}, it.t.ID, "Difficulty changed")
		}
	case "d":
		if it := m.currentTask(); it != nil {
			if m.awaitingDD && m.now().Sub(m.lastDTime) < ddWindow {
				m.awaitingDD = false
				m.apply(document.Delete{ID: it.t.ID}, "", "Deleted")
			} else {
				m.awaitingDD = true
				m.lastDTime = m.now()
				m.setStatus("Press d again to delete")
			}
		}
	case "J":
		m.shift(1)
	case "K":
		m.shift(-1)

	case "?":
		m.mode = modeHelp
	case "r":
		*cmds = append(*cmds, m.load())
	case "q":
		m.setStatus("Use :q or :exit to quit")
	}
}

func (m *Model) startInput(md mode, a action, placeholder, value string, cmds *[]tea.Cmd) {
	m.mode = md
	m.action = a
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
	if md == modeCommand {
		m.setStatus("COMMAND: q, finish, rollover")
	}
}

// submit finishes an insert-mode action with the typed value.
func (m *Model) submit(input string) {
	switch m.action {
	case actionAdd:
		if input == "" {
			m.setStatus("Nothing added")
			return
		}
		section := ""
		if s := m.currentSection(); s != nil && !s.all {
			section = s.name
		}
		m.add(document.AddTask{Text: input, Section: section})
		return
	}

	it := m.currentTask()
	if it == nil {
		return
	}
	id := it.t.ID
	switch m.action {
	case actionSubtask:
		if input == "" {
			m.setStatus("Nothing added")
			return
		}
		m.add(document.InsertSubtask{ParentID: id, Text: input})
	case actionEdit:
		if input == "" {
			m.setStatus("Edit needs text")
			return
		}
		m.apply(document.EditText{ID: id, Text: input}, "", "Edited")
	case actionDeadline:
		d, err := task.ParseDeadline(input)
		if err != nil {
			m.fail(err)
			return
		}
		m.apply(document.SetDeadline{ID: id, Deadline: d}, id, "Deadline set")
	case actionEstimate:
		m.apply(document.SetEstimate{ID: id, Estimate: input}, id, "Estimate set")
	case actionMove:
		if input == "" {
			m.setStatus("Move needs a section")
			return
		}
		m.apply(document.MoveToSection{ID: id, Section: input}, id, "Moved to "+input)
	}
}

func (m *Model) command(input string) tea.Cmd {
	switch input {
	case "q", "quit", "exit":
		return tea.Quit
	case "":
		return nil
	case "finish":
		if m.session == nil {
			return nil
		}
		res, err := m.session.FinishDay(m.ctx, m.now())
		if err != nil {
			m.fail(err)
			return nil
		}
		m.reload("")
		m.setStatus(fmt.Sprintf("Archived %d, %d open tasks carried over", len(res.Archived), res.Remaining))
	case "rollover":
		if m.session == nil {
			return nil
		}
		res, err := m.session.Rollover(m.ctx, m.now())
		if err != nil {
			m.fail(err)
			return nil
		}
		m.reload("")
		if res.Skipped {
			m.setStatus("Routines already rolled over today")
		} else {
			m.setStatus(fmt.Sprintf("Added %d routine tasks", len(res.Added)))
		}
	default:
		m.setStatus(fmt.Sprintf("Unknown command: %s", input))
	}
	return nil
}

// shift moves the selected task past its next or previous sibling in the
// same section.
func (m *Model) shift(dir int) {
	it := m.currentTask()
	if it == nil {
		return
	}
	tasks := m.doc.Tasks()
	at := -1
	for i, t := range tasks {
		if t.ID == it.t.ID {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}
	cur := tasks[at]
	for i := at + dir; i >= 0 && i < len(tasks); i += dir {
		t := tasks[i]
		if t.Section != cur.Section || t.Indent < cur.Indent {
			break
		}
		if t.Indent > cur.Indent {
			continue
		}
		place := document.After
		if dir < 0 {
			place = document.Before
		}
		m.apply(document.Move{DragID: cur.ID, DropID: t.ID, Place: place}, cur.ID, "Moved")
		return
	}
	m.setStatus("Nothing to move past")
}

func (m *Model) apply(mu document.Mutation, selectID, status string) {
	if m.session == nil {
		return
	}
	changed, err := m.session.Apply(m.ctx, mu)
	if err != nil {
		m.fail(err)
		return
	}
	if !changed {
		m.setStatus("No change")
		return
	}
	m.reload(selectID)
	m.setStatus(status)
}

func (m *Model) add(mu document.Mutation) {
	if m.session == nil {
		return
	}
	added, err := m.session.ApplyAdded(m.ctx, mu)
	if err != nil {
		m.fail(err)
		return
	}
	selectID := ""
	if len(added) > 0 {
		selectID = added[0].ID
	}
	m.reload(selectID)
	m.setStatus("Added")
}

func (m *Model) reload(selectID string) {
	d, err := m.session.Document(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.doc = d
	m.fillSections()
	m.fillTasks(selectID)
}

func (m *Model) setDocument(d document.Document) {
	keep := ""
	if it := m.currentTask(); it != nil {
		keep = it.t.ID
	}
	m.doc = d
	m.fillSections()
	m.fillTasks(keep)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) fail(err error) {
	m.status = "ERR: " + err.Error()
	m.failed = true
}

// fillSections rebuilds the section pane and keeps the selection on the same
// name when it still exists.
func (m *Model) fillSections() {
	prev := m.currentSection()
	tasks := m.doc.Tasks()

	counts := map[string]int{}
	for _, t := range tasks {
		counts[t.Section]++
	}
	items := []list.Item{sectionItem{all: true, count: len(tasks)}}
	if counts[""] > 0 {
		items = append(items, sectionItem{count: counts[""]})
	}
	seen := map[string]bool{}
	for _, name := range m.doc.Sections() {
		if seen[name] {
			continue
		}
		seen[name] = true
		items = append(items, sectionItem{name: name, count: counts[name]})
	}
	m.secList.SetItems(items)

	sel := 0
	if prev != nil {
		for i, it := range items {
			s := it.(sectionItem)
			if s.all == prev.all && s.name == prev.name {
				sel = i
				break
			}
		}
	}
	m.secList.Select(sel)
}

// fillTasks shows the tasks of the selected section, selecting id when given.
func (m *Model) fillTasks(id string) {
	sec := m.currentSection()
	today := m.now()
	var items []list.Item
	sel := -1
	for _, t := range m.doc.Tasks() {
		if sec != nil && !sec.all && t.Section != sec.name {
			continue
		}
		if t.ID == id {
			sel = len(items)
		}
		items = append(items, taskItem{t: t, today: today})
	}
	prev := m.taskList.Index()
	m.taskList.SetItems(items)
	switch {
	case len(items) == 0:
	case sel >= 0:
		m.taskList.Select(sel)
	case prev >= len(items):
		m.taskList.Select(len(items) - 1)
	case prev >= 0:
		m.taskList.Select(prev)
	}
}

func (m *Model) currentSection() *sectionItem {
	if len(m.secList.Items()) == 0 {
		return nil
	}
	sel := m.secList.SelectedItem()
	if sel == nil {
		return nil
	}
	it, _ := sel.(sectionItem)
	return &it
}

func (m *Model) currentTask() *taskItem {
	if len(m.taskList.Items()) == 0 {
		return nil
	}
	sel := m.taskList.SelectedItem()
	if sel == nil {
		return nil
	}
	it, _ := sel.(taskItem)
	return &it
}

// View renders two lists and optional input/help overlays
func (m Model) View() string {
	left := m.secList.View()
	right := m.taskList.View()
	gap := lipgloss.NewStyle().Padding(0, 1).Render

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, gap(" "), right)

	switch m.mode {
	case modeNormal:
		if it := m.currentTask(); it != nil && m.focus == 1 {
			body += "\n" + detail.View(m.theme, it.t, m.now())
		}
	case modeInsert:
		body += "\n\n" + prompts[m.action] + m.input.View()
	case modeCommand:
		body += "\n\n:" + m.input.View()
	case modeHelp:
		help := "Keys: h/l switch panes, j/k move, g/G top/bottom, o add, a subtask, i edit, x toggle, " +
			"dd delete, s difficulty, @ deadline, e estimate, > move to section, J/K reorder, r reload, " +
			":finish, :rollover, :q quit"
		width := m.termWidth
		if width <= 0 {
			width = 80
		}
		body += "\n\n" + m.theme.Footer.Help.Render(wordwrap.String(help, width))
	}

	modeStr := map[mode]string{modeNormal: "NORMAL", modeInsert: "INSERT", modeCommand: "CMD", modeHelp: "HELP"}[m.mode]
	statusStyle := m.theme.Footer.Status
	if m.failed {
		statusStyle = m.theme.Footer.Error
	}
	status := m.theme.Footer.Mode.Render("["+modeStr+"]") + " " + statusStyle.Render(m.status)

	return body + "\n\n" + status
}

// applySizes recalculates list sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := m.termWidth / 4
	if left < 20 {
		left = 20
	}
	if left > 32 {
		left = 32
	}
	right := m.termWidth - left - 4
	if right < 20 {
		right = 20
	}
	// Leave room for the detail panel and footer
	height := m.termHeight - 12
	if height < 5 {
		height = 5
	}
	m.secList.SetSize(left, height)
	m.taskList.SetSize(right, height)
}

// updateFocusHeaders updates pane titles to reflect which pane is focused.
func (m *Model) updateFocusHeaders() {
	// Fixed-width prefix keeps the layout still when focus changes.
	const on = "» "
	const off = "  "
	if m.focus == 0 {
		m.secList.Title = on + "Sections"
		m.taskList.Title = off + "Tasks"
		m.secList.SetDelegate(m.focusDel)
		m.taskList.SetDelegate(m.blurDel)
	} else {
		m.secList.Title = off + "Sections"
		m.taskList.Title = on + "Tasks"
		m.secList.SetDelegate(m.blurDel)
		m.taskList.SetDelegate(m.focusDel)
	}
}
