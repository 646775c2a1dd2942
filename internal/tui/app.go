package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/mmarks/auditdeck/internal/service"
	"github.com/mmarks/auditdeck/internal/tui/components"
	"github.com/mmarks/auditdeck/internal/tui/styles"
)

// pane identifies which part of the UI has keyboard focus
type pane int

const (
	paneCompanies pane = iota
	paneChat
)

const sidebarWidth = 36

// chatEntry is one line of the local chat transcript
type chatEntry struct {
	fromUser   bool
	text       string
	citations  []string
	confidence float64
}

// Model is the top-level bubbletea model
type Model struct {
	companySvc   *service.CompanyService
	auditSvc     *service.AuditService
	ownershipSvc *service.OwnershipService
	chatSvc      *service.ChatService
	logger       *slog.Logger

	keys         KeyMap
	pollInterval time.Duration
	showPercent  bool

	width  int
	height int
	frame  int
	focus  pane

	// Company list
	companies []domain.Company
	filtered  []domain.Company
	cursor    int
	filtering bool
	filter    textinput.Model

	selected *domain.Company

	// Audit state, re-derived from polling
	auditID       string
	auditProgress domain.Progress

	// Ownership state, re-derived from polling
	ownership      domain.Ownership
	ownershipWatch bool

	// Chat
	chatInput  textinput.Model
	transcript []chatEntry
	chatBusy   bool

	statusMsg   string
	statusIsErr bool
}

// NewModel creates the top-level TUI model
func NewModel(companySvc *service.CompanyService, auditSvc *service.AuditService, ownershipSvc *service.OwnershipService, chatSvc *service.ChatService, pollInterval time.Duration, showPercent bool, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter companies"

	chatInput := textinput.New()
	chatInput.Prompt = "> "
	chatInput.Placeholder = "ask the audit assistant"
	chatInput.CharLimit = 500

	return Model{
		companySvc:   companySvc,
		auditSvc:     auditSvc,
		ownershipSvc: ownershipSvc,
		chatSvc:      chatSvc,
		logger:       logger,
		keys:         DefaultKeyMap(),
		pollInterval: pollInterval,
		showPercent:  showPercent,
		filter:       filter,
		chatInput:    chatInput,
	}
}

// Init loads the company list and starts the animation tick
func (m Model) Init() tea.Cmd {
	return tea.Batch(LoadCompaniesCmd(m.companySvc, false), tickCmd())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.frame++
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case CompaniesLoadedMsg:
		m.companies = msg.Companies
		m.applyFilter()
		return m, nil

	case AuditStartedMsg:
		m.auditID = msg.AuditID
		m.auditProgress = domain.Progress{Status: domain.StatusRunning}
		m.setStatus(fmt.Sprintf("audit %s started", msg.AuditID), false)
		return m, tea.Batch(PollAuditCmd(m.auditSvc, msg.AuditID), clearStatusLater())

	case AuditProgressMsg:
		if msg.AuditID != m.auditID {
			return m, nil // Stale poll from a previous run
		}
		m.auditProgress = msg.Progress
		if msg.Progress.Status.IsTerminal() {
			return m, nil
		}
		return m, pollAuditLater(msg.AuditID, m.pollInterval)

	case PollMsg:
		if msg.AuditID != m.auditID {
			return m, nil
		}
		return m, PollAuditCmd(m.auditSvc, msg.AuditID)

	case OwnershipUpdatedMsg:
		m.ownership = msg.Ownership
		if !m.ownershipWatch || msg.Ownership.Status.IsTerminal() {
			m.ownershipWatch = false
			return m, nil
		}
		return m, pollOwnershipLater(msg.Ownership.CompanyID, m.pollInterval)

	case OwnershipPollMsg:
		if !m.ownershipWatch || m.selected == nil || m.selected.ID != msg.CompanyID {
			return m, nil
		}
		return m, DiscoverOwnershipCmd(m.ownershipSvc, msg.CompanyID)

	case ChatReplyMsg:
		m.chatBusy = false
		m.transcript = append(m.transcript, chatEntry{
			text:       msg.Reply.Message,
			citations:  msg.Reply.Citations,
			confidence: msg.Reply.Confidence,
		})
		return m, nil

	case ChatClearedMsg:
		m.transcript = nil
		m.setStatus("chat session cleared", false)
		return m, clearStatusLater()

	case ExportDoneMsg:
		m.setStatus("report written to "+msg.Path, false)
		return m, clearStatusLater()

	case ErrMsg:
		m.chatBusy = false
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		m.setStatus(msg.Error(), true)
		return m, clearStatusLater()

	case StatusMsg:
		m.setStatus(msg.Message, msg.IsError)
		return m, clearStatusLater()

	case ClearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

// handleKey routes key presses by focus
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter input captures everything while active
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filter.SetValue("")
			m.filter.Blur()
			m.applyFilter()
			return m, nil
		case "enter":
			m.filtering = false
			m.filter.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	if m.focus == paneChat {
		return m.handleChatKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		return m, LoadCompaniesCmd(m.companySvc, true)

	case msg.String() == "enter":
		return m.selectCompany()

	case key.Matches(msg, m.keys.StartAudit):
		if m.selected == nil {
			m.setStatus(domain.ErrNoCompanySelected.Error(), true)
			return m, clearStatusLater()
		}
		return m, StartAuditCmd(m.auditSvc, m.selected.ID)

	case key.Matches(msg, m.keys.Ownership):
		if m.selected == nil {
			m.setStatus(domain.ErrNoCompanySelected.Error(), true)
			return m, clearStatusLater()
		}
		m.ownershipWatch = true
		return m, DiscoverOwnershipCmd(m.ownershipSvc, m.selected.ID)

	case key.Matches(msg, m.keys.ExportPDF):
		if m.auditID == "" {
			return m, nil
		}
		return m, ExportCmd(m.auditSvc, m.auditID, service.ExportPDF)

	case key.Matches(msg, m.keys.ExportCSV):
		if m.auditID == "" {
			return m, nil
		}
		return m, ExportCmd(m.auditSvc, m.auditID, service.ExportCSV)

	case key.Matches(msg, m.keys.Chat):
		if m.selected == nil {
			m.setStatus(domain.ErrNoCompanySelected.Error(), true)
			return m, clearStatusLater()
		}
		m.focus = paneChat
		m.chatInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ClearChat):
		if m.selected == nil {
			return m, nil
		}
		return m, ClearChatCmd(m.chatSvc, m.selected.ID, m.auditID)
	}

	// Stop/resume keys belong to the ownership banner
	return m.handleOwnershipKey(msg)
}

// handleOwnershipKey delegates stop/resume to the banner component and
// applies the outcome: stop halts polling, resume restarts it. The shown
// status only changes when the next poll reports it, except for stop,
// where the pause is local and immediate.
func (m Model) handleOwnershipKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var stopped, resumed bool

	banner := m.ownershipBanner()
	banner.OnStop = func() { stopped = true }
	banner.OnResume = func() { resumed = true }
	banner, _ = banner.Update(msg)

	companyID := m.ownership.CompanyID
	if companyID == "" && m.selected != nil {
		companyID = m.selected.ID
	}

	switch {
	case stopped:
		m.ownershipWatch = false
		m.ownership.Status = domain.StatusPaused
		return m, nil
	case resumed:
		m.ownershipWatch = true
		return m, DiscoverOwnershipCmd(m.ownershipSvc, companyID)
	}
	return m, nil
}

// handleChatKey handles input while the chat pane has focus
func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = paneCompanies
		m.chatInput.Blur()
		return m, nil
	case "enter":
		text := m.chatInput.Value()
		if text == "" || m.chatBusy || m.selected == nil {
			return m, nil
		}
		m.chatInput.SetValue("")
		m.chatBusy = true
		m.transcript = append(m.transcript, chatEntry{fromUser: true, text: text})
		return m, SendChatCmd(m.chatSvc, text, m.selected.ID, m.auditID)
	default:
		var cmd tea.Cmd
		m.chatInput, cmd = m.chatInput.Update(msg)
		return m, cmd
	}
}

// selectCompany activates the company under the cursor and restores its
// cached audit and ownership snapshots.
func (m Model) selectCompany() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return m, nil
	}
	company := m.filtered[m.cursor]
	m.selected = &company

	m.auditID = ""
	m.auditProgress = domain.Progress{Status: domain.StatusIdle}
	m.ownership = domain.Ownership{Status: domain.StatusIdle}
	m.ownershipWatch = false
	m.transcript = nil

	var cmds []tea.Cmd
	if auditID, ok := m.auditSvc.LatestAuditID(company.ID); ok {
		m.auditID = auditID
		cmds = append(cmds, PollAuditCmd(m.auditSvc, auditID))
	}
	if cached, ok := m.ownershipSvc.Cached(company.ID); ok {
		m.ownership = *cached
	}

	return m, tea.Batch(cmds...)
}

// applyFilter narrows the visible companies to the filter query
func (m *Model) applyFilter() {
	query := m.filter.Value()
	if query == "" {
		m.filtered = m.companies
	} else {
		m.filtered = m.companySvc.Filter(query)
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsErr = isErr
}

// ownershipBanner builds the ownership banner from current state
func (m Model) ownershipBanner() components.OwnershipStatus {
	return components.OwnershipStatus{
		Status: m.ownership.Status,
		Bar: components.ProgressBar{
			Value:       m.ownership.Percent,
			ShowPercent: m.showPercent,
		},
		Frame: m.frame,
		Width: m.detailWidth(),
	}
}

// auditBanner builds the audit banner from current state
func (m Model) auditBanner() components.AuditStatus {
	return components.AuditStatus{
		Status: m.auditProgress.Status,
		Bar: components.ProgressBar{
			Value:       m.auditProgress.Percent,
			CurrentStep: m.auditProgress.CurrentStep,
			TotalSteps:  m.auditProgress.TotalSteps,
			StepName:    m.auditProgress.StepName,
			ShowPercent: m.showPercent,
		},
		Frame: m.frame,
		Width: m.detailWidth(),
	}
}

func (m Model) detailWidth() int {
	w := m.width - sidebarWidth - 2
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the application
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	sidebar := m.viewSidebar()
	detail := m.viewDetail()

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, detail)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.viewStatusBar())
}

// viewSidebar renders the company list pane
func (m Model) viewSidebar() string {
	var rows []string
	rows = append(rows, styles.TitleStyle.Render("Companies"))

	if m.filtering || m.filter.Value() != "" {
		rows = append(rows, m.filter.View())
	}

	if len(m.filtered) == 0 {
		rows = append(rows, styles.DimStyle.Render("no companies"))
	}

	maxRows := m.height - 8
	for i, company := range m.filtered {
		if i >= maxRows {
			rows = append(rows, styles.DimStyle.Render("…"))
			break
		}
		name := styles.Truncate(company.Name, sidebarWidth-6)
		if m.selected != nil && m.selected.ID == company.ID {
			name = "▸ " + name
		}
		if i == m.cursor {
			rows = append(rows, styles.SelectedItemStyle.Render(name))
		} else {
			rows = append(rows, styles.NormalItemStyle.Render(name))
		}
	}

	border := styles.InactiveBorder
	if m.focus == paneCompanies {
		border = styles.ActiveBorder
	}
	frameW, frameH := border.GetFrameSize()

	return border.
		Width(sidebarWidth - frameW).
		Height(m.height - 3 - frameH).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// viewDetail renders the selected company's audit, ownership, and chat
func (m Model) viewDetail() string {
	width := m.detailWidth()

	var rows []string
	if m.selected == nil {
		rows = append(rows,
			styles.SubtitleStyle.Render("Select a company to begin."),
			"",
			m.viewHelp(),
		)
	} else {
		header := styles.TitleStyle.Render(m.selected.Name)
		if m.selected.Jurisdiction != "" {
			header += styles.DimStyle.Render("  " + m.selected.Jurisdiction)
		}
		rows = append(rows, header)

		if audit := m.auditBanner().View(); audit != "" {
			rows = append(rows, audit)
		}
		if ownership := m.ownershipBanner().View(); ownership != "" {
			rows = append(rows, ownership)
			rows = append(rows, m.viewOwnershipSummary())
		}

		rows = append(rows, m.viewChat(width))
		rows = append(rows, m.viewHelp())
	}

	border := styles.InactiveBorder
	if m.focus == paneChat {
		border = styles.ActiveBorder
	}
	frameW, frameH := border.GetFrameSize()

	return border.
		Width(width - frameW).
		Height(m.height - 3 - frameH).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// viewOwnershipSummary renders entity/edge counts under the banner
func (m Model) viewOwnershipSummary() string {
	if len(m.ownership.Entities) == 0 {
		return ""
	}
	return styles.DimStyle.Render(fmt.Sprintf("%d entities, %d ownership links",
		len(m.ownership.Entities), len(m.ownership.Edges)))
}

// viewChat renders the transcript tail and the input line
func (m Model) viewChat(width int) string {
	wrap := lipgloss.NewStyle().Width(width - 4)

	var rows []string
	// Show only the most recent entries that plausibly fit
	start := 0
	if len(m.transcript) > 6 {
		start = len(m.transcript) - 6
	}
	for _, entry := range m.transcript[start:] {
		if entry.fromUser {
			rows = append(rows, wrap.Render(styles.AccentStyle.Render("you ")+entry.text))
			continue
		}
		rows = append(rows, wrap.Render(styles.SubtitleStyle.Render("assistant ")+entry.text))
		for _, cite := range entry.citations {
			rows = append(rows, styles.DimStyle.Render("  ↳ "+cite))
		}
		if entry.confidence > 0 {
			rows = append(rows, styles.DimStyle.Render(fmt.Sprintf("  confidence %.0f%%", entry.confidence*100)))
		}
	}

	if m.chatBusy {
		rows = append(rows, styles.DimStyle.Render(styles.SpinnerFrames[m.frame%len(styles.SpinnerFrames)]+" thinking…"))
	}
	if m.focus == paneChat {
		rows = append(rows, m.chatInput.View())
	}

	if len(rows) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// viewHelp renders the key hints line
func (m Model) viewHelp() string {
	pairs := [][2]string{
		{"enter", "select"}, {"a", "audit"}, {"o", "ownership"},
		{"c", "chat"}, {"e/E", "export"}, {"/", "filter"}, {"q", "quit"},
	}
	out := ""
	for i, p := range pairs {
		if i > 0 {
			out += styles.DimStyle.Render(" · ")
		}
		out += styles.HelpKeyStyle.Render(p[0]) + styles.HelpDescStyle.Render(" "+p[1])
	}
	return out
}

// viewStatusBar renders the bottom status line
func (m Model) viewStatusBar() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusIsErr {
		return styles.ErrorStyle.Render("✗ " + m.statusMsg)
	}
	return styles.SuccessStyle.Render("✓ " + m.statusMsg)
}
