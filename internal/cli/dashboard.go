package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/northgate-labs/agenthq/internal/storage"
)

// Dashboard panel indices.
const (
	panelAgents = iota
	panelTasks
	panelBoard
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	agentRows   []agentRow
	taskCounts  map[string]int
	boardRows   []boardRow
	metricsData *metricsSnapshot

	// State.
	loading bool
	err     error
}

type agentRow struct {
	name   string
	role   string
	status string
	taskID string
}

type boardRow struct {
	itemType string
	author   string
	summary  string
}

type metricsSnapshot struct {
	agentsCreated    int
	tasksCreated     int
	messagesSent     int
	resultsDelivered int
	eventCount       int
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	agentRows  []agentRow
	taskCounts map[string]int
	boardRows  []boardRow
	metrics    *metricsSnapshot
	err        error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	statusRunning = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	statusIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusBlocked = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	statusMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelAgents,
		loading:     true,
		taskCounts:  make(map[string]int),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboardData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadDashboardData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.agentRows = msg.agentRows
		m.taskCounts = msg.taskCounts
		m.boardRows = msg.boardRows
		m.metricsData = msg.metrics
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" agenthq Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}
	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	agentsPanel := m.renderAgentsPanel()
	tasksPanel := m.renderTasksPanel()
	boardPanel := m.renderBoardPanel()

	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		colWidth := availableWidth / 3
		agentsPanel = m.applyPanelStyle(panelAgents, agentsPanel, colWidth-4)
		tasksPanel = m.applyPanelStyle(panelTasks, tasksPanel, colWidth-4)
		boardPanel = m.applyPanelStyle(panelBoard, boardPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, agentsPanel, tasksPanel, boardPanel)
	} else {
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		agentsPanel = m.applyPanelStyle(panelAgents, agentsPanel, panelWidth)
		tasksPanel = m.applyPanelStyle(panelTasks, tasksPanel, panelWidth)
		boardPanel = m.applyPanelStyle(panelBoard, boardPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, agentsPanel, tasksPanel, boardPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderAgentsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Agents"))
	b.WriteString("\n")

	if len(m.agentRows) == 0 {
		b.WriteString("  No agents found.")
		return b.String()
	}
	for _, row := range m.agentRows {
		label := fmt.Sprintf("  %-16s %-10s", row.name, row.status)
		if row.taskID != "" {
			label += " " + statusMuted.Render(row.taskID)
		}
		b.WriteString(styleForAgentStatus(row.status).Render(label))
		b.WriteString("\n")
	}
	return b.String()
}

func (m dashboardModel) renderTasksPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Tasks"))
	b.WriteString("\n")

	if len(m.taskCounts) == 0 {
		b.WriteString("  No tasks found.")
		return b.String()
	}

	// Display in lifecycle order.
	order := []string{"running", "pending", "blocked", "review", "completed", "failed"}
	total := 0
	for _, status := range order {
		count, ok := m.taskCounts[status]
		if !ok || count == 0 {
			continue
		}
		total += count
		label := fmt.Sprintf("  %-12s %d", status, count)
		b.WriteString(styleForTaskStatus(status).Render(label))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n  Total: %d", total))

	if m.metricsData != nil {
		md := m.metricsData
		b.WriteString("\n\n")
		b.WriteString(headerStyle.Render("Activity (7d)"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %-12s %d\n", "Events", md.eventCount))
		b.WriteString(fmt.Sprintf("  %-12s %d\n", "Messages", md.messagesSent))
		b.WriteString(fmt.Sprintf("  %-12s %d\n", "Results", md.resultsDelivered))
	}
	return b.String()
}

func (m dashboardModel) renderBoardPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Board"))
	b.WriteString("\n")

	if len(m.boardRows) == 0 {
		b.WriteString("  The board is empty.")
		return b.String()
	}
	for _, row := range m.boardRows {
		kind := statusMuted.Render(fmt.Sprintf("[%s]", row.itemType))
		b.WriteString(fmt.Sprintf("  %s %s: %s\n", kind, row.author, row.summary))
	}
	return b.String()
}

func styleForAgentStatus(status string) lipgloss.Style {
	switch status {
	case "running":
		return statusRunning
	case "idle":
		return statusIdle
	case "error", "offline":
		return statusMuted
	default:
		return lipgloss.NewStyle()
	}
}

func styleForTaskStatus(status string) lipgloss.Style {
	switch status {
	case "running":
		return statusRunning
	case "completed":
		return statusIdle
	case "failed", "blocked":
		return statusBlocked
	case "pending", "review":
		return statusMuted
	default:
		return lipgloss.NewStyle()
	}
}

func loadDashboardData() tea.Msg {
	result := dataLoadedMsg{
		taskCounts: make(map[string]int),
	}

	if Agents != nil {
		agents, err := Agents.List()
		if err != nil {
			result.err = fmt.Errorf("loading agents: %w", err)
			return result
		}
		for _, a := range agents {
			row := agentRow{name: a.Name, role: a.Role, status: string(a.Status)}
			if a.CurrentTaskID != nil {
				row.taskID = *a.CurrentTaskID
			}
			result.agentRows = append(result.agentRows, row)
		}
	}

	if Tasks != nil {
		tasks, err := Tasks.List(storage.TaskFilter{})
		if err != nil {
			result.err = fmt.Errorf("loading tasks: %w", err)
			return result
		}
		for _, t := range tasks {
			result.taskCounts[string(t.Status)]++
		}
	}

	if Board != nil {
		items, err := Board.ListAll()
		if err != nil {
			result.err = fmt.Errorf("loading board: %w", err)
			return result
		}
		const maxRows = 10
		for i, item := range items {
			if i >= maxRows {
				break
			}
			result.boardRows = append(result.boardRows, boardRow{
				itemType: string(item.Type),
				author:   item.Author,
				summary:  item.Summary,
			})
		}
	}

	if MetricsCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		metrics, err := MetricsCalc.Calculate(since)
		if err != nil {
			result.err = fmt.Errorf("loading metrics: %w", err)
			return result
		}
		result.metrics = &metricsSnapshot{
			agentsCreated:    metrics.AgentsCreated,
			tasksCreated:     metrics.TasksCreated,
			messagesSent:     metrics.MessagesSent,
			resultsDelivered: metrics.ResultsDelivered,
			eventCount:       metrics.EventCount,
		}
	}

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for agents, tasks, and the board",
	Long: `Launch an interactive terminal dashboard showing agent occupancy,
task status counts, recent board postings, and activity metrics.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Agents == nil {
			return fmt.Errorf("stores not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
