package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/report"
)

type ReportModel struct {
	CommonModel
	svc *report.Service

	rangeIdx int
	report   *report.Report
	byClient table.Model
	loading  bool
	err      error
}

func NewReportModel(svc *report.Service) ReportModel {
	return ReportModel{
		svc: svc,
		byClient: newTable([]table.Column{
			{Title: "Client", Width: 28},
			{Title: "Invoices", Width: 10},
			{Title: "Billed", Width: 14},
		}),
		loading: true,
	}
}

func (m ReportModel) Title() string { return "Reports" }

func (m ReportModel) ShortHelp() string {
	return "Esc: back | ←/→: range | r: refresh"
}

func (m ReportModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report
		m.refreshTable()

		return m, nil

	case RemoteEventMsg:
		return m, m.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "left", "h":
			m.rangeIdx = (m.rangeIdx - 1 + len(report.Ranges)) % len(report.Ranges)
			m.loading = true

			return m, m.loadCmd()
		case "right", "l":
			m.rangeIdx = (m.rangeIdx + 1) % len(report.Ranges)
			m.loading = true

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.byClient, cmd = m.byClient.Update(msg)

	return m, cmd
}

func (m *ReportModel) refreshTable() {
	if m.report == nil {
		m.byClient.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(m.report.ByClient))
	for _, cr := range m.report.ByClient {
		rows = append(rows, table.Row{cr.ClientName, fmt.Sprint(cr.InvoiceCount), cr.TotalBilled.String()})
	}

	m.byClient.SetRows(rows)
}

func (m ReportModel) View() string {
	ranges := make([]string, len(report.Ranges))
	for i, r := range report.Ranges {
		ranges[i] = string(r)
		if i == m.rangeIdx {
			ranges[i] = activeStyle("[" + string(r) + "]")
		}
	}

	header := lipgloss.NewStyle().PaddingBottom(1).Render("Range: " + strings.Join(ranges, "  "))

	if m.loading {
		return lipgloss.NewStyle().Padding(1).Render(header + "\nLoading report...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(header + "\n" + errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		panel("Summary", summaryText(m.report.Summary)),
		panel("Aging", agingText(m.report.Aging)),
	)

	content := lipgloss.JoinHorizontal(lipgloss.Top, boxed(m.byClient.View()), right)

	return lipgloss.NewStyle().Padding(1).Render(header + "\n" + content)
}

func summaryText(s report.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Invoices:    %d\n", s.InvoiceCount)
	fmt.Fprintf(&b, "Revenue:     %s\n", s.TotalRevenue)
	fmt.Fprintf(&b, "Collected:   %s\n", s.TotalCollected)
	fmt.Fprintf(&b, "Outstanding: %s\n", s.Outstanding)

	for _, st := range invoice.Statuses {
		if n := s.StatusCounts[st]; n > 0 {
			fmt.Fprintf(&b, "  %-15s %d\n", st, n)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func agingText(a report.AgingBuckets) string {
	return fmt.Sprintf("Current: %s\n1-30:    %s\n31-60:   %s\n61-90:   %s\n90+:     %s\nTotal:   %s (%d invoices)",
		a.Current, a.Days30, a.Days60, a.Days90, a.Over90, a.Total(), a.Invoices)
}

// Messages

type reportMsg struct {
	report *report.Report
	err    error
}

func (m ReportModel) loadCmd() tea.Cmd {
	rng := report.Ranges[m.rangeIdx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := m.svc.Build(ctx, rng)

		return reportMsg{report: r, err: err}
	}
}
