package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabBar())
	b.WriteByte('\n')
	b.WriteString(m.renderContent())
	b.WriteByte('\n')
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m *Model) renderTab(tab tabCell) string {
	label := formatTabLabel(tab.label, m.tabsCfg.LabelMax, m.tabsCfg.LabelSuffix)
	if tab.active {
		return m.styles.activeTab.Render(label)
	}
	return m.styles.inactiveTab.Render(label)
}

func (m *Model) renderTabBar() string {
	parts := make([]string, 0, len(m.tabs))
	for _, tab := range m.tabs {
		parts = append(parts, m.renderTab(tab))
	}
	line := strings.Join(parts, tabGap)
	if m.width > 0 {
		if pad := m.width - lipgloss.Width(line); pad > 0 {
			line += m.styles.bar.Render(strings.Repeat(" ", pad))
		}
	}
	return line
}

func (m *Model) renderContent() string {
	rows := m.height - 2
	if rows < 1 {
		rows = 1
	}
	var text string
	if m.content != nil {
		text = m.content.Text()
	}
	lines := strings.Split(text, "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows && m.height > 0 {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	if m.prompt.active {
		return m.styles.prompt.Render("open: ") + m.prompt.input
	}
	if m.statusErr {
		return m.styles.statusErr.Render(m.status)
	}
	if m.status != "" {
		return m.styles.status.Render(m.status)
	}
	return m.styles.status.Render("ctrl+n new  ctrl+o open  tab next  ctrl+q quit")
}
