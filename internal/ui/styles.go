package ui

import "github.com/charmbracelet/lipgloss"

// 头像图标，索引 1..10 对应服务端分配的 avatarIndex
var avatarIcons = []string{"", "🦊", "🐼", "🐸", "🐙", "🦁", "🐧", "🦉", "🐯", "🐨", "🦄"}

// Lipgloss Styles
var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	letterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	timerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true)
	urgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	promptStyle  = lipgloss.NewStyle().MarginTop(1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	winnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	hostHintText = dimStyle.Render("回车开始游戏（房主）  ·  ESC 退出")
)

func avatarIcon(idx int) string {
	if idx >= 1 && idx < len(avatarIcons) {
		return avatarIcons[idx]
	}
	return "🙂"
}
