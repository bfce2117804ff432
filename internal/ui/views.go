package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// --- 视图渲染 ---

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	switch m.phase {
	case PhaseConnecting:
		content = m.connectingView()
	case PhaseMenu:
		content = m.menuView()
	case PhaseCreateName, PhaseJoinName, PhaseJoinCode:
		content = m.formView()
	case PhaseLobby:
		content = m.lobbyView()
	case PhaseRound:
		content = m.roundView()
	case PhaseScoring:
		content = m.scoringView()
	case PhaseInterlude:
		content = m.interludeView()
	case PhaseGameOver:
		content = m.gameOverView()
	}

	return docStyle.Render(content)
}

func (m *Model) connectingView() string {
	s := "🔌 正在连接服务器..."
	if m.error != "" {
		s += "\n\n" + errorStyle.Render(m.error)
	}
	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
}

func (m *Model) menuView() string {
	var sb strings.Builder

	title := titleStyle("🔤 字母竞速")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	menu := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		"请选择:",
		"",
		"  1. 创建房间",
		"  2. 加入房间",
	))
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, menu))
	sb.WriteString("\n\n")

	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.input.View()))
	m.appendError(&sb)

	return sb.String()
}

func (m *Model) formView() string {
	var sb strings.Builder

	var prompt string
	switch m.phase {
	case PhaseCreateName:
		prompt = "创建房间 · 取个昵称"
	case PhaseJoinName:
		prompt = "加入房间 · 取个昵称"
	case PhaseJoinCode:
		prompt = "输入房间号"
	}

	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle(prompt)))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.input.View()))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, dimStyle.Render("ESC 返回")))
	m.appendError(&sb)

	return sb.String()
}

func (m *Model) lobbyView() string {
	var sb strings.Builder

	title := titleStyle(fmt.Sprintf("🏠 房间 %s", m.gameCode))
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.rosterBox()))
	sb.WriteString("\n\n")

	info := fmt.Sprintf("%d 轮 · 类别: %s", m.maxRounds, strings.Join(m.categories, " / "))
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, dimStyle.Render(info)))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hostHintText))
	m.appendError(&sb)

	return sb.String()
}

func (m *Model) roundView() string {
	var sb strings.Builder

	header := fmt.Sprintf("第 %d/%d 轮", m.currentRound, m.maxRounds)
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle(header)))
	sb.WriteString("\n\n")

	letter := letterStyle.Render(fmt.Sprintf("字母: %s", m.currentLetter))
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, letter))
	sb.WriteString("    ")
	sb.WriteString(m.timerBadge())
	sb.WriteString("\n\n")

	// 已填答案 + 当前输入中的类别
	var form strings.Builder
	for i, cat := range m.categories {
		switch {
		case i < m.answerIdx || m.submitted:
			answer := m.answers[i]
			if answer == "" {
				answer = dimStyle.Render("（空）")
			}
			form.WriteString(fmt.Sprintf("  %s: %s\n", cat, answer))
		case i == m.answerIdx:
			form.WriteString(fmt.Sprintf("▸ %s: %s\n", cat, m.input.View()))
		default:
			form.WriteString(dimStyle.Render(fmt.Sprintf("  %s:\n", cat)))
		}
	}
	sb.WriteString(boxStyle.Render(form.String()))
	sb.WriteString("\n")

	if m.submitted {
		sb.WriteString(promptStyle.Render("✅ 已提交，等待其他玩家..."))
	} else if m.isHost {
		sb.WriteString(promptStyle.Render(dimStyle.Render("Ctrl+T 提前结束本轮")))
	}
	m.appendError(&sb)

	return sb.String()
}

func (m *Model) scoringView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle("📝 评分时间"))
	sb.WriteString("\n\n")

	if m.scoreTarget != nil {
		sb.WriteString(fmt.Sprintf("为 %s %s 的答案打分（字母 %s）:\n\n",
			avatarIcon(m.scoreTarget.AvatarIndex), m.scoreTarget.Name, m.currentLetter))

		var list strings.Builder
		for i, cat := range m.categories {
			answer := ""
			if i < len(m.targetResponses) {
				answer = m.targetResponses[i]
			}
			if answer == "" {
				answer = dimStyle.Render("（空）")
			}
			list.WriteString(fmt.Sprintf("%s: %s\n", cat, answer))
		}
		sb.WriteString(boxStyle.Render(list.String()))
		sb.WriteString("\n\n")
	}

	if m.scored {
		sb.WriteString("✅ 已评分，等待其他玩家...")
	} else {
		sb.WriteString(fmt.Sprintf("总分 (0-%d): %s", len(m.categories)*10, m.input.View()))
	}
	m.appendError(&sb)

	return sb.String()
}

func (m *Model) interludeView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle("⏸ 本轮结束"))
	sb.WriteString("\n\n")
	sb.WriteString(m.rosterBox())
	sb.WriteString("\n\n")

	if m.readySent {
		sb.WriteString("✅ 已准备，等待其他玩家...")
	} else {
		sb.WriteString("回车准备进入下一轮")
	}
	m.appendError(&sb)

	return sb.String()
}

func (m *Model) gameOverView() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle("🏆 最终结算")))
	sb.WriteString("\n\n")

	var list strings.Builder
	for i, fs := range m.finalScores {
		line := fmt.Sprintf("%d. %s %-12s %4d 分", i+1, avatarIcon(fs.AvatarID), fs.Name, fs.Score)
		if i == 0 {
			line = winnerStyle.Render(line)
		}
		list.WriteString(line + "\n")
	}
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(list.String())))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		dimStyle.Render("r + 回车 再来一局  ·  回车返回房间  ·  ESC 退出房间")))
	m.appendError(&sb)

	return sb.String()
}

// rosterBox 渲染玩家名单
func (m *Model) rosterBox() string {
	var list strings.Builder
	list.WriteString(fmt.Sprintf("玩家 (%d/10):\n\n", len(m.users)))
	for _, u := range m.users {
		marker := " "
		if u.ID == m.playerID {
			marker = "▸"
		}
		list.WriteString(fmt.Sprintf("%s %s %s\n", marker, avatarIcon(u.AvatarIndex), u.Name))
	}
	return boxStyle.Render(list.String())
}

// timerBadge 渲染倒计时，剩 10 秒内标红
func (m *Model) timerBadge() string {
	remaining := 60 - m.timerValue
	if remaining < 0 {
		remaining = 0
	}
	badge := fmt.Sprintf("⏱ %02d", remaining)
	if remaining <= 10 {
		return urgentStyle.Render(badge)
	}
	return timerStyle.Render(badge)
}

func (m *Model) appendError(sb *strings.Builder) {
	if m.error != "" {
		sb.WriteString("\n\n")
		sb.WriteString(errorStyle.Render(m.error))
	}
}
