package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wayfarerhq/wayfarer/agent"
)

const agentSendTimeout = 30 * time.Second

// chatModel is the conversation panel talking to the tour guide agent.
type chatModel struct {
	common *commonModel
	client *agent.Client

	input    textinput.Model
	viewport viewport.Model
	lines    []string
	waiting  bool
}

func newChatModel(common *commonModel, client *agent.Client) chatModel {
	ti := textinput.New()
	ti.Prompt = chatUserStyle.Render("you ")
	ti.Placeholder = "ask the guide…"
	ti.CharLimit = 500

	return chatModel{
		common:   common,
		client:   client,
		input:    ti,
		viewport: viewport.New(0, 0),
	}
}

func (m *chatModel) setSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height - 4
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.input.Width = width - 8
}

func (m *chatModel) focus() tea.Cmd {
	return m.input.Focus()
}

func (m *chatModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting || m.client == nil {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.appendLine(chatUserStyle.Render("you:") + " " + text)
			return m, sendToAgent(m.client, m.common.cfg.ChatSender, text)
		}

	case agentReplyMsg:
		m.waiting = false
		if len(msg.replies) == 0 {
			m.appendLine(chatNoticeStyle.Render("The guide had nothing to say."))
		}
		for _, text := range msg.replies {
			m.appendLine(chatAgentStyle.Render("guide:") + " " + text)
		}
		return m, nil

	case agentErrMsg:
		m.waiting = false
		m.appendLine(chatNoticeStyle.Render("Could not reach the guide: " + msg.err.Error()))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m chatModel) view() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Guide") + "\n")
	b.WriteString(m.viewport.View() + "\n")
	if m.waiting {
		b.WriteString("  " + subtleStyle.Render("waiting for the guide…") + "\n")
	} else {
		b.WriteString("  " + m.input.View() + "\n")
	}
	b.WriteString("  " + subtleStyle.Render("esc: back"))
	return b.String()
}

func sendToAgent(client *agent.Client, sender, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), agentSendTimeout)
		defer cancel()

		replies, err := client.Send(ctx, sender, text)
		if err != nil {
			return agentErrMsg{err}
		}
		texts := make([]string, 0, len(replies))
		for _, r := range replies {
			texts = append(texts, r.Text)
		}
		return agentReplyMsg{replies: texts}
	}
}
