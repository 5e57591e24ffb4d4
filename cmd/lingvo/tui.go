package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	conversation "github.com/lingvo-app/lingvo-core/core"
	"github.com/lingvo-app/lingvo-core/core/languages"
	"github.com/muesli/reflow/wordwrap"
)

const (
	slotA = "a"
	slotB = "b"
	// slotMic is the single capture slot of the remote-session view.
	slotMic = "mic"
)

// Messages delivered from controller callbacks through program.Send.
type (
	partialTranscriptMsg struct {
		slot       string
		transcript string
	}
	channelStateMsg struct {
		slot  string
		state conversation.ChannelState
	}
	messageMsg struct {
		message conversation.Message
	}
	noticeMsg struct {
		notice conversation.Notice
	}
	noticeClearedMsg struct{}
	peersChangedMsg  struct{}
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	speakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	inboundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	translStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Italic(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).Padding(0, 1)
	listeningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	processingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	idleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
)

type model struct {
	cfg         Config
	controller  *conversation.Controller
	sessionMode bool

	width, height int

	messages []conversation.Message
	partials map[string]string
	states   map[string]conversation.ChannelState
	notice   *conversation.Notice

	// slotLanguages holds the per-slot source language of the co-located view.
	slotLanguages map[string]string

	input textinput.Model
}

func newModel(cfg Config, controller *conversation.Controller, sessionMode bool) model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 500

	return model{
		cfg:         cfg,
		controller:  controller,
		sessionMode: sessionMode,
		partials:    map[string]string{},
		states:      map[string]conversation.ChannelState{},
		slotLanguages: map[string]string{
			slotA:   cfg.Language,
			slotB:   cfg.PeerLanguage,
			slotMic: cfg.Language,
		},
		input: input,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case partialTranscriptMsg:
		m.partials[msg.slot] = msg.transcript

	case channelStateMsg:
		m.states[msg.slot] = msg.state
		if msg.state != conversation.StateListening {
			delete(m.partials, msg.slot)
		}

	case messageMsg:
		m.messages = append(m.messages, msg.message)

	case noticeMsg:
		notice := msg.notice
		m.notice = &notice

	case noticeClearedMsg:
		m.notice = nil

	case peersChangedMsg:
		// Membership is read from the controller on render.
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				_ = m.controller.SendText(text)
			}
			m.input.Reset()
			m.input.Blur()
			return m, nil
		case "esc":
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		for slot := range m.states {
			m.controller.CancelCapture(slot)
		}
	case "/", "t":
		if m.sessionMode {
			m.input.Focus()
			return m, textinput.Blink
		}
	}

	if m.sessionMode {
		switch msg.String() {
		case " ":
			m.toggleCapture(slotMic, m.controller.Local().PreferredLanguage)
		case "l":
			next := languages.Next(m.controller.Local().PreferredLanguage)
			m.controller.SetPreferredLanguage(next.Code)
		}
		return m, nil
	}

	switch msg.String() {
	case "a":
		m.toggleCapture(slotA, m.slotLanguages[slotA])
	case "b":
		m.toggleCapture(slotB, m.slotLanguages[slotB])
	case "A":
		m.slotLanguages[slotA] = languages.Next(m.slotLanguages[slotA]).Code
	case "B":
		m.slotLanguages[slotB] = languages.Next(m.slotLanguages[slotB]).Code
	}
	return m, nil
}

// toggleCapture starts a cycle on the slot, or cancels it when it is already
// mid-cycle.
func (m model) toggleCapture(slot, languageCode string) {
	switch m.states[slot] {
	case conversation.StateListening, conversation.StateProcessing:
		m.controller.CancelCapture(slot)
	default:
		_ = m.controller.StartCapture(slot, languageCode)
	}
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n")
	if m.notice != nil {
		b.WriteString(noticeStyle.Render(m.notice.Message) + "\n")
	}
	b.WriteString(m.renderTranscript() + "\n")
	b.WriteString(m.renderChannels() + "\n")
	if m.sessionMode {
		b.WriteString(m.input.View() + "\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m model) renderHeader() string {
	if !m.sessionMode {
		return titleStyle.Render("lingvo") + subtleStyle.Render("  face to face")
	}

	var peers []string
	for _, p := range m.controller.Participants() {
		label := p.DisplayName
		if label == "" {
			label = p.ID
		}
		if language, ok := languages.Lookup(p.PreferredLanguage); ok {
			label += " " + language.Flag
		}
		peers = append(peers, label)
	}
	return titleStyle.Render("lingvo") +
		subtleStyle.Render(fmt.Sprintf("  session %s  ·  %s",
			m.cfg.SessionID, strings.Join(peers, ", ")))
}

func (m model) renderTranscript() string {
	height := m.height - 6
	if height < 3 {
		height = 3
	}
	wrapWidth := m.width - 2
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	var lines []string
	for _, message := range m.messages {
		style := speakerStyle
		if m.sessionMode && message.SenderID != m.controller.Local().ID {
			style = inboundStyle
		}
		header := style.Render(m.senderLabel(message)) +
			subtleStyle.Render("  "+message.Timestamp.Format("15:04"))
		lines = append(lines, header)
		lines = append(lines, strings.Split(
			wordwrap.String(textStyle.Render(message.Text), wrapWidth), "\n")...)
		if message.Translation != "" && message.Translation != message.Text {
			lines = append(lines, strings.Split(
				wordwrap.String(translStyle.Render(message.Translation), wrapWidth), "\n")...)
		}
		lines = append(lines, "")
	}

	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m model) senderLabel(message conversation.Message) string {
	if !m.sessionMode {
		label := "Speaker " + strings.ToUpper(message.SenderID)
		if language, ok := languages.Lookup(message.LanguageCode); ok {
			label += " " + language.Flag
		}
		return label
	}

	if message.SenderID == m.controller.Local().ID {
		return m.cfg.DisplayName
	}
	for _, p := range m.controller.Participants() {
		if p.ID == message.SenderID && p.DisplayName != "" {
			return p.DisplayName
		}
	}
	return message.SenderID
}

func (m model) renderChannels() string {
	slots := []string{slotMic}
	if !m.sessionMode {
		slots = []string{slotA, slotB}
	}

	var parts []string
	for _, slot := range slots {
		state := m.states[slot]
		if state == "" {
			state = conversation.StateIdle
		}

		language := m.slotLanguages[slot]
		if m.sessionMode {
			language = m.controller.Local().PreferredLanguage
		}
		label := strings.ToUpper(slot)
		if entry, ok := languages.Lookup(language); ok {
			label += " " + entry.Flag
		}

		var status string
		switch state {
		case conversation.StateListening:
			status = listeningStyle.Render("● listening")
			if partial := m.partials[slot]; partial != "" {
				status += subtleStyle.Render("  " + partial)
			}
		case conversation.StateProcessing:
			status = processingStyle.Render("… translating")
		case conversation.StateSpeaking:
			status = processingStyle.Render("▶ speaking")
		case conversation.StateError:
			status = noticeStyle.Render("error")
		default:
			status = idleStyle.Render("○ idle")
		}
		parts = append(parts, fmt.Sprintf("%s %s", label, status))
	}
	return strings.Join(parts, subtleStyle.Render("   |   "))
}

func (m model) renderHelp() string {
	if m.sessionMode {
		return helpStyle.Render("space talk · t type · l language · esc cancel · q quit")
	}
	return helpStyle.Render("a/b talk · A/B switch language · esc cancel · q quit")
}
