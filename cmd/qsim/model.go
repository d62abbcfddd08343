package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qsim"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusView focus = iota
	focusEditor
)

// Model represents the TUI application state: a QASM editor on the
// left, live simulator panes on the right.
type Model struct {
	qasmEditor textarea.Model
	circuit    qsim.Circuit
	state      *qsim.StateVector
	tally      *qsim.Tally
	focus      focus
	width      int
	height     int
	shots      int
	seed       int64
	statusMsg  string
	parseErr   string
}

func initialModel(source string, shots int, seed int64) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(44)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.SetValue(source)

	m := Model{
		qasmEditor: ta,
		focus:      focusView,
		shots:      shots,
		seed:       seed,
	}
	m.resimulate()
	return m
}

// resimulate reparses the editor contents and refreshes the state pane.
func (m *Model) resimulate() {
	m.parseErr = ""
	var c qsim.Circuit
	if err := c.ParseQASM(m.qasmEditor.Value()); err != nil {
		m.parseErr = err.Error()
		return
	}
	state, err := c.Simulate(-1)
	if err != nil {
		m.parseErr = err.Error()
		return
	}
	m.circuit = c
	m.state = state
}

// runShots executes the current circuit and refreshes the tally pane.
func (m *Model) runShots() {
	m.resimulate()
	if m.parseErr != "" {
		return
	}
	tally, err := m.circuit.RunShots(m.shots, m.seed)
	if err != nil {
		m.parseErr = err.Error()
		return
	}
	m.tally = tally
	m.statusMsg = fmt.Sprintf("Ran %d shots", m.shots)
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		editorW := max(msg.Width/2-6, 24)
		m.qasmEditor.SetWidth(editorW)
		m.qasmEditor.SetHeight(max(msg.Height-8, 6))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusView:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab", "i":
				m.focus = focusEditor
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.resimulate()
			case "ctrl+m":
				m.runShots()
			case "ctrl+s":
				if err := os.WriteFile("circuit.qasm", []byte(m.qasmEditor.Value()), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			}

		case focusEditor:
			switch key {
			case "tab", "esc":
				m.focus = focusView
				m.qasmEditor.Blur()
				m.resimulate()
			case "ctrl+r":
				m.resimulate()
			case "ctrl+m":
				m.runShots()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// ──────────────────────────── View ────────────────────────────

func (m Model) View() string {
	editor := editorStyle.Render(
		titleStyle.Render("QASM") + "\n" + m.qasmEditor.View())

	var right strings.Builder
	if m.parseErr != "" {
		right.WriteString(errorStyle.Render("parse error: " + m.parseErr))
		right.WriteByte('\n')
	} else if m.state != nil {
		right.WriteString(renderState(m.state))
		right.WriteByte('\n')
		right.WriteString(renderQubitProbs(m.state))
	}
	if m.tally != nil {
		right.WriteByte('\n')
		right.WriteString(m.tally.Render())
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top, editor, stateStyle.Render(right.String()))

	controls := "tab: editor  ctrl+r: simulate  ctrl+m: run shots  ctrl+s: save  q: quit"
	if m.statusMsg != "" {
		controls += "   " + titleStyle.Render(m.statusMsg)
	}

	return panes + "\n" + controlsStyle.Render(controls)
}
