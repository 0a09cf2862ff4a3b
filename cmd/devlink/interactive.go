package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fbkclanna/devlink/internal/fsutil"
	"github.com/fbkclanna/devlink/internal/repourl"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

var errAborted = errors.New("user aborted")

// specifierModel prompts for an install specifier and shows how the
// current value would be resolved.
type specifierModel struct {
	input   textinput.Model
	errMsg  string
	done    bool
	aborted bool
}

func newSpecifierModel() specifierModel {
	ti := textinput.New()
	ti.Placeholder = "git@github.com:org/repo.git#branch"
	ti.Focus()
	return specifierModel{input: ti}
}

func (m specifierModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m specifierModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if err := validateSpecifier(m.input.Value()); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m specifierModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Repository URL, package name or local path") + "\n")
	b.WriteString(m.input.View() + "\n")
	switch {
	case m.errMsg != "":
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	case strings.TrimSpace(m.input.Value()) != "":
		b.WriteString(hintStyle.Render(describeSpecifier(m.input.Value())) + "\n")
	}
	return b.String()
}

// promptSpecifier runs the prompt on the terminal.
func promptSpecifier() (string, error) {
	result, err := tea.NewProgram(newSpecifierModel()).Run()
	if err != nil {
		return "", err
	}
	m := result.(specifierModel)
	if m.aborted {
		return "", errAborted
	}
	return strings.TrimSpace(m.input.Value()), nil
}

func validateSpecifier(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("a specifier is required")
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("specifier must not contain whitespace")
	}
	return nil
}

// describeSpecifier mirrors the install resolution order: local directory,
// repository URL, then registry package name.
func describeSpecifier(s string) string {
	s = strings.TrimSpace(s)
	if fsutil.IsDirectory(s) {
		return "local directory"
	}
	if ref, ok := repourl.Parse(s); ok {
		desc := "GitHub repository " + ref.Owner + "/" + ref.Name
		if ref.Branch != "" {
			desc += " at branch " + ref.Branch
		}
		return desc
	}
	return "package name, repository looked up in the registry"
}
