package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/filmfusion/internal/tui/styles"
)

const formWidth = 40

// FormKind selects which account form is shown
type FormKind int

const (
	FormLogin FormKind = iota
	FormSignup
)

// FormField describes one input of a form
type FormField struct {
	Label    string
	Secret   bool
	CharLim  int
	Required bool
}

func formFields(kind FormKind) []FormField {
	email := FormField{Label: "Email", CharLim: 254, Required: true}
	password := FormField{Label: "Password", Secret: true, CharLim: 128, Required: true}
	if kind == FormSignup {
		return []FormField{{Label: "Username", CharLim: 64, Required: true}, email, password}
	}
	return []FormField{email, password}
}

// FormResult is what the form reports after a key press
type FormResult int

const (
	FormPending FormResult = iota
	FormSubmitted
	FormCancelled
)

// FormModal is the login/signup modal
type FormModal struct {
	visible bool
	kind    FormKind
	fields  []FormField
	inputs  []textinput.Model
	focus   int
	err     string
	busy    bool
	width   int
	height  int
}

// NewFormModal creates a hidden form modal
func NewFormModal() FormModal {
	return FormModal{}
}

// Show opens an empty form of the given kind
func (m *FormModal) Show(kind FormKind) {
	m.visible = true
	m.kind = kind
	m.fields = formFields(kind)
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = f.CharLim
		ti.Width = formWidth - 6
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		ti.Placeholder = strings.ToLower(f.Label)
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[i] = ti
	}
	m.focus = 0
	m.err = ""
	m.busy = false
	m.inputs[0].Focus()
}

// Hide dismisses the modal and forgets what was typed
func (m *FormModal) Hide() {
	m.visible = false
	m.busy = false
	m.err = ""
	m.inputs = nil
}

// IsVisible returns whether the modal is shown
func (m FormModal) IsVisible() bool {
	return m.visible
}

// Kind returns which form is shown
func (m FormModal) Kind() FormKind {
	return m.kind
}

// Values returns the field values in display order
func (m FormModal) Values() []string {
	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = in.Value()
	}
	return values
}

// Missing reports whether a required field is blank
func (m FormModal) Missing() bool {
	for i, f := range m.fields {
		if f.Required && strings.TrimSpace(m.inputs[i].Value()) == "" {
			return true
		}
	}
	return false
}

// SetError shows an inline error and re-enables the form
func (m *FormModal) SetError(msg string) {
	m.err = msg
	m.busy = false
}

// SetBusy disables input while a request is in flight
func (m *FormModal) SetBusy(busy bool) {
	m.busy = busy
	if busy {
		m.err = ""
	}
}

// Busy reports whether a request is in flight
func (m FormModal) Busy() bool {
	return m.busy
}

// SetSize sets the terminal size used to center the modal
func (m *FormModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles a message while the form is visible
func (m FormModal) Update(msg tea.Msg) (FormModal, tea.Cmd, FormResult) {
	if !m.visible {
		return m, nil, FormPending
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, formKeys.Cancel):
			m.Hide()
			return m, nil, FormCancelled
		case m.busy:
			return m, nil, FormPending
		case key.Matches(keyMsg, formKeys.Submit):
			if m.focus < len(m.inputs)-1 {
				return m, m.setFocus(m.focus + 1), FormPending
			}
			return m, nil, FormSubmitted
		case key.Matches(keyMsg, formKeys.Next):
			return m, m.setFocus((m.focus + 1) % len(m.inputs)), FormPending
		case key.Matches(keyMsg, formKeys.Prev):
			return m, m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs)), FormPending
		}
	}

	if m.busy {
		return m, nil, FormPending
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd, FormPending
}

func (m *FormModal) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// View renders the form centered in the terminal
func (m FormModal) View() string {
	if !m.visible {
		return ""
	}

	title := "Log In"
	submit := "Log in"
	if m.kind == FormSignup {
		title = "Sign Up"
		submit = "Create account"
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(title))
	b.WriteString("\n")

	for i, f := range m.fields {
		label := styles.DimStyle
		if i == m.focus {
			label = styles.AccentStyle
		}
		b.WriteString(label.Render(f.Label))
		b.WriteString("\n")
		box := styles.SearchStyle
		if i == m.focus {
			box = styles.SearchFocusedStyle
		}
		b.WriteString(box.Width(formWidth - 4).Render(m.inputs[i].View()))
		b.WriteString("\n")
	}

	switch {
	case m.busy:
		b.WriteString(styles.DimStyle.Render("Please wait..."))
	case m.err != "":
		for _, line := range styles.Wrap(m.err, formWidth-4) {
			b.WriteString(styles.ErrorStyle.Render(line))
			b.WriteString("\n")
		}
	default:
		b.WriteString(styles.HelpKeyStyle.Render("enter"))
		b.WriteString(styles.HelpDescStyle.Render(" " + strings.ToLower(submit) + "  "))
		b.WriteString(styles.HelpKeyStyle.Render("esc"))
		b.WriteString(styles.HelpDescStyle.Render(" cancel"))
	}

	modal := styles.ModalStyle.Width(formWidth).Render(strings.TrimRight(b.String(), "\n"))
	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
