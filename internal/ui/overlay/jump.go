package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/ui/styles"
)

// homeRow defines the home row keys for jump labels
var homeRow = []rune{'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';'}

// alphabet for double-char labels when we need more than 10
var alphabet = []rune("abcdefghijklmnopqrstuvwxyz")

const jumpVisibleRows = 15

// GenerateLabels generates jump labels for the given count. Up to ten
// targets get single home row keys; beyond that every label is two
// letters so no label is a prefix of another.
func GenerateLabels(count int) []string {
	if count <= 0 {
		return []string{}
	}

	labels := make([]string, 0, count)

	if count <= len(homeRow) {
		for i := 0; i < count; i++ {
			labels = append(labels, string(homeRow[i]))
		}
		return labels
	}

	// 26*26 = 676 combinations
	for first := 0; first < len(alphabet) && len(labels) < count; first++ {
		for second := 0; second < len(alphabet) && len(labels) < count; second++ {
			labels = append(labels, string(alphabet[first])+string(alphabet[second]))
		}
	}

	return labels
}

// JumpSelectedMsg is sent when a jump target is selected
type JumpSelectedMsg struct {
	TaskID string
}

type jumpTarget struct {
	label string
	task  domain.Task
}

// JumpMode lists tasks with short labels; typing a label selects the task
type JumpMode struct {
	targets []jumpTarget
	input   string
	maxLen  int
	styles  *Styles
}

// NewJumpMode labels tasks in the order given
func NewJumpMode(tasks []domain.Task) *JumpMode {
	labels := GenerateLabels(len(tasks))
	targets := make([]jumpTarget, 0, len(labels))

	maxLen := 1
	for i, label := range labels {
		targets = append(targets, jumpTarget{label: label, task: tasks[i]})
		maxLen = max(maxLen, len(label))
	}

	return &JumpMode{
		targets: targets,
		maxLen:  maxLen,
		styles:  New(),
	}
}

// Init initializes the jump mode
func (j *JumpMode) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (j *JumpMode) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return j, nil
	}

	switch key := keyMsg.String(); key {
	case "esc":
		return j, closeCmd

	case "backspace":
		if len(j.input) > 0 {
			j.input = j.input[:len(j.input)-1]
		}

	default:
		if len(key) != 1 || !isJumpKey(rune(key[0])) {
			return j, nil
		}
		j.input += key

		if t, ok := j.lookup(j.input); ok {
			return j, emit(JumpSelectedMsg{TaskID: t.task.ID})
		}

		// No label can match anymore
		if len(j.input) >= j.maxLen || !j.hasPrefix(j.input) {
			j.input = ""
		}
	}

	return j, nil
}

// View renders the jump mode overlay
func (j *JumpMode) View() string {
	var b strings.Builder

	if j.input == "" {
		b.WriteString(j.styles.MenuItemDisabled.Render("Type a label to jump..."))
	} else {
		inputStyle := lipgloss.NewStyle().
			Foreground(styles.Yellow).
			Bold(true).
			Background(styles.Surface1).
			Padding(0, 1)
		b.WriteString("Input: ")
		b.WriteString(inputStyle.Render(j.input))
	}
	b.WriteString("\n\n")

	if len(j.targets) == 0 {
		b.WriteString(j.styles.MenuItemDisabled.Render("No tasks"))
		b.WriteString("\n")
	}

	shown := 0
	for _, t := range j.targets {
		if j.input != "" && !strings.HasPrefix(t.label, j.input) {
			continue
		}
		if shown == jumpVisibleRows {
			break
		}
		shown++
		b.WriteString(RenderLabel(t.label) + " " + j.styles.MenuItem.Render(truncate(t.task.Title, 36)) +
			" " + j.styles.MenuItemDisabled.Render(t.task.Status.Label()))
		b.WriteString("\n")
	}
	if rest := j.matching() - shown; rest > 0 {
		b.WriteString(j.styles.MenuItemDisabled.Render(fmt.Sprintf("... +%d more", rest)))
		b.WriteString("\n")
	}

	b.WriteString(j.styles.Footer.Render("Type label • Backspace: delete • Esc: cancel"))

	return b.String()
}

// Title returns the overlay title
func (j *JumpMode) Title() string {
	return "Jump"
}

// Size returns the overlay dimensions
func (j *JumpMode) Size() (width, height int) {
	return 60, min(len(j.targets), jumpVisibleRows) + 9
}

// GetLabel returns the label for a task id
func (j *JumpMode) GetLabel(taskID string) string {
	for _, t := range j.targets {
		if t.task.ID == taskID {
			return t.label
		}
	}
	return ""
}

func (j *JumpMode) lookup(label string) (jumpTarget, bool) {
	for _, t := range j.targets {
		if t.label == label {
			return t, true
		}
	}
	return jumpTarget{}, false
}

func (j *JumpMode) hasPrefix(input string) bool {
	for _, t := range j.targets {
		if strings.HasPrefix(t.label, input) {
			return true
		}
	}
	return false
}

func (j *JumpMode) matching() int {
	n := 0
	for _, t := range j.targets {
		if strings.HasPrefix(t.label, j.input) {
			n++
		}
	}
	return n
}

// isJumpKey checks if a rune is valid for jump labels (home row or alphabet)
func isJumpKey(r rune) bool {
	return r == ';' || (r >= 'a' && r <= 'z')
}

// RenderLabel renders a jump label with styling
func RenderLabel(label string) string {
	style := lipgloss.NewStyle().
		Foreground(styles.Base).
		Background(styles.Yellow).
		Bold(true).
		Padding(0, 1)
	return style.Render(label)
}
