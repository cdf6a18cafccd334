package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/prefgraph/pkg/dominance"
)

var (
	tabActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tabStyle       = lipgloss.NewStyle().Foreground(colorDim)
	helpStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// stage is one page of the inspector.
type stage struct {
	title string
	about string
	body  string
}

// StageModel is the bubbletea model for paging through a decision.
type StageModel struct {
	Stages []stage
	Cursor int
}

// NewStageModel builds one page per pipeline stage of d, followed by the
// answer.
func NewStageModel(d *dominance.Decision) StageModel {
	w := d.Answer.Index
	var pages []stage
	for _, k := range d.Criteria {
		pages = append(pages, stage{
			title: fmt.Sprintf("C%d", k),
			about: fmt.Sprintf("Dominance matrix of criterion %d: 1 where the row alternative is preferred or equivalent to the column.", k),
			body:  matrixTable(d.Dominance[k], w),
		})
	}
	pages = append(pages,
		stage{"Relational", "Cell-wise minimum over all criteria: dominance every criterion agrees on.", matrixTable(d.Relational, w)},
		stage{"Strict", "Relational convolution minus its transpose, clipped at zero.", matrixTable(d.Strict, w)},
		stage{"Q1", "1 minus the strongest strict domination each alternative suffers.", vectorTable(d.Q1, w)},
		stage{"Additive", "Weighted sum of the dominance matrices.", matrixTable(d.Additive, w)},
		stage{"Q2 strict", "Additive convolution minus its transpose, clipped at zero.", matrixTable(d.Q2Strict, w)},
		stage{"Q2", "1 minus the strongest weighted strict domination.", vectorTable(d.Q2, w)},
		stage{"Result", "Element-wise minimum of Q1 and Q2.", vectorTable(d.Result, w)},
		stage{"Answer", "First alternative with the highest result.", answerView(d)},
	)
	return StageModel{Stages: pages}
}

func answerView(d *dominance.Decision) string {
	if !d.Answer.Found() {
		return StyleWarning.Render("No alternatives to choose from.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Alternative %s with result %s\n",
		StyleSuccess.Render(fmt.Sprint(d.Answer.Alternative())),
		StyleNumber.Render(formatValue(d.Answer.Value)))
	if d.Pareto() {
		b.WriteString(StyleDim.Render("Non-dominated under both schemes."))
	} else {
		b.WriteString(StyleDim.Render("No alternative is non-dominated under both schemes."))
	}
	return b.String()
}

func (m StageModel) Init() tea.Cmd {
	return nil
}

func (m StageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "tab", "n":
			if m.Cursor < len(m.Stages)-1 {
				m.Cursor++
			}
		case "left", "h", "shift+tab", "p":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.Stages) - 1
		}
	}
	return m, nil
}

func (m StageModel) View() string {
	if len(m.Stages) == 0 {
		return ""
	}
	var b strings.Builder

	tabs := make([]string, len(m.Stages))
	for i, s := range m.Stages {
		if i == m.Cursor {
			tabs[i] = tabActiveStyle.Render("[" + s.title + "]")
		} else {
			tabs[i] = tabStyle.Render(" " + s.title + " ")
		}
	}
	b.WriteString(strings.Join(tabs, ""))
	b.WriteString("\n\n")

	cur := m.Stages[m.Cursor]
	b.WriteString(StyleTitle.Render(cur.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(cur.about))
	b.WriteString("\n\n")
	b.WriteString(cur.body)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("←/→ stage  g/G first/last  q quit  [%d/%d]", m.Cursor+1, len(m.Stages))))
	b.WriteString("\n")

	return b.String()
}
