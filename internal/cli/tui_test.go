package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/prefgraph/pkg/dominance"
	"github.com/matzehuels/prefgraph/pkg/prefgraph"
)

func exampleDecision(t *testing.T) *dominance.Decision {
	t.Helper()
	d, err := dominance.Decide(dominance.Problem{
		Alternatives: 3,
		Relations: map[int][]prefgraph.Relation{
			1: {prefgraph.Prefer(1, 2), prefgraph.Prefer(2, 3)},
			2: {prefgraph.Prefer(2, 1), prefgraph.Equal(1, 3)},
		},
		Weights: map[int]float64{1: 0.5, 2: 0.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStageModelPages(t *testing.T) {
	m := NewStageModel(exampleDecision(t))

	// Two criteria, seven derived stages and the answer.
	if len(m.Stages) != 10 {
		t.Fatalf("got %d stages, want 10", len(m.Stages))
	}
	if m.Stages[0].title != "C1" || m.Stages[len(m.Stages)-1].title != "Answer" {
		t.Errorf("unexpected first/last stage: %q, %q", m.Stages[0].title, m.Stages[len(m.Stages)-1].title)
	}
	if !strings.Contains(m.Stages[len(m.Stages)-1].body, "1") {
		t.Errorf("answer page should name alternative 1: %q", m.Stages[len(m.Stages)-1].body)
	}
}

func TestStageModelNavigation(t *testing.T) {
	var model tea.Model = NewStageModel(exampleDecision(t))

	model, _ = model.Update(key("left"))
	if got := model.(StageModel).Cursor; got != 0 {
		t.Errorf("left at first page moved cursor to %d", got)
	}

	model, _ = model.Update(key("right"))
	model, _ = model.Update(key("l"))
	if got := model.(StageModel).Cursor; got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}

	model, _ = model.Update(key("G"))
	if got := model.(StageModel).Cursor; got != 9 {
		t.Errorf("cursor = %d, want 9", got)
	}
	model, _ = model.Update(key("right"))
	if got := model.(StageModel).Cursor; got != 9 {
		t.Errorf("right at last page moved cursor to %d", got)
	}

	model, _ = model.Update(key("g"))
	if got := model.(StageModel).Cursor; got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}

	if !strings.Contains(model.View(), "[1/10]") {
		t.Errorf("view missing position:\n%s", model.View())
	}

	_, cmd := model.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestStageModelNoAlternatives(t *testing.T) {
	m := NewStageModel(&dominance.Decision{Answer: dominance.NoAnswer})
	if !strings.Contains(m.Stages[len(m.Stages)-1].body, "No alternatives") {
		t.Errorf("unexpected answer page: %q", m.Stages[len(m.Stages)-1].body)
	}
}
