package test

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
)

// maxMessages bounds a simulation so a model that keeps scheduling frames
// cannot hang a test.
const maxMessages = 10_000

type updater interface {
	Update(tea.Msg) tea.Cmd
}

// Trace records what a simulated program delivered to its model.
type Trace struct {
	Messages []tea.Msg
	Quit     bool
}

// Count returns how many delivered messages have the type of sample.
func (t Trace) Count(sample tea.Msg) int {
	want := reflect.TypeOf(sample)
	n := 0
	for _, msg := range t.Messages {
		if reflect.TypeOf(msg) == want {
			n++
		}
	}
	return n
}

// Simulate runs first and every command the model returns, in order, until
// nothing is left or a tea.QuitMsg comes out, which ends the program like
// tea.Program would. Tick commands really sleep, so keep the frame rate high.
func Simulate(model updater, first tea.Cmd) Trace {
	var trace Trace
	queue := []tea.Cmd{first}
	for len(queue) > 0 && len(trace.Messages) < maxMessages {
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}
		switch msg := cmd().(type) {
		case nil:
		case tea.QuitMsg:
			trace.Quit = true
			return trace
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			if cmds, ok := sequence(msg); ok {
				queue = append(cmds, queue...)
				continue
			}
			trace.Messages = append(trace.Messages, msg)
			if next := model.Update(msg); next != nil {
				queue = append(queue, next)
			}
		}
	}
	return trace
}

// Type presses each rune of keys in order.
func Type(keys string) tea.Cmd {
	var cmds []tea.Cmd
	for _, r := range keys {
		cmds = append(cmds, Press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}))
	}
	return tea.Sequence(cmds...)
}

func Press(key tea.KeyMsg) tea.Cmd {
	return func() tea.Msg { return key }
}

var cmdType = reflect.TypeOf((tea.Cmd)(nil))

// sequence unpacks the unexported message tea.Sequence produces.
func sequence(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || !v.Type().Elem().AssignableTo(cmdType) {
		return nil, false
	}
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i] = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds, true
}
