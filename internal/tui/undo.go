package tui

import "xarxa/internal/catalog"

type ActionType int

const (
	ActionMoveNode ActionType = iota
	ActionSetLayout
)

func (t ActionType) String() string {
	switch t {
	case ActionMoveNode:
		return "move"
	case ActionSetLayout:
		return "layout"
	}
	return "action"
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type LayoutData struct {
	Layout catalog.Layout
}

// history holds the layout edits of one session.
type history struct {
	undoStack []Action
	redoStack []Action
}

func (h *history) record(actionType ActionType, data, inverse interface{}) {
	h.undoStack = append(h.undoStack, Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	})
	h.redoStack = h.redoStack[:0]
}

func (h *history) popUndo() (Action, bool) {
	if len(h.undoStack) == 0 {
		return Action{}, false
	}
	last := len(h.undoStack) - 1
	a := h.undoStack[last]
	h.undoStack = h.undoStack[:last]
	h.redoStack = append(h.redoStack, a)
	return a, true
}

func (h *history) popRedo() (Action, bool) {
	if len(h.redoStack) == 0 {
		return Action{}, false
	}
	last := len(h.redoStack) - 1
	a := h.redoStack[last]
	h.redoStack = h.redoStack[:last]
	h.undoStack = append(h.undoStack, a)
	return a, true
}

func (m *Model) undo() {
	action, ok := m.history.popUndo()
	if !ok {
		m.successMessage = "nothing to undo"
		return
	}
	m.apply(action.Inverse)
	m.successMessage = "undid " + action.Type.String()
}

func (m *Model) redo() {
	action, ok := m.history.popRedo()
	if !ok {
		m.successMessage = "nothing to redo"
		return
	}
	m.apply(action.Data)
	m.successMessage = "redid " + action.Type.String()
}

func (m *Model) apply(change interface{}) {
	var err error
	switch data := change.(type) {
	case LayoutData:
		err = m.eng.SetLayout(data.Layout)
	}
	if err != nil {
		m.errorMessage = err.Error()
	}
}
