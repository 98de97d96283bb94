package model

import "time"

// UndoAction represents the type of change that can be undone.
type UndoAction string

const (
	UndoActionEdit   UndoAction = "edit"
	UndoActionDelete UndoAction = "delete"
	UndoActionImport UndoAction = "import"
	UndoActionClear  UndoAction = "clear"
)

// UndoState stores the project as it was before the last change.
// A nil Snapshot means no project existed.
type UndoState struct {
	Key         string         `json:"key"`
	Action      UndoAction     `json:"action"`
	Description string         `json:"description,omitempty"`
	Snapshot    *Project       `json:"snapshot,omitempty"`
	Reports     []WeeklyReport `json:"reports,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// SetKey sets the database key for this undo state.
func (u *UndoState) SetKey(key string) {
	u.Key = key
}

// GetKey returns the database key for this undo state.
func (u *UndoState) GetKey() string {
	return u.Key
}

// NewUndoState creates a new undo state for the given action.
func NewUndoState(action UndoAction, description string, snapshot *Project) *UndoState {
	return &UndoState{
		Key:         KeyUndo,
		Action:      action,
		Description: description,
		Snapshot:    snapshot.Clone(),
		CreatedAt:   time.Now(),
	}
}
