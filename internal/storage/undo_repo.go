package storage

import (
	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/model"
)

// UndoRepo keeps the state from before the last destructive change.
// Only one level of undo is kept.
type UndoRepo struct {
	db *DB
}

// NewUndoRepo creates a new undo repository.
func NewUndoRepo(db *DB) *UndoRepo {
	return &UndoRepo{db: db}
}

// Get retrieves the current undo state, or nil when there is none.
func (r *UndoRepo) Get() (*model.UndoState, error) {
	state := &model.UndoState{}
	if err := r.db.Get(model.KeyUndo, state); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return state, nil
}

// Set saves the undo state.
func (r *UndoRepo) Set(state *model.UndoState) error {
	state.Key = model.KeyUndo
	return r.db.Set(state)
}

// Clear removes the undo state.
func (r *UndoRepo) Clear() error {
	return r.db.Delete(model.KeyUndo)
}

// Checkpoint records the current project and reports before a change of the
// given kind. A missing project is recorded as a nil snapshot.
func (r *UndoRepo) Checkpoint(action model.UndoAction, description string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return checkpoint(txn, action, description)
	})
}

// Restore puts the saved state back and clears it. It returns the restored
// state so callers can describe what was undone.
func (r *UndoRepo) Restore() (*model.UndoState, error) {
	var state *model.UndoState
	err := r.db.Update(func(txn *badger.Txn) error {
		state = &model.UndoState{}
		if err := getJSON(txn, model.KeyUndo, state); err != nil {
			if IsErrKeyNotFound(err) {
				return errors.ErrNothingToUndo
			}
			return err
		}

		if err := txn.Delete([]byte(model.KeyProject)); err != nil {
			return err
		}
		if err := deletePrefix(txn, model.PrefixWeekly+":"); err != nil {
			return err
		}
		if err := writeState(txn, state.Snapshot, state.Reports); err != nil {
			return err
		}
		return txn.Delete([]byte(model.KeyUndo))
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func checkpoint(txn *badger.Txn, action model.UndoAction, description string) error {
	var snapshot *model.Project
	project := &model.Project{}
	switch err := getJSON(txn, model.KeyProject, project); {
	case err == nil:
		snapshot = project
	case !IsErrKeyNotFound(err):
		return err
	}

	reports, err := scanPrefix(txn, model.PrefixWeekly+":", func() *model.WeeklyReport {
		return &model.WeeklyReport{}
	})
	if err != nil {
		return err
	}

	state := model.NewUndoState(action, description, snapshot)
	for _, rep := range reports {
		state.Reports = append(state.Reports, *rep)
	}
	return setJSON(txn, state)
}

// writeState stores a project and its reports inside txn.
func writeState(txn *badger.Txn, project *model.Project, reports []model.WeeklyReport) error {
	if project != nil {
		project.Key = model.KeyProject
		if err := setJSON(txn, project); err != nil {
			return err
		}
	}
	for i := range reports {
		rep := &reports[i]
		if rep.ID == "" {
			rep.ID = model.NewID()
		}
		rep.Key = model.GenerateWeeklyKey(rep.ID)
		if err := setJSON(txn, rep); err != nil {
			return err
		}
	}
	return nil
}
