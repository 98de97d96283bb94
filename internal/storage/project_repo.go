package storage

import (
	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/model"
)

// ProjectRepo stores the single live project under a fixed key.
type ProjectRepo struct {
	db *DB
}

// NewProjectRepo creates a new project repository.
func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Get returns the stored project, or ErrProjectNotInitialized when none exists.
func (r *ProjectRepo) Get() (*model.Project, error) {
	project := &model.Project{}
	if err := r.db.Get(model.KeyProject, project); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, errors.ErrProjectNotInitialized
		}
		return nil, err
	}
	return project, nil
}

// Save replaces the stored project.
func (r *ProjectRepo) Save(project *model.Project) error {
	project.Key = model.KeyProject
	return r.db.Set(project)
}

// Exists reports whether a project has been set up.
func (r *ProjectRepo) Exists() (bool, error) {
	return r.db.Exists(model.KeyProject)
}

// Clear removes the project and all weekly reports.
func (r *ProjectRepo) Clear() error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(model.KeyProject)); err != nil {
			return err
		}
		return deletePrefix(txn, model.PrefixWeekly+":")
	})
}

// SaveWithUndo checkpoints the stored state and saves project in one transaction.
func (r *ProjectRepo) SaveWithUndo(project *model.Project, action model.UndoAction, description string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := checkpoint(txn, action, description); err != nil {
			return err
		}
		project.Key = model.KeyProject
		return setJSON(txn, project)
	})
}

// ClearWithUndo checkpoints the stored state, then removes the project and
// all weekly reports.
func (r *ProjectRepo) ClearWithUndo(description string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := checkpoint(txn, model.UndoActionClear, description); err != nil {
			return err
		}
		if err := txn.Delete([]byte(model.KeyProject)); err != nil {
			return err
		}
		return deletePrefix(txn, model.PrefixWeekly+":")
	})
}
