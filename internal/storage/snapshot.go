package storage

import (
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/validate"
)

// SnapshotVersion is the version written into export files.
const SnapshotVersion = 1

// Snapshot is the export/import file format: the whole persisted state
// wrapped in a versioned envelope.
type Snapshot struct {
	State   SnapshotState `json:"state"`
	Version int           `json:"version"`
}

// SnapshotState is the persisted state carried by a Snapshot.
type SnapshotState struct {
	Project *model.Project       `json:"project"`
	Reports []model.WeeklyReport `json:"reports"`
}

// Export dumps the stored project and weekly reports. A missing project is
// exported as null.
func Export(db *DB) ([]byte, error) {
	snap := Snapshot{
		State:   SnapshotState{Reports: []model.WeeklyReport{}},
		Version: SnapshotVersion,
	}

	err := db.View(func(txn *badger.Txn) error {
		project := &model.Project{}
		switch err := getJSON(txn, model.KeyProject, project); {
		case err == nil:
			snap.State.Project = project
		case !IsErrKeyNotFound(err):
			return err
		}

		reports, err := scanPrefix(txn, model.PrefixWeekly+":", func() *model.WeeklyReport {
			return &model.WeeklyReport{}
		})
		if err != nil {
			return err
		}
		sortReports(reports)
		for _, r := range reports {
			snap.State.Reports = append(snap.State.Reports, *r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return json.Marshal(snap)
}

// ParseSnapshot checks that data is well-formed JSON in the snapshot shape.
// The contents are not validated beyond that.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		uerr := errors.NewUserErrorFrom(errors.ErrInvalidImport, "", "")
		uerr.Reason = err.Error()
		return nil, uerr
	}
	return &snap, nil
}

// Import overwrites the stored project and reports with the snapshot in data.
// The previous state is kept for undo. Everything happens in one transaction.
func Import(db *DB, data []byte) (*Snapshot, error) {
	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(txn *badger.Txn) error {
		if err := checkpoint(txn, model.UndoActionImport, "import"); err != nil {
			return err
		}
		if err := txn.Delete([]byte(model.KeyProject)); err != nil {
			return err
		}
		if err := deletePrefix(txn, model.PrefixWeekly+":"); err != nil {
			return err
		}
		return writeState(txn, snap.State.Project, snap.State.Reports)
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ExportFilename returns the default export file name for the given time.
func ExportFilename(project *model.Project, now time.Time) string {
	name := ""
	if project != nil {
		name = project.Name
	}
	return fmt.Sprintf("%s_progress_%s.json", validate.SafeFilename(name, "crewboard"), now.Format("20060102_1504"))
}
