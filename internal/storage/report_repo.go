package storage

import (
	"sort"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/model"
)

// ReportRepo provides operations for weekly reports.
type ReportRepo struct {
	db *DB
}

// NewReportRepo creates a new weekly report repository.
func NewReportRepo(db *DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// Create stores a new report.
func (r *ReportRepo) Create(report *model.WeeklyReport) error {
	if report.ID == "" {
		report.ID = model.NewID()
	}
	report.Key = model.GenerateWeeklyKey(report.ID)
	return r.db.Set(report)
}

// Get retrieves a report by ID.
func (r *ReportRepo) Get(id string) (*model.WeeklyReport, error) {
	report := &model.WeeklyReport{}
	if err := r.db.Get(model.GenerateWeeklyKey(id), report); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, errors.NewUserErrorFrom(errors.ErrReportNotFound, "id", id)
		}
		return nil, err
	}
	return report, nil
}

// Update replaces an existing report.
func (r *ReportRepo) Update(report *model.WeeklyReport) error {
	if _, err := r.Get(report.ID); err != nil {
		return err
	}
	report.Key = model.GenerateWeeklyKey(report.ID)
	return r.db.Set(report)
}

// Delete removes a report by ID.
func (r *ReportRepo) Delete(id string) error {
	if _, err := r.Get(id); err != nil {
		return err
	}
	return r.db.Delete(model.GenerateWeeklyKey(id))
}

// List returns all reports, oldest first.
func (r *ReportRepo) List() ([]*model.WeeklyReport, error) {
	reports, err := GetAllByPrefix(r.db, model.PrefixWeekly+":", func() *model.WeeklyReport {
		return &model.WeeklyReport{}
	})
	if err != nil {
		return nil, err
	}
	sortReports(reports)
	return reports, nil
}

func sortReports(reports []*model.WeeklyReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Date.Before(reports[j].Date)
	})
}
