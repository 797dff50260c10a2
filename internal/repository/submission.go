package repository

import (
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/submission"
	"gorm.io/gorm"
)

type SubmissionRepo interface {
	Create(s *submission.Submission) error
	HasSubmissions(formID uint) (bool, error)
	ExistsForSubmitter(formID, submitterID uint) (bool, error)
	ListByForm(formID uint) ([]submission.Submission, error)
	Count(formID uint) (int64, error)
	Distribution(formID uint) ([]submission.DistributionEntry, error)
	WithTx(tx *gorm.DB) SubmissionRepo
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *DBSubmissionRepo {
	return &DBSubmissionRepo{
		db: db,
	}
}

// Create inserts the submission and its answers. A dedup key collision is
// reported as a duplicate submission.
func (r *DBSubmissionRepo) Create(s *submission.Submission) error {
	if err := r.db.Create(s).Error; err != nil {
		if isUniqueViolation(err) {
			return form.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *DBSubmissionRepo) HasSubmissions(formID uint) (bool, error) {
	var ids []uint
	err := r.db.Model(&submission.Submission{}).
		Where("form_id = ?", formID).
		Limit(1).
		Pluck("id", &ids).Error
	return len(ids) > 0, err
}

func (r *DBSubmissionRepo) ExistsForSubmitter(formID, submitterID uint) (bool, error) {
	var count int64
	err := r.db.Model(&submission.Submission{}).
		Where("form_id = ? AND submitter_id = ?", formID, submitterID).
		Count(&count).Error
	return count > 0, err
}

func (r *DBSubmissionRepo) ListByForm(formID uint) ([]submission.Submission, error) {
	var subs []submission.Submission
	err := r.db.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).
		Where("form_id = ?", formID).
		Order("submitted_at ASC, id ASC").
		Find(&subs).Error
	return subs, err
}

func (r *DBSubmissionRepo) Count(formID uint) (int64, error) {
	var count int64
	err := r.db.Model(&submission.Submission{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}

// Distribution counts every distinct (question, value) pair across the
// answers of a version.
func (r *DBSubmissionRepo) Distribution(formID uint) ([]submission.DistributionEntry, error) {
	entries := []submission.DistributionEntry{}
	err := r.db.Table("answers").
		Select("answers.question_id AS question_id, answers.value AS value, COUNT(*) AS count").
		Joins("JOIN submissions ON submissions.id = answers.submission_id").
		Where("submissions.form_id = ?", formID).
		Group("answers.question_id, answers.value").
		Order("answers.question_id ASC, answers.value ASC").
		Scan(&entries).Error
	return entries, err
}

func (r *DBSubmissionRepo) WithTx(tx *gorm.DB) SubmissionRepo {
	if tx == nil {
		return r
	}
	return &DBSubmissionRepo{
		db: tx,
	}
}
