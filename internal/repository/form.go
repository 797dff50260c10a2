package repository

import (
	"fmt"
	"time"

	"github.com/linskybing/formflow/internal/domain/form"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FormRepo interface {
	Create(f *form.Form) error
	SetLineageRoot(id, root uint) error
	GetByID(id uint) (*form.Form, error)
	GetWithQuestions(id uint) (*form.Form, error)
	GetForUpdate(id uint) (*form.Form, error)
	GetForShare(id uint) (*form.Form, error)
	ListQuestions(formID uint) ([]form.Question, error)
	HeadVersion(root uint) (int, bool, error)
	UpdateInPlace(f *form.Form, fromVersion int) error
	ReplaceQuestions(formID uint, questions []form.Question) error
	SaveLifecycle(f *form.Form) error
	HardDelete(id uint) error
	ListActive(tenantID uint, owner *uint) ([]form.Form, error)
	ListTrash(tenantID uint) ([]form.Form, error)
	ListLineage(root uint) ([]form.Form, error)
	WithTx(tx *gorm.DB) FormRepo
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{
		db: db,
	}
}

// Create inserts the form and its questions. A duplicate (lineage, version)
// pair means another writer forked first.
func (r *DBFormRepo) Create(f *form.Form) error {
	if err := r.db.Create(f).Error; err != nil {
		if isUniqueViolation(err) {
			return form.ErrConcurrencyConflict
		}
		return err
	}
	return nil
}

func (r *DBFormRepo) SetLineageRoot(id, root uint) error {
	return r.db.Model(&form.Form{}).
		Where("id = ? AND lineage_root IS NULL", id).
		Update("lineage_root", root).Error
}

func (r *DBFormRepo) get(q *gorm.DB, id uint) (*form.Form, error) {
	var f form.Form
	if err := q.First(&f, id).Error; err != nil {
		if isNotFound(err) {
			return nil, form.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *DBFormRepo) GetByID(id uint) (*form.Form, error) {
	return r.get(r.db, id)
}

func (r *DBFormRepo) GetWithQuestions(id uint) (*form.Form, error) {
	return r.get(r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}), id)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *DBFormRepo) GetForUpdate(id uint) (*form.Form, error) {
	return r.get(r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetForShare blocks concurrent GetForUpdate callers but not other readers.
func (r *DBFormRepo) GetForShare(id uint) (*form.Form, error) {
	return r.get(r.db.Clauses(clause.Locking{Strength: "SHARE"}), id)
}

func (r *DBFormRepo) ListQuestions(formID uint) ([]form.Question, error) {
	var qs []form.Question
	err := r.db.Where("form_id = ?", formID).Order("position ASC, id ASC").Find(&qs).Error
	return qs, err
}

// HeadVersion returns the highest version of the lineage and whether that
// row is soft-deleted. An empty lineage reports 0.
func (r *DBFormRepo) HeadVersion(root uint) (int, bool, error) {
	var heads []form.Form
	err := r.db.Select("id", "version", "is_deleted").
		Where("lineage_root = ? OR id = ?", root, root).
		Order("version DESC").
		Limit(1).
		Find(&heads).Error
	if err != nil || len(heads) == 0 {
		return 0, false, err
	}
	return heads[0].Version, heads[0].IsDeleted, nil
}

// UpdateInPlace overwrites the content of f and bumps its version, provided
// the stored version still equals fromVersion.
func (r *DBFormRepo) UpdateInPlace(f *form.Form, fromVersion int) error {
	now := time.Now()
	res := r.db.Model(&form.Form{}).
		Where("id = ? AND version = ?", f.ID, fromVersion).
		Updates(map[string]any{
			"title":                   f.Title,
			"description":             f.Description,
			"is_published":            f.IsPublished,
			"is_public":               f.IsPublic,
			"start_at":                f.StartAt,
			"end_at":                  f.EndAt,
			"one_submission_per_user": f.OneSubmissionPerUser,
			"version":                 gorm.Expr("version + 1"),
			"updated_at":              now,
		})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return form.ErrConcurrencyConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return form.ErrConcurrencyConflict
	}
	f.Version = fromVersion + 1
	f.UpdatedAt = now
	return nil
}

func (r *DBFormRepo) ReplaceQuestions(formID uint, questions []form.Question) error {
	if err := r.db.Where("form_id = ?", formID).Delete(&form.Question{}).Error; err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	if len(questions) == 0 {
		return nil
	}
	for i := range questions {
		questions[i].FormID = formID
	}
	return r.db.Create(&questions).Error
}

func (r *DBFormRepo) SaveLifecycle(f *form.Form) error {
	return r.db.Model(&form.Form{}).
		Where("id = ?", f.ID).
		Updates(map[string]any{
			"is_deleted": f.IsDeleted,
			"deleted_at": f.DeletedAt,
			"deleted_by": f.DeletedBy,
		}).Error
}

// HardDelete removes the version with its questions, submissions and
// answers. Run it inside a transaction.
func (r *DBFormRepo) HardDelete(id uint) error {
	submissionIDs := r.db.Table("submissions").Select("id").Where("form_id = ?", id)
	if err := r.db.Exec("DELETE FROM answers WHERE submission_id IN (?)", submissionIDs).Error; err != nil {
		return fmt.Errorf("delete answers: %w", err)
	}
	if err := r.db.Exec("DELETE FROM submissions WHERE form_id = ?", id).Error; err != nil {
		return fmt.Errorf("delete submissions: %w", err)
	}
	if err := r.db.Where("form_id = ?", id).Delete(&form.Question{}).Error; err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	res := r.db.Delete(&form.Form{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete form: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return form.ErrNotFound
	}
	return nil
}

// ListActive returns non-deleted versions of a tenant. A non-nil owner keeps
// only that user's forms and legacy unowned ones.
func (r *DBFormRepo) ListActive(tenantID uint, owner *uint) ([]form.Form, error) {
	var forms []form.Form
	q := r.db.Where("tenant_id = ? AND is_deleted = ?", tenantID, false)
	if owner != nil {
		q = q.Where("created_by = ? OR created_by = ?", *owner, form.LegacyOwner)
	}
	err := q.Order("created_at DESC, id DESC").Find(&forms).Error
	return forms, err
}

func (r *DBFormRepo) ListTrash(tenantID uint) ([]form.Form, error) {
	var forms []form.Form
	err := r.db.Where("tenant_id = ? AND is_deleted = ?", tenantID, true).
		Order("deleted_at DESC, id DESC").
		Find(&forms).Error
	return forms, err
}

func (r *DBFormRepo) ListLineage(root uint) ([]form.Form, error) {
	var forms []form.Form
	err := r.db.Where("lineage_root = ? OR id = ?", root, root).
		Order("version ASC").
		Find(&forms).Error
	return forms, err
}

func (r *DBFormRepo) WithTx(tx *gorm.DB) FormRepo {
	if tx == nil {
		return r
	}
	return &DBFormRepo{
		db: tx,
	}
}
