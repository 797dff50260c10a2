package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repos struct {
	Tenant     TenantRepo
	User       UserRepo
	Form       FormRepo
	Submission SubmissionRepo
	Audit      AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Tenant:     NewTenantRepo(db),
		User:       NewUserRepo(db),
		Form:       NewFormRepo(db),
		Submission: NewSubmissionRepo(db),
		Audit:      NewAuditRepo(db),
		db:         db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Tenant:     r.Tenant.WithTx(tx),
		User:       r.User.WithTx(tx),
		Form:       r.Form.WithTx(tx),
		Submission: r.Submission.WithTx(tx),
		Audit:      r.Audit.WithTx(tx),
		db:         tx,
	}
}

// WithContext binds every repository to ctx for reads outside a transaction.
func (r *Repos) WithContext(ctx context.Context) *Repos {
	if r.db == nil {
		return r
	}
	return r.WithTx(r.db.WithContext(ctx))
}

// ExecTx runs fn in one transaction. Inside fn only the passed repos may be
// used; fn's error rolls everything back.
func (r *Repos) ExecTx(ctx context.Context, fn func(*Repos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
