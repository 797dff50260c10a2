package handlers

import (
	"github.com/linskybing/formflow/internal/application"
)

type Handlers struct {
	Audit      *AuditHandler
	User       *UserHandler
	Tenant     *TenantHandler
	Form       *FormHandler
	Submission *SubmissionHandler
}

func New(svc *application.Services) *Handlers {
	return &Handlers{
		Audit:      NewAuditHandler(svc.Audit),
		User:       NewUserHandler(svc.User),
		Tenant:     NewTenantHandler(svc.Tenant),
		Form:       NewFormHandler(svc.Form),
		Submission: NewSubmissionHandler(svc.Submission),
	}
}
