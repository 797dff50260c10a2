package application

import (
	"github.com/linskybing/formflow/internal/cache"
	"github.com/linskybing/formflow/internal/observability"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/storage"
	"go.uber.org/zap"
)

// Deps carries the optional infrastructure shared by services. Zero values
// run without cache, storage or metrics.
type Deps struct {
	StatsCache cache.StatsCache
	Store      storage.ObjectStore
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

type Services struct {
	Audit      *AuditService
	User       *UserService
	Tenant     *TenantService
	Form       *FormService
	Submission *SubmissionService
	Seeder     *Seeder
}

func New(repos *repository.Repos, deps Deps) *Services {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loader := cache.NewStatsLoader(deps.StatsCache, deps.Metrics, logger.Named("stats"))
	forms := NewFormService(repos, loader, deps.Metrics, logger.Named("forms"))

	return &Services{
		Audit:      NewAuditService(repos),
		User:       NewUserService(repos),
		Tenant:     NewTenantService(repos, deps.Store, logger.Named("tenants")),
		Form:       forms,
		Submission: NewSubmissionService(repos, loader, deps.Metrics, logger.Named("submissions")),
		Seeder:     NewSeeder(repos, forms, logger.Named("seed")),
	}
}
