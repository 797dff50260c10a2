package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/linskybing/formflow/internal/cache"
	"github.com/linskybing/formflow/internal/domain/audit"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/observability"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const resourceForm = "form"

// FormService owns form versions: creation, the edit-or-fork decision and
// the soft/permanent delete lifecycle. Every mutating call is one
// transaction with the target row locked.
type FormService struct {
	Repos   *repository.Repos
	Loader  *cache.StatsLoader
	Metrics *observability.Metrics
	Logger  *zap.Logger

	now func() time.Time
}

func NewFormService(repos *repository.Repos, stats *cache.StatsLoader, metrics *observability.Metrics, logger *zap.Logger) *FormService {
	if stats == nil {
		stats = cache.NewStatsLoader(nil, metrics, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormService{
		Repos:   repos,
		Loader:  stats,
		Metrics: metrics,
		Logger:  logger,
		now:     time.Now,
	}
}

// CreateLineage stores version 1 of a new form owned by the viewer. The
// lineage root is set to the new id in the same transaction.
func (s *FormService) CreateLineage(ctx context.Context, v form.Viewer, in form.CreateFormDTO) (f *form.Form, err error) {
	defer s.Metrics.ObserveOperation("create", time.Now())
	ctx, span := observability.StartSpan(ctx, "FormService.CreateLineage")
	defer func() { observability.EndSpan(span, err) }()

	content, err := in.Content()
	if err != nil {
		return nil, err
	}
	questions, err := in.BuildQuestions()
	if err != nil {
		return nil, err
	}

	f = &form.Form{
		Version:   1,
		TenantID:  v.TenantID,
		CreatedBy: v.UserID,
		Content:   content,
		Questions: questions,
	}
	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		if err := tx.Form.Create(f); err != nil {
			return err
		}
		if err := tx.Form.SetLineageRoot(f.ID, f.ID); err != nil {
			return err
		}
		root := f.ID
		f.LineageRoot = &root
		return utils.LogAudit(ctx, tx.Audit, v.TenantID, v.UserID, audit.ActionCreate, resourceForm, idString(f.ID), nil, f, "form created")
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("form.id", int64(f.ID)))
	s.Logger.Info("form created", zap.Uint("form_id", f.ID), zap.Uint("tenant_id", f.TenantID))
	return f, nil
}

// Get returns one version with its questions, deleted or not.
func (s *FormService) Get(ctx context.Context, v form.Viewer, id uint) (*form.Form, error) {
	f, err := s.Repos.WithContext(ctx).Form.GetWithQuestions(id)
	if err != nil {
		return nil, err
	}
	if err := v.Authorize(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Edit applies in as an in-place update when the version has no
// submissions, or forks a new version of the lineage otherwise.
func (s *FormService) Edit(ctx context.Context, v form.Viewer, id uint, in form.EditFormDTO) (res *form.EditResult, err error) {
	defer s.Metrics.ObserveOperation("edit", time.Now())
	ctx, span := observability.StartSpan(ctx, "FormService.Edit")
	span.SetAttributes(attribute.Int64("form.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()
	defer func() {
		if err != nil {
			s.Metrics.ObserveEdit(errorLabel(err))
		}
	}()

	content, err := in.Content()
	if err != nil {
		return nil, err
	}
	questions, err := in.BuildQuestions()
	if err != nil {
		return nil, err
	}

	var outcome form.EditOutcome
	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		existing, err := tx.Form.GetForUpdate(id)
		if err != nil {
			return err
		}
		if err := v.Authorize(existing); err != nil {
			return err
		}

		hasSubmissions, err := tx.Submission.HasSubmissions(existing.ID)
		if err != nil {
			return err
		}
		head, headDeleted, err := tx.Form.HeadVersion(existing.Root())
		if err != nil {
			return err
		}

		state := form.EditState{HasSubmissions: hasSubmissions, HeadVersion: head, HeadDeleted: headDeleted}
		next, kind, err := form.PlanEdit(existing, state, in.ExpectedVersion, content, questions)
		if err != nil {
			return err
		}
		outcome = kind

		switch kind {
		case form.OutcomeInPlace:
			if err := tx.Form.UpdateInPlace(next, existing.Version); err != nil {
				return err
			}
			if err := tx.Form.ReplaceQuestions(next.ID, next.Questions); err != nil {
				return err
			}
		case form.OutcomeForked:
			if !existing.HasLineage() {
				if err := tx.Form.SetLineageRoot(existing.ID, existing.ID); err != nil {
					return err
				}
			}
			if err := tx.Form.Create(next); err != nil {
				return err
			}
		}

		res = &form.EditResult{Form: next, Forked: kind == form.OutcomeForked, PreviousID: existing.ID}
		action := audit.ActionUpdate
		if res.Forked {
			action = audit.ActionFork
		}
		return utils.LogAudit(ctx, tx.Audit, existing.TenantID, v.UserID, action, resourceForm, idString(next.ID), existing, next, "form edited")
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.ObserveEdit(string(outcome))
	if outcome == form.OutcomeInPlace {
		s.Loader.Invalidate(ctx, id)
	}
	s.Logger.Info("form edited",
		zap.Uint("form_id", id),
		zap.Uint("result_id", res.Form.ID),
		zap.String("outcome", string(outcome)),
		zap.Int("version", res.Form.Version))
	return res, nil
}

// ListLineageVersions lists every version sharing anyID's lineage, oldest
// first.
func (s *FormService) ListLineageVersions(ctx context.Context, v form.Viewer, anyID uint) (*form.LineageVersions, error) {
	repos := s.Repos.WithContext(ctx)
	f, err := repos.Form.GetByID(anyID)
	if err != nil {
		return nil, err
	}
	if err := v.Authorize(f); err != nil {
		return nil, err
	}

	root := f.Root()
	versions, err := repos.Form.ListLineage(root)
	if err != nil {
		return nil, err
	}

	out := &form.LineageVersions{LineageRoot: root, Items: make([]form.VersionItem, 0, len(versions))}
	for _, ver := range versions {
		out.Items = append(out.Items, form.VersionItem{
			ID:          ver.ID,
			Version:     ver.Version,
			Title:       ver.Title,
			IsPublished: ver.IsPublished,
			IsPublic:    ver.IsPublic,
			IsDeleted:   ver.IsDeleted,
		})
	}
	return out, nil
}

// ListVisible returns the tenant's active versions the viewer may see.
func (s *FormService) ListVisible(ctx context.Context, v form.Viewer) ([]form.Form, error) {
	var owner *uint
	if !v.IsAdmin() {
		owner = &v.UserID
	}
	return s.Repos.WithContext(ctx).Form.ListActive(v.TenantID, owner)
}

// ListTrash returns the tenant's soft-deleted versions, most recent first.
func (s *FormService) ListTrash(ctx context.Context, v form.Viewer) ([]form.Form, error) {
	return s.Repos.WithContext(ctx).Form.ListTrash(v.TenantID)
}

func (s *FormService) SoftDelete(ctx context.Context, v form.Viewer, id uint) error {
	return s.transition(ctx, v, id, audit.ActionSoftDelete, func(f *form.Form) error {
		return f.SoftDelete(v.UserID, s.now())
	})
}

func (s *FormService) Restore(ctx context.Context, v form.Viewer, id uint) error {
	return s.transition(ctx, v, id, audit.ActionRestore, func(f *form.Form) error {
		return f.Restore()
	})
}

func (s *FormService) transition(ctx context.Context, v form.Viewer, id uint, action string, apply func(*form.Form) error) (err error) {
	defer s.Metrics.ObserveOperation(action, time.Now())
	ctx, span := observability.StartSpan(ctx, "FormService."+action)
	span.SetAttributes(attribute.Int64("form.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		f, err := tx.Form.GetForUpdate(id)
		if err != nil {
			return err
		}
		if err := v.Authorize(f); err != nil {
			return err
		}
		before := *f
		if err := apply(f); err != nil {
			return err
		}
		if err := tx.Form.SaveLifecycle(f); err != nil {
			return err
		}
		return utils.LogAudit(ctx, tx.Audit, f.TenantID, v.UserID, action, resourceForm, idString(id), before, f, "")
	})
	if err != nil {
		return err
	}

	s.Metrics.ObserveLifecycle(action)
	s.Logger.Info("form lifecycle changed", zap.Uint("form_id", id), zap.String("action", action))
	return nil
}

// PermanentDelete destroys the version with its questions, submissions and
// answers. It works from either lifecycle state.
func (s *FormService) PermanentDelete(ctx context.Context, v form.Viewer, id uint) (err error) {
	defer s.Metrics.ObserveOperation(audit.ActionPermanentDelete, time.Now())
	ctx, span := observability.StartSpan(ctx, "FormService.PermanentDelete")
	span.SetAttributes(attribute.Int64("form.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		f, err := tx.Form.GetForUpdate(id)
		if err != nil {
			return err
		}
		if err := v.Authorize(f); err != nil {
			return err
		}
		if err := tx.Form.HardDelete(id); err != nil {
			return err
		}
		return utils.LogAudit(ctx, tx.Audit, f.TenantID, v.UserID, audit.ActionPermanentDelete, resourceForm, idString(id), f, nil, "form permanently deleted")
	})
	if err != nil {
		return err
	}

	s.Loader.Invalidate(ctx, id)
	s.Metrics.ObserveLifecycle(audit.ActionPermanentDelete)
	s.Logger.Warn("form permanently deleted", zap.Uint("form_id", id), zap.Uint("by", v.UserID))
	return nil
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// errorLabel maps engine errors to low-cardinality metric labels.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, form.ErrNotFound):
		return "not_found"
	case errors.Is(err, form.ErrVersionDeleted):
		return "version_deleted"
	case errors.Is(err, form.ErrConcurrencyConflict):
		return "conflict"
	case errors.Is(err, form.ErrForbidden):
		return "forbidden"
	case errors.Is(err, form.ErrWindowNotOpen):
		return "window_not_open"
	case errors.Is(err, form.ErrWindowClosed):
		return "window_closed"
	case errors.Is(err, form.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, form.ErrDuplicateSubmission):
		return "duplicate"
	case errors.Is(err, form.ErrInvalidAnswer), errors.Is(err, form.ErrMissingRequiredAnswer),
		errors.Is(err, form.ErrInvalidQuestion), errors.Is(err, form.ErrInvalidWindow):
		return "invalid"
	default:
		return "error"
	}
}
