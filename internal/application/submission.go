package application

import (
	"context"
	"time"

	"github.com/linskybing/formflow/internal/cache"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/observability"
	"github.com/linskybing/formflow/internal/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SubmissionService records answer-sets against a single form version and
// reads them back as raw rows or as a value distribution.
type SubmissionService struct {
	Repos   *repository.Repos
	Loader  *cache.StatsLoader
	Metrics *observability.Metrics
	Logger  *zap.Logger

	now func() time.Time
}

func NewSubmissionService(repos *repository.Repos, stats *cache.StatsLoader, metrics *observability.Metrics, logger *zap.Logger) *SubmissionService {
	if stats == nil {
		stats = cache.NewStatsLoader(nil, metrics, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		Repos:   repos,
		Loader:  stats,
		Metrics: metrics,
		Logger:  logger,
		now:     time.Now,
	}
}

// Submit stores one answer-set. submitterID is nil for guests. The version
// row is share-locked so a concurrent edit sees this submission or runs
// entirely before it.
func (s *SubmissionService) Submit(ctx context.Context, formID uint, submitterID *uint, in submission.SubmitDTO) (sub *submission.Submission, err error) {
	defer s.Metrics.ObserveOperation("submit", time.Now())
	ctx, span := observability.StartSpan(ctx, "SubmissionService.Submit")
	span.SetAttributes(attribute.Int64("form.id", int64(formID)))
	defer func() { observability.EndSpan(span, err) }()
	defer func() {
		if err != nil {
			s.Metrics.ObserveSubmission(errorLabel(err))
		}
	}()

	now := s.now()
	err = s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		f, err := tx.Form.GetForShare(formID)
		if err != nil {
			return err
		}
		if err := submission.Admit(f, submitterID, now); err != nil {
			return err
		}

		sub = &submission.Submission{FormID: f.ID, SubmitterID: submitterID, SubmittedAt: now}
		if f.OneSubmissionPerUser && submitterID != nil {
			exists, err := tx.Submission.ExistsForSubmitter(f.ID, *submitterID)
			if err != nil {
				return err
			}
			if exists {
				return form.ErrDuplicateSubmission
			}
			key := submission.DedupKey(f.ID, *submitterID)
			sub.DedupKey = &key
		}

		questions, err := tx.Form.ListQuestions(f.ID)
		if err != nil {
			return err
		}
		answers, err := submission.BuildAnswers(questions, in.Answers)
		if err != nil {
			return err
		}
		sub.Answers = answers
		return tx.Submission.Create(sub)
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.ObserveSubmission("accepted")
	s.Loader.Invalidate(ctx, formID)
	s.Logger.Debug("submission recorded",
		zap.Uint("form_id", formID),
		zap.Uint("submission_id", sub.ID),
		zap.Bool("guest", sub.IsGuest()))
	return sub, nil
}

// ListSubmissions returns every submission of the version with its answers.
func (s *SubmissionService) ListSubmissions(ctx context.Context, v form.Viewer, formID uint) ([]submission.Submission, error) {
	repos := s.Repos.WithContext(ctx)
	f, err := repos.Form.GetByID(formID)
	if err != nil {
		return nil, err
	}
	if err := v.Authorize(f); err != nil {
		return nil, err
	}
	return repos.Submission.ListByForm(formID)
}

// Stats aggregates the version's answers by (question, value). Soft-deleted
// versions keep their analytics.
func (s *SubmissionService) Stats(ctx context.Context, v form.Viewer, formID uint) (stats *submission.Stats, err error) {
	defer s.Metrics.ObserveOperation("stats", time.Now())
	ctx, span := observability.StartSpan(ctx, "SubmissionService.Stats")
	span.SetAttributes(attribute.Int64("form.id", int64(formID)))
	defer func() { observability.EndSpan(span, err) }()

	repos := s.Repos.WithContext(ctx)
	f, err := repos.Form.GetByID(formID)
	if err != nil {
		return nil, err
	}
	if err := v.Authorize(f); err != nil {
		return nil, err
	}

	return s.Loader.Load(ctx, formID, func(ctx context.Context) (*submission.Stats, error) {
		return s.loadStats(ctx, f)
	})
}

func (s *SubmissionService) loadStats(ctx context.Context, f *form.Form) (*submission.Stats, error) {
	stats := &submission.Stats{FormID: f.ID, Title: f.Title}
	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		total, err := tx.Submission.Count(f.ID)
		if err != nil {
			return err
		}
		dist, err := tx.Submission.Distribution(f.ID)
		if err != nil {
			return err
		}
		stats.TotalSubmissions = total
		stats.Distribution = dist
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
