//go:build integration

package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/domain/tenant"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const racers = 8

func newPostgresServices(t *testing.T) (*Services, *repository.Repos, form.Viewer) {
	t.Helper()
	repos := repository.NewRepositories(testutils.NewPostgresDB(t))
	svc := New(repos, Deps{})

	tn := tenant.Tenant{Name: "Race Org"}
	require.NoError(t, repos.Tenant.Create(&tn))
	u := user.User{TenantID: tn.ID, Name: "Racer", Email: "racer@race.test", Password: "x", Role: user.RoleEditor}
	require.NoError(t, repos.User.CreateUser(&u))
	return svc, repos, form.Viewer{UserID: u.ID, TenantID: tn.ID, Role: user.RoleEditor}
}

func race(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
	return errs
}

func TestConcurrentForkingEdits_SingleWinner(t *testing.T) {
	svc, repos, owner := newPostgresServices(t)
	ctx := context.Background()

	f, err := svc.Form.CreateLineage(ctx, owner, form.CreateFormDTO{FormInput: surveyInput("Race")})
	require.NoError(t, err)
	qs, err := repos.Form.ListQuestions(f.ID)
	require.NoError(t, err)
	_, err = svc.Submission.Submit(ctx, f.ID, nil, submission.SubmitDTO{
		Answers: []submission.AnswerInput{{QuestionID: qs[0].ID, Value: "3"}},
	})
	require.NoError(t, err)

	errs := race(racers, func(int) error {
		_, err := svc.Form.Edit(ctx, owner, f.ID, form.EditFormDTO{FormInput: surveyInput("Race v2")})
		return err
	})

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, form.ErrConcurrencyConflict):
		default:
			t.Fatalf("unexpected edit error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)

	versions, err := svc.Form.ListLineageVersions(ctx, owner, f.ID)
	require.NoError(t, err)
	assert.Len(t, versions.Items, 2)
}

func TestConcurrentSubmissions_OnePerUser(t *testing.T) {
	svc, repos, owner := newPostgresServices(t)
	ctx := context.Background()

	in := surveyInput("Once")
	in.OneSubmissionPerUser = true
	f, err := svc.Form.CreateLineage(ctx, owner, form.CreateFormDTO{FormInput: in})
	require.NoError(t, err)
	qs, err := repos.Form.ListQuestions(f.ID)
	require.NoError(t, err)

	uid := owner.UserID
	errs := race(racers, func(int) error {
		_, err := svc.Submission.Submit(ctx, f.ID, &uid, submission.SubmitDTO{
			Answers: []submission.AnswerInput{{QuestionID: qs[0].ID, Value: "5"}},
		})
		return err
	})

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, form.ErrDuplicateSubmission)
	}
	assert.Equal(t, 1, accepted)

	count, err := repos.Submission.Count(f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
