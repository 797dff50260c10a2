package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/api/routes"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/testutils"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JwtSecret = "test-secret"
	config.Issuer = "formflow-test"
	config.TokenTTL = time.Hour
	config.SubmitRateLimit = 0
	middleware.Init()

	gdb := testutils.NewSQLiteDB(t)
	svc := application.New(repository.NewRepositories(gdb), application.Deps{})
	r := routes.NewEngine(zap.NewNop(), "formflow-test")
	routes.RegisterRoutes(r, gdb, svc, nil)
	return &apiClient{t: t, router: r}
}

func (a *apiClient) do(method, path string, body any, out any) int {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func (a *apiClient) register() user.Session {
	a.t.Helper()
	var sess user.Session
	code := a.do(http.MethodPost, "/auth/register", user.RegisterInput{Name: "Ali", Email: "ali@nb.com", Password: "password"}, &sess)
	require.Equal(a.t, http.StatusCreated, code)
	a.token = sess.Token
	return sess
}

func feedbackForm() form.CreateFormDTO {
	return form.CreateFormDTO{FormInput: form.FormInput{
		Title: "Feedback",
		Questions: []form.QuestionInput{
			{Label: "How was the food?", Type: form.QuestionRating, IsRequired: true},
			{Label: "Which track are you in?", Type: form.QuestionDropdown, Options: []string{"Backend", "Frontend", "Design"}},
		},
	}}
}

func TestStatsResponse(t *testing.T) {
	api := newAPI(t)
	api.register()

	var f form.Form
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/forms", feedbackForm(), &f))

	var full form.Form
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/forms/1", nil, &full))
	require.Len(t, full.Questions, 2)
	q1, q2 := full.Questions[0].ID, full.Questions[1].ID

	token := api.token
	api.token = ""
	for _, track := range []string{"Backend", "Design"} {
		dto := submission.SubmitDTO{Answers: []submission.AnswerInput{{QuestionID: q1, Value: "4"}, {QuestionID: q2, Value: track}}}
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/forms/1/submit", dto, nil))
	}
	api.token = token

	var stats submission.Stats
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/forms/1/stats", nil, &stats))

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden.json"))
	g.AssertJson(t, "stats", stats)
}

func TestErrorMapping(t *testing.T) {
	api := newAPI(t)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/forms", nil, nil))

	sess := api.register()
	assert.Equal(t, user.RoleEditor, sess.Role)

	var errBody map[string]string
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/forms", form.CreateFormDTO{}, &errBody))
	assert.Contains(t, errBody["error"], "title is required")

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/forms/99", nil, nil))

	private := false
	in := feedbackForm()
	in.IsPublic = &private
	in.OneSubmissionPerUser = true
	var f form.Form
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/forms", in, &f))

	var full form.Form
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/forms/1", nil, &full))
	dto := submission.SubmitDTO{Answers: []submission.AnswerInput{{QuestionID: full.Questions[0].ID, Value: "5"}}}

	assert.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/forms/1/submit", dto, nil))
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/forms/1/submit", dto, nil))

	token := api.token
	api.token = ""
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/forms/1/submit", dto, nil))
	api.token = token

	var res form.EditResult
	require.Equal(t, http.StatusOK, api.do(http.MethodPut, "/forms/1", form.EditFormDTO{FormInput: in.FormInput}, &res))
	assert.True(t, res.Forked)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPut, "/forms/1", form.EditFormDTO{FormInput: in.FormInput}, nil))

	forkPath := fmt.Sprintf("/forms/%d", res.Form.ID)
	require.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, forkPath, nil, nil))
	errBody = nil
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPut, "/forms/1", form.EditFormDTO{FormInput: in.FormInput}, &errBody))
	assert.Contains(t, errBody["error"], "trash")
	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, forkPath+"/restore", nil, nil))

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/forms/1", nil, nil))
	assert.Equal(t, http.StatusConflict, api.do(http.MethodDelete, "/forms/1", nil, nil))
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/forms/1/restore", nil, nil))

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/audit/logs", nil, nil))
}

func TestHealth(t *testing.T) {
	api := newAPI(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/health", nil, &body))
	assert.Equal(t, "ok", body["status"])
}
