package submission

import (
	"testing"
	"time"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmit_Order(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)
	uid := uint(3)

	tests := []struct {
		name      string
		form      *form.Form
		submitter *uint
		want      error
	}{
		{"missing", nil, nil, form.ErrNotFound},
		{"deleted beats window", &form.Form{IsDeleted: true, Content: form.Content{StartAt: &later}}, nil, form.ErrNotFound},
		{"not open beats private", &form.Form{Content: form.Content{StartAt: &later}}, nil, form.ErrWindowNotOpen},
		{"closed", &form.Form{Content: form.Content{IsPublic: true, EndAt: &earlier}}, nil, form.ErrWindowClosed},
		{"private guest", &form.Form{Content: form.Content{IsPublic: false}}, nil, form.ErrUnauthorized},
		{"private member", &form.Form{Content: form.Content{IsPublic: false}}, &uid, nil},
		{"public guest", &form.Form{Content: form.Content{IsPublic: true, StartAt: &earlier, EndAt: &later}}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Admit(tt.form, tt.submitter, now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildAnswers(t *testing.T) {
	qs := []form.Question{
		{ID: 1, Label: "Rate", IsRequired: true},
		{ID: 2, Label: "Comment"},
	}

	answers, err := BuildAnswers(qs, []AnswerInput{{QuestionID: 2, Value: "hi"}, {QuestionID: 1, Value: "4"}})
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, uint(2), answers[0].QuestionID)
	assert.Equal(t, "4", answers[1].Value)

	_, err = BuildAnswers(qs, []AnswerInput{{QuestionID: 1, Value: "4"}, {QuestionID: 8, Value: "x"}})
	assert.ErrorIs(t, err, form.ErrInvalidAnswer)

	_, err = BuildAnswers(qs, []AnswerInput{{QuestionID: 1, Value: "  "}})
	assert.ErrorIs(t, err, form.ErrMissingRequiredAnswer)
}

func TestStatsCounts(t *testing.T) {
	s := Stats{Distribution: []DistributionEntry{
		{QuestionID: 1, Value: "4", Count: 2},
		{QuestionID: 2, Value: "Backend", Count: 1},
	}}
	assert.Equal(t, map[uint]map[string]int64{1: {"4": 2}, 2: {"Backend": 1}}, s.Counts())
	assert.Equal(t, "4:9", DedupKey(4, 9))
}
