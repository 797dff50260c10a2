package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrUint(v uint) *uint { return &v }
func ptrInt(v int) *int    { return &v }

func sampleForm() *Form {
	return &Form{
		ID:          7,
		Version:     2,
		LineageRoot: ptrUint(3),
		TenantID:    1,
		CreatedBy:   9,
		Content:     Content{Title: "old", IsPublic: true},
		Questions:   []Question{{ID: 70, FormID: 7, Label: "old q", Type: QuestionText}},
	}
}

func TestPlanEdit_InPlaceWithoutSubmissions(t *testing.T) {
	existing := sampleForm()
	qs := []Question{{ID: 99, Label: "new q", Type: QuestionRating}}

	next, outcome, err := PlanEdit(existing, EditState{HeadVersion: 2}, nil, Content{Title: "new"}, qs)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInPlace, outcome)
	assert.Equal(t, uint(7), next.ID)
	assert.Equal(t, 3, next.Version)
	assert.Equal(t, "new", next.Title)
	require.Len(t, next.Questions, 1)
	assert.Zero(t, next.Questions[0].ID)
	assert.Equal(t, uint(7), next.Questions[0].FormID)

	assert.Equal(t, "old", existing.Title)
	assert.Equal(t, 2, existing.Version)
}

func TestPlanEdit_ForkWithSubmissions(t *testing.T) {
	existing := sampleForm()

	next, outcome, err := PlanEdit(existing, EditState{HasSubmissions: true, HeadVersion: 2}, ptrInt(2), Content{Title: "v3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeForked, outcome)
	assert.Zero(t, next.ID)
	assert.Equal(t, 3, next.Version)
	assert.Equal(t, uint(3), *next.LineageRoot)
	assert.Equal(t, existing.TenantID, next.TenantID)
	assert.Equal(t, existing.CreatedBy, next.CreatedBy)
	assert.Equal(t, "v3", next.Title)
}

func TestPlanEdit_ForkHealsMissingRoot(t *testing.T) {
	existing := sampleForm()
	existing.LineageRoot = nil

	next, _, err := PlanEdit(existing, EditState{HasSubmissions: true, HeadVersion: 2}, nil, Content{Title: "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(7), *next.LineageRoot)
}

func TestPlanEdit_Rejections(t *testing.T) {
	deleted := sampleForm()
	deleted.IsDeleted = true

	tests := []struct {
		name     string
		form     *Form
		state    EditState
		expected *int
		want     error
	}{
		{"deleted", deleted, EditState{HeadVersion: 2}, nil, ErrVersionDeleted},
		{"expected version mismatch", sampleForm(), EditState{HeadVersion: 2}, ptrInt(1), ErrConcurrencyConflict},
		{"stale target", sampleForm(), EditState{HasSubmissions: true, HeadVersion: 3}, nil, ErrConcurrencyConflict},
		{"newer version in trash", sampleForm(), EditState{HasSubmissions: true, HeadVersion: 3, HeadDeleted: true}, nil, ErrHeadInTrash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := PlanEdit(tt.form, tt.state, tt.expected, Content{Title: "x"}, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
