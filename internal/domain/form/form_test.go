package form

import (
	"testing"
	"time"

	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCheckWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	assert.NoError(t, Content{}.CheckWindow(now))
	assert.NoError(t, Content{StartAt: &before, EndAt: &after}.CheckWindow(now))
	assert.ErrorIs(t, Content{StartAt: &after}.CheckWindow(now), ErrWindowNotOpen)
	assert.ErrorIs(t, Content{EndAt: &before}.CheckWindow(now), ErrWindowClosed)
	assert.NoError(t, Content{StartAt: &now, EndAt: &now}.CheckWindow(now))
}

func TestLifecycle(t *testing.T) {
	f := &Form{ID: 1}
	assert.Equal(t, StateActive, f.State())
	assert.ErrorIs(t, f.Restore(), ErrNotDeleted)

	now := time.Now()
	require.NoError(t, f.SoftDelete(4, now))
	assert.Equal(t, StateDeleted, f.State())
	assert.Equal(t, uint(4), *f.DeletedBy)
	assert.Equal(t, now, *f.DeletedAt)
	assert.ErrorIs(t, f.SoftDelete(4, now), ErrAlreadyDeleted)

	require.NoError(t, f.Restore())
	assert.False(t, f.IsDeleted)
	assert.Nil(t, f.DeletedAt)
	assert.Nil(t, f.DeletedBy)
}

func TestViewer(t *testing.T) {
	owned := &Form{TenantID: 1, CreatedBy: 5}
	legacy := &Form{TenantID: 1, CreatedBy: LegacyOwner}
	foreign := &Form{TenantID: 2, CreatedBy: 5}

	editor := Viewer{UserID: 6, TenantID: 1, Role: user.RoleEditor}
	owner := Viewer{UserID: 5, TenantID: 1, Role: user.RoleEditor}
	admin := Viewer{UserID: 1, TenantID: 1, Role: user.RoleAdmin}

	assert.False(t, editor.CanSee(owned))
	assert.True(t, editor.CanSee(legacy))
	assert.True(t, owner.CanSee(owned))
	assert.True(t, admin.CanSee(owned))
	assert.False(t, admin.CanSee(foreign))

	assert.ErrorIs(t, editor.Authorize(owned), ErrForbidden)
	assert.ErrorIs(t, admin.Authorize(foreign), ErrNotFound)
	assert.NoError(t, owner.Authorize(owned))
}

func TestFormInput(t *testing.T) {
	private := false
	in := FormInput{
		Title:    "  Survey ",
		IsPublic: &private,
		Questions: []QuestionInput{
			{Label: "Rate", Type: QuestionRating, ValidationRules: datatypes.JSON(`{"min":1,"max":5}`)},
			{Label: "Team", Type: QuestionRadio, Options: []string{" Backend", "", "Design "}},
		},
	}

	c, err := in.Content()
	require.NoError(t, err)
	assert.Equal(t, "Survey", c.Title)
	assert.False(t, c.IsPublic)

	qs, err := in.BuildQuestions()
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, 1, qs[1].Position)
	assert.Equal(t, []string{"Backend", "Design"}, qs[1].OptionList())
	assert.Nil(t, qs[0].OptionList())

	c, err = FormInput{Title: "x"}.Content()
	require.NoError(t, err)
	assert.True(t, c.IsPublic)
}

func TestFormInput_Invalid(t *testing.T) {
	start := time.Now()
	end := start.Add(-time.Minute)
	_, err := FormInput{Title: "x", StartAt: &start, EndAt: &end}.Content()
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = FormInput{Questions: []QuestionInput{{Label: "pick", Type: QuestionDropdown}}}.BuildQuestions()
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	_, err = FormInput{Questions: []QuestionInput{{Label: "pick", Type: QuestionCheckbox, Options: []string{"a,b"}}}}.BuildQuestions()
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestCloneQuestions(t *testing.T) {
	src := []Question{{ID: 1, FormID: 2, Position: 5, Label: "a", ValidationRules: datatypes.JSON(`{}`)}}
	out := CloneQuestions(src, 9)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].ID)
	assert.Equal(t, uint(9), out[0].FormID)
	assert.Equal(t, 0, out[0].Position)

	out[0].ValidationRules[0] = '['
	assert.Equal(t, byte('{'), src[0].ValidationRules[0])
	assert.Equal(t, uint(1), src[0].ID)
}

func TestRoot(t *testing.T) {
	f := &Form{ID: 4}
	assert.Equal(t, uint(4), f.Root())
	assert.False(t, f.HasLineage())
	f.LineageRoot = ptrUint(2)
	assert.Equal(t, uint(2), f.Root())
	assert.True(t, f.HasLineage())
}
