package submission

import (
	"fmt"
	"strings"
	"time"

	"github.com/linskybing/formflow/internal/domain/form"
)

// Admit runs the checks that need only the version row, in order: existence,
// window start, window end, public access. The first failure wins.
func Admit(f *form.Form, submitterID *uint, now time.Time) error {
	if f == nil || f.IsDeleted {
		return form.ErrNotFound
	}
	if err := f.CheckWindow(now); err != nil {
		return err
	}
	if !f.IsPublic && submitterID == nil {
		return form.ErrUnauthorized
	}
	return nil
}

// BuildAnswers checks the answers against the version's questions and keeps
// their request order.
func BuildAnswers(questions []form.Question, in []AnswerInput) ([]Answer, error) {
	byID := make(map[uint]form.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answered := make(map[uint]bool, len(in))
	answers := make([]Answer, 0, len(in))
	for _, a := range in {
		if _, ok := byID[a.QuestionID]; !ok {
			return nil, fmt.Errorf("%w: question %d", form.ErrInvalidAnswer, a.QuestionID)
		}
		if strings.TrimSpace(a.Value) != "" {
			answered[a.QuestionID] = true
		}
		answers = append(answers, Answer{QuestionID: a.QuestionID, Value: a.Value})
	}

	for _, q := range questions {
		if q.IsRequired && !answered[q.ID] {
			return nil, fmt.Errorf("%w: %q", form.ErrMissingRequiredAnswer, q.Label)
		}
	}
	return answers, nil
}
