package form

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type QuestionInput struct {
	Label           string         `json:"label" binding:"required,max=500" example:"How satisfied are you?"`
	Type            QuestionType   `json:"type" binding:"required,oneof=Text Textarea Number Email Rating Dropdown Radio Checkbox Date" example:"Rating"`
	IsRequired      bool           `json:"is_required"`
	HelpText        string         `json:"help_text"`
	Placeholder     string         `json:"placeholder"`
	DefaultValue    string         `json:"default_value"`
	ValidationRules datatypes.JSON `json:"validation_rules" swaggertype:"object"`
	Options         []string       `json:"options"`
}

// FormInput carries the full content of a form version. Both creation and
// edits send it; omitted fields are reset, not preserved.
type FormInput struct {
	Title                string          `json:"title" binding:"required,max=200" example:"Team survey"`
	Description          string          `json:"description"`
	IsPublished          bool            `json:"is_published"`
	IsPublic             *bool           `json:"is_public"`
	StartAt              *time.Time      `json:"start_at"`
	EndAt                *time.Time      `json:"end_at"`
	OneSubmissionPerUser bool            `json:"one_submission_per_user"`
	Questions            []QuestionInput `json:"questions" binding:"dive"`
}

type CreateFormDTO struct {
	FormInput
}

type EditFormDTO struct {
	FormInput
	// ExpectedVersion, when set, must equal the stored version.
	ExpectedVersion *int `json:"expected_version" binding:"omitempty,min=1"`
}

// Content converts the input; forms are public unless stated otherwise.
func (in FormInput) Content() (Content, error) {
	c := Content{
		Title:                strings.TrimSpace(in.Title),
		Description:          in.Description,
		IsPublished:          in.IsPublished,
		IsPublic:             true,
		StartAt:              in.StartAt,
		EndAt:                in.EndAt,
		OneSubmissionPerUser: in.OneSubmissionPerUser,
	}
	if in.IsPublic != nil {
		c.IsPublic = *in.IsPublic
	}
	if err := c.ValidateWindow(); err != nil {
		return Content{}, err
	}
	return c, nil
}

func (in FormInput) BuildQuestions() ([]Question, error) {
	qs := make([]Question, 0, len(in.Questions))
	for i, qi := range in.Questions {
		q := Question{
			Position:        i,
			Label:           strings.TrimSpace(qi.Label),
			Type:            qi.Type,
			IsRequired:      qi.IsRequired,
			HelpText:        qi.HelpText,
			Placeholder:     qi.Placeholder,
			DefaultValue:    qi.DefaultValue,
			ValidationRules: qi.ValidationRules,
		}
		opts := make([]string, 0, len(qi.Options))
		for _, o := range qi.Options {
			o = strings.TrimSpace(o)
			if o == "" {
				continue
			}
			if strings.Contains(o, OptionSeparator) {
				return nil, fmt.Errorf("%w: option %q of question %d contains %q", ErrInvalidQuestion, o, i+1, OptionSeparator)
			}
			opts = append(opts, o)
		}
		if qi.Type.IsChoice() && len(opts) == 0 {
			return nil, fmt.Errorf("%w: question %d needs at least one option", ErrInvalidQuestion, i+1)
		}
		q.Options = strings.Join(opts, OptionSeparator)
		qs = append(qs, q)
	}
	return qs, nil
}

// EditResult tells the caller whether the edit reused the row or forked.
type EditResult struct {
	Form       *Form `json:"form"`
	Forked     bool  `json:"forked"`
	PreviousID uint  `json:"previous_id"`
}

type VersionItem struct {
	ID          uint   `json:"id"`
	Version     int    `json:"version"`
	Title       string `json:"title"`
	IsPublished bool   `json:"is_published"`
	IsPublic    bool   `json:"is_public"`
	IsDeleted   bool   `json:"is_deleted"`
}

type LineageVersions struct {
	LineageRoot uint          `json:"lineage_root"`
	Items       []VersionItem `json:"items"`
}
