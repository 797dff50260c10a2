package form

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionText     QuestionType = "Text"
	QuestionTextarea QuestionType = "Textarea"
	QuestionNumber   QuestionType = "Number"
	QuestionEmail    QuestionType = "Email"
	QuestionRating   QuestionType = "Rating"
	QuestionDropdown QuestionType = "Dropdown"
	QuestionRadio    QuestionType = "Radio"
	QuestionCheckbox QuestionType = "Checkbox"
	QuestionDate     QuestionType = "Date"
)

// OptionSeparator delimits choice options in Question.Options.
const OptionSeparator = ","

// LegacyOwner is the created_by value of forms that predate ownership
// tracking. Any tenant member may see and edit them.
const LegacyOwner uint = 0

func (t QuestionType) IsChoice() bool {
	switch t {
	case QuestionDropdown, QuestionRadio, QuestionCheckbox:
		return true
	}
	return false
}

type Question struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	FormID          uint           `json:"form_id" gorm:"not null;index"`
	Position        int            `json:"position" gorm:"not null"`
	Label           string         `json:"label" gorm:"size:500;not null"`
	Type            QuestionType   `json:"type" gorm:"size:20;not null"`
	IsRequired      bool           `json:"is_required"`
	HelpText        string         `json:"help_text"`
	Placeholder     string         `json:"placeholder"`
	DefaultValue    string         `json:"default_value"`
	ValidationRules datatypes.JSON `json:"validation_rules,omitempty"`
	Options         string         `json:"options"`
}

func (Question) TableName() string {
	return "questions"
}

func (q Question) OptionList() []string {
	if q.Options == "" {
		return nil
	}
	return strings.Split(q.Options, OptionSeparator)
}

// Content is the author-controlled part of a form version. Edits replace it
// wholesale.
type Content struct {
	Title                string     `json:"title" gorm:"size:200;not null"`
	Description          string     `json:"description" gorm:"type:text"`
	IsPublished          bool       `json:"is_published" gorm:"not null"`
	IsPublic             bool       `json:"is_public" gorm:"not null"`
	StartAt              *time.Time `json:"start_at"`
	EndAt                *time.Time `json:"end_at"`
	OneSubmissionPerUser bool       `json:"one_submission_per_user" gorm:"not null"`
}

// Form is one version of a form. Versions sharing LineageRoot form a lineage;
// the root is the id of version 1.
type Form struct {
	ID          uint  `json:"id" gorm:"primaryKey"`
	Version     int   `json:"version" gorm:"not null;default:1;uniqueIndex:idx_forms_lineage_version,priority:2"`
	LineageRoot *uint `json:"lineage_root" gorm:"uniqueIndex:idx_forms_lineage_version,priority:1"`
	TenantID    uint  `json:"tenant_id" gorm:"not null;index"`
	CreatedBy   uint  `json:"created_by" gorm:"not null;default:0;index"`

	Content `gorm:"embedded"`

	IsDeleted bool       `json:"is_deleted" gorm:"not null;default:false;index"`
	DeletedAt *time.Time `json:"deleted_at"`
	DeletedBy *uint      `json:"deleted_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:FormID"`
}

func (Form) TableName() string {
	return "forms"
}

// Root returns the lineage id, falling back to the form's own id for rows
// written before lineage tracking.
func (f *Form) Root() uint {
	if f.LineageRoot != nil && *f.LineageRoot != 0 {
		return *f.LineageRoot
	}
	return f.ID
}

func (f *Form) HasLineage() bool {
	return f.LineageRoot != nil && *f.LineageRoot != 0
}

// CloneQuestions deep-copies qs for formID. Copies get fresh identities.
func CloneQuestions(qs []Question, formID uint) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		c := q
		c.ID = 0
		c.FormID = formID
		c.Position = i
		if q.ValidationRules != nil {
			c.ValidationRules = append(datatypes.JSON(nil), q.ValidationRules...)
		}
		out[i] = c
	}
	return out
}
