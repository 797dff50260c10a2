package submission

import (
	"fmt"
	"time"
)

// Submission is one immutable answer-set recorded against a single form
// version.
type Submission struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FormID      uint      `json:"form_id" gorm:"not null;index"`
	SubmitterID *uint     `json:"submitter_id" gorm:"index"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"not null"`
	// DedupKey is only set for forms accepting one submission per user; the
	// unique index makes concurrent duplicates fail on insert.
	DedupKey *string  `json:"-" gorm:"size:64;uniqueIndex"`
	Answers  []Answer `json:"answers" gorm:"foreignKey:SubmissionID"`
}

func (Submission) TableName() string {
	return "submissions"
}

type Answer struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	SubmissionID uint   `json:"submission_id" gorm:"not null;index"`
	QuestionID   uint   `json:"question_id" gorm:"not null;index"`
	Value        string `json:"value" gorm:"type:text"`
}

func (Answer) TableName() string {
	return "answers"
}

func DedupKey(formID, submitterID uint) string {
	return fmt.Sprintf("%d:%d", formID, submitterID)
}

func (s *Submission) IsGuest() bool {
	return s.SubmitterID == nil
}
