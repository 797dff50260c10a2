package submission

type AnswerInput struct {
	QuestionID uint   `json:"question_id" binding:"required" example:"1"`
	Value      string `json:"value" example:"4"`
}

// SubmitDTO is the request body of a submission. The submitter is taken from
// the bearer token, never from the body.
type SubmitDTO struct {
	Answers []AnswerInput `json:"answers" binding:"dive"`
}

type DistributionEntry struct {
	QuestionID uint   `json:"question_id"`
	Value      string `json:"answer"`
	Count      int64  `json:"count"`
}

type Stats struct {
	FormID           uint                `json:"form_id"`
	Title            string              `json:"title"`
	TotalSubmissions int64               `json:"total_submissions"`
	Distribution     []DistributionEntry `json:"distribution"`
}

// Counts flattens the distribution into question id -> value -> count.
func (s *Stats) Counts() map[uint]map[string]int64 {
	out := make(map[uint]map[string]int64)
	for _, e := range s.Distribution {
		if out[e.QuestionID] == nil {
			out[e.QuestionID] = make(map[string]int64)
		}
		out[e.QuestionID][e.Value] += e.Count
	}
	return out
}
