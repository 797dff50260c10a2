package form

type EditOutcome string

const (
	OutcomeInPlace EditOutcome = "in_place"
	OutcomeForked  EditOutcome = "forked"
)

// EditState is what the store reported about the target version, read under
// the row lock.
type EditState struct {
	HasSubmissions bool
	// HeadVersion is the highest version in the target's lineage.
	HeadVersion int
	HeadDeleted bool
}

// PlanEdit decides between mutating existing in place and forking a new
// version. The returned form is either a modified copy of existing (same id)
// or a new unsaved row. existing itself is never modified.
func PlanEdit(existing *Form, state EditState, expectedVersion *int, content Content, questions []Question) (*Form, EditOutcome, error) {
	if existing.IsDeleted {
		return nil, "", ErrVersionDeleted
	}
	if expectedVersion != nil && *expectedVersion != existing.Version {
		return nil, "", ErrConcurrencyConflict
	}
	if state.HeadVersion > existing.Version {
		if state.HeadDeleted {
			return nil, "", ErrHeadInTrash
		}
		return nil, "", ErrConcurrencyConflict
	}

	if !state.HasSubmissions {
		next := *existing
		next.Content = content
		next.Version = existing.Version + 1
		next.Questions = CloneQuestions(questions, existing.ID)
		return &next, OutcomeInPlace, nil
	}

	root := existing.Root()
	next := &Form{
		Version:     existing.Version + 1,
		LineageRoot: &root,
		TenantID:    existing.TenantID,
		CreatedBy:   existing.CreatedBy,
		Content:     content,
		Questions:   CloneQuestions(questions, 0),
	}
	return next, OutcomeForked, nil
}
