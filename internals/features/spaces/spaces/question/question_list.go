package question

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SpaceQuestion is one ordered prompt shown to a reviewer. Array position is
// the ask order; ID is stable across reorders and is the only identity other
// code may reference.
type SpaceQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question,omitempty"`
}

// Add appends a new question with a fresh id.
func Add(list []SpaceQuestion, text string) ([]SpaceQuestion, SpaceQuestion) {
	q := SpaceQuestion{ID: uuid.NewString(), Question: text}
	return append(list, q), q
}

// Remove deletes the question with the given id. Removing an unknown id is a
// no-op, not an error.
func Remove(list []SpaceQuestion, id string) []SpaceQuestion {
	for i, q := range list {
		if q.ID == id {
			out := make([]SpaceQuestion, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}

// Reorder moves the question with the given id to newIndex, clamped to
// [0, len-1]. Ids are untouched and the relative order of all other
// questions is preserved. Returns false when id is not in the list.
func Reorder(list []SpaceQuestion, id string, newIndex int) ([]SpaceQuestion, bool) {
	oldIndex := -1
	for i, q := range list {
		if q.ID == id {
			oldIndex = i
			break
		}
	}
	if oldIndex == -1 {
		return list, false
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(list)-1 {
		newIndex = len(list) - 1
	}
	if newIndex == oldIndex {
		return list, true
	}

	out := make([]SpaceQuestion, 0, len(list))
	out = append(out, list[:oldIndex]...)
	out = append(out, list[oldIndex+1:]...)
	out = append(out[:newIndex], append([]SpaceQuestion{list[oldIndex]}, out[newIndex:]...)...)
	return out, true
}

// Normalize assigns fresh ids to questions submitted without one and reports
// an error on duplicate ids. Question text carries no uniqueness constraint.
func Normalize(list []SpaceQuestion) ([]SpaceQuestion, error) {
	seen := make(map[string]struct{}, len(list))
	out := make([]SpaceQuestion, len(list))
	for i, q := range list {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id: %s", q.ID)
		}
		seen[q.ID] = struct{}{}
		out[i] = q
	}
	return out, nil
}

// ValidateIDs checks id uniqueness without mutating the list.
func ValidateIDs(list []SpaceQuestion) error {
	seen := make(map[string]struct{}, len(list))
	for _, q := range list {
		if q.ID == "" {
			return errors.New("question id must not be empty")
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("duplicate question id: %s", q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}
