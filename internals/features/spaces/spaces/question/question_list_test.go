package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(list []SpaceQuestion) []string {
	out := make([]string, len(list))
	for i, q := range list {
		out[i] = q.ID
	}
	return out
}

func sample() []SpaceQuestion {
	return []SpaceQuestion{
		{ID: "q1", Question: "What did you like?"},
		{ID: "q2", Question: "Would you recommend us?"},
		{ID: "q3", Question: "Anything to improve?"},
	}
}

func TestAddAppendsWithFreshID(t *testing.T) {
	list, q := Add(sample(), "How was onboarding?")

	require.Len(t, list, 4)
	assert.Equal(t, q.ID, list[3].ID)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "How was onboarding?", list[3].Question)
	assert.NoError(t, ValidateIDs(list))
}

func TestRemoveIsIdempotent(t *testing.T) {
	once := Remove(sample(), "q2")
	twice := Remove(once, "q2")

	assert.Equal(t, []string{"q1", "q3"}, ids(once))
	assert.Equal(t, once, twice)
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	list := Remove(sample(), "nope")
	assert.Equal(t, []string{"q1", "q2", "q3"}, ids(list))
}

func TestReorderMovesToFront(t *testing.T) {
	list, ok := Reorder(sample(), "q2", 0)

	require.True(t, ok)
	assert.Equal(t, []string{"q2", "q1", "q3"}, ids(list))
}

func TestReorderClampsIndex(t *testing.T) {
	list, ok := Reorder(sample(), "q1", 99)
	require.True(t, ok)
	assert.Equal(t, []string{"q2", "q3", "q1"}, ids(list))

	list, ok = Reorder(sample(), "q3", -5)
	require.True(t, ok)
	assert.Equal(t, []string{"q3", "q1", "q2"}, ids(list))
}

func TestReorderPreservesSetAndRelativeOrder(t *testing.T) {
	list := []SpaceQuestion{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
	}
	moved, ok := Reorder(list, "b", 3)

	require.True(t, ok)
	assert.Equal(t, []string{"a", "c", "d", "b", "e"}, ids(moved))
	assert.ElementsMatch(t, ids(list), ids(moved))
}

func TestReorderUnknownID(t *testing.T) {
	list, ok := Reorder(sample(), "zzz", 1)
	assert.False(t, ok)
	assert.Equal(t, []string{"q1", "q2", "q3"}, ids(list))
}

func TestNormalizeAssignsMissingIDs(t *testing.T) {
	list, err := Normalize([]SpaceQuestion{
		{ID: "", Question: "one"},
		{ID: "fixed", Question: "two"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, list[0].ID)
	assert.Equal(t, "fixed", list[1].ID)
}

func TestNormalizeRejectsDuplicateIDs(t *testing.T) {
	_, err := Normalize([]SpaceQuestion{{ID: "dup"}, {ID: "dup"}})
	assert.Error(t, err)
}

func TestValidateIDs(t *testing.T) {
	assert.NoError(t, ValidateIDs(sample()))
	assert.Error(t, ValidateIDs([]SpaceQuestion{{ID: ""}}))
	assert.Error(t, ValidateIDs([]SpaceQuestion{{ID: "x"}, {ID: "x"}}))
}
