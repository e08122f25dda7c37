package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueConflictFields(t *testing.T) {
	assert.Empty(t, uniqueConflictFields(false, false))

	conflicts := uniqueConflictFields(true, false)
	assert.Contains(t, conflicts, "username")
	assert.NotContains(t, conflicts, "email")

	conflicts = uniqueConflictFields(true, true)
	assert.Len(t, conflicts, 2)
}

func TestIncorrectAnswerFieldsOptions(t *testing.T) {
	fields := incorrectAnswerFields{
		IncorrectAnswer1: "Rome",
		IncorrectAnswer2: "  ",
		IncorrectAnswer3: "Berlin",
	}
	assert.Equal(t, []string{"Rome", "Berlin"}, fields.options())

	assert.Empty(t, incorrectAnswerFields{}.options())
}

func TestStatisticsSections(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"category", "difficulty", "question", "users", "activity"},
		statisticsSections)
}
