package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSlug(t *testing.T) {
	c := Category{Name: "General Knowledge"}
	c.EnsureSlug()
	assert.Equal(t, "general-knowledge", c.Slug)

	c = Category{Name: "Science", Slug: "sci"}
	c.EnsureSlug()
	assert.Equal(t, "sci", c.Slug)
}

func TestValidateIncorrectAnswers(t *testing.T) {
	err := ValidateIncorrectAnswers(TypeMultipleChoice, []string{"Paris", "Rome", "Berlin"})
	assert.NoError(t, err)

	err = ValidateIncorrectAnswers(TypeMultipleChoice, []string{})
	assert.Error(t, err)

	err = ValidateIncorrectAnswers(TypeMultipleChoice, []string{"a", "b", "c", "d"})
	assert.Error(t, err)
}

func TestTrueFalseAllowsOnlyOneIncorrectAnswer(t *testing.T) {
	err := ValidateIncorrectAnswers(TypeTrueFalse, []string{"False"})
	assert.NoError(t, err)

	err = ValidateIncorrectAnswers(TypeTrueFalse, []string{"False", "Maybe"})
	assert.ErrorIs(t, err, ErrTooManyIncorrectAnswers)
}

func TestValidChoices(t *testing.T) {
	assert.True(t, ValidDifficulty(DifficultyEasy))
	assert.True(t, ValidDifficulty(DifficultyHard))
	assert.False(t, ValidDifficulty("extreme"))

	assert.True(t, ValidType(TypeMultipleChoice))
	assert.True(t, ValidType(TypeTrueFalse))
	assert.False(t, ValidType("essay"))
}

func TestCapLimit(t *testing.T) {
	assert.Equal(t, PublicListCap, CapLimit(""))
	assert.Equal(t, PublicListCap, CapLimit("abc"))
	assert.Equal(t, PublicListCap, CapLimit("-3"))
	assert.Equal(t, 10, CapLimit("10"))
	assert.Equal(t, 0, CapLimit("0"))
	assert.Equal(t, 200, CapLimit("200"))
}

func TestRandomOrderClauseUsesKnownKeys(t *testing.T) {
	valid := map[string]bool{}
	for _, key := range RandomOrderKeys {
		for _, other := range RandomOrderKeys {
			valid[fmt.Sprintf("ORDER BY q.%s ASC, q.%s DESC", key, other)] = true
		}
	}
	for i := 0; i < 100; i++ {
		clause := RandomOrderClause()
		require.True(t, valid[clause], "unexpected clause %q", clause)
	}
}
