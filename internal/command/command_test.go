package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillpulse/skillpulse/internal/category"
)

func TestProfileCommand_AllApplied(t *testing.T) {
	u, res := ProfileCommand([]string{
		"level=Senior",
		"years=6.5",
		"focus=security, logic",
		"goal=lead reviews",
		"assess=security:4,logic:2",
	})

	require.True(t, res.OK())
	assert.Len(t, res.Applied(), 5)
	assert.Equal(t, category.Senior, *u.Level)
	assert.Equal(t, 6.5, *u.YearsOfExperience)
	assert.Equal(t, []category.Category{category.Security, category.Logic}, *u.FocusAreas)
	assert.Equal(t, "lead reviews", *u.Goal)
	assert.Equal(t, map[category.Category]int{category.Security: 4, category.Logic: 2}, *u.SelfAssessment)
}

func TestProfileCommand_Statuses(t *testing.T) {
	tests := []struct {
		token string
		want  Status
	}{
		{"level=mid", Applied},
		{"level=wizard", Invalid},
		{"years=-1", Invalid},
		{"years=abc", Invalid},
		{"focus=logic,logic", Invalid},
		{"focus=cooking", Invalid},
		{"focus=logic,security,bug-fix,performance,refactoring,logic", Invalid},
		{"assess=logic:9", Invalid},
		{"assess=logic", Invalid},
		{"color=blue", Unrecognized},
		{"nonsense", Unrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, res := ProfileCommand([]string{tt.token})
			require.Len(t, res.Outcomes, 1)
			assert.Equal(t, tt.want, res.Outcomes[0].Status)
		})
	}
}

func TestProfileCommand_InvalidNotApplied(t *testing.T) {
	u, res := ProfileCommand([]string{"level=wizard", "goal=ok", "shoe=42"})

	assert.Nil(t, u.Level)
	require.NotNil(t, u.Goal)
	assert.Equal(t, "ok", *u.Goal)
	assert.False(t, res.OK())
	assert.Len(t, res.Invalid(), 1)
	assert.Len(t, res.Unrecognized(), 1)
	assert.Len(t, res.Applied(), 1)
}

func TestAnswerIndex(t *testing.T) {
	for token, want := range map[string]int{"1": 0, "2": 1, "3": 2, " 4 ": 3} {
		got, err := AnswerIndex(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got)
	}
	for _, token := range []string{"0", "5", "a", ""} {
		_, err := AnswerIndex(token)
		assert.Error(t, err, token)
	}
}
