package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask("  Reply to accountant  ", "", "")

	assert.Equal(t, "Reply to accountant", task.Name)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, time.Now().Format("2006-01-02"), task.DueDate)
	require.NoError(t, task.Validate())
}

func TestTaskValidate(t *testing.T) {
	task := NewTask("Pay invoice", PriorityHigh, "2026-09-01")
	require.NoError(t, task.Validate())

	task.Status = "archived"
	err := task.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status")

	task = NewTask("", PriorityLow, "")
	assert.Error(t, task.Validate())

	task = NewTask("Bad date", PriorityLow, "tomorrow")
	assert.Error(t, task.Validate())
}

func TestPriorityLevelRoundTrip(t *testing.T) {
	assert.Equal(t, 1, PriorityHigh.Level())
	assert.Equal(t, 2, PriorityMedium.Level())
	assert.Equal(t, 3, PriorityLow.Level())

	for _, p := range []TaskPriority{PriorityHigh, PriorityMedium, PriorityLow} {
		assert.Equal(t, p, PriorityFromLevel(p.Level()))
	}
	// Unknown levels collapse to medium.
	assert.Equal(t, PriorityMedium, PriorityFromLevel(0))
	assert.Equal(t, PriorityMedium, PriorityFromLevel(7))
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "To Do", StatusTodo.Label())
	assert.Equal(t, "In Progress", StatusInProgress.Label())
	assert.Equal(t, "Done", StatusDone.Label())

	for _, in := range []string{"To Do", "todo", "to-do"} {
		s, err := StatusFromLabel(in)
		require.NoError(t, err)
		assert.Equal(t, StatusTodo, s)
	}
	s, err := StatusFromLabel("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusDone, s)

	_, err = StatusFromLabel("someday")
	assert.Error(t, err)
}
