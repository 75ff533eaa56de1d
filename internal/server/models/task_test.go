package models

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{in: "baixa", want: PriorityBaixa},
		{in: "MEDIA", want: PriorityMedia},
		{in: " alta ", want: PriorityAlta},
		{in: "low", want: PriorityBaixa},
		{in: "medium", want: PriorityMedia},
		{in: "High", want: PriorityAlta},
		{in: "urgent", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, common.ErrorValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestTaskPatch_ApplyOnlyPresentFields(t *testing.T) {
	task := &Task{ID: 1, UserID: 7, Description: "Buy milk", Priority: PriorityBaixa}

	done := true
	patch := TaskPatch{Completed: &done}
	assert.False(t, patch.Empty())

	patch.Apply(task)

	assert.True(t, task.Completed)
	assert.Equal(t, "Buy milk", task.Description)
	assert.Equal(t, PriorityBaixa, task.Priority)

	desc := "Buy bread"
	prio := PriorityAlta
	TaskPatch{Description: &desc, Priority: &prio}.Apply(task)

	assert.Equal(t, "Buy bread", task.Description)
	assert.Equal(t, PriorityAlta, task.Priority)
	assert.True(t, task.Completed)
	assert.True(t, TaskPatch{}.Empty())
}
