package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageIsPlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		stage Stage
		want  bool
	}{
		{"real stage", Stage{ID: "s1", Name: "Machining"}, false},
		{"empty name", Stage{ID: "s1", Name: ""}, true},
		{"placeholder prefix", Stage{ID: PlaceholderPrefix + "abc", Name: "x"}, true},
		{"unsaved but named", Stage{ID: "", Name: "New stage"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stage.IsPlaceholder())
		})
	}
}

func TestStageIsPersisted(t *testing.T) {
	assert.True(t, (&Stage{ID: "s1", Name: "n"}).IsPersisted())
	assert.False(t, (&Stage{ID: "", Name: "n"}).IsPersisted())
	assert.False(t, (&Stage{ID: PlaceholderPrefix + "x", Name: "n"}).IsPersisted())
}

func TestProjectValidate(t *testing.T) {
	p := &Project{Name: "Conveyor line"}
	assert.NoError(t, p.Validate())

	assert.Error(t, (&Project{}).Validate())
	assert.Error(t, (&Project{Name: "n", Status: "bogus"}).Validate())
}

func TestProductValidate(t *testing.T) {
	p := &Product{Name: "Frame", ProjectID: "pr1"}
	assert.NoError(t, p.Validate())

	assert.Error(t, (&Product{ProjectID: "pr1"}).Validate())
	assert.Error(t, (&Product{Name: "Frame"}).Validate())
	assert.Error(t, (&Product{Name: "Frame", ProjectID: "pr1", Status: "nope"}).Validate())
}
