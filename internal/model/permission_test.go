package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	perms := []Permission{
		{Resource: "carousel", Action: ActionUpdate},
		{Resource: "categories", Action: ActionManage},
	}

	tests := []struct {
		name     string
		resource string
		action   Action
		want     bool
	}{
		{"direct grant matches", "carousel", ActionUpdate, true},
		{"direct grant does not widen", "carousel", ActionDelete, false},
		{"manage implies create", "categories", ActionCreate, true},
		{"manage implies delete", "categories", ActionDelete, true},
		{"manage matches itself", "categories", ActionManage, true},
		{"manage is scoped to its resource", "carousel", ActionManage, false},
		{"unknown resource", "gallery", ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(perms, tt.resource, tt.action))
		})
	}

	t.Run("empty grant set", func(t *testing.T) {
		assert.False(t, HasPermission(nil, "carousel", ActionRead))
	})
}

func TestValidAction(t *testing.T) {
	for _, a := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage} {
		assert.True(t, ValidAction(a))
	}
	assert.False(t, ValidAction(Action("publish")))
	assert.False(t, ValidAction(Action("")))
}
