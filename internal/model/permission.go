package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action is the closed set of operations a permission can grant.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

// ValidAction reports whether a is one of the recognized actions.
func ValidAction(a Action) bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage:
		return true
	}
	return false
}

// Permission is a fine-grained grant of an action on a resource, e.g.
// ("carousel", update). A manage grant on a resource implies every action
// on it.
type Permission struct {
	ID       uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Resource string    `json:"resource" gorm:"size:64;not null"`
	Action   Action    `json:"action" gorm:"size:20;not null"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HasPermission reports whether perms grant action on resource, either
// directly or via a manage grant on the same resource.
func HasPermission(perms []Permission, resource string, action Action) bool {
	for _, p := range perms {
		if p.Resource != resource {
			continue
		}
		if p.Action == action || p.Action == ActionManage {
			return true
		}
	}
	return false
}
