package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityKind enumerates the auditable actions recorded by the system.
type ActivityKind string

const (
	ActivityTestimonialAdd     ActivityKind = "TESTIMONIAL_ADD"
	ActivityTestimonialApprove ActivityKind = "TESTIMONIAL_APPROVE"
	ActivityTestimonialDelete  ActivityKind = "TESTIMONIAL_DELETE"
	ActivityCategoryAdd        ActivityKind = "CATEGORY_ADD"
	ActivityCategoryUpdate     ActivityKind = "CATEGORY_UPDATE"
	ActivityCategoryDelete     ActivityKind = "CATEGORY_DELETE"
	ActivityCarouselAdd        ActivityKind = "CAROUSEL_ADD"
	ActivityCarouselUpdate     ActivityKind = "CAROUSEL_UPDATE"
	ActivityCarouselDelete     ActivityKind = "CAROUSEL_DELETE"
	ActivityTeamAdd            ActivityKind = "TEAM_ADD"
	ActivityTeamUpdate         ActivityKind = "TEAM_UPDATE"
	ActivityTeamDelete         ActivityKind = "TEAM_DELETE"
	ActivityGalleryAdd         ActivityKind = "GALLERY_ADD"
	ActivityGalleryDelete      ActivityKind = "GALLERY_DELETE"
	ActivitySettingsUpdate     ActivityKind = "SETTINGS_UPDATE"
	ActivityDonationAdd        ActivityKind = "DONATION_ADD"
	ActivityUserRoleUpdate     ActivityKind = "USER_ROLE_UPDATE"
	ActivityUserPermsUpdate    ActivityKind = "USER_PERMISSIONS_UPDATE"
	ActivityLogin              ActivityKind = "LOGIN"
	ActivityLogout             ActivityKind = "LOGOUT"
)

// Activity is an append-only audit entry. Records are immutable once
// created and are never deleted by normal flow.
type Activity struct {
	ID        uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	ActorID   uuid.UUID         `json:"actor_id" gorm:"type:char(36);not null;index"`
	Kind      ActivityKind      `json:"kind" gorm:"size:40;not null;index"`
	Detail    string            `json:"detail" gorm:"type:text"`
	Metadata  datatypes.JSONMap `json:"metadata" gorm:"type:json"`
	CreatedAt time.Time         `json:"created_at"`

	// Relations
	Actor User `json:"actor,omitempty" gorm:"foreignKey:ActorID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
