package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpaceModel struct {
	SpaceID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"space_id"`
	SpaceUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"space_user_id"`
	SpaceName   string    `gorm:"type:varchar(100);not null" json:"space_name"`
	SpaceSlug   string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"space_slug"`

	SpaceCreatedAt time.Time      `gorm:"autoCreateTime" json:"space_created_at"`
	SpaceUpdatedAt time.Time      `gorm:"autoUpdateTime" json:"space_updated_at"`
	SpaceDeletedAt gorm.DeletedAt `gorm:"column:space_deleted_at" json:"space_deleted_at,omitempty"`

	// exactly one active configuration per space
	Setting *SpaceSettingModel `gorm:"foreignKey:SpaceSettingSpaceID;references:SpaceID" json:"space_setting,omitempty"`
}

func (SpaceModel) TableName() string {
	return "spaces"
}
