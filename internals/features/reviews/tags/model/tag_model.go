package model

import (
	"time"

	"github.com/google/uuid"
)

// TagModel is a user-scoped label attachable to reviews.
type TagModel struct {
	TagID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"tag_id"`
	TagUserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_tags_user_name" json:"tag_user_id"`
	TagName   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_tags_user_name" json:"tag_name"`

	TagCreatedAt time.Time `gorm:"autoCreateTime" json:"tag_created_at"`
}

func (TagModel) TableName() string {
	return "tags"
}
