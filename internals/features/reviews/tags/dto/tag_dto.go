package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"testimonial_backend/internals/features/reviews/tags/model"
)

type TagRequest struct {
	TagName string `json:"tag_name" validate:"required,min=1,max=50"`
}

type TagResponse struct {
	TagID        uuid.UUID `json:"tag_id"`
	TagName      string    `json:"tag_name"`
	TagCreatedAt time.Time `json:"tag_created_at"`
}

func (r TagRequest) Normalized() string {
	return strings.TrimSpace(r.TagName)
}

func ToTagResponse(m *model.TagModel) TagResponse {
	return TagResponse{
		TagID:        m.TagID,
		TagName:      m.TagName,
		TagCreatedAt: m.TagCreatedAt,
	}
}

func ToTagResponses(ms []model.TagModel) []TagResponse {
	out := make([]TagResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToTagResponse(&ms[i]))
	}
	return out
}
