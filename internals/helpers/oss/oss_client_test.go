package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURLAndExtractKeyRoundTrip(t *testing.T) {
	s := &OSSService{Endpoint: "https://oss-eu-central-1.aliyuncs.com", BucketName: "testimonials"}

	url := s.PublicURL("uploads/logos/acme-abc123.webp")
	assert.Equal(t, "https://testimonials.oss-eu-central-1.aliyuncs.com/uploads/logos/acme-abc123.webp", url)

	key, err := s.ExtractKeyFromPublicURL(url)
	require.NoError(t, err)
	assert.Equal(t, "uploads/logos/acme-abc123.webp", key)
}

func TestExtractKeyRejectsURLWithoutKey(t *testing.T) {
	s := &OSSService{Endpoint: "https://oss-eu-central-1.aliyuncs.com", BucketName: "testimonials"}

	_, err := s.ExtractKeyFromPublicURL("https://testimonials.oss-eu-central-1.aliyuncs.com/")
	require.Error(t, err)
}
