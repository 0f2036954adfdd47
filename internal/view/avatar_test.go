package view

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvatarURL(t *testing.T) {
	url := AvatarURL("a@x.com")
	assert.Regexp(t, regexp.MustCompile(`^https://www\.gravatar\.com/avatar/[0-9a-f]{32}\?s=100&d=retro$`), url)

	// Case and surrounding whitespace are normalized before hashing.
	assert.Equal(t, url, AvatarURL(" A@X.COM "))

	// Different addresses hash differently.
	assert.NotEqual(t, url, AvatarURL("b@x.com"))
}
