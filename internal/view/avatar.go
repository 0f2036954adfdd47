package view

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// AvatarURL returns the Gravatar image URL for an email address. Size and
// fallback style match the avatars shown next to comments.
func AvatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=100&d=retro", hex.EncodeToString(sum[:]))
}
