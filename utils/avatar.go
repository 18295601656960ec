package utils

import (
	"net/url"
	"strings"
)

// DefaultAvatar membuat avatar inisial DiceBear (PNG 256px).
// Kalau nama lengkap kosong, username dipakai sebagai seed.
func DefaultAvatar(fullName, username string) string {
	seed := strings.TrimSpace(fullName)
	if seed == "" {
		seed = strings.TrimSpace(username)
	}
	return "https://api.dicebear.com/7.x/initials/png?seed=" + url.QueryEscape(seed) +
		"&size=256&backgroundType=gradientLinear"
}
