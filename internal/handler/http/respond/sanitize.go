package respond

import (
	"regexp"
)

var (
	// user:password@ in postgres:// and redis:// URLs
	urlPasswordPattern = regexp.MustCompile(`://([^:/@\s]*):([^@\s]+)@`)
	// password=... in key/value DSNs
	kvPasswordPattern = regexp.MustCompile(`(?i)(password=)([^\s&]+)`)
)

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = urlPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
