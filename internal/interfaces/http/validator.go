package http

import (
	"strings"
	"unicode/utf8"

	"github.com/realmcrm/backend/internal/entities"
)

// Input validation constants
const (
	MaxNameLength    = 255
	MaxPhoneLength   = 50
	MaxCommentLength = 10000
)

var leadStatuses = map[string]bool{
	entities.StatusNew:          true,
	entities.StatusContacted:    true,
	entities.StatusQualified:    true,
	entities.StatusWon:          true,
	entities.StatusLost:         true,
	entities.StatusDisqualified: true,
}

var activityTypes = map[string]bool{
	entities.ActivityCall:     true,
	entities.ActivityWhatsApp: true,
	entities.ActivityEmail:    true,
	entities.ActivityMeeting:  true,
	entities.ActivityNote:     true,
}

func ValidLeadStatus(s string) bool {
	return leadStatuses[s]
}

func ValidActivityType(s string) bool {
	return activityTypes[s]
}

// SanitizeString removes null bytes and invalid UTF-8
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")

	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for _, r := range s {
			if r != utf8.RuneError {
				v = append(v, r)
			}
		}
		s = string(v)
	}
	return s
}

// ValidateLength checks if string is within bounds
func ValidateLength(s string, min, max int) bool {
	l := len(s)
	return l >= min && l <= max
}
