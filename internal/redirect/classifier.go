package redirect

import (
	"regexp"
	"strings"
)

// botPatterns are matched case-insensitively as substrings of the User-Agent.
var botPatterns = []string{
	"bot",
	"crawl",
	"spider",
	"preview",
}

// emailPattern accepts local-part @ domain with at least one dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsAutomatedClient reports whether the User-Agent looks like a crawler or
// link-preview client.
func IsAutomatedClient(userAgent string) bool {
	ua := strings.ToLower(userAgent)

	for _, pattern := range botPatterns {
		if strings.Contains(ua, pattern) {
			return true
		}
	}

	return false
}

// IsValidEmail reports whether candidate matches basic mailbox syntax.
func IsValidEmail(candidate string) bool {
	return emailPattern.MatchString(candidate)
}
