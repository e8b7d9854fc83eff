package pkglog

import "strings"

// RedactEmail masks an email address for safe logging.
//
//	"john.doe@example.com" -> "jo***@example.com"
//	"ab@example.com"       -> "***@example.com"
//
// Values that are not a single local@domain pair become "***@***".
func RedactEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || domain == "" || strings.Contains(domain, "@") {
		return "***@***"
	}

	if len(local) > 2 {
		return local[:2] + "***@" + domain
	}

	return "***@" + domain
}
