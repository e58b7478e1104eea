// Package redaction masks credentials in text that leaves the process through
// logs, error messages or printed configuration.
package redaction

import (
	"net/url"
	"regexp"
	"strings"
)

const replacement = "[REDACTED]"

// tokens are replaced outright.
var tokens = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-z0-9._~+/-]+=*`),             // Authorization: Bearer ...
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+[.\w-]*`), // JWT tokens
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),                           // AWS access key IDs
	regexp.MustCompile(`ghp_[a-zA-Z0-9]+`),                           // GitHub PATs
	regexp.MustCompile(`(?i)sk_(?:live|test)_[a-zA-Z0-9]+`),          // Stripe keys
}

// assignments keep their first group (the key) and mask what follows it.
var assignments = []*regexp.Regexp{
	regexp.MustCompile(`(?i)((?:password|secret|token|api[_-]?key)"?\s*[:=]\s*"?)[^\s",&]+`),
	regexp.MustCompile(`(//[^/\s:@]+:)[^/\s@]+(@)`), // user:password@ in URLs
}

// sensitiveParams are query parameter names whose values URL masks.
var sensitiveParams = []string{"token", "access_token", "api_key", "apikey", "key", "password", "secret"}

// Text masks tokens, keys, and key=value credentials found anywhere in s.
func Text(s string) string {
	for _, re := range tokens {
		s = re.ReplaceAllString(s, replacement)
	}
	for _, re := range assignments {
		if re.NumSubexp() == 2 {
			s = re.ReplaceAllString(s, "${1}"+replacement+"${2}")
			continue
		}
		s = re.ReplaceAllString(s, "${1}"+replacement)
	}
	return s
}

// URL masks the password in userinfo and the values of sensitive query
// parameters. Strings that do not parse as URLs fall back to Text.
func URL(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return Text(raw)
	}
	if u.RawQuery != "" {
		q := u.Query()
		for name := range q {
			if isSensitive(name) {
				q.Set(name, "xxxxx")
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.Redacted()
}

// Error returns the redacted message of err, or "" when err is nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return Text(err.Error())
}

func isSensitive(name string) bool {
	name = strings.ToLower(name)
	for _, p := range sensitiveParams {
		if name == p {
			return true
		}
	}
	return false
}
