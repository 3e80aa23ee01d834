package mind

import (
	"regexp"
	"strings"
)

// Fact extraction is deliberately conservative: insertions are never reviewed
// before storage, so narrow patterns beat clever ones.
type factRule struct {
	re     *regexp.Regexp
	prefix string
}

var factRules = []factRule{
	{regexp.MustCompile(`\b(?:i am|i'm)\s+([a-z0-9 _-]{2,40})`), "is "},
	{regexp.MustCompile(`\bmy name is\s+([a-z0-9 _-]{2,40})`), "name is "},
	{regexp.MustCompile(`\b(?:i live in|i'm from|i am from)\s+([a-z0-9 ,-]{2,60})`), "from "},
	{regexp.MustCompile(`\b(?:i work as|my job is)\s+(?:an? )?([a-z0-9 _-]{2,40})`), "works as "},
	{regexp.MustCompile(`\b(?:i like|i love)\s+([a-z0-9 _-]{2,40})`), "likes "},
}

// ExtractFact maps raw message text to a normalized fact string. Rules are
// ordered; the first match wins. No match returns ok=false.
func ExtractFact(text string) (string, bool) {
	low := strings.ToLower(strings.TrimSpace(text))
	if low == "" {
		return "", false
	}
	for _, rule := range factRules {
		if m := rule.re.FindStringSubmatch(low); m != nil {
			fact := strings.TrimSpace(m[1])
			if fact == "" {
				continue
			}
			return rule.prefix + fact, true
		}
	}
	return "", false
}
