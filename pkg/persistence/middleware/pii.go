package middleware

import (
	"context"
	"regexp"
	"strings"

	"github.com/aretw0/sift/pkg/ports"
	"github.com/aretw0/sift/pkg/schema"
)

type piiMiddleware struct {
	next     ports.HistoryStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the raw values of input
// keys matching the patterns before the attempt is stored. Offending values
// echoed in the attempt's issues are masked under the same rule, keyed by the
// last segment of the issue path.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.HistoryStore) ports.HistoryStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

const masked = "***"

func (m *piiMiddleware) Append(ctx context.Context, sessionID string, attempt *ports.Attempt) error {
	// Clone so the caller's attempt (and any in-flight response built from
	// it) is not mutated.
	cloned := *attempt
	cloned.Raw = deepCopyMap(attempt.Raw)
	maskMap(cloned.Raw, m.patterns)
	cloned.Issues = maskIssues(attempt.Issues, m.patterns)

	return m.next.Append(ctx, sessionID, &cloned)
}

func (m *piiMiddleware) List(ctx context.Context, sessionID string) ([]*ports.Attempt, error) {
	return m.next.List(ctx, sessionID)
}

func (m *piiMiddleware) Clear(ctx context.Context, sessionID string) error {
	return m.next.Clear(ctx, sessionID)
}

func (m *piiMiddleware) Sessions(ctx context.Context) ([]string, error) {
	return m.next.Sessions(ctx)
}

// Helpers

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if subMap, ok := v.(map[string]any); ok {
			out[k] = deepCopyMap(subMap)
		} else {
			out[k] = v // shallow copy of value
		}
	}
	return out
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		if matchesAny(k, patterns) {
			m[k] = masked
			continue
		}
		if subMap, ok := v.(map[string]any); ok {
			maskMap(subMap, patterns)
		}
	}
}

func maskIssues(issues schema.Issues, patterns []*regexp.Regexp) schema.Issues {
	if len(issues) == 0 {
		return issues
	}
	out := make(schema.Issues, len(issues))
	for i, fe := range issues {
		c := *fe
		// "address.zip_code" matches on "zip_code".
		segs := strings.Split(c.Path, ".")
		if c.Value != nil && matchesAny(segs[len(segs)-1], patterns) {
			c.Value = masked
		}
		out[i] = &c
	}
	return out
}

func matchesAny(key string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
