// Package pathmap rewrites remote-style mount paths to the paths under
// which they are locally visible.
package pathmap

import "strings"

// Rule rewrites any path beginning with Remote to begin with Local instead.
type Rule struct {
	Remote string
	Local  string
}

// Mapper applies an ordered list of prefix rewrite rules.
type Mapper struct {
	rules []Rule
}

// New creates a Mapper from an ordered list of rules. Rules are tried in
// order; the first one whose Remote prefix matches wins.
func New(rules []Rule) *Mapper {
	return &Mapper{rules: append([]Rule(nil), rules...)}
}

// Map rewrites path using the first matching rule. Paths matching no rule
// are returned unchanged.
func (m *Mapper) Map(path string) string {
	for _, rule := range m.rules {
		if strings.HasPrefix(path, rule.Remote) {
			return rule.Local + path[len(rule.Remote):]
		}
	}
	return path
}
