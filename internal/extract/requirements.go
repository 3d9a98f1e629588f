package extract

import (
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

// RuleKind tags how a requirement expression is compiled and matched.
type RuleKind int

const (
	// Substring is a literal, case-insensitive presence test.
	Substring RuleKind = iota
	// Pattern is a case-insensitive RE2 expression, used for alternations and
	// word-boundary guards.
	Pattern
	// CaseSensitive is an RE2 expression matched with case preserved.
	CaseSensitive
	// Lookaround needs lookbehind or lookahead and is matched with a
	// backtracking engine.
	Lookaround
)

func (k RuleKind) String() string {
	switch k {
	case Substring:
		return "substring"
	case Pattern:
		return "pattern"
	case CaseSensitive:
		return "case_sensitive"
	case Lookaround:
		return "lookaround"
	default:
		return fmt.Sprintf("RuleKind(%d)", int(k))
	}
}

// Rule is one requirement flag.
type Rule struct {
	Name     string
	Category string
	Kind     RuleKind
	Expr     string
}

// Matcher reports whether a rule is present in a text.
type Matcher interface {
	MatchString(s string) bool
}

type backtrackMatcher struct {
	re *regexp2.Regexp
}

func (m backtrackMatcher) MatchString(s string) bool {
	ok, err := m.re.MatchString(s)
	return err == nil && ok
}

// Compile builds the Matcher for the rule.
func (r Rule) Compile() (Matcher, error) {
	switch r.Kind {
	case Substring:
		return regexp.Compile(`(?i)` + regexp.QuoteMeta(r.Expr))
	case Pattern:
		return regexp.Compile(`(?i)` + r.Expr)
	case CaseSensitive:
		return regexp.Compile(r.Expr)
	case Lookaround:
		re, err := regexp2.Compile(r.Expr, regexp2.IgnoreCase)
		if err != nil {
			return nil, err
		}
		re.MatchTimeout = time.Second
		return backtrackMatcher{re: re}, nil
	default:
		return nil, fmt.Errorf("rule %s: unknown kind %s", r.Name, r.Kind)
	}
}

type compiledRule struct {
	Rule
	m Matcher
}

// Extractor evaluates a fixed rule set against ad bodies.
type Extractor struct {
	rules []compiledRule
	names []string
}

// NewExtractor compiles rules. Degree rules get the bachelor/master
// precedence and the derived no_degree_info flag.
func NewExtractor(rules []Rule) (*Extractor, error) {
	e := &Extractor{}
	hasDegree := false
	for _, r := range rules {
		m, err := r.Compile()
		if err != nil {
			return nil, fmt.Errorf("compile rule %s: %w", r.Name, err)
		}
		e.rules = append(e.rules, compiledRule{Rule: r, m: m})
		e.names = append(e.names, r.Name)
		if r.Category == CategoryDegree {
			hasDegree = true
		}
	}
	if hasDegree {
		e.names = append(e.names, DegreeNoDegreeInfo)
	}
	return e, nil
}

var (
	defaultOnce      sync.Once
	defaultExtractor *Extractor
)

// DefaultExtractor returns the extractor for RequirementRules.
func DefaultExtractor() *Extractor {
	defaultOnce.Do(func() {
		e, err := NewExtractor(RequirementRules)
		if err != nil {
			panic(err)
		}
		defaultExtractor = e
	})
	return defaultExtractor
}

// Names lists the flag names in output order.
func (e *Extractor) Names() []string {
	return append([]string(nil), e.names...)
}

// Categories maps every flag name to its category.
func (e *Extractor) Categories() map[string]string {
	out := make(map[string]string, len(e.names))
	for _, r := range e.rules {
		out[r.Name] = r.Category
	}
	if len(e.names) > len(e.rules) {
		out[DegreeNoDegreeInfo] = CategoryDegree
	}
	return out
}

// Extract evaluates every rule against content.
func (e *Extractor) Extract(content string) map[string]bool {
	flags := make(map[string]bool, len(e.names))
	degree := false
	for _, r := range e.rules {
		flags[r.Name] = r.m.MatchString(content)
		if r.Category == CategoryDegree {
			degree = true
		}
	}
	if degree {
		if flags[DegreeMaster] {
			flags[DegreeBachelor] = false
		}
		flags[DegreeNoDegreeInfo] = !flags[DegreeBachelor] && !flags[DegreeMaster] && !flags[DegreePhD]
	}
	return flags
}
