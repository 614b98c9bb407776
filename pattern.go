package vidinfo

// PatternFlag is a per-pattern matching option.
type PatternFlag uint8

// Pattern flags. They apply to the pattern that carries them only.
const (
	IgnoreCase PatternFlag = 1 << iota
	Multiline
	DotAll
)

// Pattern is one regular expression with its matching options.
// Named captures use the (?<name>...) syntax.
type Pattern struct {
	Expr  string
	Flags PatternFlag
}

// NewPattern returns a pattern with the given flags.
func NewPattern(expr string, flags ...PatternFlag) Pattern {
	p := Pattern{Expr: expr}
	for _, f := range flags {
		p.Flags |= f
	}
	return p
}

// Has reports whether flag is set on the pattern.
func (p Pattern) Has(flag PatternFlag) bool {
	return p.Flags&flag != 0
}

// PatternSet is an ordered list of fallback patterns. Earlier patterns
// describe the more common page templates and win over later ones.
type PatternSet []Pattern

// Patterns builds a set of flagless patterns.
func Patterns(exprs ...string) PatternSet {
	set := make(PatternSet, len(exprs))
	for i, expr := range exprs {
		set[i] = Pattern{Expr: expr}
	}
	return set
}

// Group is one capture slot of a match.
type Group struct {
	Name    string
	Value   string
	Matched bool
}

// Match holds the captures of the first pattern that matched.
type Match struct {
	// Text is the whole matched text.
	Text   string
	Groups []Group
}

// Group returns the value captured by the named group, or "" when the group
// does not exist or did not participate in the match.
func (m *Match) Group(name string) string {
	for _, g := range m.Groups {
		if g.Name == name {
			return g.Value
		}
	}
	return ""
}

// Value returns the first participating capture group, or the whole match
// when the pattern has no groups.
func (m *Match) Value() string {
	if len(m.Groups) == 0 {
		return m.Text
	}
	for _, g := range m.Groups {
		if g.Matched {
			return g.Value
		}
	}
	return ""
}

// FieldSearcher runs ordered fallback pattern searches over raw text.
type FieldSearcher interface {
	// Search tries each pattern in order and returns the captures of the
	// first one that matches. When none matches it returns an ENOTFOUND
	// error naming field.
	Search(patterns PatternSet, text, field string) (*Match, error)

	// FindAll returns every non-overlapping match of p in text.
	FindAll(p Pattern, text string) ([]*Match, error)
}

// SearchDefault is like FieldSearcher.Search but returns def when no
// pattern matches. Other errors are returned unchanged.
func SearchDefault(s FieldSearcher, patterns PatternSet, text, field, def string) (string, error) {
	m, err := s.Search(patterns, text, field)
	if ErrorCode(err) == ENOTFOUND {
		return def, nil
	} else if err != nil {
		return "", err
	}
	return m.Value(), nil
}

// SearchValue is like FieldSearcher.Search but returns the match's Value.
func SearchValue(s FieldSearcher, patterns PatternSet, text, field string) (string, error) {
	m, err := s.Search(patterns, text, field)
	if err != nil {
		return "", err
	}
	return m.Value(), nil
}
