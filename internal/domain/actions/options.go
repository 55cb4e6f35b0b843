package actions

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRules replaces the rule set.
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		if len(rules) > 0 {
			e.rules = rules
		}
	}
}

// WithExtraRule appends one rule to the existing set.
func WithExtraRule(r Rule) Option {
	return func(e *Engine) {
		if r.Match != nil {
			e.rules = append(e.rules, r)
		}
	}
}
