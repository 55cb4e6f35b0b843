// Package dedupe collapses repeated weekly submissions to the latest one
// per (email, week_number) key.
package dedupe

// Option applies a configuration option to the Collapser.
type Option func(*Collapser)

// WithIdentityColumn overrides the identity key column.
func WithIdentityColumn(col string) Option {
	return func(c *Collapser) {
		if col != "" {
			c.identityCol = col
		}
	}
}

// WithWeekColumn overrides the week key column.
func WithWeekColumn(col string) Option {
	return func(c *Collapser) {
		if col != "" {
			c.weekCol = col
		}
	}
}

// WithTimestampColumn overrides the ordering column.
func WithTimestampColumn(col string) Option {
	return func(c *Collapser) {
		if col != "" {
			c.tsCol = col
		}
	}
}
