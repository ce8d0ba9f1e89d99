package querybuilder

import (
	"fmt"
	"strings"
)

// Dialect captures the identifier-quoting and namespace conventions that
// differ between the supported SQL engines.
type Dialect interface {
	// Name returns the canonical dialect name ("mysql" or "postgresql").
	Name() string
	// QuoteIdentifier wraps a single identifier in the dialect's quote
	// character, doubling any embedded occurrence of that character.
	QuoteIdentifier(name string) string
	// SupportsSchema reports whether the dialect qualifies tables with a
	// schema namespace.
	SupportsSchema() bool
}

// The two supported dialects.
var (
	MySQL      Dialect = mysqlDialect{}
	PostgreSQL Dialect = postgresDialect{}
)

// ParseDialect resolves a dialect by name. Accepts "postgres" as an alias
// for "postgresql".
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql":
		return MySQL, nil
	case "postgresql", "postgres":
		return PostgreSQL, nil
	default:
		return nil, fmt.Errorf("unknown dialect %q (supported: mysql, postgresql)", name)
	}
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (mysqlDialect) SupportsSchema() bool { return false }

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgresql" }

func (postgresDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (postgresDialect) SupportsSchema() bool { return true }

// quoteColumn quotes a possibly table-qualified column reference by quoting
// each dot-separated segment independently, so "u.id" renders as "u"."id"
// rather than one malformed identifier.
func quoteColumn(d Dialect, name string) string {
	if !strings.Contains(name, ".") {
		return d.QuoteIdentifier(name)
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = d.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
