package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain string is quoted", "active", "'active'"},
		{"numeric stays bare", "25", "25"},
		{"float stays bare", "3.14", "3.14"},
		{"negative number stays bare", "-7", "-7"},
		{"pre-quoted passes through", "'already quoted'", "'already quoted'"},
		{"embedded quote doubled", "O'Brien", "'O''Brien'"},
		{"empty string is quoted", "", "''"},
		{"numeric-looking with letters is quoted", "25abc", "'25abc'"},
		{"scientific notation stays bare", "1e3", "1e3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeValue(tt.input))
		})
	}
}

func TestQuoteIdentifierDoublesEmbeddedQuotes(t *testing.T) {
	assert.Equal(t, `"we""ird"`, PostgreSQL.QuoteIdentifier(`we"ird`))
	assert.Equal(t, "`we``ird`", MySQL.QuoteIdentifier("we`ird"))
}

func TestQuoteColumnSplitsQualifiedReferences(t *testing.T) {
	assert.Equal(t, `"u"."id"`, quoteColumn(PostgreSQL, "u.id"))
	assert.Equal(t, "`users`.`name`", quoteColumn(MySQL, "users.name"))
	assert.Equal(t, `"id"`, quoteColumn(PostgreSQL, "id"))
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"mysql", "mysql", false},
		{"postgresql", "postgresql", false},
		{"postgres", "postgresql", false},
		{"MySQL", "mysql", false},
		{"oracle", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDialect(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}
