package migrations

import (
	_ "embed"
	"regexp"
	"strings"
)

//go:embed base_schema.sql
var baseSchemaDump string

var createTableRe = regexp.MustCompile(`(?i)^CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?([a-zA-Z0-9_]+)`)

// gooseTable is goose's own tracking table; the bootstrap down step must
// never drop it even if a dump happens to recreate it.
const gooseTable = "goose_db_version"

// SplitStatements breaks a SQL dump into executable statements. The split
// point is a semicolon followed by a newline or end of input; comment lines
// and session directives (SET, START TRANSACTION, COMMIT) are removed.
//
// A literal semicolon-newline inside a quoted string would mis-split here.
// The embedded dump contains none, which the package tests pin down.
func SplitStatements(dump string) []string {
	normalized := strings.ReplaceAll(dump, "\r\n", "\n")

	raw := []string{}
	var sb strings.Builder
	for i := 0; i < len(normalized); i++ {
		c := normalized[i]
		sb.WriteByte(c)
		if c == ';' && (i+1 >= len(normalized) || normalized[i+1] == '\n') {
			raw = append(raw, sb.String())
			sb.Reset()
		}
	}
	if sb.Len() > 0 {
		raw = append(raw, sb.String())
	}

	statements := []string{}
	for _, stmt := range raw {
		cleaned := stripCommentLines(stmt)
		if cleaned == "" || isSessionDirective(cleaned) {
			continue
		}
		statements = append(statements, cleaned)
	}
	return statements
}

func stripCommentLines(stmt string) string {
	lines := strings.Split(stmt, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isSessionDirective(stmt string) bool {
	upper := strings.ToUpper(stmt)
	return strings.HasPrefix(upper, "SET ") ||
		strings.HasPrefix(upper, "START TRANSACTION") ||
		strings.HasPrefix(upper, "COMMIT")
}

// CreateTableNames extracts table names from CREATE TABLE statements in dump
// order, excluding goose's tracking table.
func CreateTableNames(dump string) []string {
	names := []string{}
	for _, stmt := range SplitStatements(dump) {
		m := createTableRe.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		name := strings.ToLower(m[1])
		if name == gooseTable {
			continue
		}
		names = append(names, name)
	}
	return names
}
