// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

import "strings"

// splitStatements splits statement text on semicolons that sit outside
// quoted strings. Comments are stripped, surrounding whitespace is trimmed,
// and empty statements are dropped. Quotes follow SQL rules: single quotes
// for strings, double quotes for identifiers, doubling to escape.
func splitStatements(text string) []string {
	var stmts []string
	var sb strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '\'' || c == '"':
			j := skipQuoted(text, i)
			sb.WriteString(text[i:j])
			i = j
		case c == '-' && i+1 < len(text) && text[i+1] == '-':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			i += 2
			for i < len(text) {
				if text[i] == '*' && i+1 < len(text) && text[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
			sb.WriteByte(' ')
		case c == ';':
			if s := strings.TrimSpace(sb.String()); s != "" {
				stmts = append(stmts, s)
			}
			sb.Reset()
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	if s := strings.TrimSpace(sb.String()); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}

// rowKeywords are the statement-leading keywords that produce a result set.
var rowKeywords = map[string]bool{
	"SELECT":  true,
	"VALUES":  true,
	"WITH":    true,
	"PRAGMA":  true,
	"EXPLAIN": true,
}

// returnsRows reports whether a statement produces rows: either it starts
// with a row-producing keyword or it carries a RETURNING clause.
func returnsRows(stmt string) bool {
	if rowKeywords[firstKeyword(stmt)] {
		return true
	}
	return hasReturning(stmt)
}

// firstKeyword returns the statement's leading keyword, uppercased.
func firstKeyword(stmt string) string {
	s := strings.TrimSpace(stmt)
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	return strings.ToUpper(s[:i])
}

// hasReturning reports whether the RETURNING keyword appears outside
// quoted strings.
func hasReturning(stmt string) bool {
	i := 0
	for i < len(stmt) {
		c := stmt[i]
		if c == '\'' || c == '"' {
			i = skipQuoted(stmt, i)
			continue
		}
		if isLetter(c) {
			j := i
			for j < len(stmt) && isLetter(stmt[j]) {
				j++
			}
			if strings.EqualFold(stmt[i:j], "RETURNING") {
				return true
			}
			i = j
			continue
		}
		i++
	}
	return false
}

// paramNames returns the $name parameters a statement references outside
// quoted strings, in first-use order without duplicates.
func paramNames(stmt string) []string {
	var names []string
	seen := make(map[string]bool)
	i := 0
	for i < len(stmt) {
		c := stmt[i]
		if c == '\'' || c == '"' {
			i = skipQuoted(stmt, i)
			continue
		}
		if c == '$' {
			j := i + 1
			for j < len(stmt) && isParamChar(stmt[j]) {
				j++
			}
			if j > i+1 && !seen[stmt[i+1:j]] {
				seen[stmt[i+1:j]] = true
				names = append(names, stmt[i+1:j])
			}
			i = j
			continue
		}
		i++
	}
	return names
}

// skipQuoted advances past the quoted region starting at i, where s[i] is
// the opening quote. A doubled quote is an escape, not a terminator.
func skipQuoted(s string, i int) int {
	q := s[i]
	i++
	for i < len(s) {
		if s[i] == q {
			if i+1 < len(s) && s[i+1] == q {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isParamChar(c byte) bool {
	return isLetter(c) || c >= '0' && c <= '9' || c == '_'
}
