// github.com/fkretlow/sebastian - tooling for the Sebastian music notation font
// Copyright (C) 2026 Florian Kretlow
// Use, distribute and edit this file as you wish.

// Package fea extracts glyph substitution data from OpenType feature
// files.
//
// The package is not a general feature-file compiler.  It recognizes
// the two statement forms the SMuFL metadata cares about,
//
//	sub <glyph> from [<alt> <alt> ...];   # alternate substitution
//	sub <glyph> <glyph> ... by <glyph>;   # ligature substitution
//
// and skips everything else, including contextual rules.
package fea

import (
	"fmt"
	"io"
	"strings"
)

// A Ligature maps a sequence of component glyphs to a ligature glyph.
type Ligature struct {
	Components []string
	Result     string
}

// Substitutions holds the glyph substitutions found in a feature file.
type Substitutions struct {
	// Alternates maps a glyph name to its stylistic alternates, in
	// the order they are listed.
	Alternates map[string][]string

	// Ligatures lists ligature substitutions in file order.
	Ligatures []Ligature
}

// Parse scans a feature file for substitution statements.
func Parse(r io.Reader) (*Substitutions, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// ParseString is like Parse, for feature text already in memory.
func ParseString(text string) (*Substitutions, error) {
	subs := &Substitutions{Alternates: make(map[string][]string)}

	tokens := tokenize(text)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok != "sub" && tok != "substitute" {
			continue
		}
		stmt, next := statement(tokens, i+1)
		i = next - 1
		if err := subs.addStatement(stmt); err != nil {
			return nil, err
		}
	}
	return subs, nil
}

// statement collects the tokens up to the terminating semicolon.
func statement(tokens []string, start int) (stmt []string, next int) {
	i := start
	for i < len(tokens) && tokens[i] != ";" {
		stmt = append(stmt, tokens[i])
		i++
	}
	if i < len(tokens) {
		i++ // consume the semicolon
	}
	return stmt, i
}

func (s *Substitutions) addStatement(stmt []string) error {
	for _, tok := range stmt {
		if strings.HasSuffix(tok, "'") || strings.HasPrefix(tok, "@") {
			// contextual rules and class references are out of scope
			return nil
		}
	}

	for i, tok := range stmt {
		switch tok {
		case "from":
			if i != 1 {
				return fmt.Errorf("fea: malformed alternate substitution %q", strings.Join(stmt, " "))
			}
			alts := trimBrackets(stmt[i+1:])
			if len(alts) == 0 {
				return fmt.Errorf("fea: empty alternate set for %q", stmt[0])
			}
			s.Alternates[stmt[0]] = append(s.Alternates[stmt[0]], alts...)
			return nil
		case "by":
			if i < 1 || len(stmt) != i+2 {
				// multi-glyph or malformed replacements are not
				// ligatures in the SMuFL sense
				return nil
			}
			if i == 1 {
				// single substitution, irrelevant for metadata
				return nil
			}
			s.Ligatures = append(s.Ligatures, Ligature{
				Components: append([]string(nil), stmt[:i]...),
				Result:     stmt[i+1],
			})
			return nil
		}
	}
	return nil
}

func trimBrackets(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if tok == "[" || tok == "]" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// tokenize splits feature text into words and punctuation, dropping
// comments.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '#':
			flush()
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			flush()
		case c == '[' || c == ']' || c == '{' || c == '}' || c == ';':
			flush()
			tokens = append(tokens, string(c))
		default:
			word.WriteByte(c)
		}
	}
	flush()
	return tokens
}
