// Copyright Sigma Labs Ltd., 2026. All rights reserved.

// Package textextract pulls email addresses and postal codes out of
// free-text affiliation strings, returning the cleaned remainder.
//
// Callers must extract the email before the postal code: digit runs inside
// an email address or its surrounding punctuation can otherwise satisfy the
// postal-code pattern.
package textextract

import (
	"regexp"
	"strings"
)

// emailPattern matches local@domain.tld substrings.
var emailPattern = regexp.MustCompile(`(?i)[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// zipcodePattern alternates between UK postcode, US 5-or-9-digit ZIP,
// Canadian postal code, and a generic 6-digit run.
var zipcodePattern = regexp.MustCompile(
	`(?i)([A-Z][A-HJ-Y]?\d[A-Z\d]? ?\d[A-Z]{2}|GIR\s*0AA)|\b\d{5}(-\d{4})?\b|([ABCEGHJKLMNPRSTVXY]\d[ABCEGHJKLMNPRSTVWXYZ]) ?(\d[ABCEGHJKLMNPRSTVWXYZ]\d)|\d{6}`,
)

// ExtractEmail finds email addresses in text and removes them. Every found
// email is stripped, together with the "Electronic address: <email>."
// phrasing PubMed affiliations commonly carry (replaced by a single period).
// The first email in document order is returned as the canonical value.
// When no email is present the text comes back unmodified.
func ExtractEmail(text string) (email, remaining string) {
	found := emailPattern.FindAllString(text, -1)
	if len(found) == 0 {
		return "", text
	}

	for _, e := range found {
		text = strings.ReplaceAll(text, "Electronic address: "+e+".", ".")
		text = strings.ReplaceAll(text, e, "")
	}

	return found[0], strings.TrimSpace(text)
}

// ExtractZipcode finds the first postal code in text and removes that single
// occurrence, returning the code and the trimmed remainder. When no code is
// present the text comes back unmodified.
func ExtractZipcode(text string) (code, remaining string) {
	code = zipcodePattern.FindString(text)
	if code == "" {
		return "", text
	}

	return code, strings.TrimSpace(strings.Replace(text, code, "", 1))
}
