// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// List-valued keys in the document use three delimiter conventions that
// downstream consumers parse further: pipe-separated badge identifiers,
// whitespace-separated origin lists, and comma-separated cache region
// names. All splitters trim surrounding whitespace and drop empty
// elements, so trailing delimiters and blank continuation lines are
// harmless.

// SplitPipes splits a pipe-delimited value (e.g. badge_ids).
func SplitPipes(value string) []string {
	return splitAndTrim(value, func(v string) []string {
		return strings.Split(v, "|")
	})
}

// SplitSpaces splits a whitespace-delimited value (e.g. cors_origins_ro).
// Continuation lines of a multi-line value count as whitespace.
func SplitSpaces(value string) []string {
	return strings.Fields(value)
}

// SplitCommas splits a comma-delimited value (e.g. cache.regions).
func SplitCommas(value string) []string {
	return splitAndTrim(value, func(v string) []string {
		return strings.Split(v, ",")
	})
}

func splitAndTrim(value string, split func(string) []string) []string {
	parts := split(value)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
