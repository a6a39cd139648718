// Package countries holds the ISO 3166-1 alpha-3 country codes accepted in the
// Country column.
package countries

import (
	_ "embed"
	"slices"
	"strings"
	"sync"
)

//go:embed alpha3.txt
var alpha3Source string

var (
	loadOnce sync.Once
	codes    []string
	codeSet  map[string]struct{}
)

func load() {
	for _, line := range strings.Split(alpha3Source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		codes = append(codes, line)
	}
	slices.Sort(codes)

	codeSet = make(map[string]struct{}, len(codes))
	for _, c := range codes {
		codeSet[c] = struct{}{}
	}
}

// Codes returns every alpha-3 code, sorted.
func Codes() []string {
	loadOnce.Do(load)
	return slices.Clone(codes)
}

// Alpha3 returns the alpha-3 codes as a set. Callers must not modify it.
func Alpha3() map[string]struct{} {
	loadOnce.Do(load)
	return codeSet
}

// IsAlpha3 reports whether code is an assigned alpha-3 code. Matching is
// case-sensitive.
func IsAlpha3(code string) bool {
	_, ok := Alpha3()[code]
	return ok
}
