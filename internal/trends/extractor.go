// Package trends extracts candidate brand tokens from raw shopping titles.
package trends

import (
	"regexp"
	"sort"
	"strings"
)

const defaultMaxTokens = 10

var (
	leadingRunPattern = regexp.MustCompile(`^[A-Za-z0-9]+`)
	wordPattern       = regexp.MustCompile(`[A-Za-z0-9]+`)
)

// Strategy turns raw trending-item titles into candidate brand tokens.
// Implementations never fail on malformed input; they return an empty slice
// when nothing matches.
type Strategy interface {
	Extract(titles []string) []string
}

// PrefixStrategy takes the leading alphanumeric run of each title as a
// brand-prefix heuristic. Tokens are deduplicated case-sensitively in
// first-seen order and capped at MaxTokens (10 when unset).
type PrefixStrategy struct {
	MaxTokens int
}

// Extract implements Strategy.
func (s PrefixStrategy) Extract(titles []string) []string {
	limit := s.MaxTokens
	if limit <= 0 {
		limit = defaultMaxTokens
	}

	seen := make(map[string]struct{})
	tokens := make([]string, 0, limit)
	for _, title := range titles {
		match := leadingRunPattern.FindString(strings.TrimSpace(title))
		if match == "" {
			continue
		}
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		tokens = append(tokens, match)
		if len(tokens) == limit {
			break
		}
	}
	return tokens
}

// BrandCount is a known brand with the number of titles mentioning it.
type BrandCount struct {
	Brand string
	Count int
}

// AllowlistStrategy counts title tokens against a fixed list of known brands
// and extracts the single most frequent one. It returns at most one token.
type AllowlistStrategy struct {
	Brands []string
}

// Extract implements Strategy.
func (s AllowlistStrategy) Extract(titles []string) []string {
	ranked := s.Ranked(titles)
	if len(ranked) == 0 {
		return nil
	}
	return []string{ranked[0].Brand}
}

// Ranked returns every allow-listed brand found in the titles, ordered by
// frequency descending with ties broken by first-encountered order.
func (s AllowlistStrategy) Ranked(titles []string) []BrandCount {
	allowed := make(map[string]struct{}, len(s.Brands))
	for _, brand := range s.Brands {
		allowed[titleCase(brand)] = struct{}{}
	}

	counts := make(map[string]int)
	var order []string
	for _, title := range titles {
		for _, token := range wordPattern.FindAllString(title, -1) {
			brand := titleCase(token)
			if _, ok := allowed[brand]; !ok {
				continue
			}
			if counts[brand] == 0 {
				order = append(order, brand)
			}
			counts[brand]++
		}
	}

	ranked := make([]BrandCount, 0, len(order))
	for _, brand := range order {
		ranked = append(ranked, BrandCount{Brand: brand, Count: counts[brand]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

func titleCase(token string) string {
	if token == "" {
		return token
	}
	return strings.ToUpper(token[:1]) + strings.ToLower(token[1:])
}
