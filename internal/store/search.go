package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"
)

// SearchResult is one match from a cross-resource search.
type SearchResult struct {
	Resource string
	ID       string
	Title    string
	Snippet  string
}

// Search fetches every collection (cache permitting) and matches the query
// case-insensitively against each item's text fields. A store that fails
// to fetch is skipped; one broken resource must not break the others.
func (r *Registry) Search(ctx context.Context, query string) ([]SearchResult, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var results []SearchResult
	for _, res := range r.All() {
		if err := res.Fetch(ctx); err != nil {
			continue
		}
		for _, item := range res.Items() {
			if snippet, ok := matchItem(item, q); ok {
				results = append(results, SearchResult{
					Resource: res.Name(),
					ID:       item.ItemID(),
					Title:    item.Label(),
					Snippet:  snippet,
				})
			}
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Resource < results[j].Resource
	})
	return results, nil
}

// matchItem scans the item's string fields (via its JSON form) and returns
// a snippet around the first field that contains the query.
func matchItem(item any, q string) (string, bool) {
	b, err := json.Marshal(item)
	if err != nil {
		return "", false
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return "", false
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		s, ok := fields[k].(string)
		if !ok || k == "_id" {
			continue
		}
		if strings.Contains(strings.ToLower(s), q) {
			return k + ": " + truncate(s, 80), true
		}
	}
	return "", false
}

// truncate bounds s to n runes, never splitting a multibyte character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}
