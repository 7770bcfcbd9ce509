package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Phone is a phone number stored either as a JSON string or a JSON number.
// It always marshals as a string.
type Phone string

// UnmarshalJSON accepts "555-0100", 5550100 or null.
func (p *Phone) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Phone(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("phone must be a string or a number: %w", err)
	}
	*p = Phone(n.String())
	return nil
}

// Keywords is the emphasis term list. Documents may store it as a list of
// strings or as one comma-separated string.
type Keywords []string

// UnmarshalJSON accepts ["Go", "SQL"], "Go, SQL" or null.
func (k *Keywords) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*k = Keywords{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = ParseKeywords(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("keywords must be a string or a list of strings: %w", err)
	}
	*k = NormalizeKeywords(list)
	return nil
}

// MarshalJSON always emits a list, never null.
func (k Keywords) MarshalJSON() ([]byte, error) {
	if k == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(k))
}

// ParseKeywords splits a comma-separated keyword string.
func ParseKeywords(s string) Keywords {
	return NormalizeKeywords(strings.Split(s, ","))
}

// NormalizeKeywords trims every entry, drops empty ones and removes
// duplicates, keeping the first spelling seen. Duplicates are detected
// case-insensitively because emphasis matching is case-insensitive.
func NormalizeKeywords(in []string) Keywords {
	out := make(Keywords, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, kw := range in {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// MergeKeywords returns the normalized union of the given lists in order.
func MergeKeywords(lists ...[]string) Keywords {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	return NormalizeKeywords(all)
}

// ParseResume decodes a JSON document and normalizes it.
func ParseResume(data []byte) (*Resume, error) {
	var r Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	return r.Normalize(), nil
}
