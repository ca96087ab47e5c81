package models

import (
	"encoding/json"
	"fmt"
)

// NewsItem is one industry headline. The backend sends objects with a
// headline and optional url, but bare strings are accepted too.
type NewsItem struct {
	Headline string `json:"headline"`
	URL      string `json:"url,omitempty"`
}

func (n *NewsItem) UnmarshalJSON(data []byte) error {
	var headline string
	if err := json.Unmarshal(data, &headline); err == nil {
		*n = NewsItem{Headline: headline}
		return nil
	}

	var obj struct {
		Headline string  `json:"headline"`
		URL      *string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("news item must be a string or an object: %w", err)
	}
	n.Headline = obj.Headline
	n.URL = ""
	if obj.URL != nil {
		n.URL = *obj.URL
	}
	return nil
}

// Headlines returns the headline text of each item in order.
func Headlines(items []NewsItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Headline)
	}
	return out
}
