package sqlite

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// textTimeLayouts are the timestamp spellings found in D1 exports, most specific first.
var textTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// textTime scans a TEXT timestamp column into dst.
type textTime struct{ dst *time.Time }

func (s textTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s.dst = time.Time{}
		return nil
	case time.Time:
		*s.dst = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	default:
		return fmt.Errorf("textTime: unsupported source type %T", src)
	}
}

func (s textTime) parse(v string) error {
	for _, layout := range textTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.dst = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("textTime: unrecognized timestamp %q", v)
}

// decodeTagArray turns an aggregated JSON array into a sorted, de-duplicated, non-nil slice.
func decodeTagArray(raw []byte) ([]string, error) {
	tags := []string{}
	if len(raw) == 0 {
		return tags, nil
	}
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if tags == nil {
		return []string{}, nil
	}
	slices.Sort(tags)
	return slices.Compact(tags), nil
}
