package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ChildAges accepts a JSON list of ages or the same list encoded as a string,
// either "[5,7]" or "5,7".
type ChildAges []int64

func (c *ChildAges) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*c = nil

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err //nolint:wrapcheck
		}

		ages, err := ParseChildAges(raw)
		if err != nil {
			return err
		}

		*c = ages

		return nil
	}

	var ages []int64
	if err := json.Unmarshal(data, &ages); err != nil {
		return fmt.Errorf("children_ages must be a list of integers: %w", err)
	}

	*c = ages

	return nil
}

func ParseChildAges(raw string) (ChildAges, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ChildAges{}, nil
	}

	if strings.HasPrefix(raw, "[") {
		var ages []int64
		if err := json.Unmarshal([]byte(raw), &ages); err != nil {
			return nil, fmt.Errorf("children_ages must be a list of integers: %w", err)
		}

		return ages, nil
	}

	parts := strings.Split(raw, ",")
	ages := make(ChildAges, 0, len(parts))

	for _, part := range parts {
		age, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("children_ages must be a list of integers: %w", err)
		}

		ages = append(ages, age)
	}

	return ages, nil
}
