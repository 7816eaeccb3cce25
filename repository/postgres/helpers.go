package postgres

import (
	"encoding/json"

	"github.com/skillswap/backend/domain"
)

func marshalStrings(values []string) []byte {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return []byte(`[]`)
	}
	return b
}

func marshalWeekdays(days []domain.Weekday) []byte {
	if days == nil {
		days = []domain.Weekday{}
	}
	b, err := json.Marshal(days)
	if err != nil {
		return []byte(`[]`)
	}
	return b
}

func marshalInts(values []int) []byte {
	if values == nil {
		values = []int{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return []byte(`[]`)
	}
	return b
}

func marshalJSON(v interface{}, fallback []byte) []byte {
	b, err := json.Marshal(v)
	if err != nil || v == nil {
		return fallback
	}
	return b
}

func unmarshalJSON(data []byte, target interface{}) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, target)
}
