package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt64 converts a raw column value to int64. Drivers return integers as
// int64, []byte or string depending on the column type; anything
// unparseable is 0.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case nil:
		return 0
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	default:
		return parseInt(fmt.Sprint(v))
	}
}

func parseInt(s string) int64 {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return i
}

// ToString converts a raw column value to a string. NULL becomes "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
