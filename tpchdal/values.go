package tpchdal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jamesrr39/tpch-parquet/tpch"
)

const dateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ParseValue converts one raw field into its in-memory representation:
// int32, int64, string, int64 (unscaled decimal), int32 (days since epoch) or nil.
func ParseValue(dataType tpch.DataType, raw string) (interface{}, error) {
	switch dataType.Kind {
	case tpch.TypeKindInt32:
		return parseInt32(raw)
	case tpch.TypeKindInt64:
		return strconv.ParseInt(raw, 10, 64)
	case tpch.TypeKindString:
		return raw, nil
	case tpch.TypeKindDecimal:
		return ParseDecimal(raw, dataType.Precision, dataType.Scale)
	case tpch.TypeKindDate32:
		return ParseDate32(raw)
	case tpch.TypeKindNull:
		if raw != "" {
			return nil, fmt.Errorf("expected an empty field for a null column, got %q", raw)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", dataType)
	}
}

func parseInt32(raw string) (int32, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ParseDecimal parses a plain decimal literal ("-123.45", "7", "0.5") into its
// unscaled integer at the given scale. Extra fraction digits are rejected, not rounded.
func ParseDecimal(raw string, precision, scale int) (int64, error) {
	s := raw
	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	intPart, fracPart := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx+1:]
	}

	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("invalid decimal %q", raw)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, fmt.Errorf("invalid decimal %q", raw)
	}
	if len(fracPart) > scale {
		return 0, fmt.Errorf("decimal %q has more than %d fraction digits", raw, scale)
	}

	digits := strings.TrimLeft(intPart, "0") + fracPart + strings.Repeat("0", scale-len(fracPart))
	digits = strings.TrimLeft(digits, "0")
	if len(digits) > precision {
		return 0, fmt.Errorf("decimal %q does not fit in precision %d", raw, precision)
	}
	if digits == "" {
		return 0, nil
	}

	// precision is at most 18, so this cannot overflow
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal %q: %s", raw, err)
	}
	if negative {
		v = -v
	}
	return v, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseDate32 parses a YYYY-MM-DD date into days since 1970-01-01.
func ParseDate32(raw string) (int32, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return 0, err
	}
	return int32(t.Unix() / secondsPerDay), nil
}

// FormatDate32 is the inverse of ParseDate32.
func FormatDate32(days int32) string {
	return time.Unix(int64(days)*secondsPerDay, 0).UTC().Format(dateLayout)
}
