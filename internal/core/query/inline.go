package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// QuoteLiteral renders s as a single-quoted SQL literal
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// Inline renders a statement with its arguments substituted as literals.
// The result is for trace logs only and is never executed.
func Inline(s sq.Sqlizer) string {
	sql, args, err := s.ToSql()
	if err != nil {
		return "<invalid: " + err.Error() + ">"
	}
	return placeholder.ReplaceAllStringFunc(sql, func(m string) string {
		n, err := strconv.Atoi(m[1:])
		if err != nil || n < 1 || n > len(args) {
			return m
		}
		return literal(args[n-1])
	})
}

func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return QuoteLiteral(x)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x)
	default:
		return QuoteLiteral(fmt.Sprint(x))
	}
}
