package format

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// WriteEDN writes v as EDN: maps, vectors, strings, integers, floats, booleans
// and nil. Values go through JSON first so json tags decide the keys, which are
// written as kebab-case keywords in sorted order.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := jsonRoundTrip(v)
	if err != nil {
		return err
	}
	e := ednWriter{pretty: pretty}
	e.value(x, 0)
	e.WriteByte('\n')
	_, err = e.WriteTo(w)
	return err
}

type ednWriter struct {
	bytes.Buffer
	pretty bool
}

func (e *ednWriter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		e.WriteString("nil")
	case bool:
		e.WriteString(strconv.FormatBool(t))
	case string:
		e.WriteString(strconv.Quote(t))
	case float64:
		e.WriteString(ednNumber(t))
	case []any:
		// Rows of numbers stay on one line even when pretty.
		e.seq('[', ']', len(t), depth, e.pretty && !allScalars(t), func(i int) {
			e.value(t[i], depth+1)
		})
	case map[string]any:
		keys := slices.Sorted(maps.Keys(t))
		e.seq('{', '}', len(keys), depth, e.pretty, func(i int) {
			e.WriteString(":" + ednKeyword(keys[i]) + " ")
			e.value(t[keys[i]], depth+1)
		})
	default:
		e.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

// seq writes n elements between open and close, one per indented line when
// multiline is set.
func (e *ednWriter) seq(open, close byte, n, depth int, multiline bool, elem func(i int)) {
	e.WriteByte(open)
	for i := 0; i < n; i++ {
		switch {
		case multiline:
			e.newline(depth + 1)
		case i > 0:
			e.WriteByte(' ')
		}
		elem(i)
	}
	if multiline && n > 0 {
		e.newline(depth)
	}
	e.WriteByte(close)
}

func (e *ednWriter) newline(depth int) {
	e.WriteByte('\n')
	e.WriteString(strings.Repeat("  ", depth))
}

func ednNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func allScalars(xs []any) bool {
	for _, x := range xs {
		switch x.(type) {
		case []any, map[string]any:
			return false
		}
	}
	return true
}

// ednKeyword turns a camelCase json key into a kebab-case keyword.
func ednKeyword(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
