package main

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/structpack/structpack/msgpack"
)

var (
	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	nilStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func paint(st lipgloss.Style, s string, color bool) string {
	if !color {
		return s
	}
	return st.Render(s)
}

// renderValue formats one generically decoded value as an indented
// tree. Scalars render on a single line; arrays and maps get one line
// per element.
func renderValue(v any, depth int, color bool) string {
	pad := strings.Repeat("  ", depth)

	switch v := v.(type) {
	case nil:
		return pad + paint(nilStyle, "nil", color)

	case bool:
		return pad + scalar("bool", fmt.Sprintf("%v", v), color)

	case int64:
		return pad + scalar("int", fmt.Sprintf("%d", v), color)

	case uint64:
		return pad + scalar("uint", fmt.Sprintf("%d", v), color)

	case float32:
		return pad + scalar("f32", fmt.Sprintf("%g", v), color)

	case float64:
		return pad + scalar("f64", fmt.Sprintf("%g", v), color)

	case string:
		return pad + scalar("str", fmt.Sprintf("%q", v), color)

	case []byte:
		return pad + scalar(fmt.Sprintf("bin(%d)", len(v)), hexPreview(v), color)

	case time.Time:
		return pad + scalar("time", v.UTC().Format(time.RFC3339Nano), color)

	case msgpack.RawExt:
		return pad + scalar(fmt.Sprintf("ext(%d, %d bytes)", v.Type, len(v.Data)),
			hexPreview(v.Data), color)

	case []any:
		var b strings.Builder
		b.WriteString(pad + paint(typeStyle, fmt.Sprintf("array(%d)", len(v)), color))
		for _, item := range v {
			b.WriteString("\n")
			b.WriteString(renderValue(item, depth+1, color))
		}
		return b.String()

	case msgpack.RawMap:
		var b strings.Builder
		b.WriteString(pad + paint(typeStyle, fmt.Sprintf("map(%d)", len(v)), color))
		for _, e := range v {
			b.WriteString("\n")
			b.WriteString(pad + "  " + paint(keyStyle, keyLabel(e.Key), color) + ":")
			if isScalar(e.Value) {
				b.WriteString(" " + strings.TrimLeft(renderValue(e.Value, 0, color), " "))
			} else {
				b.WriteString("\n" + renderValue(e.Value, depth+2, color))
			}
		}
		return b.String()

	default:
		return pad + fmt.Sprintf("%v", v)
	}
}

func scalar(typ, val string, color bool) string {
	return paint(typeStyle, typ, color) + " " + paint(valueStyle, val, color)
}

func keyLabel(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", k)
}

func isScalar(v any) bool {
	switch v.(type) {
	case []any, msgpack.RawMap:
		return false
	}
	return true
}

// hexPreview shows at most 16 bytes, with an ellipsis for the rest.
func hexPreview(data []byte) string {
	const limit = 16
	if len(data) <= limit {
		return hex.EncodeToString(data)
	}
	return hex.EncodeToString(data[:limit]) + "…"
}

// summarize gives a one-line description for the value list in the
// interactive browser.
func summarize(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return fmt.Sprintf("bool %v", v)
	case int64:
		return fmt.Sprintf("int %d", v)
	case uint64:
		return fmt.Sprintf("uint %d", v)
	case float32:
		return fmt.Sprintf("f32 %g", v)
	case float64:
		return fmt.Sprintf("f64 %g", v)
	case string:
		if len(v) > 32 {
			v = v[:32] + "…"
		}
		return fmt.Sprintf("str %q", v)
	case []byte:
		return fmt.Sprintf("bin(%d)", len(v))
	case time.Time:
		return "time " + v.UTC().Format(time.RFC3339)
	case msgpack.RawExt:
		return fmt.Sprintf("ext(%d, %d bytes)", v.Type, len(v.Data))
	case []any:
		return fmt.Sprintf("array(%d)", len(v))
	case msgpack.RawMap:
		return fmt.Sprintf("map(%d)", len(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}
