package view

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/suhaib93102/CLM-Frontend/calendar"
	"github.com/suhaib93102/CLM-Frontend/model"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()
)

// Funcs returns the FuncMap available to all templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown":      Markdown,
		"title":         Title,
		"date":          FormatDate,
		"datetime":      FormatDateTime,
		"clock":         func(t time.Time) string { return t.Format("3:04 PM") },
		"dayNum":        func(t time.Time) int { return t.Day() },
		"isoDay":        func(t time.Time) string { return t.Format(calendar.DateLayout) },
		"timeAgo":       TimeAgo,
		"truncate":      Truncate,
		"money":         Money,
		"bytes":         FormatBytes,
		"statusClass":   StatusClass,
		"priorityClass": PriorityClass,
		"categoryClass": calendar.CategoryClass,
		"categoryLabel": calendar.CategoryLabel,
		"dict":          dict,
		"add":           func(a, b int) int { return a + b },
		"pct":           Percent,
	}
}

// Markdown renders contract content. The output is sanitized, so raw HTML
// in the source cannot inject script.
func Markdown(input string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(input), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(input))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// Title turns "pending_review" into "Pending Review". A Caser holds state,
// so each call gets its own.
func Title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// FormatDate accepts a time.Time or a backend timestamp string.
func FormatDate(v any) string {
	t, ok := asTime(v)
	if !ok {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateTime is FormatDate with the time of day.
func FormatDateTime(v any) string {
	t, ok := asTime(v)
	if !ok {
		return "-"
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

// TimeAgo formats a timestamp relative to now (e.g. "5m ago").
func TimeAgo(v any) string {
	t, ok := asTime(v)
	if !ok {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		parsed := model.ParseTime(t)
		return parsed, !parsed.IsZero()
	case *string:
		if t == nil {
			return time.Time{}, false
		}
		return asTime(*t)
	default:
		return time.Time{}, false
	}
}

// Truncate shortens s to at most n runes, appending "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// Money formats a contract value as "$12,500.00". Missing values render as "-".
func Money(v any) string {
	var d decimal.Decimal
	switch m := v.(type) {
	case decimal.Decimal:
		d = m
	case decimal.NullDecimal:
		if !m.Valid {
			return "-"
		}
		d = m.Decimal
	case *decimal.Decimal:
		if m == nil {
			return "-"
		}
		d = *m
	default:
		return "-"
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	return sign + "$" + grouped.String() + "." + frac
}

// FormatBytes renders a file size as "1.5 MB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}

// Percent returns part/total as an integer percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return part * 100 / total
}

// StatusClass maps a contract or approval status to a badge class.
func StatusClass(status string) string {
	switch strings.ToLower(status) {
	case model.StatusApproved, "active", "completed", "signed":
		return "badge-green"
	case model.StatusPending, "in_review", "pending_review":
		return "badge-amber"
	case model.StatusRejected, "expired", "cancelled":
		return "badge-red"
	default:
		return "badge-grey"
	}
}

// PriorityClass maps an approval priority to a badge class.
func PriorityClass(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "badge-red"
	case model.PriorityLow:
		return "badge-grey"
	default:
		return "badge-blue"
	}
}

// dict creates a map[string]any from alternating key-value pairs.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments (%d)", len(pairs))
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key at position %d is not a string", i)
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
