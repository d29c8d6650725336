package tui

const uiDivider = "──────────────────────────────────────────────────────"

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}
