package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyKeys feeds scripted key presses to m, as if typed. Tokens of the form <name>
// are named keys (<enter>, <esc>, <tab>, <space>, <up>, <c-o>, <f1>...); anything else
// is typed literally. Commands returned by the model are not run.
func ApplyKeys(m *Model, keys []string) {
	for _, token := range keys {
		for _, msg := range parseKeys(token) {
			m.Update(msg)
		}
	}
}

func parseKeys(token string) []tea.KeyPressMsg {
	var out []tea.KeyPressMsg
	rest := token
	for rest != "" {
		start := strings.Index(rest, "<")
		end := strings.Index(rest, ">")
		if start < 0 || end < start {
			out = append(out, literalKeys(rest)...)
			break
		}
		out = append(out, literalKeys(rest[:start])...)
		if k, ok := namedKey(rest[start+1 : end]); ok {
			out = append(out, k)
		} else {
			out = append(out, literalKeys(rest[start:end+1])...)
		}
		rest = rest[end+1:]
	}
	return out
}

func literalKeys(s string) []tea.KeyPressMsg {
	out := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return out
}

func namedKey(name string) (tea.KeyPressMsg, bool) {
	switch strings.ToLower(name) {
	case "esc", "escape":
		return tea.KeyPressMsg{Code: tea.KeyEscape}, true
	case "cr", "enter", "return":
		return tea.KeyPressMsg{Code: tea.KeyEnter}, true
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}, true
	case "s-tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, true
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, true
	case "bs", "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}, true
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}, true
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}, true
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}, true
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}, true
	case "pgup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}, true
	case "pgdown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}, true
	case "f1":
		return tea.KeyPressMsg{Code: tea.KeyF1}, true
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "c-") && len(lower) == 3 {
		return tea.KeyPressMsg{Code: rune(lower[2]), Mod: tea.ModCtrl}, true
	}
	return tea.KeyPressMsg{}, false
}
