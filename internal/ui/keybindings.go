package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Key Helpers ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEsc || isKey(msg, "esc", "ctrl+[")
}

// isUp accepts k as well when vim keys are on.
func isUp(msg tea.KeyMsg, vim bool) bool {
	return isKey(msg, "up") || (vim && isKey(msg, "k"))
}

func isDown(msg tea.KeyMsg, vim bool) bool {
	return isKey(msg, "down") || (vim && isKey(msg, "j"))
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter")
}

func isYes(msg tea.KeyMsg) bool {
	return isKey(msg, "y", "Y")
}

func isNo(msg tea.KeyMsg) bool {
	return isKey(msg, "n", "N") || isBack(msg)
}

// tabIndexForKey maps the number keys to tabs.
func tabIndexForKey(key string) (int, bool) {
	switch key {
	case "1":
		return tabUsers, true
	case "2":
		return tabGroups, true
	}
	return 0, false
}

// editKey applies a text editing key to buf. It reports false for keys
// that are not text input.
func editKey(buf string, msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyBackspace:
		if buf == "" {
			return buf, true
		}
		r := []rune(buf)
		return string(r[:len(r)-1]), true
	case tea.KeySpace:
		return buf + " ", true
	case tea.KeyRunes:
		return buf + string(msg.Runes), true
	}
	return buf, false
}
