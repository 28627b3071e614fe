package ui

import (
	"fmt"
	"strings"
)

// settingRow is one toggle on the settings screen. Choice 0 is the API
// default, 1 the alternative unit.
type settingRow struct {
	label   string
	options [2]string
	get     func(Settings) int
	set     func(Settings, int)
}

var settingRows = []settingRow{
	{
		label:   "Temperature",
		options: [2]string{"Celsius", "Fahrenheit"},
		get:     func(s Settings) int { return s.Temp() },
		set:     func(s Settings, v int) { s.SetTemp(v) },
	},
	{
		label:   "Wind speed",
		options: [2]string{"km/h", "m/s"},
		get:     func(s Settings) int { return s.Wind() },
		set:     func(s Settings, v int) { s.SetWind(v) },
	},
}

// toggleSetting flips the setting in the given row
func toggleSetting(s Settings, row int) {
	r := settingRows[row]
	if r.get(s) == 0 {
		r.set(s, 1)
		return
	}
	r.set(s, 0)
}

// renderSettings renders the unit toggles
func renderSettings(s Settings, cursor int) string {
	var lines []string
	for i, r := range settingRows {
		pointer := "  "
		if i == cursor {
			pointer = cursorStyle.Render("> ")
		}

		choice := r.get(s)
		if choice < 0 || choice > 1 {
			choice = 0
		}
		opts := make([]string, len(r.options))
		for j, o := range r.options {
			if j == choice {
				opts[j] = valueStyle.Bold(true).Render("[" + o + "]")
			} else {
				opts[j] = mutedStyle.Render(" " + o + " ")
			}
		}

		lines = append(lines, fmt.Sprintf("%s%s %s", pointer, labelStyle.Render(fmt.Sprintf("%-12s", r.label)), strings.Join(opts, " ")))
	}
	return strings.Join(lines, "\n")
}
