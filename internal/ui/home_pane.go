package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/viewmodel"
)

const nextHours = 6

// renderHome renders the current location snapshot
func renderHome(s viewmodel.UserDataState, spin string, now time.Time) string {
	if s.Error != "" && s.Data == nil {
		return errorStyle.Render("✗ " + s.Error)
	}
	if s.Data == nil {
		return fmt.Sprintf("%s %s", spin, mutedStyle.Render("Finding your location..."))
	}

	var sections []string
	d := s.Data

	name := d.Location.DisplayName()
	if name == "" {
		name = fmt.Sprintf("%s, %s", models.FormatCoord(d.Location.Lat), models.FormatCoord(d.Location.Long))
	}
	header := titleStyle.Render("📍 " + name)
	switch {
	case s.Error != "":
		header += "  " + errorStyle.Render("✗ "+s.Error)
	case s.IsLoading:
		header += "  " + spin
	}
	sections = append(sections, header)

	if current, ok := d.Hourly.At(0, now.Hour()); ok {
		sections = append(sections, sectionBoxStyle.Render(renderCurrent(current)))
	}

	if hours := renderNextHours(d.Hourly, now); hours != "" {
		sections = append(sections, sectionHeaderStyle.Render("NEXT HOURS"), hours)
	}

	if len(d.Daily) > 0 {
		sections = append(sections, sectionHeaderStyle.Render("7-DAY FORECAST"), renderDaily(d.Daily, now))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCurrent renders the forecast for the current hour
func renderCurrent(h models.HourlyForecast) string {
	var content strings.Builder

	content.WriteString(bigTempStyle.Render(formatTemp(h.Temperature, h.Units)))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(h.Conditions()))
	content.WriteString("\n\n")

	content.WriteString(labelStyle.Render("Feels like: "))
	content.WriteString(valueStyle.Render(formatTemp(h.ApparentTemperature, h.Units)))
	content.WriteString("\n")
	content.WriteString(labelStyle.Render("Humidity: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%.0f%%", h.Humidity)))
	content.WriteString("\n")
	content.WriteString(labelStyle.Render("Wind: "))
	content.WriteString(valueStyle.Render(formatWind(h.WindSpeed, h.WindDirection, h.Units)))
	content.WriteString("\n")
	content.WriteString(labelStyle.Render("Precipitation: "))
	content.WriteString(valueStyle.Render(fmt.Sprintf("%.1f mm", h.Precipitation)))

	return content.String()
}

// renderNextHours lists the hours after the current one, crossing into
// the next day when needed
func renderNextHours(hourly models.HourlyForecasts, now time.Time) string {
	var lines []string
	day, hour := 0, now.Hour()
	for i := 0; i < nextHours; i++ {
		hour++
		if hour == 24 {
			day, hour = day+1, 0
		}
		h, ok := hourly.At(day, hour)
		if !ok {
			break
		}
		lines = append(lines, fmt.Sprintf("  %s  %s  %s",
			valueStyle.Render(h.Time.Format("3 PM")),
			formatTemp(h.Temperature, h.Units),
			mutedStyle.Render(h.Conditions())))
	}
	return strings.Join(lines, "\n")
}

// renderDaily lists one line per forecast day
func renderDaily(days []models.DayWiseForecast, now time.Time) string {
	var lines []string
	for _, d := range days {
		lines = append(lines, fmt.Sprintf("  %-10s %s / %s  %s",
			dayLabel(d.Date, now),
			highStyle.Render(formatTemp(d.TempMax, d.Units)),
			lowStyle.Render(formatTemp(d.TempMin, d.Units)),
			mutedStyle.Render(d.Conditions())))
	}
	return strings.Join(lines, "\n")
}

// RenderSnapshot renders the home screen body outside the program, for
// one-shot output.
func RenderSnapshot(s viewmodel.UserDataState, now time.Time) string {
	return renderHome(s, "…", now)
}
