// Copyright (C) 2026 Lithoform Labs (dev@lithoform.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the Lithoform CLI.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Lithoform color palette - molten amber and cooled slate
var (
	// Primary palette (brightest to darkest)
	ColorAmberBright = lipgloss.Color("#FFB84D") // Bright amber - highlights, success
	ColorAmber       = lipgloss.Color("#F59E2D") // Primary amber - main brand color
	ColorCopper      = lipgloss.Color("#D97E22") // Copper - interactive elements
	ColorBronze      = lipgloss.Color("#B8651B") // Bronze - secondary elements
	ColorEmber       = lipgloss.Color("#8F4A12") // Ember - borders, accents

	// Dark palette (for backgrounds, muted elements)
	ColorSlate    = lipgloss.Color("#4A5258") // Slate - muted text, borders
	ColorGraphite = lipgloss.Color("#2E3438") // Graphite - deep backgrounds
	ColorDarkest  = lipgloss.Color("#14181B") // Darkest - near black

	// Semantic colors
	ColorSuccess = lipgloss.Color("#58C97A") // Green for success
	ColorWarning = lipgloss.Color("#F4D03F") // Gold for warnings
	ColorError   = lipgloss.Color("#E74C3C") // Red for errors
	ColorMuted   = lipgloss.Color("#4A5258") // Slate for muted text
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	Box        lipgloss.Style
	WarningBox lipgloss.Style
	ErrorBox   lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorAmberBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorAmber),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorAmberBright).Bold(true),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorEmber).
		Padding(0, 1),
	WarningBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconPending Icon = "○"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
	IconCart    Icon = "▣"
	IconLayer   Icon = "≡"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	case IconPending:
		return Styles.Muted.Render(string(i))
	default:
		return string(i)
	}
}

// Print helpers that respect the output level

// Title prints a styled title
func Title(text string) {
	if GetLevel() == LevelMachine {
		return
	}
	fmt.Println(Styles.Title.Render(text))
}

// Success prints a success message with checkmark
func Success(text string) {
	switch GetLevel() {
	case LevelMachine:
		fmt.Fprintf(os.Stdout, "OK: %s\n", text)
	case LevelMinimal:
		fmt.Printf("%s %s\n", IconSuccess.Render(), text)
	default:
		fmt.Printf("%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
	}
}

// Warning prints a warning message
func Warning(text string) {
	switch GetLevel() {
	case LevelMachine:
		fmt.Fprintf(os.Stderr, "WARN: %s\n", text)
	case LevelMinimal:
		fmt.Printf("%s %s\n", IconWarning.Render(), text)
	default:
		fmt.Printf("%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
	}
}

// Error prints an error message
func Error(text string) {
	switch GetLevel() {
	case LevelMachine:
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", text)
	case LevelMinimal:
		fmt.Printf("%s %s\n", IconError.Render(), text)
	default:
		fmt.Printf("%s %s\n", IconError.Render(), Styles.Error.Render(text))
	}
}

// Info prints an informational message
func Info(text string) {
	switch GetLevel() {
	case LevelMachine:
		fmt.Println(text)
	default:
		fmt.Printf("%s %s\n", Styles.Muted.Render("│"), text)
	}
}

// Muted prints muted/secondary text
func Muted(text string) {
	if GetLevel() == LevelMachine {
		return
	}
	fmt.Println(Styles.Muted.Render(text))
}

// Box prints text in a rounded box
func Box(title, content string) {
	if GetLevel() == LevelMachine {
		fmt.Printf("%s: %s\n", title, content)
		return
	}
	boxStyle := Styles.Box.Width(60)
	titleLine := Styles.Title.Render(title)
	fmt.Println(boxStyle.Render(titleLine + "\n" + content))
}

// KeyValue prints an aligned key/value line
func KeyValue(key, value string) {
	switch GetLevel() {
	case LevelMachine:
		fmt.Printf("%s\t%s\n", key, value)
	default:
		fmt.Printf("  %s %s\n", Styles.Muted.Render(key+":"), value)
	}
}

// LineStatus prints a cart or order line with its status icon
func LineStatus(status Icon, label, detail string) {
	switch GetLevel() {
	case LevelMachine:
		fmt.Printf("%s\t%s\t%s\n", status, label, detail)
	case LevelMinimal:
		fmt.Printf("%s %s\n", status.Render(), label)
	default:
		if detail != "" {
			fmt.Printf("%s %s %s\n", status.Render(), label, Styles.Muted.Render("("+detail+")"))
		} else {
			fmt.Printf("%s %s\n", status.Render(), label)
		}
	}
}

// Totals prints the cart summary line
func Totals(itemCount int, subtotal, total float64) {
	switch GetLevel() {
	case LevelMachine:
		fmt.Printf("TOTALS: items=%d subtotal=%.2f total=%.2f\n", itemCount, subtotal, total)
	default:
		fmt.Printf("\n%s %s  %s %s  %s %s\n",
			Styles.Bold.Render(fmt.Sprintf("%d", itemCount)), Styles.Muted.Render("items"),
			Styles.Subtitle.Render(fmt.Sprintf("%.2f", subtotal)), Styles.Muted.Render("subtotal"),
			Styles.Highlight.Render(fmt.Sprintf("%.2f", total)), Styles.Muted.Render("total"),
		)
	}
}
