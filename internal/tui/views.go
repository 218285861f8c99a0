package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/album-splitter/internal/split"
)

// theme groups the lipgloss styles the views render with.
type theme struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	success  lipgloss.Style
	errText  lipgloss.Style
	warning  lipgloss.Style
	info     lipgloss.Style
	dim      lipgloss.Style
	track    lipgloss.Style
	box      lipgloss.Style
}

func defaultTheme() theme {
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}

	return theme{
		title:    fg("#C792EA").Bold(true).MarginBottom(1),
		subtitle: fg("#82AAFF"),
		success:  fg("#C3E88D"),
		errText:  fg("#F07178"),
		warning:  fg("#FFCB6B"),
		info:     fg("#89DDFF"),
		dim:      fg("#5C6370"),
		track:    fg("#F78C6C"),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#82AAFF")).
			Padding(1, 2),
	}
}

var helpByState = map[State]string{
	StateInput:     "enter: parse • tab: switch field • ctrl+p: playlist • ctrl+v: verbose • esc: quit",
	StateParsing:   "esc: cancel",
	StateReview:    "enter: split • esc: back",
	StateSplitting: "esc: cancel",
	StateComplete:  "r: start over • q: quit",
	StateError:     "r: start over • q: quit",
}

// View renders the header, the active screen, and the key help line.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.title.Render("🎵 Album Splitter"))
	b.WriteString("\n")
	b.WriteString(m.theme.dim.Render("Split one long MP3 recording into tagged tracks"))
	b.WriteString("\n\n")

	switch m.state {
	case StateParsing:
		b.WriteString(m.viewParsing())
	case StateReview:
		b.WriteString(m.viewReview())
	case StateSplitting:
		b.WriteString(m.viewSplitting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	default:
		b.WriteString(m.viewInput())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.dim.Render(helpByState[m.state]))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(m.theme.subtitle.Render("Recording to split:"))
	b.WriteString("\n")
	b.WriteString(m.sourceInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.theme.subtitle.Render("Timestamp listing:"))
	b.WriteString("\n")
	b.WriteString(m.configInput.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.info.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(checkbox("Create playlist (ctrl+p)", m.playlist))
	b.WriteString("\n")
	b.WriteString(checkbox("Verbose/debug output (ctrl+v)", m.verbose))
	b.WriteString("\n\n")

	output := m.settings.OutputPath
	if output == "" {
		output = "next to the recording"
	}
	b.WriteString(m.theme.dim.Render("Output path: " + output))
	b.WriteString("\n")

	return b.String()
}

func checkbox(label string, on bool) string {
	mark := " "
	if on {
		mark = "×"
	}
	return fmt.Sprintf("  [%s] %s", mark, label)
}

func (m Model) viewParsing() string {
	header := m.spinner.View() + " " +
		m.theme.subtitle.Render("Reading recording and timestamp listing...")
	return header + "\n\n" + m.renderLogs()
}

func (m Model) viewReview() string {
	var b strings.Builder

	b.WriteString(m.theme.success.Render(m.albumSummary))
	b.WriteString("\n\n")

	// Cap the listing so long albums leave room for the help line.
	const maxTracks = 12
	shown := m.tracks
	if len(shown) > maxTracks {
		shown = shown[:maxTracks]
	}
	for _, track := range shown {
		b.WriteString(m.theme.track.Render("  ♪ " + track))
		b.WriteString("\n")
	}
	if rest := len(m.tracks) - maxTracks; rest > 0 {
		b.WriteString(m.theme.dim.Render(fmt.Sprintf("  … and %d more tracks", rest)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.info.Render("Nothing has been written yet."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewSplitting() string {
	var b strings.Builder

	if m.albumSummary != "" {
		b.WriteString(m.theme.success.Render(m.albumSummary))
		b.WriteString("\n\n")
	}

	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.splitFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(m.theme.info.Render(fmt.Sprintf(
		"Files: %d/%d | Written: %.2f MB",
		m.splitFiles, m.totalFiles, megabytes(m.writtenBytes))))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	return m.theme.box.Render(fmt.Sprintf(
		"✨ Split complete!\n\n%s\nFiles: %d\nSize: %.2f MB",
		m.albumSummary, m.splitFiles, megabytes(m.writtenBytes)))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(m.theme.errText.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString("  " + m.err.Error())
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder
	for _, entry := range m.logs {
		b.WriteString(m.logLine(entry))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) logLine(entry LogEntry) string {
	switch entry.Level {
	case split.LevelError:
		return m.theme.errText.Render("✗ " + entry.Message)
	case split.LevelWarning:
		return m.theme.warning.Render("! " + entry.Message)
	case split.LevelSuccess:
		return m.theme.success.Render("✓ " + entry.Message)
	case split.LevelInfo:
		return m.theme.info.Render("› " + entry.Message)
	default:
		return m.theme.dim.Render("• " + entry.Message)
	}
}

func megabytes(n int64) float64 {
	return float64(n) / 1024 / 1024
}
