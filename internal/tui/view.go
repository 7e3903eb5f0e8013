package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mech-Kal/nasasky/internal/nasa"
	"github.com/Mech-Kal/nasasky/internal/render"
)

func (a *App) View() string {
	if a.width == 0 {
		return headerStyle.Render("nasasky")
	}

	// Header
	headerLeft := headerStyle.Render("nasasky")
	headerRight := headerDateStyle.Render(time.Now().Format("Jan 2, 2006"))
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	input := a.input.View()

	// Layout calculations
	headerHeight := 1
	inputHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - inputHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	historyWidth := int(float64(a.width) * 0.3)
	pictureWidth := a.width - historyWidth - 1 // gap

	// History pane
	historyContent := renderHistory(a.dates, a.cursor, a.focus == focusHistory, contentHeight, historyWidth-4)
	var historyPane string
	if a.focus == focusHistory {
		historyPane = historyPaneActiveStyle.Width(historyWidth - 2).Height(contentHeight).Render(historyContent)
	} else {
		historyPane = historyPaneStyle.Width(historyWidth - 2).Height(contentHeight).Render(historyContent)
	}

	// Picture pane: loading / error / record, whichever state is current
	innerPictureW := pictureWidth - 4
	var pictureContent string
	switch {
	case a.loading:
		pictureContent = lipglossCenter(
			a.spinner.View()+" Fetching picture for "+a.loadingDate+"...",
			innerPictureW, contentHeight)
	case a.err != nil:
		pictureContent = renderError(a.errDate, a.err, innerPictureW)
	default:
		pictureContent = renderPicture(a.pic, innerPictureW, contentHeight)
	}
	picturePane := picturePaneStyle.Width(pictureWidth - 2).Height(contentHeight).Render(pictureContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, historyPane, picturePane)

	status := a.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, input, content, status)
}

func renderPicture(pic *nasa.Picture, width, height int) string {
	if pic == nil {
		return lipglossCenter("Enter a date to look up a picture", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := pictureTitleStyle.Width(contentWidth).Render(pic.Title)
	meta := pictureMetaStyle.Render(
		fmt.Sprintf("%s · %s", pic.Date, render.Copyright(pic)),
	)
	body := pictureBodyStyle.Width(contentWidth).Render(wrapText(pic.Explanation, contentWidth))

	var media string
	if pic.Media == nasa.MediaVideo {
		media = pictureLinkStyle.Width(contentWidth).Render("▶ Watch: " + pic.URL)
	} else {
		media = pictureLinkStyle.Width(contentWidth).Render("Image: " + pic.URL)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, meta, "", body, "", media)

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func renderError(date string, err error, width int) string {
	title := errorStyle.Render("Lookup failed for " + date)
	body := errorBodyStyle.Width(width - 2).Render(wrapText(err.Error(), width-2))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
}

func renderHistory(dates []string, cursor int, focused bool, height, width int) string {
	if len(dates) == 0 {
		return lipglossCenter("No saved searches", width, height)
	}

	var b strings.Builder
	b.WriteString(itemStyle.Render("Saved searches") + "\n\n")
	for i, d := range dates {
		if i >= height-2 {
			break
		}
		if focused && i == cursor {
			b.WriteString(itemSelectedStyle.Render("> " + d))
		} else {
			b.WriteString(itemStyle.Render("  " + d))
		}
		if i < len(dates)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a *App) renderStatusBar() string {
	left := fmt.Sprintf(" %d saved", len(a.dates))
	if a.warn != "" {
		left = " " + a.warn
	}

	right := " tab switch pane  enter fetch  ctrl+c quit "
	if a.focus == focusHistory {
		right = " j/k move  enter fetch  q quit "
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(a.width).Render(left + fmt.Sprintf("%*s", gap, "") + right)
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", max(0, height/3)) + strings.Repeat(" ", pad) + s
}
