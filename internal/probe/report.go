package probe

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lunamoth/resona/internal/api"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noteStyle   = lipgloss.NewStyle().Faint(true)
)

const maxRendererKeys = 4

// Report renders the probe results as a table for a human operator. The
// output is not a machine-readable contract.
func Report(results []api.ProbeResult) string {
	if len(results) == 0 {
		return "no endpoints probed\n"
	}

	headers := []string{"ENDPOINT", "AUTH", "STATUS", "BYTES", "SECTIONS", "TOP-LEVEL KEYS"}
	rows := make([][]string, 0, len(results))

	for _, r := range results {
		rows = append(rows, []string{
			r.Endpoint.ID,
			authMark(r.Endpoint),
			statusText(r),
			byteCount(r),
			sectionCount(r),
			strings.Join(r.TopLevelKeys, ","),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	for i, h := range headers {
		b.WriteString(headerStyle.Render(runewidth.FillRight(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteByte('\n')

	for idx, row := range rows {
		r := results[idx]

		for i, cell := range row {
			padded := runewidth.FillRight(cell, widths[i])

			if i == 2 {
				if r.Err != nil {
					padded = failStyle.Render(padded)
				} else {
					padded = okStyle.Render(padded)
				}
			}

			b.WriteString(padded)
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')

		if len(r.RendererKeys) > 0 {
			b.WriteString(noteStyle.Render("    renderers: " + rendererSummary(r.RendererKeys)))
			b.WriteByte('\n')
		}

		if r.Err != nil {
			b.WriteString(noteStyle.Render("    error: " + r.Err.Error()))
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func authMark(ep api.EndpointConfig) string {
	if ep.RequiresAuth {
		return "yes"
	}

	return "no"
}

func statusText(r api.ProbeResult) string {
	if r.Err != nil && r.Status == 0 {
		return "FAIL"
	}

	if r.Err != nil {
		return fmt.Sprintf("FAIL %d", r.Status)
	}

	return fmt.Sprintf("OK %d", r.Status)
}

func byteCount(r api.ProbeResult) string {
	if r.Err != nil {
		return "-"
	}

	return fmt.Sprintf("%d", r.BodyBytes)
}

func sectionCount(r api.ProbeResult) string {
	if r.Err != nil || r.SectionCount == 0 {
		return "-"
	}

	return fmt.Sprintf("%d", r.SectionCount)
}

func rendererSummary(keys []string) string {
	if len(keys) <= maxRendererKeys {
		return strings.Join(keys, ", ")
	}

	return fmt.Sprintf("%s, +%d more",
		strings.Join(keys[:maxRendererKeys], ", "), len(keys)-maxRendererKeys)
}
