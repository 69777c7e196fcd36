package pretty

import (
	"fmt"
	"strings"
	"time"

	"github.com/yaklabco/mtfind/pkg/runner"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 findings (1.2MiB, divide, 8 workers, 14ms)".
func (s *Styles) FormatSummaryOneLine(result *runner.Result, jobs int) string {
	if result == nil {
		return ""
	}

	if result.Findings == 0 {
		return s.Dim.Render("No findings") + s.Dim.Render(fmt.Sprintf(" (%s)", runFacts(result, jobs))) + "\n"
	}

	word := "findings"
	if result.Findings == 1 {
		word = "finding"
	}

	return s.Success.Render(fmt.Sprintf("%d %s", result.Findings, word)) +
		s.Dim.Render(fmt.Sprintf(" (%s)", runFacts(result, jobs))) + "\n"
}

func runFacts(result *runner.Result, jobs int) string {
	var parts []string

	if result.Bytes > 0 {
		parts = append(parts, formatBytes(result.Bytes))
	}
	parts = append(parts, result.Strategy.String())

	workerWord := "workers"
	if jobs == 1 {
		workerWord = "worker"
	}
	parts = append(parts, fmt.Sprintf("%d %s", jobs, workerWord))
	parts = append(parts, result.Duration.Round(time.Microsecond).String())

	return strings.Join(parts, ", ")
}

// formatBytes renders a byte count in human units.
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
