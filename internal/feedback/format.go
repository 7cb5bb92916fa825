package feedback

import (
	"fmt"
	"strings"
	"time"
)

const banner = "============================================================"

// roleLabel turns "software_engineer" into "software engineer".
func roleLabel(role string) string {
	return strings.ReplaceAll(role, "_", " ")
}

// formatReport renders the human-readable artifact that is persisted next to
// the structured report.
func formatReport(r Report, role, transcriptJSON string, at time.Time) string {
	var b strings.Builder
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "INTERVIEW FEEDBACK - %s\n", strings.ToUpper(roleLabel(role)))
	fmt.Fprintf(&b, "Date: %s\n", at.Format("2006-01-02 15:04:05"))
	b.WriteString(banner + "\n\n")

	fmt.Fprintf(&b, "OVERALL SCORE: %d/10\n\n", r.OverallScore)

	b.WriteString("DETAILED SCORES:\n")
	fmt.Fprintf(&b, "  - Communication: %d/10\n    %s\n\n", r.Communication.Score, r.Communication.Feedback)
	fmt.Fprintf(&b, "  - Technical Knowledge: %d/10\n    %s\n\n", r.TechnicalKnowledge.Score, r.TechnicalKnowledge.Feedback)
	fmt.Fprintf(&b, "  - Problem Solving: %d/10\n    %s\n\n", r.ProblemSolving.Score, r.ProblemSolving.Feedback)

	b.WriteString("STRENGTHS:\n")
	for i, s := range r.Strengths {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
	}
	b.WriteString("\n")

	b.WriteString("AREAS FOR IMPROVEMENT:\n")
	for i, s := range r.Improvements {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
	}
	b.WriteString("\n")

	b.WriteString("SUMMARY:\n")
	b.WriteString(r.Summary + "\n\n")

	b.WriteString(banner + "\n")
	b.WriteString("Full Interview Transcript:\n")
	b.WriteString(banner + "\n")
	b.WriteString(transcriptJSON)
	return b.String()
}
