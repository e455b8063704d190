package notifier

import (
	"fmt"
	"strings"
	"time"

	"aegis/internal/alert"
	"aegis/internal/model"
)

func tierEmoji(t model.Tier) string {
	switch t {
	case model.TierRed:
		return "🔴"
	case model.TierYellow:
		return "🟡"
	}
	return "🟢"
}

var trendArrows = map[string]string{
	alert.TrendUpSharp:   "⬆️",
	alert.TrendUp:        "↗️",
	alert.TrendStable:    "→",
	alert.TrendDown:      "↘️",
	alert.TrendDownSharp: "⬇️",
}

func dimLabel(dim string) string {
	if dim == "" {
		return dim
	}
	return strings.ToUpper(dim[:1]) + dim[1:]
}

// FormatAssessment renders a full assessment report for Telegram.
func FormatAssessment(a *model.Assessment, trends alert.Trends) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>Aegis Risk Report</b> | %s\n\n",
		tierEmoji(a.Tier), a.GeneratedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Overall risk: <b>%.2f / 10</b> (%s)\n", a.OverallScore, a.Tier))
	b.WriteString(fmt.Sprintf("Confidence: %.1f (%s)\n", a.Confidence.Score, a.Confidence.Level))
	if trends.Change4W != nil {
		b.WriteString(fmt.Sprintf("4-week change: %+.2f\n", *trends.Change4W))
	}
	b.WriteString("\n📊 <b>Dimensions:</b>\n")

	for _, dim := range model.Dimensions() {
		score, ok := a.DimensionScores[dim]
		if !ok {
			b.WriteString(fmt.Sprintf("  %s: no data\n", dimLabel(dim)))
			continue
		}
		arrow := trendArrows[trends.Dimensions[dim]]
		b.WriteString(fmt.Sprintf("  %s: %.2f (weight %.0f%%) %s\n",
			dimLabel(dim), score, a.NormalizedWeights[dim]*100, arrow))
	}

	if active := a.ActiveWarnings(); len(active) > 0 {
		b.WriteString("\n⚠️ <b>Warnings:</b>\n")
		for _, name := range active {
			b.WriteString(fmt.Sprintf("  %s\n", a.Warnings[name].Message))
		}
	}

	if evidence := alert.KeyEvidence(a, 5); len(evidence) > 0 {
		b.WriteString("\n🔎 <b>Key signals:</b>\n")
		for _, s := range evidence {
			b.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	return b.String()
}

// FormatAlert renders an alert message with triggers and supporting evidence.
func FormatAlert(a *model.Assessment, d alert.Decision) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>Aegis RISK ALERT</b> | %s\n\n",
		tierEmoji(a.Tier), time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Overall risk: <b>%.2f / 10</b> (%s)\n\n", a.OverallScore, a.Tier))

	b.WriteString("🚨 <b>Triggered by:</b>\n")
	for _, trig := range d.Triggers {
		b.WriteString(fmt.Sprintf("  • %s\n", trig))
	}

	if evidence := alert.KeyEvidence(a, 5); len(evidence) > 0 {
		b.WriteString("\n🔎 <b>Evidence:</b>\n")
		for _, s := range evidence {
			b.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	if len(a.ExcludedDimensions) > 0 {
		b.WriteString(fmt.Sprintf("\nNo data: %s\n", strings.Join(a.ExcludedDimensions, ", ")))
	}

	return b.String()
}
