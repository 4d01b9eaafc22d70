package notifier

import (
	"fmt"
	"strings"

	"github.com/mZeeDevv/flight-trend-service/internal/models"
)

var actionHeadlines = map[string]string{
	models.ActionBookNow:          "Book now — fares are expected to rise",
	models.ActionWait:             "Hold off — lower fares are expected",
	models.ActionMonitor:          "Keep watching — fares are volatile",
	models.ActionFlexible:         "No rush — fares look stable",
	models.ActionInsufficientData: "Limited data — treat this trend with caution",
}

// FormatTrendAlert renders a route analysis into email subject and HTML body.
func FormatTrendAlert(result *models.RouteAnalysis) (subject, htmlBody string) {
	rec := result.BookingRecommendation

	subject = fmt.Sprintf("Fare trend alert: %s → %s", result.Origin, result.Destination)

	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h2>%s → %s</h2>", result.Origin, result.Destination))

	headline := actionHeadlines[rec.Action]
	if headline == "" {
		headline = "Fare trend update"
	}
	b.WriteString(fmt.Sprintf("<h3>%s</h3>", headline))
	b.WriteString(fmt.Sprintf("<p>%s</p>", rec.Reasoning))

	b.WriteString("<ul>")
	b.WriteString(fmt.Sprintf("<li>Recent trend: %s %.2f%%</li>", result.TrendSummary.Trend, result.TrendSummary.Percentage))
	if rec.Action != models.ActionInsufficientData {
		b.WriteString(fmt.Sprintf("<li>Expected best price: %.0f (in %d days)</li>", rec.ExpectedPrice, rec.BestDay+1))
		b.WriteString(fmt.Sprintf("<li>Predicted change: %.2f%%</li>", rec.PriceChange))
	}
	b.WriteString(fmt.Sprintf("<li>Confidence: %.0f%%</li>", rec.Confidence*100))
	b.WriteString("</ul>")

	if result.DataSource == models.DataSourceMock {
		b.WriteString("<p><em>This analysis is based on estimated fares; too few real observations were available.</em></p>")
	}

	b.WriteString(fmt.Sprintf("<p>Analyzed at %s</p>", result.AnalyzedAt.Format("2006-01-02 15:04")))
	b.WriteString("</body></html>")

	return subject, b.String()
}
