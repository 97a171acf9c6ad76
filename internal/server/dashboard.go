package server

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/siddhantjain/macro-tracker/internal/model"
	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Macro Tracker - {{.Summary.Date}}</title>
  <style>
    * { box-sizing: border-box; margin: 0; padding: 0; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      background: linear-gradient(135deg, #1a1a2e 0%, #16213e 100%);
      color: #eee; min-height: 100vh; padding: 20px;
    }
    .container { max-width: 800px; margin: 0 auto; }
    h1 { font-size: 1.4em; margin-bottom: 16px; }
    .card { background: rgba(255,255,255,0.06); border-radius: 12px; padding: 16px; margin-bottom: 16px; }
    .nav a { color: #8ab4f8; text-decoration: none; margin-right: 12px; }
    .bar { background: rgba(255,255,255,0.12); border-radius: 6px; height: 10px; overflow: hidden; margin: 4px 0 12px; }
    .bar span { display: block; height: 100%; background: #4ade80; }
    table { width: 100%; border-collapse: collapse; }
    th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid rgba(255,255,255,0.08); font-size: 0.9em; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Macro Tracker &mdash; {{.Summary.Date}} ({{.Summary.Timezone}})</h1>
    <div class="card nav">
      <a href="/?date={{.PrevDay}}">&larr; {{.PrevDay}}</a>
      <a href="/">Today</a>
      <a href="/?date={{.NextDay}}">{{.NextDay}} &rarr;</a>
    </div>
    <div class="card">
      <p>Calories: {{.Summary.Food.Calories}} / {{.Summary.Goals.Calories}} kcal ({{.Summary.Progress.CaloriesPct}}%)</p>
      <div class="bar"><span style="width: {{.CaloriesWidth}}%"></span></div>
      <p>Protein: {{.Summary.Food.ProteinG}}g / {{.Summary.Goals.ProteinG}}g ({{.Summary.Progress.ProteinPct}}%)</p>
      <div class="bar"><span style="width: {{.ProteinWidth}}%"></span></div>
      <p>Water: {{.Summary.Water.TotalLiters}}L / {{.WaterGoalLiters}}L ({{.Summary.Progress.WaterPct}}%)</p>
      <div class="bar"><span style="width: {{.WaterWidth}}%"></span></div>
      <p>Carbs: {{.Summary.Food.CarbsG}}g &middot; Fat: {{.Summary.Food.FatG}}g &middot; Glasses: {{.Summary.Water.Glasses}}</p>
    </div>
    <div class="card">
      <table>
        <tr><th>Time</th><th>Food</th><th>Qty</th><th>kcal</th><th>P</th><th>C</th><th>F</th></tr>
        {{range .Entries}}
        <tr>
          <td>{{.LocalTime}}</td><td>{{.Entry.Name}}</td><td>{{.Entry.Quantity}} {{.Entry.Unit}}</td>
          <td>{{.Entry.Calories}}</td><td>{{.Entry.ProteinG}}</td><td>{{.Entry.CarbsG}}</td><td>{{.Entry.FatG}}</td>
        </tr>
        {{else}}
        <tr><td colspan="7">No entries yet.</td></tr>
        {{end}}
      </table>
    </div>
  </div>
</body>
</html>
`))

type dashboardEntry struct {
	LocalTime string
	Entry     model.FoodEntry
}

type dashboardData struct {
	Summary         *tracker.Summary
	Entries         []dashboardEntry
	PrevDay         string
	NextDay         string
	WaterGoalLiters float64
	CaloriesWidth   float64
	ProteinWidth    float64
	WaterWidth      float64
}

func (s *Server) handleDashboard(c *gin.Context) {
	day, tz := queryDayTZ(c)
	summary, err := s.tracker.GetDailySummary(day, tz)
	if err != nil {
		c.String(http.StatusBadRequest, "bad request: %v", err)
		return
	}
	prev, next, loc := adjacentDays(summary.Date, summary.Timezone)

	entries := make([]dashboardEntry, 0, len(summary.Food.Entries))
	for _, e := range summary.Food.Entries {
		entries = append(entries, dashboardEntry{
			LocalTime: e.Timestamp.In(loc).Format("3:04 PM"),
			Entry:     e,
		})
	}

	data := dashboardData{
		Summary:         summary,
		Entries:         entries,
		PrevDay:         prev,
		NextDay:         next,
		WaterGoalLiters: summary.Goals.WaterML / 1000,
		CaloriesWidth:   capPct(summary.Progress.CaloriesPct),
		ProteinWidth:    capPct(summary.Progress.ProteinPct),
		WaterWidth:      capPct(summary.Progress.WaterPct),
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(c.Writer, data); err != nil {
		c.String(http.StatusInternalServerError, "render dashboard: %v", err)
	}
}

func adjacentDays(day, tz string) (prev, next string, loc *time.Location) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		d = time.Now().In(loc)
	}
	return d.AddDate(0, 0, -1).Format("2006-01-02"), d.AddDate(0, 0, 1).Format("2006-01-02"), loc
}

func capPct(pct float64) float64 {
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
