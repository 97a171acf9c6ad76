package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/siddhantjain/macro-tracker/internal/app"
	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

const basicAuthUser = "macro"

// Server exposes the tracker's read-only query operations as a JSON API
// plus an HTML dashboard. Mutations stay on the CLI/assistant path.
type Server struct {
	tracker *tracker.Tracker
	token   string
}

func New(t *tracker.Tracker, token string) *Server {
	return &Server{tracker: t, token: token}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	if s.token != "" {
		r.Use(gin.BasicAuth(gin.Accounts{basicAuthUser: s.token}))
	}

	r.GET("/", s.handleDashboard)

	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
	})
	{
		api.GET("/summary", s.handleSummary)
		api.GET("/food", s.handleFood)
		api.GET("/water", s.handleWater)
		api.GET("/goals", s.handleGoals)
		api.GET("/week", s.handleRange(7))
		api.GET("/month", s.handleRange(30))
	}
	return r
}

func (s *Server) Run(port int) error {
	return s.Router().Run(fmt.Sprintf("127.0.0.1:%d", port))
}

func queryDayTZ(c *gin.Context) (day, tz string) {
	return c.Query("date"), c.Query("tz")
}

func (s *Server) handleSummary(c *gin.Context) {
	day, tz := queryDayTZ(c)
	summary, err := s.tracker.GetDailySummary(day, tz)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleFood(c *gin.Context) {
	day, tz := queryDayTZ(c)
	entries, err := s.tracker.FoodLog(day, tz)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleWater(c *gin.Context) {
	day, tz := queryDayTZ(c)
	status, err := s.tracker.GetWaterStatus(day, tz)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleGoals(c *gin.Context) {
	goals, err := s.tracker.Goals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, goals)
}

type rangeDay struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	WaterML  float64 `json:"water_ml"`
}

// handleRange serves trailing n-day series ending today in the query
// timezone, oldest day first.
func (s *Server) handleRange(days int) gin.HandlerFunc {
	return func(c *gin.Context) {
		tz := c.Query("tz")
		if tz == "" {
			tz = app.DefaultTimezone
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid timezone %q", tz)})
			return
		}
		today := time.Now().In(loc)
		series := make([]rangeDay, 0, days)
		for i := days - 1; i >= 0; i-- {
			day := today.AddDate(0, 0, -i).Format("2006-01-02")
			summary, err := s.tracker.GetDailySummary(day, tz)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			series = append(series, rangeDay{
				Date:     day,
				Calories: summary.Food.Calories,
				Protein:  summary.Food.ProteinG,
				WaterML:  summary.Water.TotalML,
			})
		}
		goals, err := s.tracker.Goals()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"days": series, "goals": goals, "timezone": tz})
	}
}
