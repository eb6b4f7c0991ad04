package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pitchprice/charts"
	"pitchprice/models"
	"pitchprice/services"
)

// Triggerable lets the API kick a manual data refresh
type Triggerable interface {
	Trigger()
}

// LoadHistory reads the persisted dataset load log
type LoadHistory interface {
	RecentLoads(limit int) ([]models.LoadRecord, error)
}

// Server exposes the derived views over HTTP. The rendering layer fetches
// these payloads and paints them; no HTML is produced here.
type Server struct {
	router    *gin.Engine
	dashboard *services.Dashboard
	refresh   Triggerable // may be nil
	loads     LoadHistory // may be nil
}

func New(dashboard *services.Dashboard, devMode bool) *Server {
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:    gin.Default(),
		dashboard: dashboard,
	}
	s.setupRoutes()
	return s
}

// SetRefresher wires the manual refresh endpoint
func (s *Server) SetRefresher(t Triggerable) {
	s.refresh = t
}

// SetLoadHistory wires the load-log endpoint
func (s *Server) SetLoadHistory(h LoadHistory) {
	s.loads = h
}

func (s *Server) setupRoutes() {
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})
	s.router.Use(func(c *gin.Context) {
		c.Header("X-Request-ID", uuid.New().String())
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.GET("/meta", s.handleMeta)
		api.GET("/config", s.handleConfig)
		api.GET("/summary", s.handleSummary)
		api.GET("/evolution", s.handleEvolution)
		api.GET("/segments", s.handleSegments)
		api.GET("/leadtime", s.handleLeadTime)
		api.GET("/premiums", s.handlePremiums)
		api.GET("/availability", s.handleAvailability)
		api.GET("/exclusions", s.handleListExclusions)
		api.POST("/exclusions/:hotel_id", s.handleToggleExclusion)
		api.POST("/refresh", s.handleRefresh)
		api.GET("/loads", s.handleLoads)
	}
}

// parseCriteria reads the filter surface from query parameters. Every
// axis defaults to the "all" sentinel; dates arrive comma-separated.
func parseCriteria(c *gin.Context) models.FilterCriteria {
	criteria := models.FilterCriteria{
		City:      c.DefaultQuery("city", models.FilterAll),
		CityType:  c.DefaultQuery("city_type", models.FilterAll),
		Segment:   c.DefaultQuery("segment", models.FilterAll),
		Proximity: c.DefaultQuery("proximity", models.FilterAll),
	}

	if dates := c.Query("dates"); dates != "" && dates != models.FilterAll {
		for _, d := range strings.Split(dates, ",") {
			if d = strings.TrimSpace(d); d != "" {
				criteria.Dates = append(criteria.Dates, d)
			}
		}
	}

	return criteria
}

func (s *Server) handleMeta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"event":     s.dashboard.Event(),
		"version":   s.dashboard.Version(),
		"freshness": s.dashboard.Freshness(),
		"health":    s.dashboard.Health(),
	})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"event":        s.dashboard.Event(),
		"cities":       s.dashboard.Cities(),
		"hotels":       s.dashboard.Hotels(),
		"control_city": s.dashboard.ControlCity(),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	summary := s.dashboard.Summary(parseCriteria(c))
	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"cards":   charts.BuildSummaryCards(summary),
	})
}

func (s *Server) handleEvolution(c *gin.Context) {
	evolution := s.dashboard.RateEvolution(parseCriteria(c))
	c.JSON(http.StatusOK, gin.H{
		"evolution": evolution,
		"chart":     charts.BuildEvolutionChart(evolution),
	})
}

func (s *Server) handleSegments(c *gin.Context) {
	groups := s.dashboard.Segments(parseCriteria(c))
	c.JSON(http.StatusOK, gin.H{
		"groups": groups,
		"chart":  charts.BuildSegmentChart(groups),
	})
}

func (s *Server) handleLeadTime(c *gin.Context) {
	curves := s.dashboard.LeadTime()
	c.JSON(http.StatusOK, gin.H{
		"curves": curves,
		"chart":  charts.BuildLeadTimeChart(curves),
	})
}

func (s *Server) handlePremiums(c *gin.Context) {
	premiums := s.dashboard.Premiums()
	c.JSON(http.StatusOK, gin.H{
		"premiums": premiums,
		"table":    charts.BuildPremiumTable(premiums),
	})
}

func (s *Server) handleAvailability(c *gin.Context) {
	grid := s.dashboard.Availability(parseCriteria(c))
	c.JSON(http.StatusOK, gin.H{
		"grid":  grid,
		"table": charts.BuildAvailabilityTable(grid),
	})
}

func (s *Server) handleListExclusions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"excluded": s.dashboard.Exclusions()})
}

func (s *Server) handleToggleExclusion(c *gin.Context) {
	hotelID := c.Param("hotel_id")

	known := false
	for _, h := range s.dashboard.Hotels() {
		if h.ID == hotelID {
			known = true
			break
		}
	}
	if !known {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown hotel"})
		return
	}

	excluded := s.dashboard.ToggleExclusion(hotelID)
	c.JSON(http.StatusOK, gin.H{"hotel_id": hotelID, "excluded": excluded})
}

func (s *Server) handleRefresh(c *gin.Context) {
	if s.refresh == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "refresh not configured"})
		return
	}
	s.refresh.Trigger()
	c.JSON(http.StatusAccepted, gin.H{"status": "refresh triggered"})
}

func (s *Server) handleLoads(c *gin.Context) {
	if s.loads == nil {
		c.JSON(http.StatusOK, gin.H{"loads": []models.LoadRecord{}})
		return
	}

	records, err := s.loads.RecentLoads(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read load log"})
		return
	}
	if records == nil {
		records = []models.LoadRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"loads": records})
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
