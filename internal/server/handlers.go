package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/export"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

const defaultTopN = 10

// rankedRow is one line of a top artists or top tracks response.
type rankedRow struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// table is the search response: column names and the rows under them.
type table struct {
	Query   string   `json:"query"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func errorTable(query, message string) table {
	return table{Query: query, Columns: []string{"Error"}, Rows: [][]any{{message}}}
}

func abortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      err.Error(),
		"request_id": c.GetString(requestIDKey),
	})
}

// events returns the loaded history narrowed by any ?year= parameters.
func (s *Server) events(c *gin.Context) (*history.Collection, []int, bool) {
	var years []int
	for _, raw := range c.QueryArray("year") {
		year, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Errorf("invalid year %q", raw))
			return nil, nil, false
		}
		years = append(years, year)
	}
	return analysis.FilterByYears(s.snapshot().events, years), years, true
}

func topN(c *gin.Context) (int, bool) {
	raw := c.Query("n")
	if raw == "" {
		return defaultTopN, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Errorf("invalid n %q", raw))
		return 0, false
	}
	return n, true
}

func (s *Server) health(c *gin.Context) {
	data := s.snapshot()
	status := "ok"
	loadedAt := ""
	if data.loadedAt.IsZero() {
		status = "not loaded"
	} else {
		loadedAt = data.loadedAt.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          status,
		"events":          data.events.Len(),
		"files":           data.files,
		"skipped":         data.skipped,
		"loaded_at":       loadedAt,
		"available_years": analysis.Years(data.events),
	})
}

func (s *Server) reload(c *gin.Context) {
	result, err := s.Reload(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events":      result.Events.Len(),
		"files":       len(result.Files),
		"skipped":     result.Skipped,
		"file_errors": len(result.FileErrors),
	})
}

func (s *Server) summary(c *gin.Context) {
	events, years, ok := s.events(c)
	if !ok {
		return
	}
	n, ok := topN(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analysis.Summarize(events, analysis.SummaryOptions{
		TopArtists:      n,
		TopTracks:       n,
		TracksPerArtist: 3,
		SkippedRecords:  s.snapshot().skipped,
		Years:           years,
	}))
}

func (s *Server) ranked(c *gin.Context, top func(*history.Collection, int) []analysis.Ranked[string]) {
	events, _, ok := s.events(c)
	if !ok {
		return
	}
	n, ok := topN(c)
	if !ok {
		return
	}
	rows := []rankedRow{}
	for i, r := range top(events, n) {
		rows = append(rows, rankedRow{Rank: i + 1, Name: r.Key, Hours: r.Hours})
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) topArtists(c *gin.Context) {
	s.ranked(c, analysis.TopArtists)
}

func (s *Server) topTracks(c *gin.Context) {
	s.ranked(c, analysis.TopTracks)
}

func (s *Server) monthly(c *gin.Context) {
	events, _, ok := s.events(c)
	if !ok {
		return
	}
	series := analysis.MonthlySeries(events)
	if series == nil {
		series = []analysis.MonthHours{}
	}
	c.JSON(http.StatusOK, series)
}

func (s *Server) weekdayHour(c *gin.Context) {
	events, _, ok := s.events(c)
	if !ok {
		return
	}
	grid := analysis.HourByWeekdayMatrix(events, s.cfg.WeekStart)
	days := make([]string, len(grid.Days))
	for i, d := range grid.Days {
		days[i] = d.String()
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "hours": grid.Hours})
}

func (s *Server) yearMonth(c *gin.Context) {
	events, _, ok := s.events(c)
	if !ok {
		return
	}
	grid := analysis.YearMonthMatrix(events)
	if grid.Years == nil {
		grid.Years = []int{}
		grid.Hours = [][12]float64{}
	}
	c.JSON(http.StatusOK, gin.H{"months": analysis.MonthNames(), "years": grid.Years, "hours": grid.Hours})
}

func (s *Server) search(c *gin.Context) {
	events, _, ok := s.events(c)
	if !ok {
		return
	}
	query := c.Query("artist")
	result, err := analysis.ArtistTracks(events, query)
	if errors.Is(err, analysis.ErrEmptyQuery) {
		c.JSON(http.StatusOK, errorTable(query, "Please enter an artist name."))
		return
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	if result.Empty() {
		c.JSON(http.StatusOK, errorTable(query, result.Message))
		return
	}

	t := table{Query: query, Columns: export.Header}
	for _, row := range result.Rows {
		t.Rows = append(t.Rows, []any{row.Track, row.Hours})
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) export(c *gin.Context) {
	events, _, ok := s.events(c)
	if !ok {
		return
	}
	query := c.Query("artist")
	result, err := analysis.ArtistTracks(events, query)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	path, err := export.Write(s.cfg.ExportDir, query, c.DefaultQuery("format", "csv"), result)
	switch {
	case errors.Is(err, export.ErrNothingToExport):
		abortWithError(c, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	s.logger.Info("exported artist history", "artist", query, "path", path, "rows", len(result.Rows))
	c.JSON(http.StatusOK, gin.H{"path": path, "rows": len(result.Rows)})
}
