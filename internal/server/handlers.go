package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/locale"
	"github.com/spiffcs/folio/internal/log"
	"github.com/spiffcs/folio/internal/model"
	"github.com/spiffcs/folio/internal/output"
	"github.com/spiffcs/folio/internal/prefs"
	"github.com/spiffcs/folio/internal/service"
)

type activityRequest struct {
	Username string `json:"username"`
	Page     int    `json:"page"`
}

type activityResponse struct {
	Activities []model.ActivityEvent `json:"activities"`
	Source     model.Origin          `json:"source"`
	Page       int                   `json:"page"`
	HasMore    bool                  `json:"hasMore"`
}

type preferenceRequest struct {
	Value string `json:"value"`
}

func fail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

func username(c *gin.Context, raw string) (string, bool) {
	u := strings.TrimSpace(raw)
	if u == "" {
		fail(c, http.StatusBadRequest, "Username is required")
		return "", false
	}
	return u, true
}

// settings resolves the language and theme of a request: query parameters
// first, then the stored preferences.
func (s *Server) settings(c *gin.Context) (locale.Language, calendar.Theme, bool) {
	p := s.preferences(c)

	if raw := c.Query("lang"); raw != "" {
		lang, err := locale.Parse(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return "", "", false
		}
		p.Language = lang
	}
	if raw := c.Query("theme"); raw != "" {
		theme, err := calendar.ParseTheme(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return "", "", false
		}
		p.Theme = theme
	}
	return p.Language, p.Theme, true
}

// preferences returns the stored preferences, or the defaults when the
// store is missing or unreadable.
func (s *Server) preferences(c *gin.Context) prefs.Preferences {
	if s.store == nil {
		return s.defaults
	}
	p, err := s.store.Load(c.Request.Context())
	if err != nil {
		log.Warn("failed to load preferences", "error", err)
		return s.defaults
	}
	return p
}

func pageParam(c *gin.Context, raw string) (int, bool) {
	if raw == "" {
		return 1, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		fail(c, http.StatusBadRequest, "page must be a positive integer")
		return 0, false
	}
	return n, true
}

func (s *Server) contributions(c *gin.Context) {
	user, ok := username(c, c.Query("username"))
	if !ok {
		return
	}
	lang, theme, ok := s.settings(c)
	if !ok {
		return
	}

	res := s.portfolio.Calendar(c.Request.Context(), user)
	c.JSON(http.StatusOK, output.NewCalendarJSON(output.CalendarData{
		Username: user,
		Calendar: res.Calendar,
		Origin:   res.Origin,
		Lang:     lang,
		Theme:    theme,
		Layout:   s.layout,
	}))
}

func (s *Server) activity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	user, ok := username(c, req.Username)
	if !ok {
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Page < 0 {
		fail(c, http.StatusBadRequest, "page must be a positive integer")
		return
	}

	tl, ok := s.page(c, user, req.Page)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, activityResponse{
		Activities: tl.Events,
		Source:     tl.Origin,
		Page:       tl.Pagination.CurrentPage,
		HasMore:    tl.Pagination.HasMoreData,
	})
}

func (s *Server) timeline(c *gin.Context) {
	user, ok := username(c, c.Query("username"))
	if !ok {
		return
	}
	n, ok := pageParam(c, c.Query("page"))
	if !ok {
		return
	}
	lang, _, ok := s.settings(c)
	if !ok {
		return
	}

	tl, ok := s.page(c, user, n)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, output.NewTimelineJSON(output.TimelineData{
		Username:   user,
		Events:     tl.Events,
		Origin:     tl.Origin,
		Pagination: tl.Pagination,
		Lang:       lang,
		Now:        s.now(),
		Location:   s.location,
	}))
}

func (s *Server) page(c *gin.Context, user string, n int) (service.Timeline, bool) {
	tl, err := s.portfolio.Page(c.Request.Context(), user, n)
	if err != nil {
		// Only cancellation reaches here; the client is gone.
		log.Debug("activity request cancelled", "user", user, "error", err)
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return service.Timeline{}, false
	}
	return tl, true
}

func (s *Server) getPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, s.preferences(c))
}

func (s *Server) putPreference(c *gin.Context) {
	var req preferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	key := prefs.Key(c.Param("key"))
	if _, err := prefs.Validate(key, req.Value); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if s.store == nil {
		fail(c, http.StatusServiceUnavailable, "preferences are not persisted")
		return
	}

	value, err := s.store.Set(c.Request.Context(), key, req.Value)
	if err != nil {
		log.Error("failed to save preference", "key", key, "error", err)
		fail(c, http.StatusInternalServerError, "failed to save preference")
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}
