// Package api exposes the dashboard service surface over HTTP for the UI.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/matchboard/matchboard/account"
	"github.com/matchboard/matchboard/bookmark"
	"github.com/matchboard/matchboard/dashboard"
)

type Handler struct {
	svc           *dashboard.Service
	userBookmarks *bookmark.Set[string]
	questionStars *bookmark.Set[int64]
}

func NewHandler(svc *dashboard.Service, users *bookmark.Set[string], questions *bookmark.Set[int64]) *Handler {
	return &Handler{svc: svc, userBookmarks: users, questionStars: questions}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/session", h.HandleCurrentSession)
	g.POST("/session", h.HandleRefreshSession)

	g.GET("/profiles/me", h.HandleMyProfile)
	g.GET("/profiles/:id", h.HandleProfile)
	g.GET("/profiles", h.HandleProfiles)

	g.GET("/profiles/:id/answers", h.HandleAnswers)
	g.POST("/profiles/:id/auto-answer", h.HandleAutoAnswer)
	g.GET("/profiles/:id/stats", h.HandleFilterStats)

	g.GET("/questions/:id", h.HandleQuestion)
	g.POST("/questions/:id/answer", h.HandleSubmitAnswer)
	g.POST("/questions/:id/skip", h.HandleSkipQuestion)
	g.POST("/answers/hide-all", h.HandleHideAll)

	g.GET("/bookmarks/users", h.HandleListUserBookmarks)
	g.POST("/bookmarks/users/:id", h.HandleAddUserBookmark)
	g.DELETE("/bookmarks/users/:id", h.HandleRemoveUserBookmark)

	g.GET("/bookmarks/questions", h.HandleListQuestionStars)
	g.POST("/bookmarks/questions/:id", h.HandleAddQuestionStar)
	g.DELETE("/bookmarks/questions/:id", h.HandleRemoveQuestionStar)
}

// service resolves the per-request service instance: ?fresh=1 forces live
// fetches that overwrite cache records.
func (h *Handler) service(c echo.Context) *dashboard.Service {
	if c.QueryParam("fresh") == "1" {
		return h.svc.WithCacheBypass(true)
	}
	return h.svc
}

func (h *Handler) HandleCurrentSession(c echo.Context) error {
	sess, ok := h.svc.CurrentSession(c.Request().Context())
	if !ok {
		return h.Error(c, http.StatusNotFound, "No active session", nil)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"account_id": sess.AccountID,
	})
}

func (h *Handler) HandleRefreshSession(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", err)
	}

	sess, err := h.svc.RefreshSession(c.Request().Context(), body.Username, body.Password)
	if err != nil {
		return h.domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"account_id": sess.AccountID,
	})
}

func (h *Handler) HandleMyProfile(c echo.Context) error {
	profile, err := h.service(c).MyProfile(c.Request().Context())
	if err != nil {
		return h.domainError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) HandleProfile(c echo.Context) error {
	profile, err := h.service(c).GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.domainError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// HandleProfiles fetches a batch: GET /profiles?ids=1,2,3
func (h *Handler) HandleProfiles(c echo.Context) error {
	raw := c.QueryParam("ids")
	var ids []string
	if raw != "" {
		ids = strings.Split(raw, ",")
	}

	profiles, err := h.service(c).GetProfiles(c.Request().Context(), ids)
	if err != nil {
		return h.domainError(c, err)
	}
	return c.JSON(http.StatusOK, profiles)
}

func (h *Handler) HandleAnswers(c echo.Context) error {
	svc := h.service(c)
	ctx := c.Request().Context()
	targetID := c.Param("id")

	var (
		set dashboard.AnswerSet
		err error
	)
	switch c.QueryParam("filter") {
	case "", "public":
		set, err = svc.PublicAnswers(ctx, targetID)
	case "findout":
		set, err = svc.FindOuts(ctx, targetID)
	default:
		return h.Error(c, http.StatusBadRequest, "Unknown filter", nil)
	}
	if err != nil {
		return h.domainError(c, err)
	}
	return c.JSON(http.StatusOK, set)
}

func (h *Handler) HandleAutoAnswer(c echo.Context) error {
	answered, err := h.svc.AutoAnswerMissing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(h.statusFor(err), map[string]interface{}{
			"answered": answered,
			"error":    err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"answered": answered})
}

func (h *Handler) HandleHideAll(c echo.Context) error {
	hidden, err := h.svc.HideAllPublicAnswers(c.Request().Context())
	if err != nil {
		return c.JSON(h.statusFor(err), map[string]interface{}{
			"hidden": hidden,
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"hidden": hidden})
}

func (h *Handler) HandleFilterStats(c echo.Context) error {
	stats, err := h.service(c).QuestionFilterStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.domainError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) HandleQuestion(c echo.Context) error {
	questionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid question id", err)
	}

	question, err := h.service(c).GetQuestion(c.Request().Context(), questionID)
	if err != nil {
		return h.domainError(c, err)
	}
	return c.JSON(http.StatusOK, question)
}

func (h *Handler) HandleSubmitAnswer(c echo.Context) error {
	questionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid question id", err)
	}

	payload, err := h.svc.SubmitAnswer(c.Request().Context(), questionID)
	if err != nil {
		return h.domainError(c, err)
	}
	return c.JSON(http.StatusOK, payload)
}

func (h *Handler) HandleSkipQuestion(c echo.Context) error {
	questionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid question id", err)
	}

	payload, err := h.svc.SkipQuestion(c.Request().Context(), questionID)
	if err != nil {
		return h.domainError(c, err)
	}
	return c.JSON(http.StatusOK, payload)
}

func (h *Handler) HandleListUserBookmarks(c echo.Context) error {
	ids, err := h.userBookmarks.All(c.Request().Context())
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}
	return c.JSON(http.StatusOK, ids)
}

func (h *Handler) HandleAddUserBookmark(c echo.Context) error {
	if err := h.userBookmarks.Add(c.Request().Context(), c.Param("id")); err != nil {
		return h.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) HandleRemoveUserBookmark(c echo.Context) error {
	if err := h.userBookmarks.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return h.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) HandleListQuestionStars(c echo.Context) error {
	ids, err := h.questionStars.All(c.Request().Context())
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}
	return c.JSON(http.StatusOK, ids)
}

func (h *Handler) HandleAddQuestionStar(c echo.Context) error {
	questionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid question id", err)
	}
	if err := h.questionStars.Add(c.Request().Context(), questionID); err != nil {
		return h.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) HandleRemoveQuestionStar(c echo.Context) error {
	questionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid question id", err)
	}
	if err := h.questionStars.Remove(c.Request().Context(), questionID); err != nil {
		return h.Error(c, http.StatusInternalServerError, "Internal server error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) statusFor(err error) int {
	switch {
	case account.IsAuthError(err):
		return http.StatusUnauthorized
	case account.IsTransportError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) domainError(c echo.Context, err error) error {
	code := h.statusFor(err)
	message := "Internal server error"
	switch code {
	case http.StatusUnauthorized:
		message = "Unauthorized"
	case http.StatusBadGateway:
		message = "Platform unreachable"
	}
	return h.Error(c, code, message, err)
}

// Helper for professional errors
func (h *Handler) Error(c echo.Context, code int, message string, err error) error {
	resp := map[string]interface{}{
		"status": message,
		"code":   code,
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	return c.JSON(code, resp)
}
