// mockplatform is a development stand-in for the remote matchmaking
// platform. It serves the login, profile, answers, question, and stats
// endpoints against generated fixtures so the dashboard can run end to end
// without touching the real service.
package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/matchboard/matchboard/config"
	"github.com/matchboard/matchboard/logger"
)

const (
	pageSize   = 10
	totalItems = 25
)

type server struct {
	secret    []byte
	accountID string
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	s := &server{
		secret:    []byte(cfg.MockSecret),
		accountID: uuid.NewString(),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.POST("/login", s.handleLogin)
	e.GET("/1/profile/:id", s.handleProfile)
	e.GET("/1/profile/:id/answers", s.handleAnswers)
	e.GET("/1/questions/:id", s.handleQuestion)
	e.POST("/1/questions/:id", s.handleSubmit)
	e.POST("/query", s.handleStats)

	port := cfg.Port + 1000
	logger.Log.Info("mock platform starting", zap.Int("port", port))
	if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
		logger.Log.Fatal("mock platform failed to start", zap.Error(err))
	}
}

// handleLogin accepts any username with a non-empty password and mints an
// HS256 access token. Rejections are signalled in the body, matching the
// platform's convention of embedding the status there.
func (s *server) handleLogin(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if username == "" || password == "" || password == "invalid" {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":     104,
			"status_str": "INVALID_CREDENTIALS",
		})
	}

	claims := jwt.RegisteredClaims{
		Subject:   s.accountID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(6 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"status": 1})
	}

	c.SetCookie(&http.Cookie{Name: "session", Value: uuid.NewString()})
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":            0,
		"status_str":        "OK",
		"userid":            s.accountID,
		"oauth_accesstoken": token,
	})
}

func (s *server) handleProfile(c echo.Context) error {
	id := c.Param("id")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"userid": id,
			"userinfo": map[string]interface{}{
				"age":         30,
				"displayname": "User " + id,
			},
			"location": map[string]interface{}{
				"formatted": map[string]interface{}{
					"standard": "Springfield",
					"distance": 12.5,
				},
			},
			"photos": []map[string]interface{}{
				{"full": fmt.Sprintf("https://cdn.platform.invalid/images/50x0/806x756/0/%s.webp?v=2", uuid.NewString())},
			},
		},
		"extras": map[string]interface{}{
			"lastOnlineString": "Online now",
		},
	})
}

func (s *server) handleAnswers(c echo.Context) error {
	start := 0
	if after := c.QueryParam("after"); after != "" {
		if n, err := strconv.Atoi(after); err == nil {
			start = n
		}
	}

	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	data := make([]map[string]interface{}, 0, pageSize)
	for i := start; i < end; i++ {
		data = append(data, answerFixture(int64(i+1)))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": data,
		"paging": map[string]interface{}{
			"cursors": map[string]interface{}{
				"after": strconv.Itoa(end),
			},
			"end": end >= totalItems,
		},
	})
}

func (s *server) handleQuestion(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	return c.JSON(http.StatusOK, questionFixture(id))
}

func (s *server) handleSubmit(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"qid":      id,
		"answered": true,
	})
}

func (s *server) handleStats(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"match": map[string]interface{}{
			"questionFilters": []map[string]interface{}{
				{"id": "1", "count": totalItems},
				{"id": "9", "count": 18},
				{"id": "10", "count": 7},
				{"id": "11", "count": 4},
			},
		},
	})
}

func questionFixture(id int64) map[string]interface{} {
	return map[string]interface{}{
		"id":      id,
		"genre":   "lifestyle",
		"text":    fmt.Sprintf("Mock question %d?", id),
		"answers": []string{"Yes", "No", "Maybe"},
	}
}

func answerFixture(id int64) map[string]interface{} {
	return map[string]interface{}{
		"question": questionFixture(id),
		"target": map[string]interface{}{
			"answer":     int(id % 3),
			"accepts":    []int{0, 1},
			"note":       "",
			"importance": 3,
		},
	}
}
