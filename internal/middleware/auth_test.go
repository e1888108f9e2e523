package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interviewai_backend/internal/config"
	"interviewai_backend/internal/model"
	"interviewai_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ConfigMiddleware(func() *config.Config { return cfg }))
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	return r
}

func TestAuthMiddleware_TokenSources(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret"}}
	token, err := util.GenerateJWT(&model.User{BaseModel: model.BaseModel{ID: 7}, Email: "a@b.c"}, "secret", time.Hour)
	require.NoError(t, err)
	r := newRouter(cfg)

	cases := map[string]func(req *http.Request){
		"bearer": func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) },
		"cookie": func(req *http.Request) { req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token}) },
		"query":  func(req *http.Request) { req.URL.RawQuery = "token=" + token },
	}
	for name, apply := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			apply(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "a@b.c")
		})
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "secret"}}
	forged, err := util.GenerateJWT(&model.User{Email: "a@b.c"}, "other", time.Hour)
	require.NoError(t, err)
	r := newRouter(cfg)

	for _, header := range []string{"", "Bearer " + forged, "Bearer garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}
