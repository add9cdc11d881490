package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBasicAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(basicAuthMiddleware("user", "pass"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/brief", func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		path       string
		user, pass string
		auth       bool
		want       int
	}{
		{"/health", "", "", false, http.StatusOK},
		{"/api/v1/brief", "", "", false, http.StatusUnauthorized},
		{"/api/v1/brief", "user", "wrong", true, http.StatusUnauthorized},
		{"/api/v1/brief", "user", "pass", true, http.StatusOK},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.path, nil)
		if c.auth {
			req.SetBasicAuth(c.user, c.pass)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != c.want {
			t.Fatalf("%s (auth=%v %s): status = %d, want %d", c.path, c.auth, c.user, w.Code, c.want)
		}
		if c.want == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") == "" {
			t.Fatalf("missing WWW-Authenticate header")
		}
	}
}
