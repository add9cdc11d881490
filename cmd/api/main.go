package main

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/LJTian/MacroBrief/internal/api"
	"github.com/LJTian/MacroBrief/internal/config"
	"github.com/LJTian/MacroBrief/internal/scheduler"
	"github.com/LJTian/MacroBrief/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// 未配置 POSTGRES_DSN / REDIS_ADDR 时对应功能关闭，只读写晨报文件
	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}
	defer store.Close()

	s, err := scheduler.New(cfg.CronSpec, scheduler.NewJob(cfg, store))
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()
	defer s.Stop()

	r := gin.Default()
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(store, cfg.OutputPath)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// basicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// 仅当配置了 APP_BASIC_USER / APP_BASIC_PASS 时启用。
// /health 不做认证，便于健康检查。
func basicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "Restricted"
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
