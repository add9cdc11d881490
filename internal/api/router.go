package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/LJTian/MacroBrief/internal/brief"
	"github.com/LJTian/MacroBrief/internal/storage"
	"github.com/gin-gonic/gin"
)

const summaryCacheTTL = 5 * time.Minute

type Server struct {
	store     *storage.Store
	briefPath string
}

func NewServer(store *storage.Store, briefPath string) *Server {
	return &Server{store: store, briefPath: briefPath}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/brief", s.getBrief)
		v1.GET("/brief/raw", s.getBriefRaw)
		v1.GET("/briefs", s.listBriefs)
		v1.GET("/briefs/dates", s.listBriefDates)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getBrief 返回最新晨报的结论摘要；按文件修改时间缓存
func (s *Server) getBrief(c *gin.Context) {
	ctx := c.Request.Context()

	var cacheKey string
	if info, err := os.Stat(s.briefPath); err == nil {
		cacheKey = fmt.Sprintf("brief:summary:%d", info.ModTime().UnixNano())
		var cached brief.Summary
		if s.store.GetJSON(ctx, cacheKey, &cached) {
			ok(c, cached)
			return
		}
	}

	sum, _, err := brief.ReadFile(s.briefPath)
	if err != nil {
		log.Printf("read brief %s error: %v", s.briefPath, err)
		internalError(c)
		return
	}
	if cacheKey != "" && sum.Exists {
		s.store.SetJSON(ctx, cacheKey, sum, summaryCacheTTL)
	}
	ok(c, sum)
}

// getBriefRaw 返回晨报原文；带 date 参数时从归档读取
func (s *Server) getBriefRaw(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		if !validDate(date) {
			badRequest(c, "date must be YYYY-MM-DD")
			return
		}
		b, found := s.store.GetBrief(date)
		if !found {
			notFound(c)
			return
		}
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(b.Report))
		return
	}

	sum, raw, err := brief.ReadFile(s.briefPath)
	if err != nil {
		log.Printf("read brief %s error: %v", s.briefPath, err)
		internalError(c)
		return
	}
	if !sum.Exists {
		notFound(c)
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(raw))
}

func (s *Server) listBriefs(c *gin.Context) {
	list, err := s.store.ListBriefs(queryLimit(c, 30))
	if err != nil {
		archiveError(c, err)
		return
	}
	ok(c, list)
}

func (s *Server) listBriefDates(c *gin.Context) {
	dates, err := s.store.ListBriefDates(queryLimit(c, 31))
	if err != nil {
		archiveError(c, err)
		return
	}
	ok(c, dates)
}

func queryLimit(c *gin.Context, def int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    "bad_request",
		"message": msg,
	})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"code":    "not_found",
		"message": "brief not found",
	})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "internal_error",
		"message": "internal server error",
	})
}

func archiveError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrArchiveDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "archive_disabled",
			"message": "brief archive is not configured",
		})
		return
	}
	log.Printf("archive query error: %v", err)
	internalError(c)
}
