package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hrdigest/internal/digest"
	"hrdigest/internal/store"
)

// 预览/运维接口：看最近一次报告、手动触发一次运行。
// 推送走钉钉，这里只是旁路窗口。

type Server struct {
	store *store.Store
	// 手动触发一次完整运行（含推送），由 cmd 装配
	trigger func() (*digest.Report, error)
}

func NewServer(st *store.Store, trigger func() (*digest.Report, error)) *Server {
	return &Server{store: st, trigger: trigger}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/report", s.latestReport)
		v1.POST("/run", s.runOnce)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) latestReport(c *gin.Context) {
	if c.DefaultQuery("format", "json") == "md" {
		md := s.store.LatestMarkdown(c.Request.Context())
		if md == "" {
			c.String(http.StatusNotFound, "no report cached yet\n")
			return
		}
		c.String(http.StatusOK, md)
		return
	}

	bs := s.store.LatestReport(c.Request.Context())
	if bs == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "not_found", "message": "no report cached yet"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", bs)
}

func (s *Server) runOnce(c *gin.Context) {
	rep, err := s.trigger()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": "run_failed", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":      "ok",
		"runId":     rep.RunID,
		"kept":      len(rep.Items),
		"perSource": rep.PerSource,
		"errors":    rep.Errors,
	})
}
