// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊，與 handler.go 分離。
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Router 建立並回傳整個 fiber 應用。
// 所有端點同時掛在根路徑與 /api/v1 之下。
func (s *Server) Router() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(s.requestLog)

	s.mount(app)
	s.mount(app.Group("/api/v1"))
	return app
}

func (s *Server) mount(r fiber.Router) {
	r.Get("/health", s.health)
	r.Post("/balance", s.balance)
	r.Post("/withdraw", s.withdraw)
	r.Get("/cash", s.cash)
}

// requestLog 記錄每個請求的方法、路徑、狀態碼與耗時。
func (s *Server) requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Debug("http request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)))
	return err
}
