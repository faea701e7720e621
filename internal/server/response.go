// internal/server/response.go
//
// 統一 HTTP 回應格式：成功回應為 JSON，錯誤回應為 {"message": "..."}。
package server

import "github.com/gofiber/fiber/v2"

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(c *fiber.Ctx, code int, v any) error {
	return c.Status(code).JSON(v)
}

func writeErr(c *fiber.Ctx, err error, code int) error {
	return c.Status(code).JSON(errorResponse{Message: err.Error()})
}
