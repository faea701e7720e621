// internal/server/handler.go
//
// Package server 提供提款機的 HTTP 介面（Transport Layer）。
// 每個 handler 僅負責：
//  1. 解析並驗證請求
//  2. 呼叫 atm.Machine 執行商業邏輯
//  3. 回傳標準化 JSON 回應
//
// 卡片不保留 session：每次請求都攜帶卡號與密碼重新授權。
package server

import (
	"errors"

	"atm/internal/atm"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server 為 HTTP 層核心結構。
type Server struct {
	Machine  *atm.Machine
	logger   *zap.Logger
	validate *validator.Validate
}

// NewServer 建立新的 HTTP 伺服器；logger 可為 nil。
func NewServer(m *atm.Machine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Machine:  m,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type cardRequest struct {
	CardNumber string `json:"card_number" validate:"required"`
	PIN        string `json:"pin"         validate:"required"`
}

type withdrawRequest struct {
	cardRequest
	Amount int64 `json:"amount"`
}

type balanceResponse struct {
	CardNumber string `json:"card_number"`
	Balance    int64  `json:"balance"`
}

type cashResponse struct {
	Total  int64       `json:"total"`
	Stocks []atm.Stock `json:"stocks"`
}

// decode 解析 JSON 並以 validator 檢查必填欄位。
func (s *Server) decode(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return err
	}
	return s.validate.Struct(out)
}

// balance 處理 POST /balance → 授權後回傳餘額。
func (s *Server) balance(c *fiber.Ctx) error {
	var req cardRequest
	if err := s.decode(c, &req); err != nil {
		return writeErr(c, err, fiber.StatusBadRequest)
	}
	acct, err := s.Machine.Authorize(req.CardNumber, req.PIN)
	if err != nil {
		return writeErr(c, err, statusFor(err))
	}
	bal, err := s.Machine.Balance(c.UserContext(), acct)
	if err != nil {
		return writeErr(c, err, statusFor(err))
	}
	return writeJSON(c, fiber.StatusOK, balanceResponse{CardNumber: acct.Number, Balance: bal})
}

// withdraw 處理 POST /withdraw → 授權後提款，成功回傳收據。
func (s *Server) withdraw(c *fiber.Ctx) error {
	var req withdrawRequest
	if err := s.decode(c, &req); err != nil {
		return writeErr(c, err, fiber.StatusBadRequest)
	}
	acct, err := s.Machine.Authorize(req.CardNumber, req.PIN)
	if err != nil {
		return writeErr(c, err, statusFor(err))
	}
	r, err := s.Machine.Withdraw(c.UserContext(), acct, req.Amount)
	if err != nil {
		return writeErr(c, err, statusFor(err))
	}
	if r.AuditErr != nil {
		c.Set("X-Audit-Warning", "audit log write failed")
	}
	return writeJSON(c, fiber.StatusOK, r)
}

// cash 處理 GET /cash → 機內庫存。
func (s *Server) cash(c *fiber.Ctx) error {
	stocks, total := s.Machine.Cash()
	return writeJSON(c, fiber.StatusOK, cashResponse{Total: total, Stocks: stocks})
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(c *fiber.Ctx) error {
	return writeJSON(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

// statusFor 將領域錯誤映射為 HTTP 狀態碼。
func statusFor(err error) int {
	switch {
	case errors.Is(err, atm.ErrAuthorizationFailed):
		return fiber.StatusUnauthorized
	case errors.Is(err, atm.ErrInsufficientInventory):
		return fiber.StatusConflict
	case errors.Is(err, atm.ErrInvalidAmount):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
