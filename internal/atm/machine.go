// internal/atm/machine.go

package atm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"atm/internal/storage"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "atm"

// Machine 為提款機聚合根，組合 Directory 與 Inventory。
// 單一互斥鎖涵蓋「試算 → 扣庫存 → 扣餘額」整段流程，
// 兩筆提款不會在試算與提交之間交錯而配到同一批鈔票。
// 稽核紀錄在釋放鎖之後才寫入，寫入失敗不影響已提交的狀態。
//
// - mu：序列化所有讀寫。
// - cash / accts：只在臨界區內讀取或修改。
// - sink：稽核紀錄輸出（檔案、測試替身等）。
type Machine struct {
	mu    sync.Mutex
	cash  *Inventory
	accts *Directory

	sink   AuditSink
	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// Option 調整 Machine 的外部協作者。
type Option func(*Machine)

// WithAuditSink 設定稽核 sink；預設不輸出。
func WithAuditSink(s AuditSink) Option {
	return func(m *Machine) {
		if s != nil {
			m.sink = s
		}
	}
}

// WithLogger 設定結構化 logger；預設 zap.NewNop()。
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTracerProvider 設定 OpenTelemetry tracer provider；預設使用全域 provider。
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Machine) {
		if tp != nil {
			m.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithClock 替換時間來源（測試用）。
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMachine 以 seed 建立提款機。seed 由外部初始化者提供（設定檔或預設值）。
func NewMachine(seed storage.Seed, opts ...Option) (*Machine, error) {
	stocks := make([]Stock, 0, len(seed.Banknotes))
	for _, b := range seed.Banknotes {
		stocks = append(stocks, Stock{Denomination: b.Denomination, Count: b.Count})
	}
	inv, err := NewInventory(stocks)
	if err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, len(seed.Cards))
	for _, c := range seed.Cards {
		accounts = append(accounts, Account{Number: c.Number, PIN: c.PIN, Balance: c.Balance})
	}
	dir, err := NewDirectory(accounts)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		cash:   inv,
		accts:  dir,
		sink:   nopSink{},
		logger: zap.NewNop(),
		tracer: otel.GetTracerProvider().Tracer(tracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Authorize 驗證卡號與密碼。
func (m *Machine) Authorize(number, pin string) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := m.accts.Authorize(number, pin)
	if err != nil {
		m.logger.Info("authorization rejected", zap.String("card", MaskNumber(number)))
		return Account{}, err
	}
	return a, nil
}

// Balance 回傳已授權帳戶的目前餘額。
func (m *Machine) Balance(_ context.Context, acct Account) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accts.Balance(acct.Number)
}

// Cash 回傳庫存快照與總金額。
func (m *Machine) Cash() ([]Stock, int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cash.Snapshot(), m.cash.TotalValue()
}

// Withdraw 提款為「單一臨界區內」的全有或全無操作：
// 1) 檢核金額 → 2) 試算出鈔計畫 → 3) 扣庫存並扣餘額 → 4) 解鎖後寫稽核紀錄。
// 1、2 任一步失敗皆不改變任何狀態。
func (m *Machine) Withdraw(ctx context.Context, acct Account, amount int64) (Receipt, error) {
	ctx, span := m.tracer.Start(ctx, "atm.withdraw",
		trace.WithAttributes(attribute.Int64("atm.amount", amount)))
	defer span.End()

	log := m.logger.With(zap.String("card", MaskNumber(acct.Number)), zap.Int64("amount", amount))

	r, err := m.withdraw(acct, amount)
	if err != nil {
		span.SetAttributes(attribute.String("atm.outcome", outcome(err)))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Info("withdrawal rejected", zap.Error(err))
		return Receipt{}, err
	}
	span.SetAttributes(
		attribute.String("atm.outcome", "dispensed"),
		attribute.String("atm.receipt_id", r.ID.String()),
	)
	log.Info("withdrawal dispensed",
		zap.String("receipt_id", r.ID.String()),
		zap.Int64("balance", r.Balance),
		zap.Any("notes", r.Plan))

	if err := m.sink.Record(ctx, r); err != nil {
		r.AuditErr = fmt.Errorf("%w: %w", ErrLogWriteFailed, err)
		span.AddEvent("audit.write_failed")
		log.Warn("audit log write failed", zap.String("receipt_id", r.ID.String()), zap.Error(err))
	}
	return r, nil
}

func (m *Machine) withdraw(acct Account, amount int64) (Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance, err := m.accts.Balance(acct.Number)
	if err != nil {
		return Receipt{}, err
	}
	if amount <= 0 || amount > balance {
		return Receipt{}, ErrInvalidAmount
	}

	plan, err := m.cash.TryPlan(amount)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %w", ErrInsufficientInventory, err)
	}
	if err := m.cash.Commit(plan); err != nil {
		return Receipt{}, err
	}
	balance, err = m.accts.Debit(acct.Number, amount)
	if err != nil {
		// 金額已在上方檢核過，理論上不會發生；仍需還原庫存維持全有或全無。
		m.restock(plan)
		return Receipt{}, err
	}

	return Receipt{
		ID:      uuid.New(),
		Number:  acct.Number,
		Amount:  amount,
		Balance: balance,
		Plan:    plan,
		Time:    m.now(),
	}, nil
}

func (m *Machine) restock(plan Plan) {
	for d, n := range plan {
		m.cash.counts[d] += n
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInsufficientInventory):
		return "insufficient_inventory"
	case errors.Is(err, ErrAuthorizationFailed):
		return "unauthorized"
	default:
		return "error"
	}
}

// MaskNumber 僅保留卡號末四碼，供日誌使用。
func MaskNumber(number string) string {
	if len(number) <= 4 {
		return "****"
	}
	return "****" + number[len(number)-4:]
}
