// internal/atm/audit.go

package atm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Receipt 為一次成功提款的結果，同時也是交給稽核 sink 的紀錄。
type Receipt struct {
	ID      uuid.UUID `json:"id"`
	Number  string    `json:"card_number"`
	Amount  int64     `json:"amount"`
	Balance int64     `json:"balance"`
	Plan    Plan      `json:"notes"`
	Time    time.Time `json:"time"`

	// AuditErr 非 nil 表示稽核紀錄寫入失敗（包裝 ErrLogWriteFailed）。
	// 提款本身已完成，不會回滾。
	AuditErr error `json:"-"`
}

// AuditSink 接收成功提款的稽核紀錄。
// Machine 在釋放鎖之後才呼叫，失敗只記錄警告。
type AuditSink interface {
	Record(ctx context.Context, r Receipt) error
}

// AuditFunc 讓一般函式滿足 AuditSink。
type AuditFunc func(ctx context.Context, r Receipt) error

// Record implements AuditSink.
func (f AuditFunc) Record(ctx context.Context, r Receipt) error { return f(ctx, r) }

type nopSink struct{}

func (nopSink) Record(context.Context, Receipt) error { return nil }
