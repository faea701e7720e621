// internal/journal/journal.go
//
// Package journal 提供提款稽核紀錄的檔案實作（atm.AuditSink）。
// 每筆成功提款追加一行「Снятие наличных: <金額>」到純文字檔。
// 每次寫入都以 append 模式開檔、寫完即關閉，程式中途結束也不會留下未刷新的緩衝。
package journal

import (
	"context"
	"fmt"
	"os"
	"time"

	"atm/internal/atm"

	"go.uber.org/zap/zapcore"
)

// DefaultPath 為預設的稽核檔名。
const DefaultPath = "atm_log.txt"

// Line 回傳一筆提款的稽核文字（不含換行）。
func Line(amount int64) string {
	return fmt.Sprintf("Снятие наличных: %d", amount)
}

// File 將稽核紀錄追加到單一文字檔。
type File struct {
	path string
	enc  zapcore.Encoder
}

var _ atm.AuditSink = (*File)(nil)

// NewFile 建立指向 path 的稽核檔；path 為空時使用 DefaultPath。
// 檔案於第一次寫入時建立。
func NewFile(path string) *File {
	if path == "" {
		path = DefaultPath
	}
	// 只輸出訊息本身，不帶時間與等級欄位。
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	})
	return &File{path: path, enc: enc}
}

// Path 回傳稽核檔路徑。
func (f *File) Path() string { return f.path }

// Record implements atm.AuditSink.
func (f *File) Record(_ context.Context, r atm.Receipt) error {
	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(f.enc, zapcore.AddSync(fh), zapcore.DebugLevel)
	ent := zapcore.Entry{Level: zapcore.InfoLevel, Time: r.Time, Message: Line(r.Amount)}
	if ent.Time.IsZero() {
		ent.Time = time.Now()
	}
	werr := core.Write(ent, nil)
	cerr := fh.Close()
	if werr != nil {
		return werr
	}
	return cerr
}
