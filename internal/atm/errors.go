// internal/atm/errors.go
//
// 本檔集中定義提款機的「領域錯誤（domain errors）」。
// 上層（console、HTTP handler）以 errors.Is 判斷類別，再轉成對應訊息或狀態碼。

package atm

import "errors"

var (
	// ErrAuthorizationFailed 代表卡號或密碼錯誤。
	// 兩種情況刻意合併，不透露是哪個欄位錯誤。對應 HTTP 401。
	ErrAuthorizationFailed = errors.New("authorization failed")

	// ErrInvalidAmount 代表金額非法（<=0 或超過帳戶餘額）。對應 HTTP 400。
	ErrInvalidAmount = errors.New("invalid withdrawal amount")

	// ErrInsufficientInventory 代表機內鈔票無法湊出指定金額。對應 HTTP 409。
	ErrInsufficientInventory = errors.New("insufficient cash in machine")

	// ErrLogWriteFailed 代表稽核紀錄寫入失敗；不影響已完成的提款。
	ErrLogWriteFailed = errors.New("audit log write failed")

	// ErrUnfulfillable 由 Inventory.TryPlan 回傳：貪婪配鈔後仍有餘額。
	ErrUnfulfillable = errors.New("amount cannot be dispensed")

	// ErrStaleInventory 由 Inventory.Commit 回傳：計畫與目前庫存不符。
	ErrStaleInventory = errors.New("stale inventory plan")

	// ErrInvalidSeed 代表初始化資料不合法（面額重複、負數張數等）。
	ErrInvalidSeed = errors.New("invalid seed")
)
