// internal/storage/model.go
//
// 定義提款機初始化資料 (seed) 的結構模型。
// seed 由外部初始化者擁有：鈔票庫存與卡片帳戶，於建構 Machine 時傳入，
// 不再寫死在程式碼中。
package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Meta 為 seed 檔案的中繼資料，用於版本比對與人工說明。
type Meta struct {
	Version int    `json:"version"`
	Note    string `json:"note,omitempty"`
}

// Banknote 為單一面額的初始庫存。
type Banknote struct {
	Denomination int64 `json:"denomination" validate:"gt=0"`
	Count        int64 `json:"count"        validate:"gte=0"`
}

// Card 為初始卡片帳戶。PIN 僅存在於 seed，不會出現在任何 API 回應。
type Card struct {
	Number  string `json:"number"  validate:"required"`
	PIN     string `json:"pin"     validate:"required"`
	Balance int64  `json:"balance" validate:"gte=0"`
}

// Seed 為提款機的完整初始狀態。
type Seed struct {
	Meta      Meta       `json:"_meta"`
	Banknotes []Banknote `json:"banknotes" validate:"unique=Denomination,dive"`
	Cards     []Card     `json:"cards"     validate:"unique=Number,dive"`
}

// ErrInvalidSeed 包裝所有 seed 驗證失敗。
var ErrInvalidSeed = errors.New("invalid seed")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate 檢查面額 > 0、張數與餘額非負、卡號與密碼必填、面額與卡號不重複。
func (s Seed) Validate() error {
	if err := getValidator().Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	return nil
}

// DefaultSeed 回傳出廠預設：100 元 10 張、200 元 5 張，一張餘額 1000 的卡片。
func DefaultSeed() Seed {
	return Seed{
		Meta: Meta{Version: 1, Note: "factory default"},
		Banknotes: []Banknote{
			{Denomination: 100, Count: 10},
			{Denomination: 200, Count: 5},
		},
		Cards: []Card{
			{Number: "1234567890123456", PIN: "1234", Balance: 1000},
		},
	}
}
