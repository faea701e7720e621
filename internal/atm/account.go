// Package atm 定義提款機核心：鈔票庫存、帳戶目錄與提款流程。
// 本檔定義 Account 與 Directory，不含任何 HTTP、console 或檔案細節。

package atm

import (
	"crypto/subtle"
	"fmt"
)

// Account represents a card account known to the machine.
type Account struct {
	Number  string `json:"card_number"`
	PIN     string `json:"-"`
	Balance int64  `json:"balance"`
}

// Directory 以卡號索引帳戶（卡號 → *Account）。
// 與 Inventory 相同，本身不加鎖，由 Machine 序列化存取。
type Directory struct {
	accts map[string]*Account
}

// NewDirectory 由初始帳戶建立目錄；卡號不可為空或重複，餘額不可為負。
func NewDirectory(accounts []Account) (*Directory, error) {
	d := &Directory{accts: make(map[string]*Account, len(accounts))}
	for _, a := range accounts {
		if a.Number == "" {
			return nil, fmt.Errorf("%w: empty card number", ErrInvalidSeed)
		}
		if a.Balance < 0 {
			return nil, fmt.Errorf("%w: negative balance", ErrInvalidSeed)
		}
		if _, dup := d.accts[a.Number]; dup {
			return nil, fmt.Errorf("%w: duplicate card number", ErrInvalidSeed)
		}
		cp := a
		d.accts[a.Number] = &cp
	}
	return d, nil
}

// Authorize 驗證卡號與密碼，成功回傳帳戶的值拷貝。
// 卡號不存在與密碼錯誤皆回傳同一個 ErrAuthorizationFailed。
func (d *Directory) Authorize(number, pin string) (Account, error) {
	a, ok := d.accts[number]
	if !ok || subtle.ConstantTimeCompare([]byte(a.PIN), []byte(pin)) != 1 {
		return Account{}, ErrAuthorizationFailed
	}
	return *a, nil
}

// Balance 回傳帳戶目前餘額。
func (d *Directory) Balance(number string) (int64, error) {
	a, ok := d.accts[number]
	if !ok {
		return 0, ErrAuthorizationFailed
	}
	return a.Balance, nil
}

// Debit 扣款並回傳新餘額。呼叫端需先確認 amount <= 餘額；
// 若違反則回傳 ErrInvalidAmount 且不修改餘額。
func (d *Directory) Debit(number string, amount int64) (int64, error) {
	a, ok := d.accts[number]
	if !ok {
		return 0, ErrAuthorizationFailed
	}
	if amount <= 0 || amount > a.Balance {
		return a.Balance, ErrInvalidAmount
	}
	a.Balance -= amount
	return a.Balance, nil
}
