// internal/atm/inventory.go

package atm

import (
	"fmt"
	"sort"
)

// Stock 為單一面額的鈔票庫存。
type Stock struct {
	Denomination int64 `json:"denomination"`
	Count        int64 `json:"count"`
}

// Plan 為一次出鈔計畫：面額 → 張數。只包含張數 > 0 的面額。
type Plan map[int64]int64

// Total 回傳計畫的總金額。
func (p Plan) Total() int64 {
	var sum int64
	for d, n := range p {
		sum += d * n
	}
	return sum
}

// Denominations 依出鈔順序（大到小）回傳計畫中的面額。
func (p Plan) Denominations() []int64 {
	out := make([]int64, 0, len(p))
	for d := range p {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// Inventory 是機內鈔票庫存，依面額「由大到小」固定排序。
// 排序會影響貪婪配鈔能否成功，所以每次走訪都必須使用同一順序。
//
// Inventory 本身不加鎖；並行安全由 Machine 的互斥鎖負責。
type Inventory struct {
	order  []int64         // 面額，遞減排列
	counts map[int64]int64 // 面額 → 張數
}

// NewInventory 由初始庫存建立 Inventory。
// 面額必須 > 0 且不可重複，張數不可為負。
func NewInventory(stocks []Stock) (*Inventory, error) {
	inv := &Inventory{counts: make(map[int64]int64, len(stocks))}
	for _, s := range stocks {
		if s.Denomination <= 0 {
			return nil, fmt.Errorf("%w: denomination %d must be > 0", ErrInvalidSeed, s.Denomination)
		}
		if s.Count < 0 {
			return nil, fmt.Errorf("%w: negative count for denomination %d", ErrInvalidSeed, s.Denomination)
		}
		if _, dup := inv.counts[s.Denomination]; dup {
			return nil, fmt.Errorf("%w: duplicate denomination %d", ErrInvalidSeed, s.Denomination)
		}
		inv.counts[s.Denomination] = s.Count
		inv.order = append(inv.order, s.Denomination)
	}
	sort.Slice(inv.order, func(i, j int) bool { return inv.order[i] > inv.order[j] })
	return inv, nil
}

// TotalValue 回傳庫存總金額。
func (inv *Inventory) TotalValue() int64 {
	var sum int64
	for _, d := range inv.order {
		sum += d * inv.counts[d]
	}
	return sum
}

// TryPlan 以單次貪婪走訪（不回溯）試算出鈔計畫，不修改庫存。
//
// 對每個面額：若面額 <= 剩餘金額且仍有庫存，取 min(剩餘/面額, 庫存) 張。
// 走完後剩餘為 0 才算成功。此演算法並非最少張數找零，
// 某些實際可湊出的金額會被拒絕（例如 {500×1, 200×3} 提 600）。
func (inv *Inventory) TryPlan(amount int64) (Plan, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	plan := Plan{}
	if amount == 0 {
		return plan, nil
	}
	if inv.TotalValue() < amount {
		return nil, ErrUnfulfillable
	}

	remaining := amount
	for _, d := range inv.order {
		avail := inv.counts[d]
		if avail <= 0 || d > remaining {
			continue
		}
		n := min(remaining/d, avail)
		remaining -= n * d
		plan[d] = n
	}
	if remaining != 0 {
		return nil, ErrUnfulfillable
	}
	return plan, nil
}

// Commit 依計畫扣減庫存。先完整檢查再修改，任何面額不足或不存在
// 皆回傳 ErrStaleInventory 且不改變任何庫存。
func (inv *Inventory) Commit(plan Plan) error {
	for d, n := range plan {
		have, ok := inv.counts[d]
		if !ok || n < 0 || have < n {
			return fmt.Errorf("%w: denomination %d", ErrStaleInventory, d)
		}
	}
	for d, n := range plan {
		inv.counts[d] -= n
	}
	return nil
}

// Snapshot 以出鈔順序回傳庫存拷貝。
func (inv *Inventory) Snapshot() []Stock {
	out := make([]Stock, 0, len(inv.order))
	for _, d := range inv.order {
		out = append(out, Stock{Denomination: d, Count: inv.counts[d]})
	}
	return out
}
