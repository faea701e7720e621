// internal/storage/jsonstore.go
//
// 提供 seed 的 JSON 讀寫。
// 寫入採「原子寫入」：先寫 .tmp 檔，再以 rename() 取代原檔。
package storage

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadSeed 讀取指定路徑的 JSON seed 並驗證。
// 檔案不存在、格式錯誤或驗證失敗皆回傳錯誤給上層（通常於啟動時呼叫）。
func LoadSeed(path string) (Seed, error) {
	var seed Seed
	f, err := os.Open(path)
	if err != nil {
		return seed, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return seed, fmt.Errorf("decode seed %s: %w", path, err)
	}
	if err := seed.Validate(); err != nil {
		return seed, err
	}
	return seed, nil
}

// SaveSeed 將 seed 以縮排 JSON 原子寫入 path。
func SaveSeed(path string, seed Seed) error {
	if seed.Meta.Version == 0 {
		seed.Meta.Version = 1
	}
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(seed); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// LoadOrInit 讀取 seed；若檔案不存在則寫入 DefaultSeed 後回傳。
// path 為空時直接回傳 DefaultSeed。
func LoadOrInit(path string) (Seed, error) {
	if path == "" {
		return DefaultSeed(), nil
	}
	seed, err := LoadSeed(path)
	if os.IsNotExist(err) {
		seed = DefaultSeed()
		return seed, SaveSeed(path, seed)
	}
	return seed, err
}
