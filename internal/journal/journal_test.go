package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"atm/internal/atm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAppendsOneLinePerWithdrawal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atm_log.txt")
	j := NewFile(path)

	require.NoError(t, j.Record(context.Background(), atm.Receipt{Amount: 300}))
	require.NoError(t, j.Record(context.Background(), atm.Receipt{Amount: 1000}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Снятие наличных: 300\nСнятие наличных: 1000\n", string(data))
}

func TestFileKeepsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atm_log.txt")
	require.NoError(t, os.WriteFile(path, []byte("Снятие наличных: 100\n"), 0o644))

	require.NoError(t, NewFile(path).Record(context.Background(), atm.Receipt{Amount: 200}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Снятие наличных: 100\nСнятие наличных: 200\n", string(data))
}

func TestFileWriteFailure(t *testing.T) {
	// 目錄無法以檔案方式開啟
	j := NewFile(t.TempDir())
	assert.Error(t, j.Record(context.Background(), atm.Receipt{Amount: 100}))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewFile("").Path())
	assert.Equal(t, "Снятие наличных: 50", Line(50))
}
