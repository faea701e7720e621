// Package console 提供提款機的文字互動介面：
// 依序詢問卡號、密碼與提款金額，完成一次「授權 + 提款」後結束。
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"atm/internal/atm"

	"go.uber.org/zap"
)

const (
	promptCard   = "Введите номер карты:"
	promptPIN    = "Введите пин-код:"
	promptAmount = "Введите сумму для снятия:"

	msgAuthFailed    = "Неверный пин-код или номер карты"
	msgBalance       = "Ваш баланс: %d"
	msgDispensed     = "Вы сняли %d. Ваш новый баланс: %d"
	msgInvalidAmount = "Недопустимая сумма для снятия."
	msgNoCash        = "Недостаточно средств в банкомате для выдачи запрошенной суммы."
	msgJournalFailed = "Ошибка записи в файл лога: %v"
	msgInputFailed   = "Ошибка: %v"
)

// Teller 為 console 需要的提款機操作，*atm.Machine 即滿足此介面。
type Teller interface {
	Authorize(number, pin string) (atm.Account, error)
	Withdraw(ctx context.Context, acct atm.Account, amount int64) (atm.Receipt, error)
}

// Console 將 Teller 接到一組輸入/輸出串流。
type Console struct {
	teller Teller
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

// New 建立 Console；logger 可為 nil。
func New(t Teller, in io.Reader, out io.Writer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{teller: t, in: bufio.NewScanner(in), out: out, logger: logger}
}

// Run 執行一次互動流程。
// 只有輸入串流失敗（含提前 EOF）會回傳錯誤；授權或提款失敗只輸出訊息。
func (c *Console) Run(ctx context.Context) error {
	number, err := c.ask(promptCard)
	if err != nil {
		return c.inputFailed(err)
	}
	pin, err := c.ask(promptPIN)
	if err != nil {
		return c.inputFailed(err)
	}

	acct, err := c.teller.Authorize(number, pin)
	if err != nil {
		c.println(msgAuthFailed)
		return nil
	}
	c.printf(msgBalance, acct.Balance)

	raw, err := c.ask(promptAmount)
	if err != nil {
		return c.inputFailed(err)
	}
	amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		c.logger.Debug("unparsable amount", zap.String("input", raw))
		c.println(msgInvalidAmount)
		return nil
	}

	r, err := c.teller.Withdraw(ctx, acct, amount)
	switch {
	case err == nil:
		c.printf(msgDispensed, r.Amount, r.Balance)
		if r.AuditErr != nil {
			c.printf(msgJournalFailed, r.AuditErr)
		}
	case errors.Is(err, atm.ErrInvalidAmount):
		c.println(msgInvalidAmount)
	case errors.Is(err, atm.ErrInsufficientInventory):
		c.println(msgNoCash)
	default:
		c.printf(msgInputFailed, err)
	}
	return nil
}

func (c *Console) ask(prompt string) (string, error) {
	c.println(prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(c.in.Text(), "\r"), nil
}

func (c *Console) inputFailed(err error) error {
	c.printf(msgInputFailed, err)
	return fmt.Errorf("read console input: %w", err)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}
