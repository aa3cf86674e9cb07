// internal/bank/ledger.go

// Package bank 定義核心帳務邏輯：帳戶建立、驗證、查詢，以及存款、提款、轉帳與交易紀錄。
// Ledger 以讀寫鎖保護帳戶索引表；每個 Account 另有自己的鎖保護餘額與紀錄。
// 金額以 int64 的最小貨幣單位（分）儲存，本套件不做任何輸出入。
package bank

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Ledger 擁有整個 session 的所有帳戶；帳戶只會透過 CreateAccount 產生，不會被刪除。
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*Account

	now func() time.Time
	log logrus.FieldLogger
}

// Option 調整 Ledger 的時鐘或 logger。
type Option func(*Ledger)

// WithClock 指定紀錄時間的來源（測試用）。
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger 指定核心操作的 logger；預設丟棄所有輸出。
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Ledger) { l.log = log }
}

// NewLedger 建立空白帳本。
func NewLedger(opts ...Option) *Ledger {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	l := &Ledger{
		accounts: make(map[string]*Account),
		now:      time.Now,
		log:      discard,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateAccount 以 ID、憑證與初始餘額建立帳戶；初始餘額不得為負，也不寫入交易紀錄。
func (l *Ledger) CreateAccount(id, credential string, initial Amount) (*Account, error) {
	if id == "" {
		return nil, ErrInvalidAccountID
	}
	if initial < 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "initial balance %s for %s", initial, id)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[id]; ok {
		return nil, errors.Wrapf(ErrDuplicateAccount, "create %s", id)
	}
	a := &Account{
		id:         id,
		credential: credential,
		balance:    initial,
		now:        l.now,
		log:        l.log,
	}
	l.accounts[id] = a
	l.log.WithFields(logrus.Fields{"account": id, "balance": initial.String()}).Debug("account created")
	return a, nil
}

// Authenticate 在 ID 存在且憑證完全相符時回傳帳戶。
// ID 不存在與憑證錯誤回傳同一個 ErrAuthenticationFailed，不洩漏帳戶是否存在。
func (l *Ledger) Authenticate(id, credential string) (*Account, error) {
	l.mu.RLock()
	a, ok := l.accounts[id]
	l.mu.RUnlock()
	if !ok || a.credential != credential {
		return nil, ErrAuthenticationFailed
	}
	return a, nil
}

// Lookup 依 ID 取得帳戶，不需憑證；用於解析轉帳對象。
func (l *Ledger) Lookup(id string) (*Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.accounts[id]
	if !ok {
		return nil, errors.Wrapf(ErrAccountNotFound, "lookup %s", id)
	}
	return a, nil
}

// IDs 回傳所有帳戶 ID（已排序）。
func (l *Ledger) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.accounts))
	for id := range l.accounts {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
