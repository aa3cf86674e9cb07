// internal/bank/account.go
//
// 本檔定義 Account：單一使用者的憑證、餘額與交易紀錄。
// 每個帳戶各自持有一把鎖，餘額與紀錄只在持鎖時一併修改。

package bank

import (
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Account represents a bank account owned by a Ledger.
type Account struct {
	id         string
	credential string

	mu      sync.RWMutex
	balance Amount
	history []Record
	seq     uint64

	now func() time.Time
	log logrus.FieldLogger
}

// ID 回傳帳戶 ID（建立後不變，不需加鎖）。
func (a *Account) ID() string { return a.id }

// Balance 回傳目前餘額。
func (a *Account) Balance() Amount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// Len 回傳目前交易紀錄筆數。
func (a *Account) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.history)
}

// Deposit 存款：金額需 > 0。
func (a *Account) Deposit(amount Amount) error {
	if amount <= 0 {
		return errors.Wrapf(ErrInvalidAmount, "deposit %s into %s", amount, a.id)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount > MaxAmount-a.balance {
		return errors.Wrapf(ErrInvalidAmount, "deposit %s into %s overflows balance", amount, a.id)
	}
	a.balance += amount
	r := a.appendLocked(Record{Kind: KindDeposit, Amount: amount})
	a.log.WithFields(logrus.Fields{"account": a.id, "amount": amount.String(), "seq": r.Seq}).Debug("deposit")
	return nil
}

// Withdraw 提款：金額需 > 0 且不得超過餘額。
// 餘額不足時不改變任何狀態，也不追加紀錄。
func (a *Account) Withdraw(amount Amount) error {
	if amount <= 0 {
		return errors.Wrapf(ErrInvalidAmount, "withdraw %s from %s", amount, a.id)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "withdraw %s from %s (balance %s)", amount, a.id, a.balance)
	}
	a.balance -= amount
	r := a.appendLocked(Record{Kind: KindWithdrawal, Amount: amount})
	a.log.WithFields(logrus.Fields{"account": a.id, "amount": amount.String(), "seq": r.Seq}).Debug("withdraw")
	return nil
}

// Transfer 將 amount 從 a 轉入 to，兩個帳戶在同一臨界區內完成扣款與入帳。
// 兩把鎖一律依帳戶 ID 字典序取得，反向的並行轉帳不會互相等待。
// 任一檢查失敗時兩邊的餘額與紀錄皆不變。
func (a *Account) Transfer(to *Account, amount Amount) error {
	if to == nil {
		return errors.Wrapf(ErrAccountNotFound, "transfer from %s: no recipient", a.id)
	}
	if amount <= 0 {
		return errors.Wrapf(ErrInvalidAmount, "transfer %s from %s to %s", amount, a.id, to.id)
	}
	if to == a || to.id == a.id {
		return errors.Wrapf(ErrSameAccount, "transfer from %s", a.id)
	}

	first, second := a, to
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if a.balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "transfer %s from %s to %s (balance %s)", amount, a.id, to.id, a.balance)
	}
	if amount > MaxAmount-to.balance {
		return errors.Wrapf(ErrInvalidAmount, "transfer %s to %s overflows balance", amount, to.id)
	}

	ref := uuid.New()
	ts := a.now()
	a.balance -= amount
	to.balance += amount
	out := a.appendLocked(Record{ID: ref, Kind: KindTransferOut, Amount: amount, Counterparty: to.id, Time: ts})
	to.appendLocked(Record{ID: ref, Kind: KindTransferIn, Amount: amount, Counterparty: a.id, Time: ts})

	a.log.WithFields(logrus.Fields{
		"account":      a.id,
		"counterparty": to.id,
		"amount":       amount.String(),
		"seq":          out.Seq,
	}).Debug("transfer")
	return nil
}

// History 回傳交易紀錄的唯讀序列，依寫入順序產出。
// 每次 range 都重新取得當下的紀錄範圍，可重複迭代；
// 迭代期間新增的紀錄不會出現在這一輪。
func (a *Account) History() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		a.mu.RLock()
		recs := a.history[:len(a.history):len(a.history)]
		a.mu.RUnlock()
		for _, r := range recs {
			if !yield(r) {
				return
			}
		}
	}
}

// appendLocked 補上序號、時間與 ID 後追加紀錄；呼叫端須持有 a.mu。
func (a *Account) appendLocked(r Record) Record {
	a.seq++
	r.Seq = a.seq
	if r.Time.IsZero() {
		r.Time = a.now()
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	a.history = append(a.history, r)
	return r
}
