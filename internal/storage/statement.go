// internal/storage/statement.go
//
// 對帳單匯出：把單一帳戶目前的餘額與交易紀錄寫成 JSON。
// 透過 renameio 先寫暫存檔再 rename，寫入中斷時不會留下半份檔案。

package storage

import (
	"encoding/json"
	"time"

	"github.com/google/renameio"
	"github.com/pkg/errors"

	"atm/internal/bank"
)

// StatementVersion 為對帳單格式版本。
const StatementVersion = 1

// Meta 為對帳單的中繼資料。
type Meta struct {
	Format    string    `json:"format"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// StatementEntry 為對帳單中的一筆交易。
type StatementEntry struct {
	Seq          uint64    `json:"seq"`
	ID           string    `json:"id"`
	Kind         bank.Kind `json:"kind"`
	Amount       string    `json:"amount"`
	Counterparty string    `json:"counterparty,omitempty"`
	Time         time.Time `json:"time"`
}

// Statement 為單一帳戶的對帳單。
type Statement struct {
	Meta      Meta             `json:"_meta"`
	AccountID string           `json:"account_id"`
	Balance   string           `json:"balance"`
	Entries   []StatementEntry `json:"entries"`
}

// BuildStatement 依帳戶目前狀態產生對帳單。
func BuildStatement(a *bank.Account, now time.Time) Statement {
	st := Statement{
		Meta:      Meta{Format: "atm_statement", Version: StatementVersion, Timestamp: now},
		AccountID: a.ID(),
		Balance:   a.Balance().String(),
		Entries:   []StatementEntry{},
	}
	for r := range a.History() {
		st.Entries = append(st.Entries, StatementEntry{
			Seq:          r.Seq,
			ID:           r.ID.String(),
			Kind:         r.Kind,
			Amount:       r.Amount.String(),
			Counterparty: r.Counterparty,
			Time:         r.Time,
		})
	}
	return st
}

// SaveStatement 將對帳單以縮排 JSON 原子寫入 path。
func SaveStatement(path string, st Statement) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode statement")
	}
	data = append(data, '\n')
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write statement %s", path)
	}
	return nil
}
