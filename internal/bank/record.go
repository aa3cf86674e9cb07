// internal/bank/record.go

package bank

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind 標示交易紀錄的種類。
type Kind int

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindTransferOut
	KindTransferIn
)

var kindNames = map[Kind]string{
	KindDeposit:     "deposit",
	KindWithdrawal:  "withdrawal",
	KindTransferOut: "transfer_out",
	KindTransferIn:  "transfer_in",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText 讓 Kind 以文字形式出現在 JSON 匯出中。
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown record kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// IsTransfer 回報此種類是否帶有對方帳戶。
func (k Kind) IsTransfer() bool {
	return k == KindTransferOut || k == KindTransferIn
}

// Record represents one immutable entry of an account's history.
//
// Counterparty 只在轉帳時有值；同一筆轉帳的兩側紀錄共用同一個 ID。
// Seq 為帳戶內從 1 開始的遞增序號。
type Record struct {
	ID           uuid.UUID
	Seq          uint64
	Kind         Kind
	Amount       Amount
	Counterparty string
	Time         time.Time
}
