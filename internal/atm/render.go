// internal/atm/render.go
//
// 統一輸出格式：交易紀錄與錯誤都在這裡轉成文字。
package atm

import (
	"fmt"

	"github.com/pkg/errors"

	"atm/internal/bank"
)

const (
	msgInvalidChoice   = "Invalid choice. Please select a valid option."
	msgAuthFailed      = "Authentication failed. Invalid user ID or PIN."
	msgRetryLogin      = "Invalid user ID or PIN. Please try again."
	msgRecipient404    = "Recipient not found."
	msgNoTransactions  = "No transactions yet."
	msgStatementFailed = "Could not save statement."
	msgGoodbye         = "Thank you for using our ATM!"
)

func money(a bank.Amount) string {
	return "$" + a.String()
}

// describeRecord 將一筆交易紀錄轉成一行文字。
func describeRecord(r bank.Record) string {
	switch r.Kind {
	case bank.KindDeposit:
		return "Deposited " + money(r.Amount)
	case bank.KindWithdrawal:
		return "Withdrew " + money(r.Amount)
	case bank.KindTransferOut:
		return fmt.Sprintf("Transferred %s to %s", money(r.Amount), r.Counterparty)
	case bank.KindTransferIn:
		return fmt.Sprintf("Received %s from %s", money(r.Amount), r.Counterparty)
	default:
		return fmt.Sprintf("%s %s", r.Kind, money(r.Amount))
	}
}

// describeErr 將領域錯誤對應到使用者訊息。
func describeErr(err error) string {
	switch {
	case errors.Is(err, bank.ErrInsufficientFunds):
		return "Insufficient balance!"
	case errors.Is(err, bank.ErrInvalidAmount):
		return "Invalid amount."
	case errors.Is(err, bank.ErrSameAccount):
		return "Cannot transfer to your own account."
	case errors.Is(err, bank.ErrAccountNotFound):
		return msgRecipient404
	default:
		return "Transaction failed."
	}
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Session) println(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}
