// internal/atm/handler.go
//
// 各選單項目的處理函式。每個 handler 只負責：
//  1. 讀取並解析輸入
//  2. 呼叫 bank 層操作
//  3. 把結果或領域錯誤轉成文字
//
// 領域錯誤不會中斷 session；只有輸入結束、ctx 取消或離開才會回傳 error。
package atm

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"atm/internal/bank"
	"atm/internal/storage"
)

// readAmount 讀取金額；格式錯誤時印出訊息並回傳 ok=false。
func (s *Session) readAmount(ctx context.Context, label string) (bank.Amount, bool, error) {
	text, err := s.prompt(ctx, label)
	if err != nil {
		return 0, false, err
	}
	amount, err := bank.ParseAmount(text)
	if err != nil {
		s.println(describeErr(err))
		return 0, false, nil
	}
	return amount, true, nil
}

func (s *Session) deposit(ctx context.Context, user *bank.Account) error {
	amount, ok, err := s.readAmount(ctx, "Enter deposit amount: ")
	if err != nil || !ok {
		return err
	}
	if err := user.Deposit(amount); err != nil {
		s.println(describeErr(err))
		return nil
	}
	s.printf("Deposited %s. Current balance: %s\n", money(amount), money(user.Balance()))
	return nil
}

func (s *Session) withdraw(ctx context.Context, user *bank.Account) error {
	amount, ok, err := s.readAmount(ctx, "Enter withdrawal amount: ")
	if err != nil || !ok {
		return err
	}
	if err := user.Withdraw(amount); err != nil {
		s.println(describeErr(err))
		return nil
	}
	s.printf("Withdrew %s. Current balance: %s\n", money(amount), money(user.Balance()))
	return nil
}

// transfer 先解析收款人再詢問金額；查無收款人時不會要求輸入金額。
func (s *Session) transfer(ctx context.Context, user *bank.Account) error {
	recipientID, err := s.prompt(ctx, "Enter recipient's user ID: ")
	if err != nil {
		return err
	}
	recipient, err := s.ledger.Lookup(recipientID)
	if err != nil {
		s.println(describeErr(err))
		return nil
	}
	amount, ok, err := s.readAmount(ctx, "Enter transfer amount: ")
	if err != nil || !ok {
		return err
	}
	if err := user.Transfer(recipient, amount); err != nil {
		s.log.WithError(err).WithField("account", user.ID()).Debug("transfer rejected")
		s.println(describeErr(err))
		return nil
	}
	s.printf("Transferred %s to %s. Current balance: %s\n", money(amount), recipient.ID(), money(user.Balance()))
	return nil
}

func (s *Session) history(_ context.Context, user *bank.Account) error {
	s.println("Transaction History:")
	n := 0
	for r := range user.History() {
		s.println(describeRecord(r))
		n++
	}
	if n == 0 {
		s.println(msgNoTransactions)
	}
	s.printf("Current balance: %s\n", money(user.Balance()))
	return nil
}

// quit 視設定匯出對帳單，然後結束 session。
func (s *Session) quit(_ context.Context, user *bank.Account) error {
	if s.statementDir != "" {
		path := filepath.Join(s.statementDir, statementName(user.ID()))
		if err := storage.SaveStatement(path, storage.BuildStatement(user, s.now())); err != nil {
			s.log.WithError(err).WithField("account", user.ID()).Error("save statement")
			s.println(msgStatementFailed)
		} else {
			s.log.WithFields(logrus.Fields{"account": user.ID(), "path": path}).Info("statement saved")
			s.printf("Statement saved to %s\n", path)
		}
	}
	s.println(msgGoodbye)
	return errQuit
}

// statementName 只保留檔名安全的字元，避免帳戶 ID 逃出目錄。
// 替換字元會讓不同 ID 得到相同前綴，因此再附上原始 ID 的短雜湊。
func statementName(id string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
	sum := uuid.NewSHA1(uuid.NameSpaceOID, []byte(id))
	return fmt.Sprintf("%s-%x-statement.json", safe, sum[:4])
}
