// internal/atm/menu.go
//
// 選單註冊：選項編號 → 處理函式。
// 新增功能只需在 menu() 追加一筆，Run 迴圈不用改。
package atm

import (
	"context"

	"atm/internal/bank"
)

type option struct {
	key    string
	label  string
	handle func(ctx context.Context, user *bank.Account) error
}

func (s *Session) menu() []option {
	return []option{
		{key: "1", label: "Deposit", handle: s.deposit},
		{key: "2", label: "Withdraw", handle: s.withdraw},
		{key: "3", label: "Transfer", handle: s.transfer},
		{key: "4", label: "View Transaction History", handle: s.history},
		{key: "5", label: "Quit", handle: s.quit},
	}
}

func findOption(opts []option, key string) (option, bool) {
	for _, o := range opts {
		if o.key == key {
			return o, true
		}
	}
	return option{}, false
}

func (s *Session) printMenu(opts []option) {
	s.println("\nOptions:")
	for _, o := range opts {
		s.printf("%s. %s\n", o.key, o.label)
	}
}
