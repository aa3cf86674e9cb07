// internal/storage/seed.go

// Package storage 負責帳本以外的檔案 I/O：
// 啟動時讀入種子帳戶（YAML），以及把單一帳戶的交易明細匯出成 JSON 對帳單。
// 帳本本身不會被寫回或還原，重新啟動後一律從種子開始。
package storage

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"atm/internal/bank"
)

// SeedAccount 為種子檔中的一筆帳戶。
// PIN 與 Balance 皆以字串讀入，Balance 之後交給 bank.ParseAmount 解析。
type SeedAccount struct {
	ID      string `yaml:"id"`
	PIN     string `yaml:"pin"`
	Balance string `yaml:"balance"`
}

// SeedFile 為種子檔的頂層結構。
type SeedFile struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// DefaultSeed 回傳未指定種子檔時使用的示範帳戶。
func DefaultSeed() []SeedAccount {
	return []SeedAccount{
		{ID: "me", PIN: "2004", Balance: "10000"},
		{ID: "octanet", PIN: "2024", Balance: "100000"},
		{ID: "intern", PIN: "2023", Balance: "1000"},
	}
}

// LoadSeed 讀取並解析 YAML 種子檔。
func LoadSeed(path string) ([]SeedAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read seed file")
	}
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parse seed file %s", path)
	}
	return f.Accounts, nil
}

// NormalizePIN 將 PIN 解析為非負整數後以十進位字串回傳，例如 "02004" 與 "2004" 相同。
// 種子帳戶與登入輸入都經過同一個轉換，兩邊比對時才一致。
func NormalizePIN(s string) (string, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return "", errors.Errorf("pin must be numeric")
	}
	return strconv.FormatUint(n, 10), nil
}

// ApplySeed 依序在帳本中建立種子帳戶，遇到第一個錯誤即停止。
func ApplySeed(l *bank.Ledger, seeds []SeedAccount) error {
	for i, s := range seeds {
		balance, err := bank.ParseAmount(s.Balance)
		if err != nil {
			return errors.Wrapf(err, "seed account %d (%s)", i, s.ID)
		}
		pin, err := NormalizePIN(s.PIN)
		if err != nil {
			return errors.Wrapf(err, "seed account %d (%s)", i, s.ID)
		}
		if _, err := l.CreateAccount(s.ID, pin, balance); err != nil {
			return errors.Wrapf(err, "seed account %d (%s)", i, s.ID)
		}
	}
	return nil
}
