// internal/storage/storage_test.go
//
// 種子檔讀取與對帳單匯出的測試；使用 t.TempDir() 避免汙染本機環境。
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"atm/internal/bank"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeFile(t, "seed.yaml", `accounts:
  - id: alice
    pin: "1111"
    balance: "100.50"
  - id: bob
    pin: "2222"
    balance: "0"
`)
	seeds, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed err=%v", err)
	}
	want := []SeedAccount{
		{ID: "alice", PIN: "1111", Balance: "100.50"},
		{ID: "bob", PIN: "2222", Balance: "0"},
	}
	if !reflect.DeepEqual(seeds, want) {
		t.Fatalf("seeds=%+v want=%+v", seeds, want)
	}
}

func TestLoadSeedErrors(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
	bad := writeFile(t, "bad.yaml", "accounts: [unterminated\n")
	if _, err := LoadSeed(bad); err == nil {
		t.Fatalf("malformed yaml should fail")
	}
}

func TestApplySeed(t *testing.T) {
	l := bank.NewLedger()
	if err := ApplySeed(l, DefaultSeed()); err != nil {
		t.Fatalf("ApplySeed err=%v", err)
	}
	if got, want := l.IDs(), []string{"intern", "me", "octanet"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs=%v want=%v", got, want)
	}
	me, err := l.Authenticate("me", "2004")
	if err != nil {
		t.Fatalf("Authenticate(me) err=%v", err)
	}
	if me.Balance().String() != "10000.00" {
		t.Fatalf("me balance=%s", me.Balance())
	}
}

func TestApplySeedFailures(t *testing.T) {
	tests := []struct {
		name    string
		seeds   []SeedAccount
		wantErr error
	}{
		{"bad balance", []SeedAccount{{ID: "a", PIN: "1", Balance: "x"}}, bank.ErrInvalidAmount},
		{"negative balance", []SeedAccount{{ID: "a", PIN: "1", Balance: "-1"}}, bank.ErrInvalidAmount},
		{"duplicate", []SeedAccount{{ID: "a", PIN: "1", Balance: "1"}, {ID: "a", PIN: "2", Balance: "1"}}, bank.ErrDuplicateAccount},
		{"empty id", []SeedAccount{{ID: "", PIN: "1", Balance: "1"}}, bank.ErrInvalidAccountID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ApplySeed(bank.NewLedger(), tt.seeds); !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
	if err := ApplySeed(bank.NewLedger(), []SeedAccount{{ID: "a", PIN: "12ab", Balance: "1"}}); err == nil {
		t.Fatalf("non-numeric pin should fail")
	}
}

func TestNormalizePIN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2004", "2004"},
		{"02004", "2004"},
		{" 1111\t", "1111"},
		{"0", "0"},
	}
	for _, tt := range tests {
		got, err := NormalizePIN(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("NormalizePIN(%q) = %q, %v; expected %q", tt.in, got, err, tt.want)
		}
	}
	for _, in := range []string{"", "abc", "-1", "12 34"} {
		if _, err := NormalizePIN(in); err == nil {
			t.Errorf("NormalizePIN(%q) should fail", in)
		}
	}
}

func TestSaveStatement(t *testing.T) {
	l := bank.NewLedger()
	a, _ := l.CreateAccount("A", "1", 15000)
	b, _ := l.CreateAccount("B", "2", 0)
	_ = a.Deposit(5000)
	_ = a.Transfer(b, 10000)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	st := BuildStatement(a, now)
	path := filepath.Join(t.TempDir(), "A-statement.json")
	if err := SaveStatement(path, st); err != nil {
		t.Fatalf("SaveStatement err=%v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Meta      Meta   `json:"_meta"`
		AccountID string `json:"account_id"`
		Balance   string `json:"balance"`
		Entries   []struct {
			Seq          uint64 `json:"seq"`
			Kind         string `json:"kind"`
			Amount       string `json:"amount"`
			Counterparty string `json:"counterparty"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("statement is not valid json: %v", err)
	}
	if got.AccountID != "A" || got.Balance != "100.00" || got.Meta.Version != StatementVersion || !got.Meta.Timestamp.Equal(now) {
		t.Fatalf("header unexpected: %+v", got)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("entries=%d want=2", len(got.Entries))
	}
	if e := got.Entries[0]; e.Seq != 1 || e.Kind != "deposit" || e.Amount != "50.00" || e.Counterparty != "" {
		t.Fatalf("entry 0 unexpected: %+v", e)
	}
	if e := got.Entries[1]; e.Seq != 2 || e.Kind != "transfer_out" || e.Amount != "100.00" || e.Counterparty != "B" {
		t.Fatalf("entry 1 unexpected: %+v", e)
	}
}

func TestBuildStatementEmpty(t *testing.T) {
	l := bank.NewLedger()
	a, _ := l.CreateAccount("A", "1", 0)
	st := BuildStatement(a, time.Now())
	if st.Entries == nil || len(st.Entries) != 0 {
		t.Fatalf("entries should be an empty list, got %#v", st.Entries)
	}
}
