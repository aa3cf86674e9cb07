package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"atm/internal/bank"
)

// execute 以給定參數與輸入執行 root command。
func execute(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{"ATM_SEED_FILE", "ATM_LOG_LEVEL", "ATM_DEBUG", "ATM_MAX_LOGIN_ATTEMPTS", "ATM_STATEMENT_DIR"} {
		t.Setenv(k, "")
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCLIDefaultSeed(t *testing.T) {
	out, _, err := execute(t, "me\n2004\n4\n5\n")
	if err != nil {
		t.Fatalf("execute err=%v", err)
	}
	for _, w := range []string{"Welcome, me!", "No transactions yet.", "Current balance: $10000.00", "Thank you for using our ATM!"} {
		if !strings.Contains(out, w) {
			t.Fatalf("output missing %q:\n%s", w, out)
		}
	}
}

func TestCLISeedFile(t *testing.T) {
	out, logs, err := execute(t, "alice\n1111\n3\nbob\n100\n5\n", "--seed", "testdata/seed.yaml", "--debug")
	if err != nil {
		t.Fatalf("execute err=%v", err)
	}
	if !strings.Contains(out, "Transferred $100.00 to bob. Current balance: $50.00") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(logs, "ledger seeded") || !strings.Contains(logs, "level=debug") {
		t.Fatalf("debug logs missing:\n%s", logs)
	}
	if strings.Contains(logs, "1111") {
		t.Fatalf("pin leaked into logs:\n%s", logs)
	}
}

func TestCLIErrors(t *testing.T) {
	if _, _, err := execute(t, "", "--seed", "testdata/missing.yaml"); err == nil {
		t.Fatalf("missing seed file should fail")
	}
	if _, _, err := execute(t, "", "--seed", "testdata/dup.yaml"); !errors.Is(err, bank.ErrDuplicateAccount) {
		t.Fatalf("want ErrDuplicateAccount, got %v", err)
	}
	if _, _, err := execute(t, "", "--env", "testdata/missing.env"); err == nil {
		t.Fatalf("missing env file should fail")
	}
	if _, _, err := execute(t, "", "extra"); err == nil {
		t.Fatalf("positional args should be rejected")
	}
}
