// internal/atm/session.go
//
// Package atm 是帳本的前端：一次互動式 ATM session。
// 負責讀取輸入、呼叫 bank 層的操作，並把結果與錯誤轉成使用者看得懂的文字。
// 所有帳務規則都在 bank 層；本套件只決定「怎麼問、怎麼顯示」。
package atm

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"atm/internal/bank"
	"atm/internal/storage"
)

// errQuit 由「Quit」選項回傳，讓 Run 正常結束。
var errQuit = errors.New("quit")

// maxLineSize 為單行輸入的上限。
const maxLineSize = 1 << 20

// Session 為一次 ATM 互動，生命週期與單一使用者登入相同。
type Session struct {
	ledger *bank.Ledger
	in     io.Reader
	out    io.Writer
	lines  <-chan string
	// readErr 在 lines 關閉前寫入，關閉後才可讀取。
	readErr error

	log          logrus.FieldLogger
	maxAttempts  int
	statementDir string
	now          func() time.Time
}

// Option 調整 Session 行為。
type Option func(*Session)

// WithLogger 指定 session 的 logger。
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

// WithMaxAttempts 指定登入最多可嘗試幾次（至少 1 次）。
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithStatementDir 指定離開時匯出對帳單的目錄；空字串表示不匯出。
func WithStatementDir(dir string) Option {
	return func(s *Session) { s.statementDir = dir }
}

// WithClock 指定對帳單時間戳的來源。
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession 建立一個讀取 in、輸出到 out 的 session。
func NewSession(l *bank.Ledger, in io.Reader, out io.Writer, opts ...Option) *Session {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := &Session{
		ledger:      l,
		in:          in,
		out:         out,
		log:         discard,
		maxAttempts: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run 執行登入與選單迴圈，直到使用者選擇離開、輸入結束或 ctx 被取消。
// 登入失敗與輸入結束都屬於正常結束（回傳 nil）；ctx 取消時回傳 ctx.Err()。
func (s *Session) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	s.lines = s.readLines(done)

	s.log.Info("session started")
	user, err := s.login(ctx)
	if err != nil {
		return s.finish(err)
	}
	if user == nil {
		return nil
	}

	log := s.log.WithField("account", user.ID())
	log.Info("login succeeded")
	s.printf("Welcome, %s!\n", user.ID())

	opts := s.menu()
	for {
		s.printMenu(opts)
		choice, err := s.prompt(ctx, "Enter your choice: ")
		if err != nil {
			return s.finish(err)
		}
		opt, ok := findOption(opts, choice)
		if !ok {
			s.println(msgInvalidChoice)
			continue
		}
		if err := opt.handle(ctx, user); err != nil {
			if errors.Is(err, errQuit) {
				log.Info("session ended")
				return nil
			}
			return s.finish(err)
		}
	}
}

// login 依 maxAttempts 重試；全部失敗時印出訊息並回傳 (nil, nil)。
func (s *Session) login(ctx context.Context) (*bank.Account, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		id, err := s.prompt(ctx, "Enter your user ID: ")
		if err != nil {
			return nil, err
		}
		raw, err := s.prompt(ctx, "Enter your PIN: ")
		if err != nil {
			return nil, err
		}
		if pin, perr := storage.NormalizePIN(raw); perr == nil {
			if acct, aerr := s.ledger.Authenticate(id, pin); aerr == nil {
				return acct, nil
			}
		}
		s.log.WithFields(logrus.Fields{"account": id, "attempt": attempt}).Warn("login failed")
		if attempt < s.maxAttempts {
			s.println(msgRetryLogin)
		}
	}
	s.println(msgAuthFailed)
	return nil, nil
}

// finish 把輸入結束視為正常結束，其餘錯誤原樣回傳。
func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.log.Info("input closed, session ended")
		return nil
	}
	return err
}

// prompt 印出提示後等待下一行輸入；輸入結束回傳 io.EOF，讀取失敗回傳該錯誤。
func (s *Session) prompt(ctx context.Context, label string) (string, error) {
	s.printf("%s", label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			if s.readErr != nil {
				return "", s.readErr
			}
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// readLines 在背景逐行讀取輸入，讓 prompt 可以同時等待 ctx。
func (s *Session) readLines(done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(s.in)
		sc.Buffer(make([]byte, 0, 4096), maxLineSize)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-done:
				return
			}
		}
		if err := sc.Err(); err != nil {
			s.readErr = errors.Wrap(err, "read input")
		}
	}()
	return ch
}
