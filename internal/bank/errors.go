// internal/bank/errors.go
//
// 本檔集中定義領域錯誤（domain errors）。
// 核心操作一律以 error 回傳，呼叫端用 errors.Is 判斷類別；
// 轉成使用者可讀文字是前端（internal/atm）的責任。

package bank

import "github.com/pkg/errors"

var (
	// ErrInvalidAmount 代表金額非法（<=0、格式錯誤、初始餘額為負或加總溢位）。
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds 代表餘額不足，提款或轉帳被拒絕且狀態不變。
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateAccount 代表建立帳戶時 ID 已存在。
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrAccountNotFound 代表查無此帳戶（僅 Lookup 與轉帳對象使用）。
	ErrAccountNotFound = errors.New("account not found")

	// ErrAuthenticationFailed 代表 ID 不存在或憑證不符，兩者對外不可區分。
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrSameAccount 代表轉帳來源與目標為同一帳戶。
	ErrSameAccount = errors.New("cannot transfer to the same account")

	// ErrInvalidAccountID 代表帳戶 ID 為空字串。
	ErrInvalidAccountID = errors.New("account id must not be empty")
)
