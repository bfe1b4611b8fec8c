package usecase

import (
	"context"
	"errors"
	"fmt"

	repo "app/internal/repository"
)

// チェックアウトの失敗理由。すべて今回の呼び出しで終端（リトライしない）。
var (
	ErrCartNotFound         = errors.New("no active cart was found for this user")
	ErrCartAlreadyProcessed = errors.New("cart has already been processed")
	ErrCartEmpty            = errors.New("cart is empty, checkout cannot proceed")
	ErrZeroTotal            = errors.New("cart total is zero, payment cannot be processed")
)

// ストレージ失敗の表示用メッセージ（内部エラーは見せない）
const msgPersistenceError = "could not create invoice"

// CheckoutResultはチェックアウトの唯一の出力。
// 失敗もGoのerrorではなくこの形で返す（呼び出し側はcatch不要）。
type CheckoutResult struct {
	Error     bool   `json:"error"`
	Message   string `json:"message"`
	InvoiceID *int64 `json:"invoice_id,omitempty"`
}

// ステップ間で引き回す状態
type checkoutState struct {
	userID    int64
	cartID    int64
	cartTotal int64
	paymentOK bool
	invoiceID int64
}

// CheckoutUsecaseはカート→請求書の変換を行う。
// 検証 → 支払い → 請求書作成 → カートクローズ を順に実行し、
// どこかで失敗したら即座に応答へ抜ける。
// 全ステップは1トランザクション内（カート行はFOR UPDATEでロック）。
type CheckoutUsecase struct {
	tx repo.TransactionManager
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

// Runは (userID, cartID) からCheckoutResultを決定的に作る。
// 副作用は請求書のINSERTとカートのUPDATEの2つだけ。各0〜1回。
func (u *CheckoutUsecase) Run(ctx context.Context, userID int64, cartID int64) CheckoutResult {
	st := &checkoutState{userID: userID, cartID: cartID}

	steps := []func(ctx context.Context, r repo.TxRepos, st *checkoutState) error{
		u.validateCart,
		u.processPayment,
		u.createInvoice,
		u.closeCart,
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, step := range steps {
			if err := step(ctx, r, st); err != nil {
				//errorを返すとWithinTxがロールバックする。
				//請求書作成後にカートクローズが競合した場合も
				//これで請求書ごと巻き戻る。
				return err
			}
		}
		return nil
	})

	return u.respond(st, err)
}

// 検証：カートの存在・所有・未消費・明細あり
func (u *CheckoutUsecase) validateCart(ctx context.Context, r repo.TxRepos, st *checkoutState) error {
	cart, err := r.Carts().FindForCheckout(ctx, st.cartID, st.userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCartNotFound
	}
	if err != nil {
		return err
	}

	if cart.Ordered {
		return ErrCartAlreadyProcessed
	}

	count, err := r.CartItems().CountByCartID(ctx, st.cartID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrCartEmpty
	}

	return nil
}

// 支払い：合計を確定し、0以下なら拒否。
// 外部ゲートウェイは呼ばない（決済連携のプレースホルダ）。
func (u *CheckoutUsecase) processPayment(ctx context.Context, r repo.TxRepos, st *checkoutState) error {
	total, err := r.Carts().TotalByCartID(ctx, st.cartID)
	if err != nil {
		return err
	}
	st.cartTotal = total

	if total <= 0 {
		return ErrZeroTotal
	}

	st.paymentOK = true
	return nil
}

// 請求書作成：検証済み合計で1件INSERT。
// cart_idがユニークキーなので二重請求はここでも弾かれる。
func (u *CheckoutUsecase) createInvoice(ctx context.Context, r repo.TxRepos, st *checkoutState) error {
	id, err := r.Invoices().Create(ctx, newInvoice(st.userID, st.cartID, st.cartTotal))
	if err != nil {
		return err
	}

	st.invoiceID = id
	return nil
}

// カートクローズ：ordered=false→trueを条件付きUPDATE。
// 0件更新は同一カートへの競合（請求書はロールバックされる）。
func (u *CheckoutUsecase) closeCart(ctx context.Context, r repo.TxRepos, st *checkoutState) error {
	err := r.Carts().MarkOrdered(ctx, st.cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCartAlreadyProcessed
	}
	return err
}

// 応答：成功/失敗をCheckoutResultに畳み込む
func (u *CheckoutUsecase) respond(st *checkoutState, err error) CheckoutResult {
	if err == nil {
		id := st.invoiceID
		return CheckoutResult{
			Error:     false,
			Message:   fmt.Sprintf("Invoice #%d created and cart closed.", id),
			InvoiceID: &id,
		}
	}

	switch {
	case errors.Is(err, ErrCartNotFound),
		errors.Is(err, ErrCartAlreadyProcessed),
		errors.Is(err, ErrCartEmpty),
		errors.Is(err, ErrZeroTotal):
		return CheckoutResult{Error: true, Message: err.Error()}
	}

	//それ以外はストレージ起因。詳細は外へ出さない。
	return CheckoutResult{Error: true, Message: msgPersistenceError}
}
