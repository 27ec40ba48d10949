package resources

import "github.com/shopspring/decimal"

type TopUpStatus string

const (
	TopUpPending  TopUpStatus = "PENDING"
	TopUpApproved TopUpStatus = "APPROVED"
	TopUpRejected TopUpStatus = "REJECTED"
)

type WithdrawalStatus string

const (
	WithdrawalRequested WithdrawalStatus = "REQUESTED"
	WithdrawalPaid      WithdrawalStatus = "PAID"
	WithdrawalRejected  WithdrawalStatus = "REJECTED"
)

// TopUp é uma recarga por transferência bancária aguardando revisão manual.
type TopUp struct {
	ID         int64               `json:"id"`
	UserID     Optional[int64]     `json:"user_id"`
	Amount     decimal.Decimal     `json:"amount"`
	BankName   string              `json:"bank_name"`
	RefNumber  string              `json:"ref_number"`
	ProofURL   string              `json:"proof_url"`
	Status     TopUpStatus         `json:"status"`
	ReviewedBy Optional[int64]     `json:"reviewed_by"`
	ReviewedAt Optional[Timestamp] `json:"reviewed_at"`
	CreatedAt  Timestamp           `json:"created_at"`
}

// TopUpReview é o corpo de PATCH /wallet/topups/{id}.
type TopUpReview struct {
	Status TopUpStatus `json:"status"`
}

// Withdrawal é um pedido de saque para uma conta bancária.
type Withdrawal struct {
	ID          int64               `json:"id"`
	UserID      Optional[int64]     `json:"user_id"`
	Amount      decimal.Decimal     `json:"amount"`
	BankAlias   string              `json:"bank_alias"`
	BankHolder  string              `json:"bank_holder"`
	Status      WithdrawalStatus    `json:"status"`
	ProcessedBy Optional[int64]     `json:"processed_by"`
	ProcessedAt Optional[Timestamp] `json:"processed_at"`
	CreatedAt   Timestamp           `json:"created_at"`
}

type WithdrawalCreate struct {
	Amount     decimal.Decimal `json:"amount"`
	BankAlias  string          `json:"bank_alias"`
	BankHolder string          `json:"bank_holder"`
}

type WithdrawalReview struct {
	Status WithdrawalStatus `json:"status"`
}

// Balance é a resposta de GET /wallet/balance/me.
type Balance struct {
	Balance decimal.Decimal `json:"balance"`
}

// LedgerEntry é um registro imutável do ledger da carteira.
type LedgerEntry struct {
	ID           int64            `json:"id"`
	Type         string           `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	BalanceAfter decimal.Decimal  `json:"balance_after"`
	RefTable     Optional[string] `json:"ref_table"`
	RefID        Optional[int64]  `json:"ref_id"`
	CreatedAt    Timestamp        `json:"created_at"`
}
