package usecase

import (
	"context"

	"github.com/openlumen/walletd/internal/domain"
)

// TransactionUsecase orchestrates ledger operations: it decodes the
// bearer token, resolves the identity, authorizes ownership and
// delegates to the ledger gateway. Gateway Results are forwarded
// untouched so the boundary sees the gateway's own error kind and
// message.
type TransactionUsecase struct {
	users  UserRepository
	tokens TokenService
	auth   *AuthUsecase
	ledger LedgerGateway
	faucet FaucetLimiter
}

func NewTransactionUsecase(
	users UserRepository,
	tokens TokenService,
	auth *AuthUsecase,
	ledger LedgerGateway,
	faucet FaucetLimiter,
) *TransactionUsecase {
	return &TransactionUsecase{
		users:  users,
		tokens: tokens,
		auth:   auth,
		ledger: ledger,
		faucet: faucet,
	}
}

type SendPaymentInput struct {
	DestinationPublicKey string  `json:"destinationPublicKey"`
	Amount               string  `json:"amount"`
	AssetIssuer          string  `json:"assetIssuer"`
	AssetCode            string  `json:"assetCode"`
	Memo                 *string `json:"memo"`
}

type PaymentPage struct {
	Items      []domain.Payment `json:"items"`
	TotalPages int              `json:"totalPages"`
}

type BalancePage struct {
	Items      []domain.Balance `json:"items"`
	TotalPages int              `json:"totalPages"`
}

type GetBalancesInput struct {
	PublicKey          string
	PageNumber         int
	PageSize           int
	FilterZeroBalances bool
}

// resolveOwner runs the decode → resolve → authorize prefix shared by
// every token-scoped ledger operation.
func (uc *TransactionUsecase) resolveOwner(ctx context.Context, token string) (*domain.User, *domain.Error) {
	decoded := uc.tokens.Decode(token)
	if !decoded.IsSuccess() {
		return nil, domain.Unauthorized("")
	}

	user, err := uc.users.GetByEmail(ctx, decoded.Value())
	if err != nil {
		return nil, domain.InternalError(err.Error())
	}
	if user == nil {
		return nil, domain.NotFound("User not found")
	}

	if denied := uc.auth.requireOwner(token, user.Email, domain.Unauthorized("")); denied != nil {
		return nil, denied
	}

	return user, nil
}

// CreateAccount issues a fresh unsubmitted ledger account for the
// token's identity. The account materializes on the network on first
// funding.
func (uc *TransactionUsecase) CreateAccount(ctx context.Context, token string) domain.Result[domain.WalletAccount] {
	ctx, span := tracer.Start(ctx, "Transaction.Usecase.CreateAccount")
	defer span.End()

	user, denied := uc.resolveOwner(ctx, token)
	if denied != nil {
		return domain.Fail[domain.WalletAccount](denied)
	}

	return uc.ledger.CreateAccount(user.ID)
}

// SendPayment signs and submits one payment from the identity's primary
// account.
func (uc *TransactionUsecase) SendPayment(ctx context.Context, token string, input SendPaymentInput) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "Transaction.Usecase.SendPayment")
	defer span.End()

	user, denied := uc.resolveOwner(ctx, token)
	if denied != nil {
		return domain.Fail[bool](denied)
	}

	memo := ""
	if input.Memo != nil {
		memo = *input.Memo
	}

	sent := uc.ledger.SendPayment(ctx, SendPaymentRequest{
		SourceSecret:      user.SecretKey,
		DestinationPublic: input.DestinationPublicKey,
		Amount:            input.Amount,
		AssetIssuer:       input.AssetIssuer,
		AssetCode:         input.AssetCode,
		Memo:              memo,
	})
	if !sent.IsSuccess() {
		return domain.Fail[bool](domain.ExternalServiceError(sent.Err().Message))
	}

	return sent
}

// GetTransactions retrieves the identity's full payment history from
// the ledger and pages it for the caller.
func (uc *TransactionUsecase) GetTransactions(ctx context.Context, token string, pageNumber int, pageSize int) domain.Result[PaymentPage] {
	ctx, span := tracer.Start(ctx, "Transaction.Usecase.GetTransactions")
	defer span.End()

	if !validPage(pageNumber, pageSize) {
		return domain.Fail[PaymentPage](domain.Invalid("Invalid pagination parameters."))
	}

	user, denied := uc.resolveOwner(ctx, token)
	if denied != nil {
		return domain.Fail[PaymentPage](denied)
	}

	fetched := uc.ledger.GetPayments(ctx, user.PublicKey)
	if !fetched.IsSuccess() {
		return domain.Fail[PaymentPage](fetched.Err())
	}

	payments := fetched.Value()
	return domain.Ok(PaymentPage{
		Items:      paginate(payments, pageNumber, pageSize),
		TotalPages: totalPages(len(payments), pageSize),
	})
}

// GetTestFunds asks the test-network faucet to fund an address. Requests
// are throttled per address.
func (uc *TransactionUsecase) GetTestFunds(ctx context.Context, publicKey string) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "Transaction.Usecase.GetTestFunds")
	defer span.End()

	if uc.faucet != nil {
		allowed, err := uc.faucet.Allow(ctx, publicKey)
		if err != nil {
			span.RecordError(err)
			return domain.Fail[bool](domain.InternalError(err.Error()))
		}
		if !allowed {
			return domain.Fail[bool](domain.Conflict("Test funds were already requested recently"))
		}
	}

	funded := uc.ledger.GetTestFunds(ctx, publicKey)
	if !funded.IsSuccess() {
		return domain.Fail[bool](domain.ExternalServiceError(funded.Err().Message))
	}

	return funded
}

// GetBalances fetches the live balance list for an address, optionally
// dropping zero positions before pagination.
func (uc *TransactionUsecase) GetBalances(ctx context.Context, input GetBalancesInput) domain.Result[BalancePage] {
	ctx, span := tracer.Start(ctx, "Transaction.Usecase.GetBalances")
	defer span.End()

	if !validPage(input.PageNumber, input.PageSize) {
		return domain.Fail[BalancePage](domain.Invalid("Invalid pagination parameters."))
	}

	fetched := uc.ledger.GetBalances(ctx, input.PublicKey)
	if !fetched.IsSuccess() {
		return domain.Fail[BalancePage](domain.ExternalServiceError(fetched.Err().Message))
	}

	balances := fetched.Value()
	if input.FilterZeroBalances {
		filtered := make([]domain.Balance, 0, len(balances))
		for _, balance := range balances {
			if balance.Amount != "0.0000000" {
				filtered = append(filtered, balance)
			}
		}
		balances = filtered
	}

	return domain.Ok(BalancePage{
		Items:      paginate(balances, input.PageNumber, input.PageSize),
		TotalPages: totalPages(len(balances), input.PageSize),
	})
}
