package gateway

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"

	"go.opentelemetry.io/otel"

	"github.com/openlumen/walletd/internal/config"
	"github.com/openlumen/walletd/internal/domain"
	"github.com/openlumen/walletd/internal/infra/ledger"
	"github.com/openlumen/walletd/internal/usecase"
)

var tracer = otel.Tracer("gateway")

// HorizonGateway adapts the ledger HTTP client to the gateway port.
// Every transport or account-resolution fault is converted to an
// ExternalServiceError here; raw errors never cross into the usecases.
// Secrets are borrowed for the signing call and not retained or logged.
type HorizonGateway struct {
	client     *ledger.Client
	passphrase string
	maxPages   int
}

func NewHorizonGateway(client *ledger.Client, conf config.Ledger) *HorizonGateway {
	maxPages := conf.MaxHistoryPages
	if maxPages <= 0 {
		maxPages = 100
	}
	return &HorizonGateway{
		client:     client,
		passphrase: conf.NetworkPassphrase,
		maxPages:   maxPages,
	}
}

func (g *HorizonGateway) GenerateKeypair() domain.Result[domain.KeyPair] {
	publicKey, secretKey, err := ledger.GenerateKeypair()
	if err != nil {
		return domain.Fail[domain.KeyPair](domain.InternalError(err.Error()))
	}
	return domain.Ok(domain.KeyPair{PublicKey: publicKey, SecretKey: secretKey})
}

// CreateAccount returns an unsubmitted account record. The ledger side
// materializes lazily on first funding, so no network call happens here.
func (g *HorizonGateway) CreateAccount(userID uint) domain.Result[domain.WalletAccount] {
	keypair := g.GenerateKeypair()
	if !keypair.IsSuccess() {
		return domain.Fail[domain.WalletAccount](keypair.Err())
	}
	return domain.Ok(domain.WalletAccount{
		PublicKey: keypair.Value().PublicKey,
		SecretKey: keypair.Value().SecretKey,
		UserID:    userID,
	})
}

// SendPayment loads the source sequence, builds and signs a single
// payment operation and submits it. The network's rejection reason is
// preserved in the failure message.
func (g *HorizonGateway) SendPayment(ctx context.Context, req usecase.SendPaymentRequest) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "Horizon.Gateway.SendPayment")
	defer span.End()

	private, sourcePublic, err := ledger.ParseSecret(req.SourceSecret)
	if err != nil {
		return domain.Fail[bool](domain.ExternalServiceError("Invalid account"))
	}

	account, err := g.client.Account(ctx, sourcePublic, true)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.ExternalServiceError("Horizon error: " + err.Error()))
	}

	asset := ledger.Asset{Type: domain.NativeAsset}
	if req.AssetIssuer != domain.NativeAsset {
		asset = ledger.Asset{Type: "credit", Code: req.AssetCode, Issuer: req.AssetIssuer}
	}

	envelope := ledger.TransactionEnvelope{
		SourceAccount: sourcePublic,
		Sequence:      account.Sequence + 1,
		Operations: []ledger.PaymentOperation{{
			Type:        "payment",
			Destination: req.DestinationPublic,
			Asset:       asset,
			Amount:      req.Amount,
		}},
		Memo: ledger.Memo{Type: "text", Value: req.Memo},
	}

	payload, err := envelope.SigningPayload(g.passphrase)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.InternalError(err.Error()))
	}
	signature := ed25519.Sign(private, payload)
	envelope.Signatures = []string{base64.StdEncoding.EncodeToString(signature)}

	submitted, err := g.client.SubmitTransaction(ctx, envelope)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.ExternalServiceError("Horizon error: " + err.Error()))
	}
	if !submitted.Successful {
		message := submitted.ResultMessage
		if message == "" {
			message = "Transaction failed"
		}
		return domain.Fail[bool](domain.ExternalServiceError(message))
	}

	return domain.Ok(true)
}

// GetPayments walks the cursor-paginated history forward until an empty
// page, accumulating every record in network order. A fault anywhere in
// the walk discards the partial accumulation.
func (g *HorizonGateway) GetPayments(ctx context.Context, publicKey string) domain.Result[[]domain.Payment] {
	ctx, span := tracer.Start(ctx, "Horizon.Gateway.GetPayments")
	defer span.End()

	payments := []domain.Payment{}
	cursor := ""

	for page := 0; page < g.maxPages; page++ {
		records, err := g.client.Payments(ctx, publicKey, cursor)
		if err != nil {
			span.RecordError(err)
			return domain.Fail[[]domain.Payment](domain.ExternalServiceError("Horizon error: " + err.Error()))
		}
		if len(records) == 0 {
			break
		}

		for _, record := range records {
			payments = append(payments, toPayment(record))
		}
		cursor = records[len(records)-1].PagingToken
	}

	return domain.Ok(payments)
}

func (g *HorizonGateway) GetTestFunds(ctx context.Context, publicKey string) domain.Result[bool] {
	ctx, span := tracer.Start(ctx, "Horizon.Gateway.GetTestFunds")
	defer span.End()

	if err := g.client.RequestAirdrop(ctx, publicKey); err != nil {
		span.RecordError(err)
		return domain.Fail[bool](domain.ExternalServiceError("Test funds failed"))
	}
	return domain.Ok(true)
}

func (g *HorizonGateway) GetBalances(ctx context.Context, publicKey string) domain.Result[[]domain.Balance] {
	ctx, span := tracer.Start(ctx, "Horizon.Gateway.GetBalances")
	defer span.End()

	account, err := g.client.Account(ctx, publicKey, false)
	if err != nil {
		span.RecordError(err)
		return domain.Fail[[]domain.Balance](domain.ExternalServiceError("Horizon error: " + err.Error()))
	}

	balances := make([]domain.Balance, 0, len(account.Balances))
	for _, balance := range account.Balances {
		if balance.AssetType == domain.NativeAsset {
			balances = append(balances, domain.Balance{
				Asset:  domain.NativeAsset,
				Amount: balance.Balance,
				Issuer: domain.NativeAsset,
			})
			continue
		}
		balances = append(balances, domain.Balance{
			Asset:  balance.AssetCode,
			Amount: balance.Balance,
			Issuer: balance.AssetIssuer,
		})
	}

	return domain.Ok(balances)
}

func toPayment(record ledger.PaymentRecord) domain.Payment {
	asset := domain.NativeAsset
	if record.AssetType != domain.NativeAsset {
		asset = record.AssetCode
	}
	return domain.Payment{
		ID:            record.TransactionHash,
		From:          record.From,
		To:            record.To,
		Amount:        record.Amount,
		Asset:         asset,
		CreatedAt:     record.CreatedAt,
		WasSuccessful: record.TransactionSuccessful,
	}
}

var _ usecase.LedgerGateway = (*HorizonGateway)(nil)
