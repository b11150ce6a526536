package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// accountCacheTTL bounds staleness of cached account lookups. Sequence
// numbers are always re-fetched for signing, so the cache only serves
// balance reads.
const accountCacheTTL = 10 * time.Second

// Client talks to a Horizon-style ledger API over HTTP JSON. It is safe
// for concurrent use.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	friendbotURL string
	cache        *cache.Cache
}

func New(baseURL string, friendbotURL string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		baseURL:      baseURL,
		friendbotURL: friendbotURL,
		cache:        cache.New(accountCacheTTL, time.Minute),
	}
}

// Account is the ledger's view of one address.
type Account struct {
	AccountID string    `json:"accountId"`
	Sequence  int64     `json:"sequence"`
	Balances  []Balance `json:"balances"`
}

type Balance struct {
	AssetType   string `json:"assetType"` // "native" or "credit"
	AssetCode   string `json:"assetCode,omitempty"`
	AssetIssuer string `json:"assetIssuer,omitempty"`
	Balance     string `json:"balance"`
}

// PaymentRecord is one history entry; PagingToken is the opaque cursor
// resuming the query after this record.
type PaymentRecord struct {
	ID                    string `json:"id"`
	PagingToken           string `json:"pagingToken"`
	From                  string `json:"from"`
	To                    string `json:"to"`
	Amount                string `json:"amount"`
	AssetType             string `json:"assetType"`
	AssetCode             string `json:"assetCode,omitempty"`
	CreatedAt             string `json:"createdAt"`
	TransactionHash       string `json:"transactionHash"`
	TransactionSuccessful bool   `json:"transactionSuccessful"`
}

type paymentsPage struct {
	Records []PaymentRecord `json:"records"`
}

// Asset identifies what is being moved: the network-native asset or a
// credit asset named by code+issuer.
type Asset struct {
	Type   string `json:"type"`
	Code   string `json:"code,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

type PaymentOperation struct {
	Type        string `json:"type"`
	Destination string `json:"destination"`
	Asset       Asset  `json:"asset"`
	Amount      string `json:"amount"`
}

type Memo struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// TransactionEnvelope is the submission payload. SigningPayload returns
// the bytes covered by the signature.
type TransactionEnvelope struct {
	SourceAccount string             `json:"sourceAccount"`
	Sequence      int64              `json:"sequence"`
	Operations    []PaymentOperation `json:"operations"`
	Memo          Memo               `json:"memo"`
	Signatures    []string           `json:"signatures,omitempty"`
}

// SigningPayload is the canonical byte form of the envelope without its
// signatures, prefixed with the network passphrase so a transaction
// signed for one network is invalid on another.
func (e TransactionEnvelope) SigningPayload(networkPassphrase string) ([]byte, error) {
	unsigned := e
	unsigned.Signatures = nil
	body, err := json.Marshal(unsigned)
	if err != nil {
		return nil, err
	}
	return append([]byte(networkPassphrase), body...), nil
}

type SubmitResponse struct {
	Successful    bool   `json:"successful"`
	Hash          string `json:"hash"`
	ResultMessage string `json:"resultMessage,omitempty"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to perform request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

// Account fetches the current state of an address. Lookups are cached
// briefly; pass fresh=true to bypass the cache (required before signing).
func (c *Client) Account(ctx context.Context, accountID string, fresh bool) (*Account, error) {
	if !fresh {
		if cached, found := c.cache.Get(accountID); found {
			account := cached.(Account)
			return &account, nil
		}
	}

	var account Account
	if err := c.get(ctx, "/accounts/"+url.PathEscape(accountID), &account); err != nil {
		return nil, err
	}

	c.cache.Set(accountID, account, cache.DefaultExpiration)
	return &account, nil
}

// Payments fetches one page of payment history. An empty cursor starts
// from the beginning; an empty page signals the end of the stream.
func (c *Client) Payments(ctx context.Context, accountID string, cursor string) ([]PaymentRecord, error) {
	path := "/accounts/" + url.PathEscape(accountID) + "/payments"
	if cursor != "" {
		path += "?cursor=" + url.QueryEscape(cursor)
	}

	var page paymentsPage
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return page.Records, nil
}

// SubmitTransaction posts a signed envelope. A decoded response with
// successful=false is returned without error; transports faults are.
func (c *Client) SubmitTransaction(ctx context.Context, envelope TransactionEnvelope) (*SubmitResponse, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode envelope")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to perform request")
	}
	defer resp.Body.Close()

	var submit SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submit); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}
	return &submit, nil
}

// RequestAirdrop asks the test-network faucet to fund an address.
func (c *Client) RequestAirdrop(ctx context.Context, accountID string) error {
	target := c.friendbotURL + "?addr=" + url.QueryEscape(accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to perform request")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
