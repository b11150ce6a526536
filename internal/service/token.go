package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openlumen/walletd/internal/config"
	"github.com/openlumen/walletd/internal/domain"
)

// TokenService mints and decodes the bearer tokens presented on every
// request. Tokens are stateless: nothing is stored server-side and there
// is no revocation list.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
}

func NewTokenService(conf config.JWT) *TokenService {
	return &TokenService{
		secret:   []byte(conf.Secret),
		issuer:   conf.Issuer,
		audience: conf.Audience,
		expiry:   time.Duration(conf.ExpiryMinutes) * time.Minute,
	}
}

// Issue signs a token carrying the identity and role claims.
func (s *TokenService) Issue(email string, role string) domain.Result[string] {
	if len(s.secret) == 0 {
		return domain.Fail[string](domain.InternalError("signing key is not configured"))
	}

	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"iss":   s.issuer,
		"aud":   s.audience,
		"exp":   jwt.NewNumericDate(time.Now().Add(s.expiry)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return domain.Fail[string](domain.InternalError(err.Error()))
	}

	return domain.Ok(signed)
}

// Decode validates signature and expiry and returns the email claim.
// Malformed, forged or expired tokens all fail the same way; callers
// branch on the Result instead of recovering from panics.
func (s *TokenService) Decode(token string) domain.Result[string] {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return domain.Fail[string](domain.InternalError("claim not found"))
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Fail[string](domain.InternalError("claim not found"))
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return domain.Fail[string](domain.InternalError("claim not found"))
	}

	return domain.Ok(email)
}
