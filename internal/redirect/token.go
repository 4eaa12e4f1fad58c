package redirect

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token verification failure: bad signature,
// malformed structure, missing key claim, or expiry. Callers must not be able
// to tell which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrMissingSecret is returned when a codec is constructed without a signing secret.
var ErrMissingSecret = errors.New("signing secret is required")

// TokenCodec issues and verifies signed tokens binding a redirect key.
// Tokens are stateless HS256 JWTs committing only to the key (and an issuance
// time when a TTL is configured), never to the destination, so administrative
// destination updates do not invalidate issued links.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a codec with the given secret. A ttl of zero issues
// tokens without expiry; a positive ttl adds iat/exp claims and verification
// rejects tokens older than the ttl.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token committing to the given key.
func (c *TokenCodec) Issue(key string) (string, error) {
	claims := jwt.MapClaims{"key": key}

	if c.ttl > 0 {
		now := time.Now()
		claims["iat"] = jwt.NewNumericDate(now)
		claims["exp"] = jwt.NewNumericDate(now.Add(c.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify validates a token and returns the key it commits to.
// Every failure mode maps to ErrInvalidToken.
func (c *TokenCodec) Verify(token string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if c.ttl > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	parsed, err := jwt.Parse(token,
		func(_ *jwt.Token) (any, error) { return c.secret, nil },
		opts...,
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	key, ok := claims["key"].(string)
	if !ok || key == "" {
		return "", ErrInvalidToken
	}

	return key, nil
}
