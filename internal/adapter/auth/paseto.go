package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/MikeRez0/studiocheckout/internal/core/port"
)

const payloadClaim = "payload"

type PasetoToken struct {
	parser paseto.Parser
	key    paseto.V4SymmetricKey
	ttl    time.Duration
	now    func() time.Time
}

// New builds a token service from a hex encoded v4 symmetric key. An empty
// key generates a random one, so tokens do not survive a restart.
func New(keyHex string, ttl time.Duration) (*PasetoToken, error) {
	var key paseto.V4SymmetricKey
	if keyHex == "" {
		key = paseto.NewV4SymmetricKey()
	} else {
		var err error
		key, err = paseto.V4SymmetricKeyFromHex(keyHex)
		if err != nil {
			return nil, fmt.Errorf("parse symmetric key: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &PasetoToken{
		parser: paseto.NewParser(),
		key:    key,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// KeyHex exports the key, used by the token minting command.
func (p *PasetoToken) KeyHex() string {
	return p.key.ExportHex()
}

func (p *PasetoToken) CreateToken(buyerReference string) (string, error) {
	if buyerReference == "" {
		return "", domain.ErrTokenCreation
	}

	now := p.now()
	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(p.ttl))
	token.SetSubject(buyerReference)

	payload := port.TokenPayload{BuyerReference: buyerReference}
	err := token.Set(payloadClaim, payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get(payloadClaim, &payload)
	if err != nil || payload.BuyerReference == "" {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
