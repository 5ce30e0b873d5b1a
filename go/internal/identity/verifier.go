package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Roles the identity provider asserts for portal users.
const (
	RoleCoach        = "coach"
	RoleCommissioner = "commissioner"
)

// ErrInvalidToken is returned for tokens that fail verification
var ErrInvalidToken = errors.New("invalid identity token")

// Claims is the verified identity attached to a request. CoachID is the
// provider's subject claim; the engine maps it internally and never reads
// a coach id from a request body.
type Claims struct {
	CoachID uuid.UUID
	Role    string
}

type providerClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates identity-provider tokens with a shared HMAC secret.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret []byte, issuer string) *Verifier {
	return &Verifier{secret: secret, issuer: issuer}
}

// Verify parses and validates a bearer token and extracts its claims.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	var pc providerClaims
	token, err := jwt.ParseWithClaims(tokenString, &pc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	coachID, err := uuid.Parse(pc.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a coach id", ErrInvalidToken)
	}
	if pc.Role != RoleCoach && pc.Role != RoleCommissioner {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, pc.Role)
	}

	return &Claims{CoachID: coachID, Role: pc.Role}, nil
}
