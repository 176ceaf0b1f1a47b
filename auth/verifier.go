package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-guard/core"
)

// Secrets shorter than this are trivially brute-forceable with HS256.
const minSecretLength = 32

const bearerScheme = "Bearer"

type signedClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates and issues HS256-signed bearer credentials carrying
// {sub, role, iat, exp}.
type Verifier struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, fmt.Errorf("auth: signing secret is required")
	}
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("auth: signing secret must be at least %d characters", minSecretLength)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(cfg.Issuer),
		ttl:    ttl,
		now:    now,
	}, nil
}

// FromConfig builds a verifier from the resolved guard configuration.
func FromConfig(cfg core.Config) (*Verifier, error) {
	return NewVerifier(Config{
		Secret: cfg.Token.Secret,
		Issuer: cfg.Token.Issuer,
		TTL:    cfg.Token.TTL,
	})
}

// Verify validates the raw credential and returns its claim set. An absent,
// malformed, expired, or tampered credential is always an unauthenticated
// rejection.
func (v *Verifier) Verify(credential string) (core.Claims, error) {
	if v == nil {
		return core.Claims{}, authUnauthenticated("auth: verifier is not configured", nil)
	}
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return core.Claims{}, authUnauthenticated("auth: credential is required", nil)
	}

	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(credential, &signedClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %q", token.Method.Alg())
		}
		return v.secret, nil
	}, parserOptions...)
	if err != nil {
		return core.Claims{}, authWrapUnauthenticated(err, "auth: invalid credential", nil)
	}

	claims, ok := parsed.Claims.(*signedClaims)
	if !ok || !parsed.Valid {
		return core.Claims{}, authUnauthenticated("auth: invalid credential", nil)
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return core.Claims{}, authUnauthenticated("auth: credential is missing a subject", nil)
	}
	role, err := core.ParseRole(claims.Role)
	if err != nil {
		return core.Claims{}, authWrapUnauthenticated(err, "auth: credential carries an unknown role", nil)
	}

	out := core.Claims{
		SubjectID: subject,
		Role:      role,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Issue signs a fresh credential for an identity. Used by login and
// registration; the guard chain itself never issues credentials.
func (v *Verifier) Issue(identityID string, role core.Role) (string, error) {
	if v == nil {
		return "", fmt.Errorf("auth: verifier is not configured")
	}
	identityID = strings.TrimSpace(identityID)
	if identityID == "" {
		return "", fmt.Errorf("auth: identity id is required")
	}
	if !role.Valid() {
		return "", fmt.Errorf("auth: role %q is not issuable", role)
	}

	now := v.now()
	claims := &signedClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign credential: %w", err)
	}
	return signed, nil
}

// ExtractBearer pulls the raw token out of an Authorization header value.
// The second return reports whether a bearer credential was present at all.
func ExtractBearer(authorization string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || scheme != bearerScheme {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

var (
	_ core.CredentialVerifier = (*Verifier)(nil)
	_ core.CredentialIssuer   = (*Verifier)(nil)
)
