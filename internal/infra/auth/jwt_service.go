package auth

import (
	"strings"
	"time"

	"gatekeeper/config"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
// The secret is set once at construction and never changes afterwards.
type jwtService struct {
	secret []byte
	maxAge time.Duration // Zero disables expiry.
	issuer string
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	var (
		maxAge time.Duration
		issuer string
	)
	if cfg.Auth != nil {
		maxAge = cfg.Auth.TokenMaxAge
		issuer = cfg.Auth.Issuer
	}

	svc, err := newJWTService(cfg.SecretKey.Token, maxAge, issuer, time.Now)
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func newJWTService(secret string, maxAge time.Duration, issuer string, now func() time.Time) (*jwtService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if maxAge < 0 {
		return nil, errors.New("jwt max age must not be negative")
	}

	return &jwtService{
		secret: []byte(secret),
		maxAge: maxAge,
		issuer: issuer,
		now:    now,
	}, nil
}

// Issue signs a token carrying the identity and the current time.
func (s *jwtService) Issue(identity *entity.Identity) (string, error) {
	if identity == nil || identity.Username == "" {
		return "", errors.New("jwt: identity with a username is required")
	}

	issuedAt := s.now()
	claims := &service.Claims{
		UserID:       identity.UserID,
		Username:     identity.Username,
		IsAdmin:      identity.IsAdmin,
		IssuedAtNano: issuedAt.UnixNano(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  identity.UserID.String(),
			Issuer:   s.issuer,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	if s.maxAge > 0 {
		claims.ExpiresAt = expiresAt(issuedAt.Add(s.maxAge))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "jwt: sign token")
	}

	return signed, nil
}

// Verify checks the token signature first and only then looks at its claims.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	if err := s.verifySignature(tokenString); err != nil {
		return nil, err
	}

	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, errors.WithStack(service.ErrTokenBadSignature)
	}

	if claims.Username == "" || claims.IssuedAt == nil {
		return nil, errors.Wrap(service.ErrTokenMalformed, "missing identity claims")
	}
	issuedAt, err := preciseIssuedAt(claims)
	if err != nil {
		return nil, err
	}
	if s.maxAge > 0 && s.now().Sub(issuedAt) >= s.maxAge {
		return nil, errors.WithStack(service.ErrTokenExpired)
	}

	return claims, nil
}

// verifySignature checks the HS256 signature over "header.payload" before any
// segment is decoded as JSON. Only a token without three segments, or with an
// empty header or payload, is malformed. Every other failure is a signature failure.
func (s *jwtService) verifySignature(tokenString string) error {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return errors.Wrap(service.ErrTokenMalformed, "token must have three segments")
	}

	sig, err := jwt.NewParser(jwt.WithStrictDecoding()).DecodeSegment(parts[2])
	if err != nil {
		return errors.Wrap(service.ErrTokenBadSignature, "undecodable signature")
	}

	signingString := tokenString[:len(parts[0])+1+len(parts[1])]
	if err := jwt.SigningMethodHS256.Verify(signingString, sig, s.secret); err != nil {
		return errors.Wrap(service.ErrTokenBadSignature, err.Error())
	}

	return nil
}

// MaxAge returns the configured token lifetime.
func (s *jwtService) MaxAge() time.Duration {
	return s.maxAge
}

func (s *jwtService) keyFunc(token *jwt.Token) (any, error) {
	// Ensure the signing method is what we expect.
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}

	return s.secret, nil
}

func (s *jwtService) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Reject non-canonical base64 so every byte of the token is covered by the signature check.
		jwt.WithStrictDecoding(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	return opts
}

// classifyParseError folds jwt parser errors into the three domain token errors.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.Wrap(service.ErrTokenMalformed, err.Error())
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return errors.Wrap(service.ErrTokenBadSignature, err.Error())
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Wrap(service.ErrTokenExpired, err.Error())
	default:
		return errors.Wrap(service.ErrTokenMalformed, err.Error())
	}
}

// preciseIssuedAt prefers the nanosecond claim and checks it agrees with iat.
func preciseIssuedAt(claims *service.Claims) (time.Time, error) {
	issuedAt := claims.IssuedAt.Time
	if claims.IssuedAtNano == 0 {
		return issuedAt, nil
	}

	precise := time.Unix(0, claims.IssuedAtNano)
	if precise.Before(issuedAt) || !precise.Before(issuedAt.Add(time.Second)) {
		return time.Time{}, errors.Wrap(service.ErrTokenMalformed, "iatNano disagrees with iat")
	}

	return precise, nil
}

// expiresAt rounds up to the whole second so exp never fires before maxAge elapses.
func expiresAt(t time.Time) *jwt.NumericDate {
	exp := jwt.NewNumericDate(t)
	if exp.Time.Before(t) {
		exp = jwt.NewNumericDate(t.Add(time.Second))
	}

	return exp
}
