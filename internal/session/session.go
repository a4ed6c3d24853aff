package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the session token.
const CookieName = "jwt"

// Session errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims defines the signed session payload: the credential id and the role
// resolved at login time.
type Claims struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies cookie-borne session tokens.
type Service struct {
	secret      []byte
	ttl         time.Duration
	development bool
}

// NewService constructs a session service. Cookies are marked Secure unless
// development is true.
func NewService(secret string, ttl time.Duration, development bool) *Service {
	return &Service{
		secret:      []byte(secret),
		ttl:         ttl,
		development: development,
	}
}

// Issue signs a session token binding the credential id and resolved role.
func (s *Service) Issue(userID uint, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Cookie builds the HTTP-only session cookie for an issued token.
func (s *Service) Cookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(s.ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   !s.development,
	}
}

// ClearCookie builds an expired cookie that removes the session. Stateless
// tokens carry no server-side state to revoke.
func (s *Service) ClearCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   !s.development,
	}
}
