package token

import (
	"net/http"
	"os"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	UseAccess  = "access"
	UseRefresh = "refresh"
)

var ErrInvalidToken = apperror.New(apperror.CodeUnauthorized, "invalid or expired token", http.StatusUnauthorized)

// Claims bind a login to its employee profile; employee_id is the id every
// domain operation keys on.
type Claims struct {
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
	TokenUse   string `json:"token_use"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func sign(userID, employeeID, role, use string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       role,
		TokenUse:   use,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

func GeneratePair(userID, employeeID, role string) (TokenPair, error) {
	access, err := sign(userID, employeeID, role, UseAccess, accessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := sign(userID, employeeID, role, UseRefresh, refreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

// Parse validates signature and expiry and returns the claims.
func Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret(), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
