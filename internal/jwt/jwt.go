package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
	"github.com/accountd-dev/accountd/internal/logger"
)

// Claims is the decoded payload of an access token.
type Claims struct {
	Email     domain.Email
	Roles     []domain.Role
	ExpiresAt time.Time
}

type JwtService interface {
	NewToken(email domain.Email, roles []domain.Role) (string, error)
	DecodeToken(jwtStr string) (*Claims, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

// NewToken signs a token with claims {user, roles, exp, jti}.
// The jti keeps two tokens issued within the same second distinct,
// since exp only carries second resolution.
func (j *Jwt) NewToken(email domain.Email, roles []domain.Role) (string, error) {
	claims := jwt.MapClaims{}
	claims["user"] = email
	claims["roles"] = roles
	claims["exp"] = time.Now().UTC().Add(j.ttl).Unix()
	claims["jti"] = uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", internal_errors.New(internal_errors.KindInternal, "Can't create token")
	}

	return tokenString, nil
}

// DecodeToken verifies the signature and expiry of jwtStr.
// The decoder's failure reason is embedded in the returned error detail.
func (j *Jwt) DecodeToken(jwtStr string) (*Claims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, internal_errors.NewWithDetail(internal_errors.KindUnauthorized, "Invalid Token", err.Error())
	}
	if !token.Valid {
		return nil, internal_errors.New(internal_errors.KindUnauthorized, "Invalid Token")
	}

	return claimsFromToken(token)
}

func claimsFromToken(token *jwt.Token) (*Claims, error) {
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, internal_errors.New(internal_errors.KindUnauthorized, "Invalid Token")
	}

	email, ok := mapClaims["user"].(string)
	if !ok || email == "" {
		return nil, internal_errors.New(internal_errors.KindUnauthorized, "Invalid Email")
	}

	var roles []domain.Role
	if rawRoles, ok := mapClaims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				roles = append(roles, role)
			}
		}
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, internal_errors.New(internal_errors.KindUnauthorized, "Invalid Token")
	}

	return &Claims{Email: email, Roles: roles, ExpiresAt: exp.Time}, nil
}
