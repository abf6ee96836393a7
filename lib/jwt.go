package lib

import (
	"errors"
	"fmt"
	"maroon_shop/structs"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignSessionToken issues an HS256 token naming the customer the session acts for.
func SignSessionToken(customerID int64, expiry time.Duration, secret string) (string, *structs.SessionClaims, error) {
	now := time.Now()
	claims := &structs.SessionClaims{
		CustomerID: customerID,
		Iat:        now,
		Exp:        now.Add(expiry),
		Jti:        uuid.New(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(claims.CustomerID, 10),
		"iat": claims.Iat.Unix(),
		"exp": claims.Exp.Unix(),
		"jti": claims.Jti.String(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, claims, nil
}

// ParseToken parses and validates a session token string and returns the claims
func ParseToken(tokenStr string, secret string) (*structs.SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid sub claim", ErrInvalidToken)
	}

	customerID, err := strconv.ParseInt(subStr, 10, 64)
	if err != nil || customerID < 1 {
		return nil, fmt.Errorf("%w: invalid customer id in sub claim", ErrInvalidToken)
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid iat claim", ErrInvalidToken)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid exp claim", ErrInvalidToken)
	}

	jtiStr, ok := claims["jti"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid jti claim", ErrInvalidToken)
	}

	jti, err := uuid.Parse(jtiStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid UUID in jti claim: %v", ErrInvalidToken, err)
	}

	return &structs.SessionClaims{
		CustomerID: customerID,
		Iat:        time.Unix(int64(iat), 0),
		Exp:        time.Unix(int64(exp), 0),
		Jti:        jti,
	}, nil
}

