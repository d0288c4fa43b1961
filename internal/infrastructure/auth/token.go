package auth

import (
	"fmt"
	"time"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"

	"github.com/golang-jwt/jwt"
)

const (
	claimUserID   = "user_id"
	claimNickname = "nickname"
	claimInterest = "interest"
	claimExpires  = "exp"
)

// GenerateToken signs an HS256 access token carrying the user identity.
func GenerateToken(secret []byte, user *model.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		claimUserID:   user.ID,
		claimNickname: user.Nickname,
		claimInterest: user.Interest,
		claimExpires:  time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry and resolves the identity.
func ParseToken(secret []byte, tokenString string) (*model.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, custom_errors.ErrInvalidToken
	}

	// JSON numbers decode as float64.
	rawID, ok := claims[claimUserID].(float64)
	if !ok || rawID <= 0 {
		return nil, fmt.Errorf("%w: missing %s claim", custom_errors.ErrInvalidToken, claimUserID)
	}

	nickname, _ := claims[claimNickname].(string)
	interest, _ := claims[claimInterest].(string)

	return &model.User{
		ID:       int64(rawID),
		Nickname: nickname,
		Interest: interest,
	}, nil
}
