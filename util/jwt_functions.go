package util

import (
	"errors"
	"strconv"
	"time"

	"github.com/BOVAGE/QuizBank/config"
	"github.com/BOVAGE/QuizBank/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var jwtConf config.JWT

// InitJWT installs the token settings used by the helpers below.
func InitJWT(cfg config.JWT) {
	jwtConf = cfg
}

func generateToken(user models.User, purpose string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["id"] = strconv.Itoa(user.ID)
	claims["email"] = user.Email
	claims["staff"] = user.IsStaff
	claims["purpose"] = purpose
	claims["jti"] = uuid.NewString()
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(ttl).Unix()
	return token.SignedString([]byte(jwtConf.Secret))
}

// JwtGenerateAccess issues a bearer access token. The same token doubles as
// the emailed account-activation token since it embeds the user id.
func JwtGenerateAccess(user models.User) (string, error) {
	return generateToken(user, "access", jwtConf.AccessTTL)
}

// JwtGeneratePair issues the access/refresh token pair returned on login.
func JwtGeneratePair(user models.User) (access string, refresh string, err error) {
	access, err = generateToken(user, "access", jwtConf.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = generateToken(user, "refresh", jwtConf.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// VerifyJwtToken verifies the signature and expiry and returns the claims.
func VerifyJwtToken(tokenString string) (jwt.MapClaims, error) {
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtConf.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// VerifyAccessToken accepts only tokens issued with the access purpose, so a
// long-lived refresh token can't be used as a bearer token.
func VerifyAccessToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := VerifyJwtToken(tokenString)
	if err != nil {
		return nil, err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "access" {
		return nil, errors.New("not an access token")
	}
	return claims, nil
}

// VerifyRefreshToken accepts only tokens issued with the refresh purpose.
func VerifyRefreshToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := VerifyJwtToken(tokenString)
	if err != nil {
		return nil, err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "refresh" {
		return nil, errors.New("not a refresh token")
	}
	return claims, nil
}

// ClaimsUserID extracts the embedded user id from verified claims.
func ClaimsUserID(claims jwt.MapClaims) (int, error) {
	raw, ok := claims["id"].(string)
	if !ok {
		return 0, errors.New("invalid token: no user id")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid token: bad user id")
	}
	return id, nil
}

// IsTokenValid rejects tokens issued before the user's password last changed.
func IsTokenValid(claims jwt.MapClaims, user models.User) error {
	issuedAtUnix, ok := claims["iat"].(float64)
	if !ok {
		return errors.New("invalid token: no issued at timestamp")
	}

	issuedAt := time.Unix(int64(issuedAtUnix), 0)
	if user.PasswordChangedAt.Unix() > issuedAt.Unix() {
		return errors.New("token invalid: password was changed after the token was issued")
	}
	return nil
}
