package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/BOVAGE/QuizBank/models"
)

// Password reset tokens are timestamped HMACs bound to the user's current
// password hash and last login, so changing the password (or logging in)
// invalidates every token issued before it. No token state is stored.

var (
	ErrResetTokenInvalid = errors.New("this token is invalid")
	ErrResetTokenExpired = errors.New("this token has expired")
)

// EncodeUID encodes a user id the way it appears in reset links.
func EncodeUID(id int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(id)))
}

// DecodeUID reverses EncodeUID.
func DecodeUID(uidb64 string) (int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(uidb64)
	if err != nil {
		return 0, ErrResetTokenInvalid
	}
	id, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, ErrResetTokenInvalid
	}
	return id, nil
}

func resetSignature(user models.User, timestamp int64) string {
	lastLogin := ""
	if user.LastLogin != nil {
		lastLogin = strconv.FormatInt(user.LastLogin.Unix(), 10)
	}
	payload := fmt.Sprintf("%d:%s:%s:%d", user.ID, user.Password, lastLogin, timestamp)
	mac := hmac.New(sha256.New, []byte(jwtConf.Secret+"|password-reset"))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))[:32]
}

// MakeResetToken issues a reset token for the user's current account state.
func MakeResetToken(user models.User, now time.Time) string {
	ts := now.Unix()
	return strconv.FormatInt(ts, 36) + "-" + resetSignature(user, ts)
}

// CheckResetToken validates a token against the user's current account state
// and the configured reset lifetime.
func CheckResetToken(user models.User, token string, now time.Time) error {
	var tsPart, sigPart string
	for i := 0; i < len(token); i++ {
		if token[i] == '-' {
			tsPart, sigPart = token[:i], token[i+1:]
			break
		}
	}
	if tsPart == "" || sigPart == "" {
		return ErrResetTokenInvalid
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return ErrResetTokenInvalid
	}
	if !hmac.Equal([]byte(sigPart), []byte(resetSignature(user, ts))) {
		return ErrResetTokenInvalid
	}
	if now.Sub(time.Unix(ts, 0)) > jwtConf.ResetTTL {
		return ErrResetTokenExpired
	}
	return nil
}
