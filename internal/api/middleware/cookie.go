package middleware

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie the gateway issues at login.
const CookieName = "fleet_session"

// EncodeSessionID signs a session ID into the cookie value. The signature only
// authenticates the ID; all session state stays server-held.
func EncodeSessionID(secret, sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sid": sessionID})
	return token.SignedString([]byte(secret))
}

// DecodeSessionID verifies the cookie value and extracts the session ID.
func DecodeSessionID(secret, value string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session cookie")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("session cookie missing sid")
	}
	return sid, nil
}

// SessionID extracts the session ID from the request cookie, or "" when no
// valid cookie is attached. Routes that merely tolerate a session (set-machine,
// get-machine, logout) use this instead of the RequireSession gate.
func SessionID(c echo.Context, secret string) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	sid, err := DecodeSessionID(secret, cookie.Value)
	if err != nil {
		return ""
	}
	return sid
}
