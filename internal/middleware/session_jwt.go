package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey   = "session_id" // string
	SessionCookieName = "sf_session"
)

type SessionOptions struct {
	Secret []byte
	TTL    time.Duration
	Secure bool             // prod は true
	NewID  func() string    // 省略時 uuid
	Now    func() time.Time // 省略時 time.Now
}

// SessionJWT は署名付きcookieからセッションIDを取り出す。
// cookieが無い/不正/期限切れなら新しいセッションを発行する。
func SessionJWT(opts SessionOptions) echo.MiddlewareFunc {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := ""
			if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				if id, err := parseSessionToken(ck.Value, opts.Secret); err == nil {
					sessionID = id
				}
			}

			if sessionID == "" {
				sessionID = opts.NewID()
				token, expiresAt, err := issueSessionToken(sessionID, opts.Secret, opts.TTL, opts.Now())
				if err != nil {
					return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
				}
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    token,
					Path:     "/",
					Expires:  expiresAt,
					MaxAge:   int(opts.TTL.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			//contextへ保存
			c.Set(CtxSessionIDKey, sessionID)
			return next(c)
		}
	}
}

// SessionIDFromContext は SessionJWT が保存したIDを返す。
func SessionIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(CtxSessionIDKey).(string)
	return id, ok && id != ""
}

func issueSessionToken(sessionID string, secret []byte, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func parseSessionToken(raw string, secret []byte) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	if claims.Subject == "" {
		return "", errors.New("invalid sub")
	}
	return claims.Subject, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
