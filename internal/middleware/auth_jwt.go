package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"app/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxUserRoleKey     = "user_role"     // string
	CtxTokenVersionKey = "token_version" // int
)

// このアプリが発行するアクセストークンの中身。
// sub=ユーザーID / role=USER,ADMIN / tv=token_version
type accessClaims struct {
	UserID       int64
	Role         string
	TokenVersion int
}

// bearerAuth用のJWT検証ミドルウェア。
// 検証に通ったclaimsをcontextに積んで後段（guard/handler）に渡す。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				//HS256以外は拒否（alg混在攻撃対策）
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			mapClaims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			claims, err := parseAccessClaims(mapClaims)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, claims.Role)
			c.Set(CtxTokenVersionKey, claims.TokenVersion)

			return next(c)
		}
	}
}

// AuthorizationヘッダからBearerトークンを抜く
func bearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// sub/role/tvを取り出して検証する。欠けていたら全部まとめて無効。
func parseAccessClaims(m jwt.MapClaims) (accessClaims, error) {
	userID, err := asInt64(m["sub"])
	if err != nil || userID <= 0 {
		return accessClaims{}, errors.New("invalid sub")
	}

	role, ok := m["role"].(string)
	if !ok || role == "" {
		return accessClaims{}, errors.New("invalid role")
	}

	tv, err := asInt(m["tv"])
	if err != nil || tv < 0 {
		return accessClaims{}, errors.New("invalid tv")
	}

	return accessClaims{
		UserID:       userID,
		Role:         role,
		TokenVersion: tv,
	}, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// JSON経由のclaimsはfloat64になるので数値系は型を広めに受ける
func asInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid number")
	}
}

func asInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		i64, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			return 0, err
		}
		return int(i64), nil
	default:
		return 0, errors.New("invalid number")
	}
}
