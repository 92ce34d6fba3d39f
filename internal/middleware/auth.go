package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"portal_creditos/internal/config"
	"portal_creditos/internal/model"
	"portal_creditos/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware valida el Bearer token del header Authorization y deja el
// ClienteID en el contexto de la petición.
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Se requiere el encabezado Authorization.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "El formato del encabezado Authorization no es válido.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}
			tokenString := headerParts[1]

			// jwt.Parse verifies both signature and exp.
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: invalid token", "error", err)
				appErr := model.NewAppError("UNAUTHORIZED", "La sesión no es válida o ha expirado.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				logger.Warn("JWT auth failed: missing subject claim", "error", err)
				appErr := model.NewAppError("UNAUTHORIZED", "La sesión no es válida.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			clienteID, err := uuid.Parse(subject)
			if err != nil {
				logger.Warn("JWT auth failed: subject is not a UUID", "subject", subject)
				appErr := model.NewAppError("UNAUTHORIZED", "La sesión no es válida.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.ClienteIDKey, clienteID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClienteIDFromContext extrae el ClienteID puesto por JWTAuthMiddleware.
func GetClienteIDFromContext(ctx context.Context) (uuid.UUID, error) {
	clienteID, ok := ctx.Value(model.ClienteIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "No hay una sesión activa.", "", model.ErrForbidden)
	}
	return clienteID, nil
}
