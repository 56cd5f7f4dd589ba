package core

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// sessionCookieName is the cookie carrying the opaque session token.
const sessionCookieName = "session_id"

const currentUserKey = "current_user"

// CurrentUserMiddleware resolves the session cookie into a user and stores it
// in the request context. Requests without a valid session pass through; each
// handler decides whether login is required.
func CurrentUserMiddleware(store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err == nil {
			if user, ok := store.Validate(token); ok {
				c.Set(currentUserKey, user)
			}
		}
		c.Next()
	}
}

// currentUser returns the authenticated user placed by CurrentUserMiddleware.
func currentUser(c *gin.Context) (Usuario, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return Usuario{}, false
	}
	user, ok := v.(Usuario)
	return user, ok
}

// AdminOnly ensures the authenticated user has the admin role.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "No autorizado")
			c.Abort()
			return
		}
		if user.Rol != RoleAdmin {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "Se requiere rol de administrador")
			c.Abort()
			return
		}
		c.Next()
	}
}

// setSessionCookie writes the session token cookie with consistent options.
func setSessionCookie(c *gin.Context, cfg Config, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTimeout.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteFromString(cfg.CookieSameSite),
	})
}

// clearSessionCookie removes the session cookie from the client.
func clearSessionCookie(c *gin.Context, cfg Config) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteFromString(cfg.CookieSameSite),
	})
}

func sameSiteFromString(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
