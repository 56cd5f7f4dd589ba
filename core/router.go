package core

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// User-facing messages for the login page.
const (
	msgMissingFields      = "Username y password son requeridos"
	msgInvalidCredentials = "Credenciales inválidas"
	msgInternalError      = "Error interno del servidor"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, store *SessionStore, authService AuthService, users UserStore, metrics *LoginMetrics) *gin.Engine {
	r := gin.Default()

	r.LoadHTMLGlob(filepath.Join(cfg.TemplateDir, "*.html"))
	r.Static("/static", cfg.StaticDir)

	r.Use(CurrentUserMiddleware(store))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Home branches on authentication state instead of redirecting.
	r.GET("/", func(c *gin.Context) {
		if user, ok := currentUser(c); ok {
			renderDashboard(c, users, user)
			return
		}
		c.HTML(http.StatusOK, "login.html", gin.H{})
	})

	r.GET("/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{})
	})

	r.POST("/login", func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		password := strings.TrimSpace(c.PostForm("password"))

		if username == "" || password == "" {
			c.HTML(http.StatusOK, "login.html", gin.H{"error": msgMissingFields})
			return
		}

		user, err := authService.Authenticate(username, password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				metrics.RecordFailure(c.Request.Context())
				c.HTML(http.StatusOK, "login.html", gin.H{"error": msgInvalidCredentials})
				return
			}
			c.HTML(http.StatusOK, "login.html", gin.H{"error": msgInternalError})
			return
		}

		token := store.Create(user)
		metrics.RecordSuccess(c.Request.Context(), user.Rol)
		metrics.RecordActiveSessions(c.Request.Context(), store.Len())

		setSessionCookie(c, cfg, token)
		c.Redirect(http.StatusFound, "/dashboard")
	})

	r.GET("/dashboard", func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		renderDashboard(c, users, user)
	})

	r.POST("/logout", func(c *gin.Context) {
		if token, err := c.Cookie(sessionCookieName); err == nil {
			store.Destroy(token)
			metrics.RecordActiveSessions(c.Request.Context(), store.Len())
		}
		clearSessionCookie(c, cfg)
		c.Redirect(http.StatusFound, "/login")
	})

	api := r.Group("/api")
	{
		api.GET("/users", func(c *gin.Context) {
			user, ok := currentUser(c)
			if !ok {
				respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "No autorizado")
				return
			}

			allUsers, err := users.LoadUsers()
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to load users")
				return
			}
			filtered := FilterByRole(user, allUsers)

			c.JSON(http.StatusOK, gin.H{
				"users":        filtered,
				"current_user": user,
				"total":        len(filtered),
			})
		})

		admin := api.Group("", AdminOnly())
		admin.GET("/metrics", func(c *gin.Context) {
			if metrics == nil {
				respondError(c, http.StatusNotFound, "NOT_FOUND", "Métricas no configuradas")
				return
			}
			snap, err := metrics.Snapshot(c.Request.Context())
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to load metrics")
				return
			}
			c.JSON(http.StatusOK, snap)
		})
	}

	return r
}

// renderDashboard loads the user list, applies the visibility filter for the
// requester, and renders the dashboard page.
func renderDashboard(c *gin.Context, users UserStore, user Usuario) {
	allUsers, err := users.LoadUsers()
	if err != nil {
		c.String(http.StatusInternalServerError, msgInternalError)
		return
	}
	filtered := FilterByRole(user, allUsers)

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"user":        user,
		"users":       filtered,
		"total_users": len(filtered),
	})
}
