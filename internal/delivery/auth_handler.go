package delivery

import (
	"errors"
	"net/http"

	"cfresh_inventory/internal/auth"
	"cfresh_inventory/internal/domain"
	"cfresh_inventory/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	useCase      usecase.AuthUseCase
	sessions     *auth.SessionManager
	secureCookie bool
	log          *logrus.Logger
}

func NewAuthHandler(uc usecase.AuthUseCase, sessions *auth.SessionManager, secureCookie bool, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase:      uc,
		sessions:     sessions,
		secureCookie: secureCookie,
		log:          logger,
	}
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// LoginPage sends signed-in users straight to the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
		if _, err := h.sessions.Parse(token); err == nil {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
	}
	render(c, http.StatusOK, "login.tmpl", gin.H{"Title": "Sign in"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Warnf("Failed to bind login form: %v", err)
		render(c, http.StatusBadRequest, "login.tmpl", gin.H{"Title": "Sign in", "Error": "Invalid credentials."})
		return
	}

	user, err := h.useCase.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		status := mapErrorToStatus(err)
		message := "Invalid credentials."
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			message = "Something went wrong."
		}
		render(c, status, "login.tmpl", gin.H{"Title": "Sign in", "Error": message, "Username": form.Username})
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		h.log.Errorf("Failed to issue session for '%s': %v", user.Username, err)
		render(c, http.StatusInternalServerError, "login.tmpl", gin.H{"Title": "Sign in", "Error": "Something went wrong."})
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	h.log.WithFields(logrus.Fields{"user": user.Username, "access": user.Access}).Info("User signed in")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, value, maxAge, "/", "", h.secureCookie, true)
}
