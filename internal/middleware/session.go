package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/service"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
	"github.com/noah-isme/cemetery-console/pkg/logger"
)

const (
	// ContextSessionKey is the gin context key storing the loaded *models.Session.
	ContextSessionKey = "session"
	// ContextIdentityKey is the gin context key storing the decoded *service.Identity.
	ContextIdentityKey = "identity"
)

type sessionLoader interface {
	Load(ctx context.Context, id string) (*models.Session, error)
	Destroy(ctx context.Context, id string) error
}

type tokenIdentifier interface {
	Identify(token string) (*service.Identity, error)
}

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// Session loads the operator session named by the cookie. A missing, expired or undecodable
// session leaves the request anonymous; the access gates decide what that means.
func Session(sessions sessionLoader, identities tokenIdentifier, cookie CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookie.Name)
		if err != nil || id == "" {
			c.Next()
			return
		}

		session, err := sessions.Load(c.Request.Context(), id)
		if err != nil {
			ClearSessionCookie(c, cookie)
			c.Next()
			return
		}

		identity, err := identities.Identify(session.Token)
		if err != nil {
			_ = sessions.Destroy(c.Request.Context(), id)
			ClearSessionCookie(c, cookie)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(httpclient.ContextWithToken(c.Request.Context(), session.Token))
		c.Set(ContextSessionKey, session)
		c.Set(ContextIdentityKey, identity)
		c.Set(logger.UsernameKey, session.Username)
		c.Next()
	}
}

// SetSessionCookie writes the session id cookie.
func SetSessionCookie(c *gin.Context, cookie CookieOptions, session *models.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, session.ID, maxAge, "/", "", cookie.Secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, cookie CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, true)
}

// CurrentSession returns the session loaded for this request, if any.
func CurrentSession(c *gin.Context) *models.Session {
	if value, ok := c.Get(ContextSessionKey); ok {
		if session, ok := value.(*models.Session); ok {
			return session
		}
	}
	return nil
}

// CurrentIdentity returns the signed-in operator, if any.
func CurrentIdentity(c *gin.Context) *service.Identity {
	if value, ok := c.Get(ContextIdentityKey); ok {
		if identity, ok := value.(*service.Identity); ok {
			return identity
		}
	}
	return nil
}
