package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
	"github.com/noah-isme/cemetery-console/pkg/response"
)

// Paths the page gate redirects to.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// RequirePage guards HTML pages: anonymous operators go to the login page, operators
// without one of roles go to the unauthorized page. No roles admits any signed-in operator.
func RequirePage(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if !identity.HasRole(roles...) {
			c.Redirect(http.StatusFound, UnauthorizedPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPI guards JSON endpoints with 401 and 403 envelopes.
func RequireAPI(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}
		if !identity.HasRole(roles...) {
			response.Abort(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
