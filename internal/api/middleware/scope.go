package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/response"
)

// CtxScope holds the branch.Scope resolved for the request.
const CtxScope = "branch_scope"

// BranchScope resolves the effective branch for data queries from the
// `branch` query parameter or the X-Branch header, falling back to the
// caller's active branch. Must run after JWTAuth.
func BranchScope(profiles service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := c.Query("branch")
		if requested == "" {
			requested = c.GetHeader("X-Branch")
		}

		caller := service.Caller{
			UserID: c.GetString(CtxUserID),
			Role:   c.GetString(CtxRole),
			Email:  c.GetString(CtxEmail),
		}
		scope, err := profiles.ResolveScope(c.Request.Context(), caller, strings.TrimSpace(requested))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidBranch):
				response.BadRequest(c, 12001, "unknown branch")
			case errors.Is(err, service.ErrBranchForbidden):
				response.Forbidden(c, 12002, "branch not accessible")
			case errors.Is(err, service.ErrProfileNotFound):
				response.Forbidden(c, 12003, "no staff profile for this account")
			default:
				response.InternalError(c)
			}
			c.Abort()
			return
		}

		c.Set(CtxScope, scope)
		c.Next()
	}
}
