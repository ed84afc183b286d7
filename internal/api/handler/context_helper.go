package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fets-live/backend/internal/api/middleware"
	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/service"
	pkgerrors "fets-live/backend/pkg/errors"
	"fets-live/backend/pkg/response"
)

// MustGetUserID reads user_id set by JWTAuth. On failure it writes a 401
// and the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxUserID)
	if s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetCaller user id, role and email of the signed-in user.
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	uid, ok := MustGetUserID(c)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{
		UserID: uid,
		Role:   c.GetString(middleware.CtxRole),
		Email:  c.GetString(middleware.CtxEmail),
	}, true
}

// MustGetScope branch scope resolved by the BranchScope middleware.
func MustGetScope(c *gin.Context) (branch.Scope, bool) {
	v, exists := c.Get(middleware.CtxScope)
	if !exists {
		response.InternalError(c)
		return branch.Scope{}, false
	}
	scope, ok := v.(branch.Scope)
	if !ok {
		response.InternalError(c)
		return branch.Scope{}, false
	}
	return scope, true
}

// handleCommonError maps errors shared across modules. Returns false when
// the error is not one of them.
func handleCommonError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrInvalidBranch):
		response.BadRequest(c, 12001, "unknown branch")
	case errors.Is(err, service.ErrBranchForbidden):
		response.Forbidden(c, 12002, "branch not accessible")
	case errors.Is(err, service.ErrBranchRequired):
		response.BadRequest(c, 12004, "select a physical branch, not the global view")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, "invalid date")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 10006, "record was modified, reload and retry")
	case errors.Is(err, pkgerrors.ErrUnavailable):
		response.ServiceUnavailable(c, 10007, "service temporarily unavailable")
	default:
		return false
	}
	return true
}

func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
}
