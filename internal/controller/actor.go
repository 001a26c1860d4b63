package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teachscope/teachscope/internal/dto"
	"github.com/teachscope/teachscope/internal/model"
	"github.com/teachscope/teachscope/internal/service"
)

const actorContextKey = "teachscope.actor"

// ActorMiddleware resolves the acting user from the X-Actor-ID and
// X-Actor-Role headers set by the authenticating proxy. Session issuance is
// not this service's job; requests without a valid actor are rejected.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.GetHeader("X-Actor-ID")
		roleStr := strings.ToLower(c.GetHeader("X-Actor-Role"))

		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing or invalid X-Actor-ID header"})
			return
		}

		role := model.Role(roleStr)
		switch role {
		case model.RoleAdmin, model.RoleObserver, model.RoleReviewer:
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing or invalid X-Actor-Role header"})
			return
		}

		c.Set(actorContextKey, service.Actor{ID: uint(id), Role: role})
		c.Next()
	}
}

// CurrentActor returns the actor attached by ActorMiddleware.
func CurrentActor(c *gin.Context) service.Actor {
	v, _ := c.Get(actorContextKey)
	actor, _ := v.(service.Actor)
	return actor
}

// RequireAdmin rejects non-admin actors. Route-level guard for the admin API.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentActor(c).Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "admin role required"})
			return
		}
		c.Next()
	}
}

// RespondError maps the service error taxonomy onto HTTP statuses.
func RespondError(c *gin.Context, err error) {
	var authErr *service.AuthorizationError
	var stateErr *service.StateError
	var valErr *service.ValidationError

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: authErr.Reason})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: stateErr.Error()})
	case errors.As(err, &valErr):
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Error: "validation failed", Errors: valErr.Errors})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}
