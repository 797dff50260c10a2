package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/pkg/types"
)

var ErrNoClaims = errors.New("user claims not found in context")

var GetClaimsFromContext = func(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, ErrNoClaims
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}
	return claims, nil
}

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// GetViewerFromContext converts the token claims into the identity used by
// form operations.
var GetViewerFromContext = func(c *gin.Context) (form.Viewer, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return form.Viewer{}, err
	}
	return form.Viewer{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		Role:     user.Role(claims.Role),
	}, nil
}

// GetOptionalUserID returns nil for anonymous callers.
func GetOptionalUserID(c *gin.Context) *uint {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return nil
	}
	id := claims.UserID
	return &id
}
