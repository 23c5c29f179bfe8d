package middleware

import (
	"net/http"

	"lendshare/internal/handler/httperr"
	"lendshare/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SharerUserHeader carries the acting user's id. Authentication itself
// is the gateway's job; this service trusts the header.
const SharerUserHeader = "X-Sharer-User-Id"

const ctxUserIDKey = "user_id"

var errMissingIdentity = errs.New("identity header missing")

// RequireIdentity rejects requests without a parseable user id header.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerUserHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusBadRequest, errMissingIdentity,
				"Missing "+SharerUserHeader+" header", nil)
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err,
				"Invalid "+SharerUserHeader+" header", nil)
			return
		}
		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
