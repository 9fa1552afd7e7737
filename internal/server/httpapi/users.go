package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// timeLayout is the wire format for timestamps, RFC 3339 with fractional
// seconds, always UTC.
const timeLayout = time.RFC3339Nano

type updateProfileInput struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
}

func (s *Server) me(c *gin.Context) {
	user, err := s.users.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) updateProfile(c *gin.Context) {
	var in updateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.users.UpdateProfile(c.Request.Context(), currentUserID(c), in.Name, in.Username); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}
