package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"dutyfree-pos/internal/domain"

	"github.com/gin-gonic/gin"
)

const userCtxKey = "posUser"

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email,omitempty"`
	FirstName string      `json:"firstName,omitempty"`
	LastName  string      `json:"lastName,omitempty"`
	Role      domain.Role `json:"role"`
	CanSell   bool        `json:"canSell"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CanSell:   u.HasRole(domain.POSRoles...),
	}
}

// requirePOSUser lets through an active session whose role may use the
// sales screen.
func requirePOSUser(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessions.User()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Session expirée, veuillez vous reconnecter"})
			return
		}
		if !user.HasRole(domain.POSRoles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Accès refusé"})
			return
		}
		c.Set(userCtxKey, user)
		c.Next()
	}
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nom d'utilisateur et mot de passe requis"})
		return
	}
	user, err := h.deps.Session.Login(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		var serr statusError
		if errors.As(err, &serr) && serr.StatusCode() < http.StatusInternalServerError {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Identifiants invalides"})
			return
		}
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *handlers) currentUser(c *gin.Context) {
	user, ok := h.deps.Session.User()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Non connecté"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *handlers) logout(c *gin.Context) {
	h.deps.Session.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}
