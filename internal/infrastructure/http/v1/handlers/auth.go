package handlers

import (
	"github.com/gin-gonic/gin"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/id"
	"steeldesk/internal/domain/auth"
	"steeldesk/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication and user management.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromUser(user))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, user, err := h.service.Login(c.Request.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{
		Tokens: dto.FromTokenPair(tokens),
		User:   dto.FromUser(user),
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromTokenPair(tokens))
}

// Logout handles POST /auth/logout. Revokes all refresh tokens of
// the authenticated user.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := id.Parse(h.GetUserID(c))
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "logged out")
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := id.Parse(h.GetUserID(c))
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}

// ListUsers handles GET /auth/users (admin only).
func (h *AuthHandler) ListUsers(c *gin.Context) {
	f := auth.UserFilter{
		Search:   c.Query("search"),
		RoleCode: c.Query("role"),
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}
	if isActive := c.Query("isActive"); isActive != "" {
		val := isActive == "true"
		f.IsActive = &val
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	responses := make([]*dto.UserResponse, len(users))
	for i := range users {
		responses[i] = dto.FromUser(&users[i])
	}

	h.OK(c, dto.ListResponse{
		Items:      responses,
		TotalCount: int64(total),
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}

// AssignRole handles POST /auth/users/:id/roles (admin only).
func (h *AuthHandler) AssignRole(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.AssignRole(c.Request.Context(), userID, req.RoleCode); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "role assigned")
}

// RevokeRole handles DELETE /auth/users/:id/roles/:role (admin only).
func (h *AuthHandler) RevokeRole(c *gin.Context) {
	userID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	if err := h.service.RevokeRole(c.Request.Context(), userID, c.Param("role")); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "role revoked")
}

// RegisterPublicRoutes registers unauthenticated auth routes.
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.Refresh)
}

// RegisterProtectedRoutes registers routes requiring authentication.
// User management routes additionally require the admin role.
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.POST("/logout", h.Logout)
	rg.GET("/me", h.Me)

	admin := rg.Group("", adminOnly)
	admin.POST("/register", h.Register)
	admin.GET("/users", h.ListUsers)
	admin.POST("/users/:id/roles", h.AssignRole)
	admin.DELETE("/users/:id/roles/:role", h.RevokeRole)
}

func (h *AuthHandler) parseUserID(c *gin.Context) (id.ID, bool) {
	parsed, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return id.Nil(), false
	}
	return parsed, true
}
