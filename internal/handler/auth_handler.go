package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arka-labs/course-market-api/internal/middleware"
	"github.com/arka-labs/course-market-api/internal/models"
	"github.com/arka-labs/course-market-api/internal/service"
	appErrors "github.com/arka-labs/course-market-api/pkg/errors"
	"github.com/arka-labs/course-market-api/pkg/response"
)

// AuthHandler wires signup/login/profile endpoints for one principal class.
// Two instances are mounted, one per class.
type AuthHandler struct {
	service *service.AuthService
	class   models.PrincipalClass
}

// NewAuthHandler creates a handler bound to a principal class.
func NewAuthHandler(svc *service.AuthService, class models.PrincipalClass) *AuthHandler {
	return &AuthHandler{service: svc, class: class}
}

// Signup godoc
// @Summary Register a principal
// @Description Create an account in the handler's principal namespace
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Signup payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /learner/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid signup payload"))
		return
	}

	info, err := h.service.Register(c.Request.Context(), h.class, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, info)
}

// Login godoc
// @Summary Authenticate a principal
// @Description Authenticate by email and password, returning a signed token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /learner/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), h.class, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Profile godoc
// @Summary Get current principal
// @Description Returns the authenticated principal's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /learner/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	info, err := h.service.Profile(c.Request.Context(), h.class, claims.PrincipalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, info)
}
