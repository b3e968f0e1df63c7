package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gift-service/internal/service"
	resp "gift-service/internal/transport/http/response"
)

type AuthHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

func NewAuthHandler(users *service.UserService, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

type signupIn struct {
	Username string `json:"username" binding:"required,min=2,max=30"`
	About    string `json:"about"    binding:"omitempty,min=2,max=200"`
	Avatar   string `json:"avatar"   binding:"omitempty,url"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Signup POST /signup：注册后直接签发 token
func (h *AuthHandler) Signup(c *gin.Context) {
	var in signupIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.users.Create(c.Request.Context(), service.CreateUserInput{
		Username: in.Username,
		About:    in.About,
		Avatar:   in.Avatar,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	token, _, err := h.auth.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": u, "access_token": token}))
}

type signinIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signin POST /signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var in signinIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	token, u, err := h.auth.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": u, "access_token": token}))
}
