package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gift-service/internal/service"
	mdw "gift-service/internal/transport/http/middleware"
	resp "gift-service/internal/transport/http/response"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.users.FindByID(c.Request.Context(), mdw.CallerID(c))
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}

type updateUserIn struct {
	Username *string `json:"username" binding:"omitempty,min=2,max=30"`
	About    *string `json:"about"    binding:"omitempty,min=2,max=200"`
	Avatar   *string `json:"avatar"   binding:"omitempty,url"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// UpdateMe PATCH /users/me：只合并传入字段
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var in updateUserIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.users.UpdateProfile(c.Request.Context(), mdw.CallerID(c), service.UpdateUserInput{
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
	c.JSON(http.StatusOK, resp.OK(u))
}

// MyWishes GET /users/me/wishes
func (h *UserHandler) MyWishes(c *gin.Context) {
	wishes, err := h.users.Wishes(c.Request.Context(), mdw.CallerID(c))
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(wishes))
}

type findUsersIn struct {
	Query string `json:"query" binding:"required"`
}

// Find POST /users/find：用户名/邮箱子串搜索
func (h *UserHandler) Find(c *gin.Context) {
	var in findUsersIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	users, err := h.users.Search(c.Request.Context(), in.Query)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(users))
}

// ByUsername GET /users/:username
func (h *UserHandler) ByUsername(c *gin.Context) {
	u, err := h.users.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}

// WishesByUsername GET /users/:username/wishes
func (h *UserHandler) WishesByUsername(c *gin.Context) {
	wishes, err := h.users.WishesByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(wishes))
}
