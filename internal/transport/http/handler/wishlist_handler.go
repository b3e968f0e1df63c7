package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gift-service/internal/service"
	mdw "gift-service/internal/transport/http/middleware"
	resp "gift-service/internal/transport/http/response"
)

type WishlistHandler struct {
	lists *service.WishlistService
}

func NewWishlistHandler(lists *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{lists: lists}
}

type createWishlistIn struct {
	Name        string `json:"name"        binding:"required,max=250"`
	Description string `json:"description" binding:"max=1024"`
	Image       string `json:"image"       binding:"omitempty,url"`
	ItemIDs     []uint `json:"itemsId"`
}

// Create POST /wishlists：itemsId 必须全部存在，缺一个整单失败
func (h *WishlistHandler) Create(c *gin.Context) {
	var in createWishlistIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	wl, err := h.lists.Create(c.Request.Context(), mdw.CallerID(c), service.CreateWishlistInput{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		ItemIDs:     in.ItemIDs,
	})
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(wl))
}

// List GET /wishlists：自己的清单
func (h *WishlistHandler) List(c *gin.Context) {
	lists, err := h.lists.ListForUser(c.Request.Context(), mdw.CallerID(c))
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(lists))
}

// Search GET /wishlists/search?query=…
func (h *WishlistHandler) Search(c *gin.Context) {
	q := c.Query("query")
	if q == "" {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "query required"))
		return
	}
	lists, err := h.lists.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(lists))
}

// Get GET /wishlists/:id
func (h *WishlistHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	wl, err := h.lists.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(wl))
}

type updateWishlistIn struct {
	Name        *string `json:"name"        binding:"omitempty,max=250"`
	Description *string `json:"description" binding:"omitempty,max=1024"`
	Image       *string `json:"image"       binding:"omitempty,url"`
	ItemIDs     *[]uint `json:"itemsId"`
}

// Update PATCH /wishlists/:id：itemsId 传了就整组替换
func (h *WishlistHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in updateWishlistIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	wl, err := h.lists.Update(c.Request.Context(), id, mdw.CallerID(c), service.UpdateWishlistInput{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		ItemIDs:     in.ItemIDs,
	})
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(wl))
}

// Delete DELETE /wishlists/:id
func (h *WishlistHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.lists.Delete(c.Request.Context(), id, mdw.CallerID(c)); err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
}
