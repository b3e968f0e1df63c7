package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gift-service/internal/service"
	mdw "gift-service/internal/transport/http/middleware"
	resp "gift-service/internal/transport/http/response"
)

type WishHandler struct {
	wishes *service.WishService
}

func NewWishHandler(wishes *service.WishService) *WishHandler {
	return &WishHandler{wishes: wishes}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "invalid id"))
		return 0, false
	}
	return uint(id), true
}

type createWishIn struct {
	Name        string          `json:"name"        binding:"required,max=250"`
	Link        string          `json:"link"        binding:"omitempty,url"`
	Image       string          `json:"image"       binding:"omitempty,url"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description" binding:"max=1024"`
}

// Create POST /wishes
func (h *WishHandler) Create(c *gin.Context) {
	var in createWishIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	w, err := h.wishes.Create(c.Request.Context(), mdw.CallerID(c), service.CreateWishInput{
		Name:        in.Name,
		Link:        in.Link,
		Image:       in.Image,
		Price:       in.Price,
		Description: in.Description,
	})
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(w))
}

// Last GET /wishes/last：最新 40 个
func (h *WishHandler) Last(c *gin.Context) {
	wishes, err := h.wishes.Recent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(wishes))
}

// Top GET /wishes/top：被复制最多的 20 个
func (h *WishHandler) Top(c *gin.Context) {
	wishes, err := h.wishes.Popular(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(wishes))
}

// Search GET /wishes/search?name=… 或 ?description=…
func (h *WishHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()
	if name := c.Query("name"); name != "" {
		wishes, err := h.wishes.SearchByName(ctx, name)
		if err != nil {
			c.JSON(http.StatusOK, resp.FromError(err))
			return
		}
		c.JSON(http.StatusOK, resp.OK(wishes))
		return
	}
	if desc := c.Query("description"); desc != "" {
		wishes, err := h.wishes.SearchByDescription(ctx, desc)
		if err != nil {
			c.JSON(http.StatusOK, resp.FromError(err))
			return
		}
		c.JSON(http.StatusOK, resp.OK(wishes))
		return
	}
	c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "name or description query required"))
}

// Get GET /wishes/:id
func (h *WishHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	w, err := h.wishes.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(w))
}

type updateWishIn struct {
	Name        *string          `json:"name"        binding:"omitempty,max=250"`
	Link        *string          `json:"link"        binding:"omitempty,url"`
	Image       *string          `json:"image"       binding:"omitempty,url"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" binding:"omitempty,max=1024"`
}

// Update PATCH /wishes/:id
func (h *WishHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in updateWishIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	w, err := h.wishes.Update(c.Request.Context(), id, mdw.CallerID(c), service.UpdateWishInput{
		Name:        in.Name,
		Link:        in.Link,
		Image:       in.Image,
		Price:       in.Price,
		Description: in.Description,
	})
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(w))
}

// Delete DELETE /wishes/:id
func (h *WishHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.wishes.Delete(c.Request.Context(), id, mdw.CallerID(c)); err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
}

// Copy POST /wishes/:id/copy：复制到自己名下
func (h *WishHandler) Copy(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	clone, err := h.wishes.Copy(c.Request.Context(), id, mdw.CallerID(c))
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(clone))
}
