package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gift-service/internal/core/apperr"
	"gift-service/internal/service"
	mdw "gift-service/internal/transport/http/middleware"
	resp "gift-service/internal/transport/http/response"
)

type OfferHandler struct {
	offers *service.OfferService
}

func NewOfferHandler(offers *service.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

type createOfferIn struct {
	ItemID uint            `json:"itemId" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
	Hidden bool            `json:"hidden"`
}

// Create POST /offers
func (h *OfferHandler) Create(c *gin.Context) {
	var in createOfferIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	o, err := h.offers.Create(c.Request.Context(), mdw.CallerID(c), service.CreateOfferInput{
		ItemID: in.ItemID,
		Amount: in.Amount,
		Hidden: in.Hidden,
	})
	if err != nil {
		switch {
		case apperr.IsForbidden(err):
			mdw.CountOffer("rejected")
		case apperr.IsNotFound(err), apperr.IsKind(err, apperr.KindValidation):
			mdw.CountOffer("rejected")
		default:
			mdw.CountOffer("error")
		}
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	mdw.CountOffer("ok")
	c.JSON(http.StatusOK, resp.OK(o))
}

// List GET /offers
func (h *OfferHandler) List(c *gin.Context) {
	offers, err := h.offers.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(offers))
}

// Get GET /offers/:id
func (h *OfferHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	o, err := h.offers.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, resp.FromError(err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(o))
}
