package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"gift-service/internal/core/apperr"
	"gift-service/internal/domain"
)

type CreateOfferInput struct {
	ItemID uint
	Amount decimal.Decimal
	Hidden bool
}

type OfferService struct {
	offers domain.OfferRepository
	wishes domain.WishRepository
}

func NewOfferService(offers domain.OfferRepository, wishes domain.WishRepository) *OfferService {
	return &OfferService{offers: offers, wishes: wishes}
}

// Create 出资。先做不变的前置校验（存在性、不许给自己凑钱），
// 金额校验在 repo 的锁内重做，两笔并发出资不会共同超出 price。
func (s *OfferService) Create(ctx context.Context, contributorID uint, in CreateOfferInput) (*domain.Offer, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("offer amount must be positive")
	}

	w, err := s.wishes.FindByID(ctx, in.ItemID)
	if err != nil {
		return nil, apperr.Internal("lookup wish", err)
	}
	if w == nil {
		return nil, apperr.NotFound(MsgNotFoundGeneral)
	}
	if w.OwnerID == contributorID {
		return nil, apperr.Forbidden(MsgSelfForbidden)
	}

	o := &domain.Offer{
		Amount: in.Amount,
		Hidden: in.Hidden,
		UserID: contributorID,
		ItemID: in.ItemID,
	}
	if err := s.offers.ApplyOffer(ctx, o); err != nil {
		switch {
		case errors.Is(err, domain.ErrWishNotFound):
			return nil, apperr.NotFound(MsgNotFoundGeneral)
		case errors.Is(err, domain.ErrAlreadyFunded):
			return nil, apperr.Forbidden(MsgAlreadyFunded)
		case errors.Is(err, domain.ErrOverprice):
			return nil, apperr.Forbidden(MsgOverprice)
		default:
			return nil, apperr.Internal("apply offer", err)
		}
	}
	return o, nil
}

func (s *OfferService) List(ctx context.Context) ([]domain.Offer, error) {
	offers, err := s.offers.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list offers", err)
	}
	return offers, nil
}

func (s *OfferService) Get(ctx context.Context, id uint) (*domain.Offer, error) {
	o, err := s.offers.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup offer", err)
	}
	if o == nil {
		return nil, apperr.NotFound(MsgNotFoundGeneral)
	}
	return o, nil
}
