package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"gift-service/internal/core/apperr"
	"gift-service/internal/core/cache"
	"gift-service/internal/domain"
)

const (
	recentLimit  = 40
	popularLimit = 20

	keyRecentWishes  = "wishes:last"
	keyPopularWishes = "wishes:top"
)

type CreateWishInput struct {
	Name        string
	Link        string
	Image       string
	Price       decimal.Decimal
	Description string
}

type UpdateWishInput struct {
	Name        *string
	Link        *string
	Image       *string
	Price       *decimal.Decimal
	Description *string
}

type WishService struct {
	wishes  domain.WishRepository
	cache   *cache.Cache // 可为 nil，最新/热门榜直接走库
	feedTTL time.Duration
}

func NewWishService(wishes domain.WishRepository, c *cache.Cache, feedTTL time.Duration) *WishService {
	return &WishService{wishes: wishes, cache: c, feedTTL: feedTTL}
}

// Create raised 一律从 0 开始，外部传入无效
func (s *WishService) Create(ctx context.Context, ownerID uint, in CreateWishInput) (*domain.Wish, error) {
	if in.Price.IsNegative() {
		return nil, apperr.Validation("price must not be negative")
	}
	w := &domain.Wish{
		Name:        in.Name,
		Link:        in.Link,
		Image:       in.Image,
		Price:       in.Price,
		Raised:      decimal.Zero,
		Description: in.Description,
		OwnerID:     ownerID,
	}
	if err := s.wishes.Create(ctx, w); err != nil {
		return nil, apperr.Internal("create wish", err)
	}
	return w, nil
}

func (s *WishService) Get(ctx context.Context, id uint) (*domain.Wish, error) {
	w, err := s.wishes.FindByIDFull(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup wish", err)
	}
	if w == nil {
		return nil, apperr.NotFound(MsgNotFoundGeneral)
	}
	return w, nil
}

// Update 仅 owner 可改，且只在无人出资时；有人出资后冻结
func (s *WishService) Update(ctx context.Context, id, callerID uint, in UpdateWishInput) (*domain.Wish, error) {
	w, err := s.wishes.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup wish", err)
	}
	if w == nil {
		return nil, apperr.NotFound(MsgNotFoundGeneral)
	}
	if w.OwnerID != callerID || w.Funded() {
		return nil, apperr.Forbidden(MsgOwnerForbidden)
	}

	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.Link != nil {
		w.Link = *in.Link
	}
	if in.Image != nil {
		w.Image = *in.Image
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, apperr.Validation("price must not be negative")
		}
		w.Price = *in.Price
	}
	if in.Description != nil {
		w.Description = *in.Description
	}

	if err := s.wishes.Update(ctx, w); err != nil {
		return nil, apperr.Internal("update wish", err)
	}
	return w, nil
}

// Delete owner 可删，已被出资的也可删（出资记录随之消失，不涉及退款）
func (s *WishService) Delete(ctx context.Context, id, callerID uint) error {
	w, err := s.wishes.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("lookup wish", err)
	}
	if w == nil {
		return apperr.NotFound(MsgNotFoundGeneral)
	}
	if w.OwnerID != callerID {
		return apperr.Forbidden(MsgOwnerForbidden)
	}
	if err := s.wishes.Delete(ctx, id); err != nil {
		return apperr.Internal("delete wish", err)
	}
	return nil
}

// Copy 复制到新 owner 名下：raised=0、copied=0，源 copied+1
func (s *WishService) Copy(ctx context.Context, id, newOwnerID uint) (*domain.Wish, error) {
	clone, err := s.wishes.CopyTo(ctx, id, newOwnerID)
	if err != nil {
		return nil, apperr.Internal("copy wish", err)
	}
	if clone == nil {
		return nil, apperr.NotFound(MsgNotFoundGeneral)
	}
	return clone, nil
}

func (s *WishService) Recent(ctx context.Context) ([]domain.Wish, error) {
	return s.feed(ctx, keyRecentWishes, func(ctx context.Context) ([]domain.Wish, error) {
		return s.wishes.Recent(ctx, recentLimit)
	})
}

func (s *WishService) Popular(ctx context.Context) ([]domain.Wish, error) {
	return s.feed(ctx, keyPopularWishes, func(ctx context.Context) ([]domain.Wish, error) {
		return s.wishes.Popular(ctx, popularLimit)
	})
}

func (s *WishService) feed(ctx context.Context, key string, load func(context.Context) ([]domain.Wish, error)) ([]domain.Wish, error) {
	if s.cache == nil {
		wishes, err := load(ctx)
		if err != nil {
			return nil, apperr.Internal("load feed", err)
		}
		return wishes, nil
	}
	wishes, err := cache.GetOrLoadJSON(s.cache, ctx, key, s.feedTTL, load)
	if err != nil {
		return nil, apperr.Internal("load feed", err)
	}
	return wishes, nil
}

func (s *WishService) SearchByName(ctx context.Context, q string) ([]domain.Wish, error) {
	wishes, err := s.wishes.SearchByName(ctx, q)
	if err != nil {
		return nil, apperr.Internal("search wishes", err)
	}
	return wishes, nil
}

func (s *WishService) SearchByDescription(ctx context.Context, q string) ([]domain.Wish, error) {
	wishes, err := s.wishes.SearchByDescription(ctx, q)
	if err != nil {
		return nil, apperr.Internal("search wishes", err)
	}
	return wishes, nil
}
