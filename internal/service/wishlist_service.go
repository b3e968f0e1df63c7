package service

import (
	"context"

	"gift-service/internal/core/apperr"
	"gift-service/internal/domain"
)

type CreateWishlistInput struct {
	Name        string
	Description string
	Image       string
	ItemIDs     []uint
}

type UpdateWishlistInput struct {
	Name        *string
	Description *string
	Image       *string
	// ItemIDs 非 nil 时整组替换成员
	ItemIDs *[]uint
}

type WishlistService struct {
	lists  domain.WishlistRepository
	wishes domain.WishRepository
	users  domain.UserRepository
}

func NewWishlistService(lists domain.WishlistRepository, wishes domain.WishRepository, users domain.UserRepository) *WishlistService {
	return &WishlistService{lists: lists, wishes: wishes, users: users}
}

// resolveItems 所有 id 必须都存在，缺一个整个操作失败
func (s *WishlistService) resolveItems(ctx context.Context, ids []uint) ([]domain.Wish, error) {
	if len(ids) == 0 {
		return []domain.Wish{}, nil
	}
	wishes, err := s.wishes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("resolve wishes", err)
	}
	if len(wishes) != len(ids) {
		return nil, apperr.NotFound(MsgNotFoundGeneral)
	}
	return wishes, nil
}

func (s *WishlistService) Create(ctx context.Context, ownerID uint, in CreateWishlistInput) (*domain.Wishlist, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("lookup user", err)
	}
	if owner == nil {
		return nil, apperr.NotFound(MsgUserNotFound)
	}

	items, err := s.resolveItems(ctx, in.ItemIDs)
	if err != nil {
		return nil, err
	}

	wl := &domain.Wishlist{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		OwnerID:     ownerID,
		Items:       items,
	}
	if err := s.lists.Create(ctx, wl); err != nil {
		return nil, apperr.Internal("create wishlist", err)
	}
	return wl, nil
}

func (s *WishlistService) Update(ctx context.Context, id, callerID uint, in UpdateWishlistInput) (*domain.Wishlist, error) {
	wl, err := s.lists.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup wishlist", err)
	}
	if wl == nil {
		return nil, apperr.NotFound(MsgNotFoundGeneral)
	}
	if wl.OwnerID != callerID {
		return nil, apperr.Forbidden(MsgOwnerForbidden)
	}

	if in.Name != nil {
		wl.Name = *in.Name
	}
	if in.Description != nil {
		wl.Description = *in.Description
	}
	if in.Image != nil {
		wl.Image = *in.Image
	}

	var items []domain.Wish
	if in.ItemIDs != nil {
		items, err = s.resolveItems(ctx, *in.ItemIDs)
		if err != nil {
			return nil, err
		}
		wl.Items = items
	}

	if err := s.lists.Update(ctx, wl, items); err != nil {
		return nil, apperr.Internal("update wishlist", err)
	}
	return wl, nil
}

func (s *WishlistService) Delete(ctx context.Context, id, callerID uint) error {
	wl, err := s.lists.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("lookup wishlist", err)
	}
	if wl == nil {
		return apperr.NotFound(MsgNotFoundGeneral)
	}
	if wl.OwnerID != callerID {
		return apperr.Forbidden(MsgOwnerForbidden)
	}
	if err := s.lists.Delete(ctx, id); err != nil {
		return apperr.Internal("delete wishlist", err)
	}
	return nil
}

func (s *WishlistService) ListForUser(ctx context.Context, ownerID uint) ([]domain.Wishlist, error) {
	lists, err := s.lists.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("list wishlists", err)
	}
	return lists, nil
}

func (s *WishlistService) Get(ctx context.Context, id uint) (*domain.Wishlist, error) {
	wl, err := s.lists.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup wishlist", err)
	}
	if wl == nil {
		return nil, apperr.NotFound(MsgNotFoundGeneral)
	}
	return wl, nil
}

func (s *WishlistService) Search(ctx context.Context, query string) ([]domain.Wishlist, error) {
	lists, err := s.lists.Search(ctx, query)
	if err != nil {
		return nil, apperr.Internal("search wishlists", err)
	}
	return lists, nil
}
