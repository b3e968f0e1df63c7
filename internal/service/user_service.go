package service

import (
	"context"

	"gift-service/internal/core/apperr"
	"gift-service/internal/domain"
	"gift-service/pkg/utils"
)

type CreateUserInput struct {
	Username string
	About    string
	Avatar   string
	Email    string
	Password string
}

type UpdateUserInput struct {
	Username *string
	About    *string
	Avatar   *string
	Email    *string
	Password *string
}

type UserService struct {
	users  domain.UserRepository
	wishes domain.WishRepository
}

func NewUserService(users domain.UserRepository, wishes domain.WishRepository) *UserService {
	return &UserService{users: users, wishes: wishes}
}

// Create 注册：用户名/邮箱唯一，密码只存 bcrypt 散列
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if u, err := s.users.FindByUsername(ctx, in.Username); err != nil {
		return nil, apperr.Internal("lookup username", err)
	} else if u != nil {
		return nil, apperr.Conflict(MsgUserConflict)
	}
	if u, err := s.users.FindByEmail(ctx, in.Email); err != nil {
		return nil, apperr.Internal("lookup email", err)
	} else if u != nil {
		return nil, apperr.Conflict(MsgUserConflict)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	u := &domain.User{
		Username:     in.Username,
		About:        in.About,
		Avatar:       in.Avatar,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if u.About == "" {
		u.About = domain.DefaultAbout
	}
	if u.Avatar == "" {
		u.Avatar = domain.DefaultAvatar
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apperr.Internal("create user", err)
	}
	return u, nil
}

// VerifyCredentials 按用户名或邮箱精确查找，bcrypt 比对；
// 不匹配返回 (nil, nil)，由调用方决定 Unauthorized 语义
func (s *UserService) VerifyCredentials(ctx context.Context, identifier, password string) (*domain.User, error) {
	u, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, apperr.Internal("lookup user", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, nil
	}
	return u, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup user", err)
	}
	if u == nil {
		return nil, apperr.NotFound(MsgUserNotFound)
	}
	return u, nil
}

// UpdateProfile 只合并传入的字段；改密码时重新散列
func (s *UserService) UpdateProfile(ctx context.Context, id uint, in UpdateUserInput) (*domain.User, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != u.Username {
		if other, err := s.users.FindByUsername(ctx, *in.Username); err != nil {
			return nil, apperr.Internal("lookup username", err)
		} else if other != nil {
			return nil, apperr.Conflict(MsgUserConflict)
		}
		u.Username = *in.Username
	}
	if in.Email != nil && *in.Email != u.Email {
		if other, err := s.users.FindByEmail(ctx, *in.Email); err != nil {
			return nil, apperr.Internal("lookup email", err)
		} else if other != nil {
			return nil, apperr.Conflict(MsgUserConflict)
		}
		u.Email = *in.Email
	}
	if in.About != nil {
		u.About = *in.About
	}
	if in.Avatar != nil {
		u.Avatar = *in.Avatar
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, apperr.Internal("hash password", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, apperr.Internal("update user", err)
	}
	return u, nil
}

// Search 用户名/邮箱子串匹配，返回脱敏视图（散列不序列化）
func (s *UserService) Search(ctx context.Context, query string) ([]domain.User, error) {
	users, err := s.users.SearchLike(ctx, query)
	if err != nil {
		return nil, apperr.Internal("search users", err)
	}
	return users, nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Internal("lookup user", err)
	}
	if u == nil {
		return nil, apperr.NotFound(MsgUserNotFound)
	}
	return u, nil
}

func (s *UserService) Wishes(ctx context.Context, userID uint) ([]domain.Wish, error) {
	if _, err := s.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	wishes, err := s.wishes.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("list wishes", err)
	}
	return wishes, nil
}

func (s *UserService) WishesByUsername(ctx context.Context, username string) ([]domain.Wish, error) {
	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	wishes, err := s.wishes.ListByOwner(ctx, u.ID)
	if err != nil {
		return nil, apperr.Internal("list wishes", err)
	}
	return wishes, nil
}
