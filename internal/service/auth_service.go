package service

import (
	"context"

	"gift-service/internal/core/apperr"
	"gift-service/internal/core/auth"
	"gift-service/internal/domain"
)

type AuthService struct {
	users *UserService
	jwter *auth.JWTer
}

func NewAuthService(users *UserService, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Login 校验凭证并签发无状态 token（sub=用户id + username）
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	u, err := s.users.VerifyCredentials(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, apperr.Unauthorized(MsgUnauthorizedUser)
	}
	token, err := s.jwter.Issue(u.ID, u.Username)
	if err != nil {
		return "", nil, apperr.Internal("issue token", err)
	}
	return token, u, nil
}

// ResolveToken 验签 + 过期检查后，还要确认用户仍然存在
func (s *AuthService) ResolveToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	claims, err := s.jwter.Parse(tokenStr)
	if err != nil {
		return nil, apperr.Unauthorized("invalid token")
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, apperr.Unauthorized("invalid token")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized(MsgUnauthorizedUser)
		}
		return nil, err
	}
	return u, nil
}
