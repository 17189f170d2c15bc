package service

import (
	"context"
	"fmt"
	"strings"

	"library-backend/internal/domains/auth/model"
	"library-backend/internal/shared"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

type ServiceInterface interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

// AuthService là login gate của demo: mọi credential không rỗng đều được chấp nhận
type AuthService struct {
	jwt *jwt.Manager
	now shared.Clock
}

func NewService(manager *jwt.Manager, clock shared.Clock) ServiceInterface {
	return &AuthService{jwt: manager, now: clock}
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidCredentials, err)
	}

	studentID := strings.TrimSpace(req.StudentID)
	token, expiresAt, err := s.jwt.GenerateAccessToken(studentID, s.now())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	logger.Info("Student logged in", map[string]interface{}{
		"student_id": studentID,
	})

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		StudentID:   studentID,
	}, nil
}
