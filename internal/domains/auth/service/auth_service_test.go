package service

import (
	"context"
	"testing"
	"time"

	"library-backend/internal/domains/auth/model"
	"library-backend/internal/shared"
	"library-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (ServiceInterface, *jwt.Manager) {
	manager := jwt.NewManager("test-secret", time.Hour)
	return NewService(manager, time.Now), manager
}

func TestLogin_IssuesTokenForTrimmedStudentID(t *testing.T) {
	svc, manager := newTestService()

	resp, err := svc.Login(context.Background(), model.LoginRequest{StudentID: "  CS2021001 ", Password: "anything"})
	require.NoError(t, err)

	assert.Equal(t, "CS2021001", resp.StudentID)
	assert.Equal(t, "Bearer", resp.TokenType)

	claims, err := manager.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "CS2021001", claims.StudentID)
}

func TestLogin_RejectsBlankFields(t *testing.T) {
	svc, _ := newTestService()

	cases := []model.LoginRequest{
		{StudentID: "", Password: "x"},
		{StudentID: "CS1", Password: "   "},
		{},
	}

	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		assert.True(t, shared.IsValidation(err))
	}
}
