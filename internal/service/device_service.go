package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"fets-live/backend/internal/dto"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/repository"
)

// Capability results reported back to the client runtime.
const (
	ResultOK          = "ok"
	ResultUnavailable = "unavailable"
	ResultDenied      = "denied"
)

const (
	PlatformWeb     = "web"
	PlatformIOS     = "ios"
	PlatformAndroid = "android"

	PermissionGranted = "granted"
)

// DeviceService native capability port. Capabilities that a platform lacks
// come back as a result value, never as an error.
type DeviceService interface {
	RegisterPush(ctx context.Context, userID string, req *dto.RegisterPushRequest) (*dto.CapabilityResponse, error)
	StatusBar(ctx context.Context, req *dto.CapabilityRequest) *dto.CapabilityResponse
	Haptics(ctx context.Context, req *dto.CapabilityRequest) *dto.CapabilityResponse
}

type deviceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDeviceService creates a DeviceService
func NewDeviceService(repo *repository.Repository, logger *zap.Logger) DeviceService {
	return &deviceService{repo: repo, logger: logger}
}

func (s *deviceService) RegisterPush(ctx context.Context, userID string, req *dto.RegisterPushRequest) (*dto.CapabilityResponse, error) {
	if req.Platform == PlatformWeb {
		return &dto.CapabilityResponse{Result: ResultUnavailable}, nil
	}
	if req.Permission != PermissionGranted {
		return &dto.CapabilityResponse{Result: ResultDenied}, nil
	}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return &dto.CapabilityResponse{Result: ResultUnavailable}, nil
	}

	now := time.Now()
	reg := &model.DeviceRegistration{
		UserID:    userID,
		Platform:  req.Platform,
		Token:     token,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Device.Upsert(ctx, reg); err != nil {
		s.logger.Error("store push token failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("push token registered", zap.String("user_id", userID), zap.String("platform", req.Platform))
	return &dto.CapabilityResponse{Result: ResultOK}, nil
}

func (s *deviceService) StatusBar(_ context.Context, req *dto.CapabilityRequest) *dto.CapabilityResponse {
	return nativeOnly(req.Platform)
}

func (s *deviceService) Haptics(_ context.Context, req *dto.CapabilityRequest) *dto.CapabilityResponse {
	return nativeOnly(req.Platform)
}

func nativeOnly(platform string) *dto.CapabilityResponse {
	if platform == PlatformWeb {
		return &dto.CapabilityResponse{Result: ResultUnavailable}
	}
	return &dto.CapabilityResponse{Result: ResultOK}
}
