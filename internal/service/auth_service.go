package service

import (
	"context"
	"errors"
	"os"
	"time"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/pkg/logger"
	"medicab-be/internal/repository/specification"
	"medicab-be/internal/repository/unitofwork"
	"medicab-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterCabinetRequest) (*dto.RegisterCabinetResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	CreateUser(ctx context.Context, cabinetId uuid.UUID, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, cabinetId uuid.UUID) ([]*dto.UserResponse, error)
}

type authService struct {
	uowFactory          unitofwork.RepositoryFactory
	subscriptionService ISubscriptionService
	publisherService    IPublisherService
	logger              logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	subscriptionService ISubscriptionService,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:          uowFactory,
		subscriptionService: subscriptionService,
		publisherService:    publisherService,
		logger:              sysLogger,
	}
}

// Register creates the cabinet, its owner account and its trial subscription
// in one flow. Cabinet and owner are committed together; the trial is opened
// right after, so a cabinet always starts with a 7-day window.
func (s *authService) Register(ctx context.Context, req *dto.RegisterCabinetRequest) (*dto.RegisterCabinetResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cabinet := &entity.Cabinet{
		Id:         uuid.New(),
		Name:       req.CabinetName,
		Speciality: entity.Speciality(req.Speciality),
		Phone:      req.Phone,
		City:       req.City,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	owner := &entity.User{
		Id:           uuid.New(),
		CabinetId:    cabinet.Id,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         entity.UserRoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CabinetRepository().Create(ctx, cabinet); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().Create(ctx, owner); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// The trial plan is the only trial-flagged catalog entry.
	trialUow := s.uowFactory.NewUnitOfWork(ctx)
	trialPlan, err := trialUow.SubscriptionRepository().FindOnePlan(ctx, specification.Filter("is_trial", true))
	if err != nil {
		return nil, err
	}
	if trialPlan == nil {
		return nil, ErrPlanNotFound
	}

	sub, err := s.subscriptionService.RegisterTrial(ctx, cabinet.Id, trialPlan.Id)
	if err != nil {
		return nil, err
	}

	if s.publisherService != nil {
		evt := events.BaseEvent{
			Type: "CABINET_REGISTERED",
			Data: map[string]interface{}{
				"cabinet_id":   cabinet.Id,
				"cabinet_name": cabinet.Name,
				"email":        owner.Email,
				"trial_days":   entity.TrialDays,
			},
			OccurredAt: now,
		}
		if err := s.publisherService.Publish(ctx, evt); err != nil && s.logger != nil {
			s.logger.Warn("auth", "failed to publish CABINET_REGISTERED", map[string]interface{}{
				"cabinet_id": cabinet.Id,
				"error":      err.Error(),
			})
		}
	}

	return &dto.RegisterCabinetResponse{
		CabinetId:    cabinet.Id,
		UserId:       owner.Id,
		Subscription: sub,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id":    user.Id.String(),
		"cabinet_id": user.CabinetId.String(),
		"role":       string(user.Role),
		"exp":        time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     signed,
		UserId:    user.Id,
		CabinetId: user.CabinetId,
		Role:      string(user.Role),
		FullName:  user.FullName,
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, cabinetId uuid.UUID, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		CabinetId:    cabinetId,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         entity.UserRole(req.Role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *authService) ListUsers(ctx context.Context, cabinetId uuid.UUID) ([]*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx, specification.CabinetOwnedBy{CabinetID: cabinetId})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, toUserResponse(u))
	}
	return res, nil
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:       user.Id,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
		IsActive: user.IsActive,
	}
}
