package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roomly/infras/jwt"
	"roomly/infras/otel"
	"roomly/internal/domains/auth/model/dto"
	userModel "roomly/internal/domains/user/model"
	userDto "roomly/internal/domains/user/model/dto"
	userRepo "roomly/internal/domains/user/repository"
	"roomly/shared"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
	"roomly/shared/password"
	"roomly/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	msgEmailExists     = "Email already exists"
	msgEmailNotFound   = "Email does not exist, please register"
	msgPasswordless    = "This account has no password, sign in with a social provider and set one in settings"
	msgWrongPassword   = "Password is incorrect"
	msgInvalidRefresh  = "Invalid refresh token"
	msgWrongCurrent    = "Current password is incorrect"
	msgAccountNotFound = "User not found"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (userDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	Me(ctx context.Context) (userDto.UserResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		otel:       otel,
		jwtService: jwt,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(strings.TrimSpace(email)),
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString(msgEmailExists)
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword, timezone.Now())

	user.ID, err = s.userRepo.InsertReturningID(ctx, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 || user.IsDeleted {
		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")

		return res, failure.BadRequestFromString(msgEmailNotFound)
	}

	if !user.HasPassword() {
		return res, failure.BadRequestFromString(msgPasswordless)
	}

	if err := password.Verify(req.Password, *user.Password); err != nil {
		log.Warn().Int64("user_id", user.ID).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString(msgWrongPassword)
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized(msgInvalidRefresh)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Me(ctx context.Context) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.caller(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.caller(ctx)
	if err != nil {
		return err
	}

	if !user.HasPassword() || password.Verify(req.CurrentPassword, *user.Password) != nil {
		return failure.BadRequestFromString(msgWrongCurrent)
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updated := map[string]any{
		userModel.FieldPassword: hashedPassword,
		constant.FieldUpdatedAt: timezone.Now(),
	}

	if err = s.userRepo.Update(ctx, updated, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// caller loads the authenticated account, rejecting tokens whose user is gone.
func (s *serviceImpl) caller(ctx context.Context) (userModel.User, error) {
	userID, _ := shared.ActorFromContext(ctx)

	user, err := s.userRepo.Get(ctx, shared.FilterActiveByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return user, failure.Unauthorized(msgAccountNotFound)
	}

	return user, nil
}
