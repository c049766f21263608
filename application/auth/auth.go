package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tindaph/tindaph/cmd/config"
	"github.com/tindaph/tindaph/constant"
	"github.com/tindaph/tindaph/model"
	userrepo "github.com/tindaph/tindaph/repository/user"
	"github.com/tindaph/tindaph/utils/errors"
	"github.com/tindaph/tindaph/utils/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Claims carries the identity embedded in a bearer token. The role is
// trusted as issued: a role change in storage takes effect only once a new
// token is issued, there is no per-request re-check against the user record.
type Claims struct {
	UserID string        `json:"userId"`
	Role   constant.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthAppImpl struct {
	config   *config.Config
	userRepo userrepo.UserRepository
}

func NewAuthApp(config *config.Config, userRepo userrepo.UserRepository) AuthApp {
	return &AuthAppImpl{
		config:   config,
		userRepo: userRepo,
	}
}

func (s *AuthAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	role := req.Role
	if role == "" {
		role = constant.RoleBuyer
	}
	if !constant.ValidRegisterRole(role) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: email})
	if err != nil {
		logger.Error("[Register] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrEmailExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Phone:        req.Phone,
		Address:      req.Address,
	}

	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		// The unique email index closes the check-then-create race.
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.SetCustomError(constant.ErrEmailExists)
		}
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	token, err := s.generateJWT(userEntity.ID.Hex(), userEntity.Role)
	if err != nil {
		logger.Error("[Register] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User: model.UserInfo{
			ID:    userEntity.ID.Hex(),
			Name:  userEntity.Name,
			Email: userEntity.Email,
			Role:  userEntity.Role,
		},
	}, nil
}

func (s *AuthAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: email})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Same error for unknown email and wrong password.
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	token, err := s.generateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		logger.Error("[Login] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User: model.UserInfo{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

// ValidateToken parses and verifies a bearer token. Verification is
// stateless: there is no session store and no revocation list.
func (s *AuthAppImpl) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("token missing user id")
	}

	return claims, nil
}

// generateJWT creates a signed token carrying the user's id and role.
func (s *AuthAppImpl) generateJWT(userID string, role constant.Role) (string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        newUUID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
