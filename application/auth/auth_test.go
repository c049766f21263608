package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appauth "github.com/tindaph/tindaph/application/auth"
	"github.com/tindaph/tindaph/cmd/config"
	"github.com/tindaph/tindaph/constant"
	usermocks "github.com/tindaph/tindaph/mocks/repository/user"
	"github.com/tindaph/tindaph/model"
	cerr "github.com/tindaph/tindaph/utils/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			JWTExpiration: time.Hour,
		},
	}
}

func TestAuthApp_Register(t *testing.T) {
	type fields struct {
		config   *config.Config
		userRepo *usermocks.UserRepository
	}
	type args struct {
		ctx context.Context
		req *model.RegisterRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantUser model.UserInfo
		wantErr  error
	}{
		{
			name: "success: register buyer with lowered email",
			fields: fields{
				config:   testConfig(),
				userRepo: usermocks.NewUserRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Ana Reyes",
					Email:    "Ana@X.ph",
					Password: "password123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "ana@x.ph"}).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.Name == "Ana Reyes" &&
							ent.Email == "ana@x.ph" &&
							ent.Role == constant.RoleBuyer &&
							ent.PasswordHash != "" &&
							ent.PasswordHash != "password123"
					})).
					Return(&model.UserEntity{
						ID:           primitive.NewObjectID(),
						Name:         "Ana Reyes",
						Email:        "ana@x.ph",
						Role:         constant.RoleBuyer,
						PasswordHash: "hashed",
					}, nil).
					Once()
			},
			wantUser: model.UserInfo{
				Name:  "Ana Reyes",
				Email: "ana@x.ph",
				Role:  constant.RoleBuyer,
			},
		},
		{
			name: "success: explicit seller role",
			fields: fields{
				config:   testConfig(),
				userRepo: usermocks.NewUserRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Ben Cruz",
					Email:    "ben@x.ph",
					Password: "password123",
					Role:     constant.RoleSeller,
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "ben@x.ph"}).
					Return(nil, nil).
					Once()

				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.Role == constant.RoleSeller
					})).
					Return(&model.UserEntity{
						ID:    primitive.NewObjectID(),
						Name:  "Ben Cruz",
						Email: "ben@x.ph",
						Role:  constant.RoleSeller,
					}, nil).
					Once()
			},
			wantUser: model.UserInfo{
				Name:  "Ben Cruz",
				Email: "ben@x.ph",
				Role:  constant.RoleSeller,
			},
		},
		{
			name: "error: admin role cannot be self-assigned",
			fields: fields{
				config:   testConfig(),
				userRepo: usermocks.NewUserRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Mallory",
					Email:    "mallory@x.ph",
					Password: "password123",
					Role:     constant.RoleAdmin,
				},
			},
			mockCall: func(f fields) {},
			wantErr:  cerr.SetCustomError(constant.ErrInvalidRequest),
		},
		{
			name: "error: email already exists",
			fields: fields{
				config:   testConfig(),
				userRepo: usermocks.NewUserRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Ana Reyes",
					Email:    "ana@x.ph",
					Password: "password123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "ana@x.ph"}).
					Return(&model.UserEntity{
						ID:    primitive.NewObjectID(),
						Email: "ana@x.ph",
					}, nil).
					Once()
			},
			wantErr: cerr.SetCustomError(constant.ErrEmailExists),
		},
		{
			name: "error: repository Get fails",
			fields: fields{
				config:   testConfig(),
				userRepo: usermocks.NewUserRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Ana Reyes",
					Email:    "ana@x.ph",
					Password: "password123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "ana@x.ph"}).
					Return(nil, errors.New("db down")).
					Once()
			},
			wantErr: cerr.SetCustomError(constant.ErrInternal),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockCall(tt.fields)

			app := appauth.NewAuthApp(tt.fields.config, tt.fields.userRepo)
			got, err := app.Register(tt.args.ctx, tt.args.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.Token)
			assert.NotEmpty(t, got.User.ID)
			assert.Equal(t, tt.wantUser.Name, got.User.Name)
			assert.Equal(t, tt.wantUser.Email, got.User.Email)
			assert.Equal(t, tt.wantUser.Role, got.User.Role)
		})
	}
}

func TestAuthApp_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userID := primitive.NewObjectID()

	tests := []struct {
		name     string
		req      *model.LoginRequest
		mockCall func(repo *usermocks.UserRepository)
		wantErr  error
	}{
		{
			name: "success: valid credentials",
			req:  &model.LoginRequest{Email: "ana@x.ph", Password: "password123"},
			mockCall: func(repo *usermocks.UserRepository) {
				repo.
					On("Get", mock.Anything, &model.UserFilter{Email: "ana@x.ph"}).
					Return(&model.UserEntity{
						ID:           userID,
						Name:         "Ana Reyes",
						Email:        "ana@x.ph",
						Role:         constant.RoleBuyer,
						PasswordHash: string(hash),
					}, nil).
					Once()
			},
		},
		{
			name: "error: wrong password",
			req:  &model.LoginRequest{Email: "ana@x.ph", Password: "wrong-pass"},
			mockCall: func(repo *usermocks.UserRepository) {
				repo.
					On("Get", mock.Anything, &model.UserFilter{Email: "ana@x.ph"}).
					Return(&model.UserEntity{
						ID:           userID,
						Email:        "ana@x.ph",
						PasswordHash: string(hash),
					}, nil).
					Once()
			},
			wantErr: cerr.SetCustomError(constant.ErrInvalidCredentials),
		},
		{
			name: "error: unknown email gets the same error",
			req:  &model.LoginRequest{Email: "ghost@x.ph", Password: "password123"},
			mockCall: func(repo *usermocks.UserRepository) {
				repo.
					On("Get", mock.Anything, &model.UserFilter{Email: "ghost@x.ph"}).
					Return(nil, nil).
					Once()
			},
			wantErr: cerr.SetCustomError(constant.ErrInvalidCredentials),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := usermocks.NewUserRepository(t)
			tt.mockCall(repo)

			app := appauth.NewAuthApp(testConfig(), repo)
			got, err := app.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.Token)
			assert.Equal(t, userID.Hex(), got.User.ID)
			assert.Equal(t, constant.RoleBuyer, got.User.Role)
		})
	}
}

func TestAuthApp_ValidateToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userID := primitive.NewObjectID()

	repo := usermocks.NewUserRepository(t)
	repo.
		On("Get", mock.Anything, &model.UserFilter{Email: "ben@x.ph"}).
		Return(&model.UserEntity{
			ID:           userID,
			Email:        "ben@x.ph",
			Role:         constant.RoleSeller,
			PasswordHash: string(hash),
		}, nil).
		Once()

	app := appauth.NewAuthApp(testConfig(), repo)
	res, err := app.Login(context.Background(), &model.LoginRequest{Email: "ben@x.ph", Password: "password123"})
	require.NoError(t, err)

	t.Run("round trip: claims carry id and role", func(t *testing.T) {
		claims, err := app.ValidateToken(res.Token)
		require.NoError(t, err)
		assert.Equal(t, userID.Hex(), claims.UserID)
		assert.Equal(t, constant.RoleSeller, claims.Role)
	})

	t.Run("error: garbage token", func(t *testing.T) {
		_, err := app.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("error: token signed with another secret", func(t *testing.T) {
		other := appauth.NewAuthApp(&config.Config{
			Auth: config.AuthConfig{JWTSecret: "other-secret", JWTExpiration: time.Hour},
		}, nil)
		_, err := other.ValidateToken(res.Token)
		assert.Error(t, err)
	})

	t.Run("error: expired token", func(t *testing.T) {
		expiredRepo := usermocks.NewUserRepository(t)
		expiredRepo.
			On("Get", mock.Anything, &model.UserFilter{Email: "ben@x.ph"}).
			Return(&model.UserEntity{
				ID:           userID,
				Email:        "ben@x.ph",
				Role:         constant.RoleSeller,
				PasswordHash: string(hash),
			}, nil).
			Once()

		expiredApp := appauth.NewAuthApp(&config.Config{
			Auth: config.AuthConfig{JWTSecret: "test-secret", JWTExpiration: -time.Minute},
		}, expiredRepo)

		expired, err := expiredApp.Login(context.Background(), &model.LoginRequest{Email: "ben@x.ph", Password: "password123"})
		require.NoError(t, err)

		_, err = expiredApp.ValidateToken(expired.Token)
		assert.Error(t, err)
	})
}
