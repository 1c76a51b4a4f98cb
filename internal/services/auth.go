package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/opsdeck/qcdesk-backend/internal/data/repos"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/apierr"
	"github.com/opsdeck/qcdesk-backend/internal/platform/ctxutil"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

type JWTClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*types.Account, string, string, error)
	Refresh(ctx context.Context) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db          *gorm.DB
	log         *logger.Logger
	accountRepo repos.AccountRepo
	tokenRepo   repos.AccountTokenRepo
	jwtSecret   string
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	accountRepo repos.AccountRepo,
	tokenRepo repos.AccountTokenRepo,
	jwtSecret string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:          db,
		log:         log.With("service", "AuthService"),
		accountRepo: accountRepo,
		tokenRepo:   tokenRepo,
		jwtSecret:   jwtSecret,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.Account, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", "", apierr.Validation("email", fmt.Errorf("email is required"))
	}
	if password == "" {
		return nil, "", "", apierr.Validation("password", fmt.Errorf("password is required"))
	}

	found, err := as.accountRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, "", "", fmt.Errorf("fetching account by email: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, "", "", apierr.Validation("email", fmt.Errorf("invalid email or password"))
	}
	acct := found[0]
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", apierr.Validation("password", fmt.Errorf("invalid email or password"))
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, ftErr := as.tokenRepo.GetByAccountIDs(ctx, tx, []uuid.UUID{acct.ID})
		if ftErr != nil {
			return fmt.Errorf("checking existing tokens: %w", ftErr)
		}
		stale := make([]uuid.UUID, 0, len(existing))
		for _, t := range existing {
			if t != nil && t.ExpiresAt.Before(time.Now()) {
				stale = append(stale, t.ID)
			}
		}
		if len(stale) > 0 {
			if dErr := as.tokenRepo.DeleteByIDs(ctx, tx, stale); dErr != nil {
				return fmt.Errorf("deleting expired tokens: %w", dErr)
			}
		}
		tok, genErr := as.generateAccessToken(acct)
		if genErr != nil {
			return fmt.Errorf("generating access token: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		record := types.AccountToken{
			ID:           uuid.New(),
			AccountID:    acct.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.tokenRepo.Create(ctx, tx, []*types.AccountToken{&record}); cErr != nil {
			return fmt.Errorf("creating account token: %w", cErr)
		}
		return nil
	}); err != nil {
		as.log.Warn("login transaction failed", "error", err)
		return nil, "", "", err
	}
	return acct, accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context) (string, string, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", apierr.Forbidden(fmt.Errorf("refresh token not present"))
	}

	var accessToken, refreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, ftErr := as.tokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if ftErr != nil {
			return fmt.Errorf("fetching refresh token: %w", ftErr)
		}
		if len(found) == 0 || found[0] == nil {
			return apierr.Forbidden(fmt.Errorf("unknown refresh token"))
		}
		existing := found[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if dErr := as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); dErr != nil {
				return fmt.Errorf("deleting expired refresh token: %w", dErr)
			}
			return apierr.Forbidden(fmt.Errorf("refresh token expired"))
		}
		accounts, aErr := as.accountRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.AccountID})
		if aErr != nil {
			return fmt.Errorf("loading account for refresh: %w", aErr)
		}
		if len(accounts) == 0 || accounts[0] == nil {
			return apierr.Forbidden(fmt.Errorf("no account for refresh token"))
		}
		acct := accounts[0]
		tok, genErr := as.generateAccessToken(acct)
		if genErr != nil {
			return fmt.Errorf("generating access token: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		record := types.AccountToken{
			ID:           uuid.New(),
			AccountID:    acct.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.tokenRepo.Create(ctx, tx, []*types.AccountToken{&record}); cErr != nil {
			return fmt.Errorf("creating rotated token: %w", cErr)
		}
		return as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID})
	})
	if err != nil {
		as.log.Warn("refresh transaction failed", "error", err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return apierr.Forbidden(fmt.Errorf("no session to log out"))
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, ftErr := as.tokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if ftErr != nil {
			return fmt.Errorf("fetching session token: %w", ftErr)
		}
		if len(found) == 0 || found[0] == nil {
			return nil
		}
		return as.tokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{found[0].ID})
	})
}

func (as *authService) generateAccessToken(acct *types.Account) (string, error) {
	claims := JWTClaims{
		Role: acct.Role,
		Name: acct.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecret))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecret), nil
	})
	if err != nil {
		return ctx, apierr.Forbidden(fmt.Errorf("parsing token: %w", err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.Forbidden(fmt.Errorf("invalid or expired token"))
	}
	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Forbidden(fmt.Errorf("invalid account id in token: %w", err))
	}

	var refreshToken string
	found, ftErr := as.tokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if ftErr != nil {
		as.log.Warn("fetching token by access token failed", "error", ftErr)
	} else if len(found) > 0 && found[0] != nil {
		refreshToken = found[0].RefreshToken
	}

	rd := &ctxutil.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		AccountID:    accountID,
		Role:         claims.Role,
		AccountName:  claims.Name,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}
