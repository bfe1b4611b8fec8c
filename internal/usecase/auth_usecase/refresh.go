package auth

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// 期限切れ・失効・使用済みはすべてこれに寄せる
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type RefreshOutput struct {
	Token JwtAccessToken `json:"token"`
}

type RefreshSideEffect struct {
	PlainRefreshToken string
}

// RefreshUsecaseはリフレッシュトークンのローテーション。
// 古いトークンを使用済みにして、新しいアクセストークンとリフレッシュトークンを発行する。
type RefreshUsecase struct {
	userRepo   repository.UserRepository
	rtRepo     repository.RefreshTokenRepository
	issuer     AccessTokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

func NewRefreshUsecase(
	userRepo repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *RefreshUsecase {
	return &RefreshUsecase{
		userRepo:   userRepo,
		rtRepo:     rtRepo,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

func (u *RefreshUsecase) Execute(ctx context.Context, plainRefresh string, userAgent string) (RefreshOutput, RefreshSideEffect, error) {
	var out RefreshOutput
	var side RefreshSideEffect

	if plainRefresh == "" {
		return out, side, ErrInvalidRefreshToken
	}

	stored, err := u.rtRepo.FindByTokenHash(ctx, hashRefreshToken(plainRefresh))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return out, side, ErrInvalidRefreshToken
		}
		return out, side, err
	}

	now := u.clock.Now()

	//使用済み・失効・期限切れは拒否
	if stored.UsedAt != nil || stored.RevokedAt != nil || now.After(stored.ExpiresAt) {
		return out, side, ErrInvalidRefreshToken
	}

	user, err := u.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, side, ErrInvalidRefreshToken
		}
		return out, side, err
	}
	if !user.IsActive {
		return out, side, ErrInvalidRefreshToken
	}

	//古いトークンを使用済みにする（ローテーション）
	if err := u.rtRepo.MarkUsed(ctx, stored.ID, now); err != nil {
		return out, side, err
	}

	accessToken, accessExp, err := u.issuer.Issue(user.ID, user.Role, user.TokenVersion, now)
	if err != nil {
		return out, side, err
	}

	newPlain, err := generateSecureToken(32)
	if err != nil {
		return out, side, err
	}

	next := &model.RefreshToken{
		ID:        u.idGen.NewID(),
		UserID:    user.ID,
		TokenHash: hashRefreshToken(newPlain),
		UserAgent: userAgent,
		ExpiresAt: now.Add(u.refreshTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.rtRepo.Create(ctx, next); err != nil {
		return out, side, err
	}

	out.Token = JwtAccessToken{
		AccessToken:  accessToken,
		ExpiresIn:    int(accessExp.Sub(now).Seconds()),
		TokenVersion: user.TokenVersion,
	}
	side.PlainRefreshToken = newPlain
	return out, side, nil
}
