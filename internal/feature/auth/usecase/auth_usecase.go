// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"devfolio_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// dummyPasswordHash はユーザーが存在しない場合でもbcrypt比較を実行するためのダミーハッシュです。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// SignupInput は新規登録の入力値です。
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult はセッション発行（signup/login/refresh）の結果です。
// RefreshToken はハンドラーがCookieに格納し、レスポンスボディには含めません。
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	follows  FollowRepository
	profiles ProfileReader
	tokens   TokenService
	hashCost int
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, follows FollowRepository, profiles ProfileReader, tokens TokenService) *authUsecase {
	return &authUsecase{
		users:    users,
		follows:  follows,
		profiles: profiles,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// validateSignup は必須項目がすべて入力されているかチェックします。
func validateSignup(in SignupInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	return nil
}

// Signup は新規ユーザーを登録し、アクセストークンとリフレッシュトークンを発行します。
// メールアドレスが既に使われている場合はトークンを発行せずErrEmailAlreadyExistsを返します。
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	// 既存ユーザーの確認（一意制約でも最終的に検出される）
	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u.startSession(ctx, user)
}

// Login はユーザーを認証し、新しいトークンペアを発行します。
// 既存のリフレッシュトークンは上書きされ、以前のセッションは無効になります。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyPasswordHash
	if user != nil {
		passwordHash = user.Password
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出とパスワード不一致は同じエラーを返す
	if user == nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, ErrAccountBanned
	}

	return u.startSession(ctx, user)
}

// Refresh はCookieのリフレッシュトークンを検証し、トークンをローテーションします。
// 提示されたトークンが保存中のトークンと一致しない場合、期限内であってもErrInvalidSessionを返します。
// 同一セッションからの同時リフレッシュはロックせず、後勝ちとします。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	payload, err := u.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.HasActiveRefreshToken(refreshToken) {
		return nil, ErrInvalidSession
	}
	if user.IsBanned {
		return nil, ErrAccountBanned
	}

	return u.startSession(ctx, user)
}

// Logout は保存中のリフレッシュトークンを削除します（ベストエフォート）。
// トークンが無い・不正な場合は何もせず、エラーも返しません。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	payload, err := u.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return
	}
	if err := u.users.UpdateRefreshToken(ctx, payload.UserID, nil); err != nil {
		slog.WarnContext(ctx, "logout: failed to clear refresh token", "error", err, "user_id", payload.UserID)
	}
}

// startSession はトークンペアを発行し、リフレッシュトークンをユーザーの唯一のスロットに保存します。
func (u *authUsecase) startSession(ctx context.Context, user *entity.User) (*AuthResult, error) {
	accessToken, err := u.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := u.tokens.IssueRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := u.users.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshToken = &refreshToken

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
