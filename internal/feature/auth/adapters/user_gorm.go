package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"devfolio_backend/internal/feature/auth/domain/entity"
	"devfolio_backend/internal/feature/auth/usecase"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
// PostgreSQLとSQLiteのどちらの接続でも動作します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーをデータベースに追加し、IDが未設定ならUUIDを採番します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateRefreshToken はリフレッシュトークンのスロットを上書きします。nilはスロットをクリアします。
func (r *userGorm) UpdateRefreshToken(ctx context.Context, id string, token *string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("refresh_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// UpdateProfile はupdateでnil以外のフィールドだけを上書きし、更新後のユーザーを返します。
// 空文字もそのまま保存されます（フィールドのクリア）。
func (r *userGorm) UpdateProfile(ctx context.Context, id string, update entity.ProfileUpdate) (*entity.User, error) {
	if update.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	values, columns := profileAssignments(update)
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Select(columns).Updates(&values)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// profileAssignments は更新対象の値とカラム一覧を組み立てます。
// 構造体経由で更新することでSocialsのJSONシリアライザーが適用されます。
func profileAssignments(p entity.ProfileUpdate) (entity.User, []string) {
	var v entity.User
	columns := []string{"UpdatedAt"}

	set := func(field string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			columns = append(columns, field)
		}
	}
	set("Name", &v.Name, p.Name)
	set("Bio", &v.Bio, p.Bio)
	set("AvatarURL", &v.AvatarURL, p.AvatarURL)
	set("BannerURL", &v.BannerURL, p.BannerURL)
	set("Location", &v.Location, p.Location)
	set("PortfolioURL", &v.PortfolioURL, p.PortfolioURL)
	set("ResumeURL", &v.ResumeURL, p.ResumeURL)
	if p.Socials != nil {
		v.Socials = *p.Socials
		columns = append(columns, "Socials")
	}
	return v, columns
}
