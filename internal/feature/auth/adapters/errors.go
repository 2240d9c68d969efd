// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
	pgUniqueViolation = "23505"
	// pgForeignKeyViolation はPostgreSQLの外部キー制約違反のSQLSTATEです。
	pgForeignKeyViolation = "23503"
)

// isUniqueViolation は一意制約違反かどうかを判定します。
// TranslateErrorが有効な接続ではgorm.ErrDuplicatedKeyに変換済みですが、
// 無効な接続のためにpgconn.PgErrorも直接確認します。
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isForeignKeyViolation は外部キー制約違反（参照先ユーザーが存在しない）かどうかを判定します。
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
