package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slogGormLogger はGORMのログをslogへ流します。
// gorm.ErrRecordNotFoundは未登録メールの確認などで頻発するため出力しません。
type slogGormLogger struct {
	logger *slog.Logger
	config logger.Config
}

var _ logger.Interface = (*slogGormLogger)(nil)

func newGormLogger(l *slog.Logger) *slogGormLogger {
	return &slogGormLogger{
		logger: l,
		config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	}
}

// LogMode はログレベルを変更したコピーを返します。
func (l *slogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	nl := *l
	nl.config.LogLevel = level
	return &nl
}

func (l *slogGormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.config.LogLevel >= logger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.config.LogLevel >= logger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.config.LogLevel >= logger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace はクエリ結果に応じてエラー・スロークエリ・通常クエリを記録します。
func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.config.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.config.LogLevel >= logger.Error &&
		!(l.config.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)):
		sql, rows := fc()
		l.logger.ErrorContext(ctx, "gorm query error",
			"sql", sql, "rows", rows, "elapsed", elapsed, "error", err)
	case l.config.SlowThreshold != 0 && elapsed > l.config.SlowThreshold && l.config.LogLevel >= logger.Warn:
		sql, rows := fc()
		l.logger.WarnContext(ctx, "gorm slow query",
			"sql", sql, "rows", rows, "elapsed", elapsed)
	case l.config.LogLevel >= logger.Info:
		sql, rows := fc()
		l.logger.InfoContext(ctx, "gorm query",
			"sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
