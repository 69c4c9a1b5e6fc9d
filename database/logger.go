// database/logger.go - GORM logger backed by zerolog
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger writes GORM output through the context logger, so queries run
// inside a request carry its request_id.
type gormLogger struct {
	level logger.LogLevel
	slow  time.Duration
}

func newGormLogger(level logger.LogLevel) *gormLogger {
	return &gormLogger{level: level, slow: slowQueryThreshold}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		log.Ctx(ctx).Info().Msgf(msg, args...)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		log.Ctx(ctx).Warn().Msgf(msg, args...)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		log.Ctx(ctx).Error().Msgf(msg, args...)
	}
}

// Trace logs failed queries as errors and slow ones as warnings. Every
// query is logged at debug level when the logger is in Info mode.
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var event *zerolog.Event
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		event = log.Ctx(ctx).Error().Err(err)
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		event = log.Ctx(ctx).Warn().Str("slow", fmt.Sprintf(">= %v", l.slow))
	case l.level >= logger.Info:
		event = log.Ctx(ctx).Debug()
	default:
		return
	}

	sql, rows := fc()
	event.Str("sql", sql).
		Int64("rows", rows).
		Dur("elapsed", elapsed).
		Msg("gorm query")
}
