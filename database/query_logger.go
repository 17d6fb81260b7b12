package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mytheresa/go-inventory/pkg/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's messages and SQL traces to the application logger. Without
// query logging only failures and slow statements are reported.
type GormLogger struct {
	log           logger.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(log logger.Logger, queryLog bool, slowThreshold time.Duration) *GormLogger {
	level := gormlogger.Warn
	if queryLog {
		level = gormlogger.Info
	}
	return &GormLogger{log: log, level: level, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.log.Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		err := fmt.Errorf(msg, data...)
		l.log.Errorf(err, "gorm")
	}
}

// Trace implements the logger.Interface
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Errorf(err, "sql failed [%s, %d rows] %s", elapsed, rows, sql)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warnf("slow sql >= %s [%s, %d rows] %s", l.slowThreshold, elapsed, rows, sql)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.Debugf("sql [%s, %d rows] %s", elapsed, rows, sql)
	}
}
