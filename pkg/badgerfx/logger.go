package badgerfx

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// zapLogger adapts zap to badger.Logger. Badger's printf-style messages end
// with a newline; strip it so zap lines stay clean.
type zapLogger struct {
	logger *zap.Logger
}

func newLogger(l *zap.Logger) *zapLogger {
	return &zapLogger{logger: l}
}

func (l *zapLogger) Errorf(format string, a ...any) {
	l.logger.Error(format1(format, a...))
}

func (l *zapLogger) Warningf(format string, a ...any) {
	l.logger.Warn(format1(format, a...))
}

func (l *zapLogger) Infof(format string, a ...any) {
	l.logger.Info(format1(format, a...))
}

func (l *zapLogger) Debugf(format string, a ...any) {
	l.logger.Debug(format1(format, a...))
}

func format1(format string, a ...any) string {
	return strings.TrimSuffix(fmt.Sprintf(format, a...), "\n")
}

var _ badger.Logger = (*zapLogger)(nil)
