package log

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger é a fachada de log usada pelos serviços e handlers.
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
}

type contextKey string

const (
	CorrelationIDKey contextKey = "correlation_id"
	WorkspaceIDKey   contextKey = "workspace_id"
)

// Em desenvolvimento só estes campos chegam à saída.
var devFields = map[string]struct{}{
	string(CorrelationIDKey): {},
	string(WorkspaceIDKey):   {},
	"method":                 {},
	"path":                   {},
	"status_code":            {},
	"duration_ms":            {},
	"error":                  {},
	"day":                    {},
	"run_id":                 {},
}

type logger struct {
	*logrus.Entry
}

// L é a instância global
var L Logger = &logger{Entry: logrus.NewEntry(logrus.StandardLogger())}

// IsDevelopment retorna verdadeiro se estamos em ambiente de desenvolvimento
func IsDevelopment() bool {
	switch os.Getenv("APP_ENV") {
	case "", "development", "dev":
		return true
	}
	return false
}

// Configure aplica o nível de log configurado, caindo para info quando inválido.
func Configure(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
	return parsed
}

// SetupTestLogger configura um logger simplificado para testes
func SetupTestLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{PadLevelText: true})
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetReportCaller(false)

	L = &logger{Entry: logrus.NewEntry(logrus.StandardLogger())}
}

func keep(key string) bool {
	if !IsDevelopment() {
		return true
	}
	if _, ok := devFields[key]; ok {
		return true
	}
	return strings.HasPrefix(key, "user_")
}

func (l *logger) WithField(key string, value interface{}) Logger {
	if !keep(key) {
		return l
	}
	return &logger{Entry: l.Entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	kept := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if keep(k) {
			kept[k] = v
		}
	}
	if len(kept) == 0 {
		return l
	}
	return &logger{Entry: l.Entry.WithFields(kept)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{Entry: l.Entry.WithError(err)}
}

// WithContext anexa o ID de correlação e o workspace guardados no contexto.
func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	fields := Fields{}
	if id := GetCorrelationID(ctx); id != "" {
		fields[string(CorrelationIDKey)] = id
	}
	if id := GetWorkspaceID(ctx); id != "" {
		fields[string(WorkspaceIDKey)] = id
	}
	return l.WithFields(fields)
}

// WithCorrelationID adiciona um ID de correlação ao contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.NewString()
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

func GetCorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(CorrelationIDKey).(string)
	return id
}

// WithWorkspaceID associa o workspace da requisição ao contexto
func WithWorkspaceID(ctx context.Context, workspaceID string) context.Context {
	return context.WithValue(ctx, WorkspaceIDKey, workspaceID)
}

func GetWorkspaceID(ctx context.Context) string {
	id, _ := ctx.Value(WorkspaceIDKey).(string)
	return id
}

// ForContext cria um logger com o ID de correlação e o workspace do contexto
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}
