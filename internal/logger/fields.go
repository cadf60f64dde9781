package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured log field keys shared across packages.
const (
	FieldBackend       = "backend"
	FieldModel         = "ai_model"
	FieldApplicationID = "application_id"
	FieldArtifact      = "artifact"
)

// Strings turns key/value pairs into zap string fields. Keys and values are trimmed;
// pairs with an empty side and a trailing unpaired key are dropped.
func Strings(pairs ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key := strings.TrimSpace(pairs[i])
		value := strings.TrimSpace(pairs[i+1])
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, zap.String(key, value))
	}
	return fields
}

// With attaches fields to logger. A nil logger becomes a no-op logger.
func With(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// ForBackend scopes logger to a writer backend and its model. Blank values are omitted.
func ForBackend(logger *zap.Logger, backend, model string) *zap.Logger {
	return With(logger, Strings(FieldBackend, backend, FieldModel, model)...)
}

// ForApplication scopes logger to one processed application.
func ForApplication(logger *zap.Logger, id string) *zap.Logger {
	return With(logger, Strings(FieldApplicationID, id)...)
}

// Artifact names the rendered artifact (suggestions or cover_letter).
func Artifact(name string) zap.Field {
	return zap.String(FieldArtifact, name)
}
