package logger

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/candidate-matcher/internal/utils"
)

const (
	// FieldSubmission is the structured log field key for the submission id.
	FieldSubmission = "submission_id"
	// FieldQueryLength is the structured log field key for the job description length in characters.
	FieldQueryLength = "query_length"
	// FieldQueryPreview is the structured log field key for the shortened job description.
	FieldQueryPreview = "query_preview"

	queryPreviewLength = 80
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SubmissionFields describes one submission: its id, the job description
// length and a one-line preview of it.
func SubmissionFields(id, query string) []zap.Field {
	fields := StringFields(
		StringField{Key: FieldSubmission, Value: id},
		StringField{Key: FieldQueryPreview, Value: utils.Preview(query, queryPreviewLength)},
	)
	return append(fields, zap.Int(FieldQueryLength, utf8.RuneCountInString(query)))
}

// WithSubmission attaches the submission fields to the provided logger.
func WithSubmission(logger *zap.Logger, id, query string) *zap.Logger {
	return WithFields(logger, SubmissionFields(id, query)...)
}
