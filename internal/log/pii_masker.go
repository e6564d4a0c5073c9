package log

import (
	"context"
	"log/slog"
	"regexp"
)

// PIIMaskerHandler - обертка для slog.Handler, которая маскирует e-mail и телефоны в логах.
// Адресная книга экспорта содержит и то и другое.
type PIIMaskerHandler struct {
	handler slog.Handler
}

// NewPIIMaskerHandler создает новый обработчик с маскировкой персональных данных
func NewPIIMaskerHandler(handler slog.Handler) *PIIMaskerHandler {
	return &PIIMaskerHandler{
		handler: handler,
	}
}

var (
	emailRegex = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// телефоны в международном формате: +48 600 100 200, +7 (999) 123-45-67
	phoneRegex = regexp.MustCompile(`\+\d[\d\s()-]{6,}\d`)
)

const (
	maskedEmail = "***@***"
	maskedPhone = "+***"
)

// maskPII заменяет найденные e-mail и телефоны на маску
func maskPII(text string) string {
	text = emailRegex.ReplaceAllString(text, maskedEmail)
	return phoneRegex.ReplaceAllString(text, maskedPhone)
}

// Enabled реализует интерфейс slog.Handler
func (h *PIIMaskerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle реализует интерфейс slog.Handler
func (h *PIIMaskerHandler) Handle(ctx context.Context, record slog.Record) error {
	// Новая запись без атрибутов: slog может переиспользовать исходную.
	r := slog.NewRecord(record.Time, record.Level, maskPII(record.Message), record.PC)

	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(slog.Attr{
			Key:   a.Key,
			Value: maskAttributeValue(a.Value),
		})
		return true
	})

	return h.handler.Handle(ctx, r)
}

// WithAttrs реализует интерфейс slog.Handler
func (h *PIIMaskerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		maskedAttrs[i] = slog.Attr{
			Key:   attr.Key,
			Value: maskAttributeValue(attr.Value),
		}
	}
	return &PIIMaskerHandler{
		handler: h.handler.WithAttrs(maskedAttrs),
	}
}

// WithGroup реализует интерфейс slog.Handler
func (h *PIIMaskerHandler) WithGroup(name string) slog.Handler {
	return &PIIMaskerHandler{
		handler: h.handler.WithGroup(name),
	}
}

// maskAttributeValue рекурсивно маскирует значения атрибутов
func maskAttributeValue(value slog.Value) slog.Value {
	value = value.Resolve()
	switch value.Kind() {
	case slog.KindString:
		return slog.StringValue(maskPII(value.String()))
	case slog.KindAny:
		// Ошибки часто содержат путь или фрагмент данных.
		if err, ok := value.Any().(error); ok {
			return slog.StringValue(maskPII(err.Error()))
		}
		return value
	case slog.KindGroup:
		group := value.Group()
		maskedGroup := make([]slog.Attr, len(group))
		for i, attr := range group {
			maskedGroup[i] = slog.Attr{
				Key:   attr.Key,
				Value: maskAttributeValue(attr.Value),
			}
		}
		return slog.GroupValue(maskedGroup...)
	default:
		return value
	}
}
