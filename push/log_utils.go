package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"reflect"

	"github.com/RodCaba/fp-orchestrator/internal/log"
	"github.com/RodCaba/fp-orchestrator/wire"
	"github.com/iancoleman/strcase"
)

type logger struct{ log.Logger }

func (l logger) connected(ctx context.Context, attempt uint64) {
	l.Log(ctx, slog.LevelInfo, "push channel connected",
		slog.Uint64("attempt", attempt),
	)
}

func (l logger) disconnected(ctx context.Context, err error) {
	if err != nil {
		l.Log(ctx, slog.LevelWarn, "push channel disconnected",
			slog.String("error", err.Error()),
		)
	} else {
		l.Log(ctx, slog.LevelWarn, "push channel disconnected")
	}
}

func (l logger) dropped(ctx context.Context, err error) {
	l.Log(ctx, slog.LevelWarn, "frame dropped",
		slog.String("error", err.Error()),
	)
}

// event logs a decoded push event with its payload fields as attributes.
func (l logger) event(ctx context.Context, event wire.Event) {
	// This is expensive; bail out if we don't need it.
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := append(
		[]slog.Attr{slog.String("type", string(event.EventType()))},
		reflectAttrs(realValue(reflect.ValueOf(event)))...,
	)
	l.Log(ctx, slog.LevelDebug, "event", attrs...)
}

func reflectAttrs(val reflect.Value) []slog.Attr {
	typ := val.Type()
	num := typ.NumField()

	var attrs []slog.Attr
	for i := range num {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		attrs = append(attrs, reflectAttr(
			strcase.ToSnake(field.Name),
			realValue(val.Field(i)),
		)...)
	}
	return attrs
}

func reflectAttr(name string, val reflect.Value) []slog.Attr {
	// Ignore empty values to keep the log clean.
	if val.Kind() == reflect.Invalid || val.IsZero() {
		return nil
	}

	switch v := val.Interface().(type) {
	case wire.Timestamp:
		return []slog.Attr{slog.Time(name, v.Time)}

	case json.RawMessage:
		return []slog.Attr{slog.String(name, string(v))}

	case map[string]any:
		group := make([]any, 0, len(v))
		for key, value := range v {
			group = append(group, slog.Any(key, value))
		}
		return []slog.Attr{slog.Group(name, group...)}
	}

	if val.Kind() == reflect.Struct {
		nested := reflectAttrs(val)
		if len(nested) == 0 {
			return nil
		}

		group := make([]any, len(nested))
		for i, attr := range nested {
			group[i] = attr
		}
		return []slog.Attr{slog.Group(name, group...)}
	}

	return []slog.Attr{slog.Any(name, val.Interface())}
}

func realValue(val reflect.Value) reflect.Value {
	for val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	return val
}
