package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"kunstcollectie/internal/core/events"
	"kunstcollectie/internal/core/storage"
	"kunstcollectie/internal/domain"
)

// missing 收集为空的必填字段（wire 名）
type missing []string

func (m *missing) str(name, v string) {
	if strings.TrimSpace(v) == "" {
		*m = append(*m, name)
	}
}

func (m *missing) id(name string, v uint) {
	if v == 0 {
		*m = append(*m, name)
	}
}

func (m missing) err() error {
	if len(m) == 0 {
		return nil
	}
	return domain.Invalid("missing required fields", m...)
}

func nonNegative(name string, v *float64) error {
	if v != nil && *v < 0 {
		return domain.Invalid("must not be negative", name)
	}
	return nil
}

// notify 事件发布失败只记日志
func notify(ctx context.Context, p events.Publisher, log *zap.Logger, key string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(context.WithoutCancel(ctx), key, payload); err != nil {
		log.Warn("event publish failed", zap.String("key", key), zap.Error(err))
	}
}

// removeFiles DB 已提交后的文件清理；失败只记日志
func removeFiles(store *storage.Store, log *zap.Logger, paths ...string) {
	for _, p := range paths {
		if err := store.Remove(p); err != nil {
			log.Warn("file cleanup failed", zap.String("path", p), zap.Error(err))
		}
	}
}
