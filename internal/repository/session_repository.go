package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

// セッション（カート等）の保持を約束。
// WithinSession の fn は同じセッションに対して直列に実行される。
type SessionRepository interface {
	// 無ければ作成してから fn を呼ぶ。
	WithinSession(ctx context.Context, sessionID string, fn func(s *model.Session) error) error
	Delete(ctx context.Context, sessionID string) error
	// idle 時間を超えたセッションを削除し、件数を返す。
	Sweep(ctx context.Context, now time.Time) (int, error)
}
