package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// SessionUsecase は画面の通知（flash）と期限切れセッションの掃除。
type SessionUsecase struct {
	sessions repo.SessionRepository
	log      *slog.Logger
	now      func() time.Time
}

func NewSessionUsecase(sessions repo.SessionRepository, log *slog.Logger, now func() time.Time) *SessionUsecase {
	if log == nil {
		log = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &SessionUsecase{sessions: sessions, log: log, now: now}
}

func (u *SessionUsecase) PushNotice(ctx context.Context, sessionID string, n *model.Notice) error {
	if n == nil || sessionID == "" {
		return nil
	}
	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		s.Notify(*n)
		return nil
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return nil
}

func (u *SessionUsecase) TakeNotices(ctx context.Context, sessionID string) ([]model.Notice, error) {
	if sessionID == "" {
		return nil, nil
	}
	var out []model.Notice
	err := u.sessions.WithinSession(ctx, sessionID, func(s *model.Session) error {
		out = s.TakeNotices()
		return nil
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return out, nil
}

// End はセッションの状態を捨てる。同じIDで来たら空から作り直す。
func (u *SessionUsecase) End(ctx context.Context, sessionID string) error {
	if err := validSession(sessionID); err != nil {
		return err
	}
	if err := u.sessions.Delete(ctx, sessionID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "session error")
	}
	return nil
}

// RunSweeper は ctx が終わるまで interval ごとに期限切れセッションを消す。
func (u *SessionUsecase) RunSweeper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := u.sessions.Sweep(ctx, u.now())
			if err != nil {
				u.log.WarnContext(ctx, "session sweep failed", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				u.log.DebugContext(ctx, "sessions swept", slog.Int("count", n))
			}
		}
	}
}
