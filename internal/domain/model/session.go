package model

import "time"

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
)

// 次の画面表示で一度だけ出す通知
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Session はブラウザ1つ分の状態（カート・注文確認・通知）。
type Session struct {
	ID        string
	Cart      Cart
	Checkout  Checkout
	Notices   []Notice
	CreatedAt time.Time
	LastSeen  time.Time
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		LastSeen:  now,
	}
}

func (s *Session) Notify(n Notice) {
	if n.Message == "" {
		return
	}
	s.Notices = append(s.Notices, n)
}

func (s *Session) TakeNotices() []Notice {
	out := s.Notices
	s.Notices = nil
	return out
}

// Reset はページ再読み込みの代わりにセッションを初期状態へ戻す。
func (s *Session) Reset() {
	s.Cart.Clear()
	s.Checkout = Checkout{State: CheckoutIdle}
	s.Notices = nil
}
