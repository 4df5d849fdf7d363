package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"user-accounts-api/internal/domain/session"
	domain "user-accounts-api/internal/domain/user"
	userDB "user-accounts-api/internal/infrastructure/db/postgres/user"
	"user-accounts-api/internal/infrastructure/mq"
)

// memUserRepo mimics the postgres repository, including the unique email
// constraint and the session-bound filter.
type memUserRepo struct {
	mu       sync.Mutex
	nextID   domain.ID
	users    map[domain.ID]*domain.User
	sessions map[domain.ID][]time.Time

	// failCreateFor makes CreateUser fail for that email
	failCreateFor string
	err           error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:    map[domain.ID]*domain.User{},
		sessions: map[domain.ID][]time.Time{},
	}
}

func (m *memUserRepo) clone(u *domain.User) *domain.User {
	c := *u
	c.Roles = slices.Clone(u.Roles)
	return &c
}

func (m *memUserRepo) FetchUserByID(_ context.Context, id domain.ID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok || !u.Status {
		return nil, nil
	}
	return m.clone(u), nil
}

func (m *memUserRepo) FetchUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.sorted() {
		if u.Email == email {
			return m.clone(u), nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FetchActiveUsers(_ context.Context) (domain.Users, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	us := domain.Users{}
	for _, u := range m.sorted() {
		if u.Status {
			us = append(us, m.clone(u))
		}
	}
	return us, nil
}

func (m *memUserRepo) FetchFilteredUsers(_ context.Context, f domain.Filter) (domain.Users, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	us := domain.Users{}
	for _, u := range m.sorted() {
		if f.Status != nil && u.Status != *f.Status {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.HasLoginBounds() && !slices.ContainsFunc(m.sessions[u.ID], func(ts time.Time) bool {
			return (f.LoggedInBefore == nil || !ts.After(*f.LoggedInBefore)) &&
				(f.LoggedInAfter == nil || !ts.Before(*f.LoggedInAfter))
		}) {
			continue
		}
		us = append(us, m.clone(u))
	}
	return us, nil
}

func (m *memUserRepo) CreateUser(_ context.Context, req domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if req.Email == m.failCreateFor {
		return nil, context.DeadlineExceeded
	}
	for _, u := range m.users {
		if u.Email == req.Email {
			return nil, userDB.ErrEmailAlreadyExists
		}
	}
	m.nextID++
	req.ID = m.nextID
	req.Status = true
	req.Roles = []string{domain.RoleUser}
	m.users[req.ID] = &req
	return m.clone(&req), nil
}

func (m *memUserRepo) UpdateUser(_ context.Context, id domain.ID, upd domain.Update) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok || !u.Status {
		return nil, nil
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Cellphone != nil {
		u.Cellphone = *upd.Cellphone
	}
	return m.clone(u), nil
}

func (m *memUserRepo) DeleteUser(_ context.Context, id domain.ID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok || !u.Status {
		return nil, nil
	}
	u.Status = false
	return m.clone(u), nil
}

func (m *memUserRepo) sorted() domain.Users {
	us := make(domain.Users, 0, len(m.users))
	for _, u := range m.users {
		us = append(us, u)
	}
	slices.SortFunc(us, func(a, b *domain.User) int { return int(a.ID) - int(b.ID) })
	return us
}

func (m *memUserRepo) addSession(id domain.ID, ts time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = append(m.sessions[id], ts)
}

func (m *memUserRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type fakeSessionRepo struct {
	created []domain.ID
	err     error
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, userID domain.ID) (*session.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, userID)
	return &session.Session{ID: session.ID(len(f.created)), UserID: userID, CreatedAt: time.Now()}, nil
}

type fakeEvents struct {
	ch chan mq.Event
}

func newFakeEvents() *fakeEvents { return &fakeEvents{ch: make(chan mq.Event, 64)} }

func (f *fakeEvents) GetInputChan() chan mq.Event { return f.ch }

func (f *fakeEvents) drain() []mq.Event {
	var out []mq.Event
	for {
		select {
		case e := <-f.ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}
