package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"user-accounts-api/internal/application/ports"
	domain "user-accounts-api/internal/domain/user"
	userDB "user-accounts-api/internal/infrastructure/db/postgres/user"
	"user-accounts-api/internal/infrastructure/mq"
	"user-accounts-api/internal/interface/api/rest/dto/user"
)

type UserService struct {
	userRepository domain.Repository
	events         ports.EventPublisher
	mCounter       *prometheus.CounterVec
	bcryptCost     int
}

func NewUserService(
	userRepository domain.Repository,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	bcryptCost int,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		events:         events,
		mCounter:       mCounter,
		bcryptCost:     bcryptCost,
	}
}

func (us *UserService) RegisterUser(ctx context.Context, r domain.Registration) (*domain.User, error) {
	u, err := us.register(ctx, r)
	if err != nil {
		return nil, err
	}

	us.mCounter.WithLabelValues("user_created_total").Inc()

	return u, nil
}

// BulkRegisterUsers registers entries one after another so that each email
// check sees the rows inserted by the entries before it. Failures are
// counted, never returned.
func (us *UserService) BulkRegisterUsers(ctx context.Context, rs []domain.Registration) domain.BulkResult {
	var res domain.BulkResult
	for _, r := range rs {
		if _, err := us.register(ctx, r); err != nil {
			res.Failed++
			continue
		}
		res.Created++
	}

	us.mCounter.WithLabelValues("user_bulk_created_total").Add(float64(res.Created))
	us.mCounter.WithLabelValues("user_bulk_failed_total").Add(float64(res.Failed))

	return res
}

func (us *UserService) register(ctx context.Context, r domain.Registration) (*domain.User, error) {
	if r.Password != r.PasswordConfirmation {
		return nil, ErrPasswordsMismatch
	}

	name := normalizeName(r.Name)
	email := normalizeEmail(r.Email)
	if name == "" || email == "" || r.Password == "" || len(r.Password) > maxPasswordBytes {
		return nil, ErrInvalidRegistration
	}

	existing, err := us.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), us.bcryptCost)
	if err != nil {
		return nil, err
	}

	u, err := us.userRepository.CreateUser(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Cellphone:    r.Cellphone,
	})
	if err != nil {
		if errors.Is(err, userDB.ErrEmailAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	us.publish(ctx, http.MethodPost, u)

	return u, nil
}

// FindUserByID returns nil when there is no active user with the id.
func (us *UserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return us.userRepository.FetchUserByID(ctx, id)
}

func (us *UserService) FindActiveUsers(ctx context.Context) (domain.Users, error) {
	return us.userRepository.FetchActiveUsers(ctx)
}

func (us *UserService) FilterUsers(ctx context.Context, p domain.FilterParams) (domain.Users, error) {
	f, err := parseFilter(p)
	if err != nil {
		return nil, err
	}

	return us.userRepository.FetchFilteredUsers(ctx, f)
}

func parseFilter(p domain.FilterParams) (domain.Filter, error) {
	var f domain.Filter

	switch p.Status {
	case "":
	case "true", "false":
		status := p.Status == "true"
		f.Status = &status
	default:
		return f, ErrInvalidStatus
	}

	f.Name = normalizeName(p.Name)

	if p.LoggedInBefore != "" {
		t, ok := parseDate(p.LoggedInBefore)
		if !ok {
			return f, ErrInvalidLoggedInBefore
		}
		f.LoggedInBefore = &t
	}
	if p.LoggedInAfter != "" {
		t, ok := parseDate(p.LoggedInAfter)
		if !ok {
			return f, ErrInvalidLoggedInAfter
		}
		f.LoggedInAfter = &t
	}

	return f, nil
}

// UpdateUser applies ch in one conditional statement, so a user soft-deleted
// concurrently is reported as not found instead of being rewritten.
func (us *UserService) UpdateUser(ctx context.Context, id domain.ID, ch domain.Changes) error {
	upd := domain.Update{Cellphone: ch.Cellphone}
	if ch.Name != nil {
		name := normalizeName(*ch.Name)
		upd.Name = &name
	}
	if ch.Password != nil && *ch.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*ch.Password), us.bcryptCost)
		if err != nil {
			return err
		}
		h := string(hash)
		upd.PasswordHash = &h
	}

	u, err := us.userRepository.UpdateUser(ctx, id, upd)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	us.publish(ctx, http.MethodPut, u)
	us.mCounter.WithLabelValues("user_updated_total").Inc()

	return nil
}

func (us *UserService) DeleteUser(ctx context.Context, id domain.ID) error {
	u, err := us.userRepository.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	us.publish(ctx, http.MethodDelete, u)
	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return nil
}

func (us *UserService) publish(ctx context.Context, method string, u *domain.User) {
	select {
	case us.events.GetInputChan() <- mq.NewEvent(method, user.ToResponseUser(*u)):
	case <-ctx.Done():
	}
}
