package logincode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/alchemist-music/alchemist-api/pkg/metrics"
	"github.com/alchemist-music/alchemist-api/pkg/notification"
	"github.com/google/uuid"
)

// RequestCodeDetail is the confirmation returned for every code request.
const RequestCodeDetail = "Code sent"

// RequestCodeResult is returned by RequestCode.
type RequestCodeResult struct {
	Detail string
	// DebugCode is the plaintext code, set only when debug codes are enabled.
	DebugCode *string
}

// LoginCodeService issues and verifies one-time login codes
type LoginCodeService struct {
	repo                Repository
	notificationManager *notification.NotificationManager
	codeTTL             time.Duration
	debugCode           bool
	now                 func() time.Time
	generate            func() (string, error)
}

// LoginCodeServiceOption configures a LoginCodeService
type LoginCodeServiceOption func(*LoginCodeService)

// WithCodeTTL sets how long an issued code stays acceptable
func WithCodeTTL(ttl time.Duration) LoginCodeServiceOption {
	return func(s *LoginCodeService) {
		if ttl > 0 {
			s.codeTTL = ttl
		}
	}
}

// WithDebugCode echoes the plaintext code in RequestCode results
func WithDebugCode(enabled bool) LoginCodeServiceOption {
	return func(s *LoginCodeService) {
		s.debugCode = enabled
	}
}

// WithClock replaces the wall clock
func WithClock(now func() time.Time) LoginCodeServiceOption {
	return func(s *LoginCodeService) {
		s.now = now
	}
}

// WithCodeGenerator replaces the random code source
func WithCodeGenerator(generate func() (string, error)) LoginCodeServiceOption {
	return func(s *LoginCodeService) {
		s.generate = generate
	}
}

// WithNotificationManager sets the channel codes are delivered through
func WithNotificationManager(nm *notification.NotificationManager) LoginCodeServiceOption {
	return func(s *LoginCodeService) {
		s.notificationManager = nm
	}
}

// NewLoginCodeService creates a new login code service
func NewLoginCodeService(repo Repository, opts ...LoginCodeServiceOption) *LoginCodeService {
	service := &LoginCodeService{
		repo:     repo,
		codeTTL:  DefaultCodeTTL,
		now:      time.Now,
		generate: GenerateCode,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// RequestCode finds or creates the user for email, stores a fresh code and
// sends it. Earlier unused codes stay valid.
func (s *LoginCodeService) RequestCode(ctx context.Context, email string) (*RequestCodeResult, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	user, err := s.findOrCreateUser(ctx, email)
	if err != nil {
		return nil, err
	}

	code, err := s.generate()
	if err != nil {
		return nil, err
	}

	expiresAt := s.now().UTC().Add(s.codeTTL)
	if _, err := s.repo.CreateLoginCode(ctx, user.ID, email, HashCode(code), expiresAt); err != nil {
		slog.Error("Failed to store login code", "err", err)
		return nil, err
	}
	metrics.LoginCodesIssued.Inc()

	if err := s.dispatch(email, code); err != nil {
		metrics.LoginCodeDispatchFailures.Inc()
		slog.Error("Failed to send login code", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	result := &RequestCodeResult{Detail: RequestCodeDetail}
	if s.debugCode {
		result.DebugCode = &code
	}
	return result, nil
}

func (s *LoginCodeService) findOrCreateUser(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		slog.Error("Failed to look up user", "err", err)
		return nil, err
	}

	user, err = s.repo.CreateUser(ctx, uuid.New().String(), email)
	if errors.Is(err, ErrEmailTaken) {
		// lost the race to a concurrent request for the same email
		return s.repo.GetUserByEmail(ctx, email)
	}
	if err != nil {
		slog.Error("Failed to create user", "err", err)
		return nil, err
	}
	metrics.UsersCreated.Inc()
	slog.Info("Created user", "user_id", user.ID)
	return user, nil
}

func (s *LoginCodeService) dispatch(email, code string) error {
	if s.notificationManager == nil {
		slog.Warn("No notification manager configured, login code not delivered")
		return nil
	}
	return s.notificationManager.Send(notification.LoginCodeNotice, notification.NotificationData{
		To: email,
		Data: map[string]string{
			"Code":          code,
			"ExpiryMinutes": strconv.Itoa(expiryMinutes(s.codeTTL)),
			"BaseUrl":       s.notificationManager.BaseUrl(),
		},
	})
}

// expiryMinutes rounds ttl up so a code never claims less time than it has.
func expiryMinutes(ttl time.Duration) int {
	return int(math.Ceil(ttl.Minutes()))
}

// VerifyCode consumes the newest matching code and returns its owner.
// Every rejection is ErrInvalidCode.
func (s *LoginCodeService) VerifyCode(ctx context.Context, email, code string) (*User, error) {
	email = NormalizeEmail(email)

	lc, err := s.repo.ConsumeLoginCode(ctx, email, HashCode(code), s.now().UTC())
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			metrics.LoginCodeVerifications.WithLabelValues(metrics.ResultInvalid).Inc()
			return nil, ErrInvalidCode
		}
		metrics.LoginCodeVerifications.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("Failed to consume login code", "err", err)
		return nil, err
	}

	if lc.UserID == nil {
		metrics.LoginCodeVerifications.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("Login code has no owner", "code_id", lc.ID)
		return nil, ErrUserNotFound
	}

	user, err := s.repo.GetUserByID(ctx, *lc.UserID)
	if err != nil {
		metrics.LoginCodeVerifications.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("Failed to load user for login code", "code_id", lc.ID, "err", err)
		return nil, err
	}

	metrics.LoginCodeVerifications.WithLabelValues(metrics.ResultSuccess).Inc()
	return user, nil
}

// GetUser returns the user with the given id
func (s *LoginCodeService) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}
