// Package identity authenticates organizers by email and secret and issues
// signed session tokens for the admin endpoints.
package identity

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"chilume_backend/internals/docstore"
	adminModel "chilume_backend/internals/features/users/admins/model"
)

type Session struct {
	Token     string    `json:"access_token"`
	TokenID   string    `json:"-"`
	AdminID   string    `json:"admin_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionEventKind string

const (
	SessionSignedIn  SessionEventKind = "signed_in"
	SessionSignedOut SessionEventKind = "signed_out"
)

type SessionEvent struct {
	Kind    SessionEventKind
	Session Session
}

type Provider interface {
	SignIn(ctx context.Context, email, secret string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*Session, error)
	// OnSessionChange registers fn and returns a func that removes it.
	OnSessionChange(fn func(SessionEvent)) (unsubscribe func())
}

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const issuer = "chilume"

// LocalProvider checks bcrypt hashes stored on admin records and signs
// HS256 tokens. Signed-out token ids are kept until their expiry.
type LocalProvider struct {
	admins docstore.AdminStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	revoked *gocache.Cache

	mu     sync.RWMutex
	subs   map[int]func(SessionEvent)
	nextID int
}

var _ Provider = (*LocalProvider)(nil)

type Option func(*LocalProvider)

func WithClock(now func() time.Time) Option {
	return func(p *LocalProvider) { p.now = now }
}

func NewLocalProvider(admins docstore.AdminStore, secret string, ttl time.Duration, opts ...Option) *LocalProvider {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	p := &LocalProvider{
		admins:  admins,
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: gocache.New(ttl, 10*time.Minute),
		subs:    make(map[int]func(SessionEvent)),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// HashSecret is used by the seeder to provision admin credentials.
func HashSecret(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(b), err
}

func (p *LocalProvider) SignIn(ctx context.Context, email, secret string) (*Session, error) {
	if len(p.secret) == 0 {
		return nil, newAuthError(CodeNotConfigured, errors.New("signing secret is empty"))
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, newAuthError(CodeInvalidEmail, nil)
	}

	admin, err := p.admins.FindAdminByEmail(ctx, email)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, newAuthError(CodeUserNotFound, nil)
	}
	if err != nil {
		return nil, newAuthError(CodeUnknown, err)
	}
	if !admin.AdminIsActive {
		return nil, newAuthError(CodeUserDisabled, nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.AdminPasswordHash), []byte(secret)); err != nil {
		return nil, newAuthError(CodeIncorrectPassword, nil)
	}

	s, err := p.issue(admin)
	if err != nil {
		return nil, newAuthError(CodeUnknown, err)
	}
	p.publish(SessionEvent{Kind: SessionSignedIn, Session: *s})
	return s, nil
}

func (p *LocalProvider) issue(admin *adminModel.AdminModel) (*Session, error) {
	now := p.now().UTC()
	exp := now.Add(p.ttl)
	jti := uuid.NewString()

	claims := sessionClaims{
		Email: strings.ToLower(admin.AdminEmail),
		Role:  admin.AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    issuer,
			Subject:   admin.AdminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     signed,
		TokenID:   jti,
		AdminID:   admin.AdminID,
		Email:     claims.Email,
		Role:      admin.AdminRole,
		IssuedAt:  now,
		ExpiresAt: exp,
	}, nil
}

func (p *LocalProvider) parse(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// expiry is checked against p.now below so tests can move the clock
	parser.SkipClaimsValidation = true
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (p *LocalProvider) Verify(ctx context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, newAuthError(CodeMissingToken, nil)
	}
	if len(p.secret) == 0 {
		return nil, newAuthError(CodeNotConfigured, errors.New("signing secret is empty"))
	}

	claims, err := p.parse(token)
	if err != nil {
		return nil, newAuthError(CodeTokenInvalid, err)
	}
	if claims.ExpiresAt == nil || !p.now().Before(claims.ExpiresAt.Time) {
		return nil, newAuthError(CodeTokenExpired, nil)
	}
	if _, revoked := p.revoked.Get(claims.ID); revoked {
		return nil, newAuthError(CodeTokenRevoked, nil)
	}

	s := &Session{
		Token:     token,
		TokenID:   claims.ID,
		AdminID:   claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	return s, nil
}

// SignOut revokes token. Unknown or already revoked tokens are accepted.
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	claims, err := p.parse(strings.TrimSpace(token))
	if err != nil {
		return nil
	}
	if _, already := p.revoked.Get(claims.ID); already {
		return nil
	}

	ttl := gocache.DefaultExpiration
	if claims.ExpiresAt != nil {
		remaining := claims.ExpiresAt.Time.Sub(p.now())
		if remaining <= 0 {
			return nil
		}
		ttl = remaining
	}
	p.revoked.Set(claims.ID, struct{}{}, ttl)

	p.publish(SessionEvent{Kind: SessionSignedOut, Session: Session{
		TokenID: claims.ID,
		AdminID: claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
	}})
	return nil
}

func (p *LocalProvider) OnSessionChange(fn func(SessionEvent)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

func (p *LocalProvider) publish(ev SessionEvent) {
	p.mu.RLock()
	fns := make([]func(SessionEvent), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
