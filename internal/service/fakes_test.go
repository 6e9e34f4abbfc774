package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
)

// In-memory repository fakes. Lookups return copies so callers mutating the
// result (sanitization) cannot corrupt the stored record.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.Usuario
	roles  map[string]*domain.RolUsuario
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[int64]*domain.Usuario),
		roles: make(map[string]*domain.RolUsuario),
	}
}

func (f *fakeUserRepo) addRole(id int64, nombre string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[nombre] = &domain.RolUsuario{ID: id, Nombre: nombre}
}

func copyUser(u *domain.Usuario) *domain.Usuario {
	c := *u
	if u.Usuario != nil {
		v := *u.Usuario
		c.Usuario = &v
	}
	if u.PasswordHash != nil {
		v := *u.PasswordHash
		c.PasswordHash = &v
	}
	if u.RolNombre != nil {
		v := *u.RolNombre
		c.RolNombre = &v
	}
	if u.RolID != nil {
		v := *u.RolID
		c.RolID = &v
	}
	if u.Telefono != nil {
		v := *u.Telefono
		c.Telefono = &v
	}
	return &c
}

func (f *fakeUserRepo) Create(ctx context.Context, usuario *domain.Usuario) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	usuario.ID = f.nextID
	usuario.CreatedAt = time.Now()
	f.users[usuario.ID] = copyUser(usuario)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := copyUser(u)
	c.PasswordHash = nil
	return c, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			c := copyUser(u)
			c.PasswordHash = nil
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByHandleWithPassword(ctx context.Context, handle string) (*domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Usuario != nil && *u.Usuario == handle {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByHandleOrEmail(ctx context.Context, handle, email string) (*domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if (u.Usuario != nil && *u.Usuario == handle) || u.Email == email {
			c := copyUser(u)
			c.PasswordHash = nil
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*domain.Usuario, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyUser(f.users[id]))
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, usuario *domain.Usuario) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[usuario.ID]
	if !ok {
		return repository.ErrNotFound
	}
	c := copyUser(usuario)
	c.PasswordHash = stored.PasswordHash
	f.users[usuario.ID] = c
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = &passwordHash
	return nil
}

func (f *fakeUserRepo) GetRolByNombre(ctx context.Context, nombre string) (*domain.RolUsuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rol, ok := f.roles[nombre]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *rol
	return &c, nil
}

func (f *fakeUserRepo) GetRolByID(ctx context.Context, id int64) (*domain.RolUsuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rol := range f.roles {
		if rol.ID == id {
			c := *rol
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*domain.RefreshSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int64]*domain.RefreshSession)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *domain.RefreshSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	session.ID = f.nextID
	session.CreatedAt = time.Now()
	c := *session
	f.sessions[session.ID] = &c
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id int64) (*domain.RefreshSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (f *fakeSessionRepo) RevokeIfActive(ctx context.Context, id int64, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.RevokedAt != nil {
		return false, nil
	}
	s.RevokedAt = &at
	return true, nil
}

func (f *fakeSessionRepo) RevokeAllForUser(ctx context.Context, usuarioID int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.UsuarioID == usuarioID && s.RevokedAt == nil {
			t := at
			s.RevokedAt = &t
		}
	}
	return nil
}

func (f *fakeSessionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

func (f *fakeSessionRepo) setLastUsed(id int64, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id].LastUsedAt = at
}

func (f *fakeSessionRepo) setExpires(id int64, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id].ExpiresAt = at
}

func (f *fakeSessionRepo) isRevoked(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	return ok && s.RevokedAt != nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	nextID int64
	tokens map[int64]*domain.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[int64]*domain.PasswordResetToken)}
}

func (f *fakeResetRepo) InvalidateAndCreate(ctx context.Context, token *domain.PasswordResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, t := range f.tokens {
		if t.UsuarioID == token.UsuarioID && t.UsedAt == nil && t.ExpiresAt.After(now) {
			at := now
			t.UsedAt = &at
		}
	}
	f.nextID++
	token.ID = f.nextID
	token.CreatedAt = now
	c := *token
	f.tokens[token.ID] = &c
	return nil
}

func (f *fakeResetRepo) GetNewestOutstanding(ctx context.Context, usuarioID int64, now time.Time) (*domain.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var newest *domain.PasswordResetToken
	for _, t := range f.tokens {
		if t.UsuarioID != usuarioID || t.UsedAt != nil || !t.ExpiresAt.After(now) {
			continue
		}
		if newest == nil || t.CreatedAt.After(newest.CreatedAt) || (t.CreatedAt.Equal(newest.CreatedAt) && t.ID > newest.ID) {
			newest = t
		}
	}
	if newest == nil {
		return nil, repository.ErrNotFound
	}
	c := *newest
	return &c, nil
}

func (f *fakeResetRepo) MarkUsed(ctx context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[id]
	if !ok || t.UsedAt != nil {
		return repository.ErrNotFound
	}
	t.UsedAt = &at
	return nil
}

func (f *fakeResetRepo) outstanding(usuarioID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	n := 0
	for _, t := range f.tokens {
		if t.UsuarioID == usuarioID && t.UsedAt == nil && t.ExpiresAt.After(now) {
			n++
		}
	}
	return n
}

type fakeNotifier struct {
	mu    sync.Mutex
	fail  bool
	sent  []string
	codes []string
}

func (f *fakeNotifier) SendPasswordResetCode(ctx context.Context, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, to)
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeNotifier) lastCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.codes) == 0 {
		return ""
	}
	return f.codes[len(f.codes)-1]
}

func (f *fakeNotifier) deliveries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
