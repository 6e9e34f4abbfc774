package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	repo.addRole(1, domain.RoleAdmin)
	repo.addRole(2, domain.RoleAnalystBalance)
	repo.addRole(3, domain.RoleUser)
	return NewUserService(repo), repo
}

func addUserWithRole(t *testing.T, repo *fakeUserRepo, handle, email, rol string, activo bool) *domain.Usuario {
	t.Helper()
	user := &domain.Usuario{
		NombreApellido: "Test",
		Usuario:        &handle,
		Email:          email,
		Activo:         activo,
	}
	if rol != "" {
		r, err := repo.GetRolByNombre(context.Background(), rol)
		if err != nil {
			t.Fatalf("role %s missing: %v", rol, err)
		}
		user.RolID = &r.ID
		user.RolNombre = &r.Nombre
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestApproveAnalyst(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()

	analyst := addUserWithRole(t, repo, "carla", "carla@x.com", domain.RoleAnalystBalance, false)

	approved, err := svc.ApproveAnalyst(ctx, analyst.ID)
	if err != nil {
		t.Fatalf("ApproveAnalyst: %v", err)
	}
	if !approved.Activo {
		t.Error("analyst not activated")
	}
}

func TestApproveAnalystRejectsOtherRoles(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()

	plain := addUserWithRole(t, repo, "juan", "juan@x.com", domain.RoleUser, false)
	if _, err := svc.ApproveAnalyst(ctx, plain.ID); !errors.Is(err, ErrNotAnalyst) {
		t.Errorf("ApproveAnalyst(USER) = %v, want ErrNotAnalyst", err)
	}

	if _, err := svc.ApproveAnalyst(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("ApproveAnalyst(unknown) = %v, want ErrNotFound", err)
	}
}

func TestUpdateBasicAuthorization(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()

	target := addUserWithRole(t, repo, "juan", "juan@x.com", domain.RoleUser, true)
	name := "Juan Nuevo"

	// A different non-admin user may not touch the profile.
	stranger := Actor{ID: target.ID + 100, Rol: domain.RoleUser}
	if _, err := svc.UpdateBasic(ctx, stranger, target.ID, UpdateUserRequest{NombreApellido: &name}); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger update = %v, want ErrForbidden", err)
	}

	// Self-service works.
	self := Actor{ID: target.ID, Rol: domain.RoleUser}
	updated, err := svc.UpdateBasic(ctx, self, target.ID, UpdateUserRequest{NombreApellido: &name})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if updated.NombreApellido != name {
		t.Errorf("nombre = %q, want %q", updated.NombreApellido, name)
	}

	// Role changes are admin-only even on your own profile.
	if _, err := svc.UpdateBasic(ctx, self, target.ID, UpdateUserRequest{Rol: domain.OptionalID{Present: true, Valid: true, ID: 1}}); !errors.Is(err, ErrForbidden) {
		t.Errorf("self role change = %v, want ErrForbidden", err)
	}

	admin := Actor{ID: 1, Rol: domain.RoleAdmin}
	updated, err = svc.UpdateBasic(ctx, admin, target.ID, UpdateUserRequest{Rol: domain.OptionalID{Present: true, Valid: true, ID: 2}})
	if err != nil {
		t.Fatalf("admin role change: %v", err)
	}
	if updated.RolNombre == nil || *updated.RolNombre != domain.RoleAnalystBalance {
		t.Errorf("rol = %v, want ANALYST_BALANCE", updated.RolNombre)
	}
}

func TestUpdateBasicEmailConflict(t *testing.T) {
	svc, repo := newUserFixture(t)
	ctx := context.Background()

	addUserWithRole(t, repo, "ana", "ana@x.com", domain.RoleUser, true)
	target := addUserWithRole(t, repo, "juan", "juan@x.com", domain.RoleUser, true)

	taken := "ana@x.com"
	self := Actor{ID: target.ID, Rol: domain.RoleUser}
	if _, err := svc.UpdateBasic(ctx, self, target.ID, UpdateUserRequest{Email: &taken}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("update to taken email = %v, want ErrEmailTaken", err)
	}

	// Re-submitting your own email is not a conflict.
	same := "juan@x.com"
	if _, err := svc.UpdateBasic(ctx, self, target.ID, UpdateUserRequest{Email: &same}); err != nil {
		t.Errorf("re-submitting own email: %v", err)
	}
}

func TestListSanitizesUsers(t *testing.T) {
	svc, repo := newUserFixture(t)
	digest := "$2a$10$fakefakefakefakefakefake"
	handle := "ana"
	user := &domain.Usuario{NombreApellido: "Ana", Usuario: &handle, Email: "ana@x.com", PasswordHash: &digest}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create: %v", err)
	}

	usuarios, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, u := range usuarios {
		if u.PasswordHash != nil {
			t.Error("password hash present in listing")
		}
	}
}
