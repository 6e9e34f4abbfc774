package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ariasbenraq/gastometro-backend/internal/domain"
	"github.com/ariasbenraq/gastometro-backend/internal/repository"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("operation not allowed")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInvalidPeriod    = errors.New("invalid period filter")
)

// Actor is the authenticated caller as seen by the services, extracted from
// the access-token claims by the auth middleware.
type Actor struct {
	ID  int64
	Rol string
}

// CanSeeOthers reports whether the actor may read entries beyond their own.
func (a Actor) CanSeeOthers() bool {
	return a.Rol == domain.RoleAdmin || a.Rol == domain.RoleAnalystBalance
}

// ListRequest carries the shared ledger filters. From/To win over Month/Year;
// Month requires Year; a bare Year covers the whole year.
type ListRequest struct {
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Month     int    `query:"month" validate:"omitempty,gte=1,lte=12"`
	Year      int    `query:"year" validate:"omitempty,gte=1"`
	Keyword   string `query:"q"`
	UsuarioID *int64 `query:"userId"`
	Page      int    `query:"page" validate:"omitempty,gte=1"`
	Limit     int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
}

// PageMeta describes a paginated result set.
type PageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// buildLedgerFilter resolves the request into repository terms: ownership
// scope, date range and pagination.
func buildLedgerFilter(actor Actor, req ListRequest) (repository.LedgerFilter, error) {
	start, end, err := resolveDateRange(req.From, req.To, req.Month, req.Year)
	if err != nil {
		return repository.LedgerFilter{}, err
	}

	filter := repository.LedgerFilter{
		UsuarioID: scopeUser(actor, req.UsuarioID),
		StartDate: start,
		EndDate:   end,
		Keyword:   req.Keyword,
	}

	if req.Page > 0 && req.Limit > 0 {
		filter.Paginated = true
		filter.Page = req.Page
		filter.Limit = req.Limit
	}

	return filter, nil
}

// scopeUser pins USER-role callers to their own entries; privileged roles may
// filter by any user or none.
func scopeUser(actor Actor, requested *int64) *int64 {
	if !actor.CanSeeOthers() {
		id := actor.ID
		return &id
	}
	return requested
}

// resolveDateRange turns the three filter shapes into inclusive YYYY-MM-DD
// bounds. An explicit from/to pair wins; month needs a year; a bare year
// spans January through December.
func resolveDateRange(from, to string, month, year int) (string, string, error) {
	if from != "" || to != "" {
		return from, to, nil
	}

	if month != 0 {
		if year == 0 {
			return "", "", fmt.Errorf("%w: month requires year", ErrInvalidPeriod)
		}
		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return first.Format("2006-01-02"), last.Format("2006-01-02"), nil
	}

	if year != 0 {
		return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year), nil
	}

	return "", "", nil
}

// ownershipScope returns the user id single-row lookups must match, or nil
// for privileged roles.
func ownershipScope(actor Actor) *int64 {
	if !actor.CanSeeOthers() {
		id := actor.ID
		return &id
	}
	return nil
}
