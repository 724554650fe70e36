package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ticketstore/internal/domain/model"
	repo "ticketstore/internal/repository"
)

// TicketUsecase は注文サービス側のチケットカタログ。
type TicketUsecase struct {
	tickets repo.TicketRepository
}

func NewTicketUsecase(tickets repo.TicketRepository) *TicketUsecase {
	return &TicketUsecase{tickets: tickets}
}

// 空のときだけ初期データを入れる
func (u *TicketUsecase) SeedIfEmpty(ctx context.Context) (bool, error) {
	n, err := u.tickets.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count tickets: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	seed := DefaultTickets()
	for i := range seed {
		seed[i].ID = 0
	}
	if err := u.tickets.CreateBulk(ctx, seed); err != nil {
		return false, fmt.Errorf("seed tickets: %w", err)
	}
	return true, nil
}

func (u *TicketUsecase) List(ctx context.Context) ([]model.Ticket, error) {
	items, err := u.tickets.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *TicketUsecase) Get(ctx context.Context, ticketID int64) (model.Ticket, error) {
	if ticketID <= 0 {
		return model.Ticket{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	t, err := u.tickets.FindByID(ctx, ticketID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Ticket{}, NewHTTPError(http.StatusNotFound, "Ticket not found")
	}
	if err != nil {
		return model.Ticket{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return t, nil
}
