package repository

import (
	"context"

	"ticketstore/internal/domain/model"
)

type TicketRepository interface {
	List(ctx context.Context) ([]model.Ticket, error)
	FindByID(ctx context.Context, ticketID int64) (model.Ticket, error)
	Count(ctx context.Context) (int64, error)
	CreateBulk(ctx context.Context, tickets []model.Ticket) error
}
