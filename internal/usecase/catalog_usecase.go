package usecase

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"ticketstore/internal/domain/model"
	"ticketstore/internal/logger"
	repo "ticketstore/internal/repository"

	"go.uber.org/zap"
)

// 並び順
const (
	TicketSortDefault   = ""
	TicketSortPriceAsc  = "price_asc"
	TicketSortPriceDesc = "price_desc"
	TicketSortDate      = "date"
	TicketSortName      = "name"
)

const categoryAll = "all"

type TicketQuery struct {
	Search   string
	Category string
	Sort     string
}

// CatalogUsecase はチケット一覧（注文サービスから、駄目なら組み込みデータ）。
type CatalogUsecase struct {
	gateway repo.OrderGateway
	log     *zap.Logger
}

func NewCatalogUsecase(gateway repo.OrderGateway, log *zap.Logger) *CatalogUsecase {
	return &CatalogUsecase{gateway: gateway, log: logger.OrNop(log)}
}

func (u *CatalogUsecase) List(ctx context.Context, q TicketQuery) ([]model.Ticket, error) {
	if !validTicketSort(q.Sort) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}
	return FilterTickets(u.all(ctx), q), nil
}

func (u *CatalogUsecase) Get(ctx context.Context, ticketID int64) (model.Ticket, error) {
	if ticketID <= 0 {
		return model.Ticket{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	for _, t := range u.all(ctx) {
		if t.ID == ticketID {
			return t, nil
		}
	}
	return model.Ticket{}, NewHTTPError(http.StatusNotFound, "ticket not found")
}

func (u *CatalogUsecase) all(ctx context.Context) []model.Ticket {
	tickets, err := u.gateway.ListTickets(ctx)
	if err != nil {
		u.log.Warn("ticket catalog unavailable, using built-in tickets", zap.Error(err))
		return DefaultTickets()
	}
	if len(tickets) == 0 {
		return DefaultTickets()
	}
	return tickets
}

// FilterTickets は検索語（名前・説明、大文字小文字を無視）とカテゴリで絞って並べる。
func FilterTickets(tickets []model.Ticket, q TicketQuery) []model.Ticket {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	category := strings.TrimSpace(q.Category)

	out := make([]model.Ticket, 0, len(tickets))
	for _, t := range tickets {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(t.Name), term) ||
			strings.Contains(strings.ToLower(t.Description), term)
		matchesCategory := category == "" || category == categoryAll || t.Category == category

		if matchesSearch && matchesCategory {
			out = append(out, t)
		}
	}

	switch q.Sort {
	case TicketSortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case TicketSortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case TicketSortDate:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	case TicketSortName:
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	}
	return out
}

func validTicketSort(s string) bool {
	switch s {
	case TicketSortDefault, TicketSortPriceAsc, TicketSortPriceDesc, TicketSortDate, TicketSortName:
		return true
	}
	return false
}

// 注文サービスが無い時のカタログ
func DefaultTickets() []model.Ticket {
	return []model.Ticket{
		{
			ID:          1,
			Name:        `Concert: "Kino"`,
			Price:       2999,
			Description: `The legendary band live. "The Last Hero" tour.`,
			Category:    "concert",
			Date:        "2024-02-20 19:00",
			Venue:       "Saint Petersburg, Ice Palace",
			Available:   150,
		},
		{
			ID:          2,
			Name:        `Play: "The Cherry Orchard"`,
			Price:       1999,
			Description: "A classic production at the Chekhov Moscow Art Theatre.",
			Category:    "theater",
			Date:        "2024-02-25 18:30",
			Venue:       "Moscow, Chekhov Moscow Art Theatre",
			Available:   80,
		},
		{
			ID:          3,
			Name:        "Football: Spartak vs Zenit",
			Price:       6499,
			Description: "A key match of the Russian football championship.",
			Category:    "sport",
			Date:        "2024-03-05 20:00",
			Venue:       "Moscow, Otkritie Bank Arena",
			Available:   45,
		},
		{
			ID:          4,
			Name:        `Cinema: "Dune: Part Two"`,
			Price:       2499,
			Description: "Premiere of the second part of the cult sci-fi film.",
			Category:    "cinema",
			Date:        "2024-02-28 21:00",
			Venue:       `Moscow, "Oktyabr" cinema`,
			Available:   200,
		},
	}
}
