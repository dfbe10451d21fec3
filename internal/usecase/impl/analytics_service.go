package impl

import (
	"context"

	"go.uber.org/fx"

	"veluna/internal/usecase"
	"veluna/internal/usecase/derived"
	"veluna/internal/usecase/state"
)

type analyticsService struct {
	state *state.State
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	State *state.State
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{state: params.State}
}

// Dashboard computes the overview from the current collections
func (s *analyticsService) Dashboard(_ context.Context) usecase.Dashboard {
	orders := s.state.Orders.Items()
	products := s.state.Products.Items()

	return usecase.Dashboard{
		Orders:     derived.OrderStats(orders),
		Categories: derived.CategoryShare(products),
		Revenue:    derived.RevenueSeries(orders),
		Inventory:  derived.Inventory(products),
		Customers:  derived.Customers(s.state.Users.Items()),
	}
}
