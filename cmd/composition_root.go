package cmd

import (
	"context"

	"loadboard/internal/adapters/out/postgres"
	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/application/usecases/queries"
	"loadboard/internal/core/domain/events"
	"loadboard/internal/core/ports"
	"loadboard/internal/notifications"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	hub        *notifications.Hub
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	hub *notifications.Hub,
	kafkaPublisher ports.EventPublisher,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  multiPublisher{hub, kafkaPublisher},
		hub:        hub,
	}
}

// Hub returns the in-process notification hub for the event stream endpoint.
func (c *CompositionRoot) Hub() *notifications.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreatePlaceBidCommandHandler() commands.PlaceBidCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceBidCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateWithdrawBidCommandHandler() commands.WithdrawBidCommandHandler {
	var f commands.BidUoWFactory = FuncBidUoWFactory(func() commands.BidUoW {
		return c.uowFactory.Create()
	})
	return commands.NewWithdrawBidCommandHandler(f)
}

func (c *CompositionRoot) CreateAcceptBidCommandHandler() commands.AcceptBidCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptBidCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelStaleOrdersCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderBidsQueryHandler() queries.GetOrderBidsQueryHandler {
	return queries.NewGetOrderBidsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBidUoWFactory func() commands.BidUoW

func (f FuncBidUoWFactory) Create() commands.BidUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// multiPublisher fans each event out to every configured publisher.
// Publishing is best effort, so one sink failing never affects another.
type multiPublisher []ports.EventPublisher

func (m multiPublisher) Publish(ctx context.Context, event events.Event) {
	for _, publisher := range m {
		publisher.Publish(ctx, event)
	}
}
