package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/repositories"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// OrderService manages the order lifecycle: placed orders are Active,
// fulfilled orders Complete and cancelled orders Failed.
type OrderService struct {
	orders    repositories.OrderRepository
	products  repositories.ProductRepository
	customers repositories.CustomerRepository
	states    repositories.StateRepository
	log       *ActionLogService
	notifier  OrderNotifier
}

func NewOrderService(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	customers repositories.CustomerRepository,
	states repositories.StateRepository,
	log *ActionLogService,
	notifier OrderNotifier,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		customers: customers,
		states:    states,
		log:       log,
		notifier:  notifier,
	}
}

// PlaceOrder reserves stock for each line, captures unit prices and creates
// the order. Stock reserved for earlier lines is returned when a later line
// fails.
func (s *OrderService) PlaceOrder(ctx context.Context, meta RequestMeta, req *dtos.PlaceOrderRequest) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionPlaceOrder, "orders/order_service/PlaceOrder", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("PlaceOrder: unable to open action")
		return openFailedEnvelope()
	}

	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeCustomerNotFound, "Customer not found")
	}
	active, err := s.states.GetByName(ctx, models.StateActive)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeOrderCreateFailed, "Order creation failed")
	}

	orderID := uuid.New()
	var (
		items    []*models.OrderItem
		reserved []*models.OrderItem
		total    int64
	)
	for _, line := range req.Items {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			s.releaseStock(ctx, reserved)
			return closeFailed(ctx, s.log, action, constants.CodeProductNotFound,
				fmt.Sprintf("Product %s not found", line.ProductID))
		}
		if product.StateID != active.ID {
			s.releaseStock(ctx, reserved)
			return closeFailed(ctx, s.log, action, constants.CodeOrderCreateFailed,
				fmt.Sprintf("Product %s is not available", product.Name))
		}
		if err := s.products.AdjustQuantity(ctx, product.ID, -line.Quantity); err != nil {
			s.releaseStock(ctx, reserved)
			return closeFailed(ctx, s.log, action, constants.CodeOrderCreateFailed,
				fmt.Sprintf("Insufficient stock for %s", product.Name))
		}
		item := &models.OrderItem{
			ID:             uuid.New(),
			OrderID:        orderID,
			ProductID:      product.ID,
			Quantity:       line.Quantity,
			UnitPriceMinor: product.PriceMinor,
		}
		items = append(items, item)
		reserved = append(reserved, item)
		total += product.PriceMinor * line.Quantity
	}

	order := &models.Order{
		ID:         orderID,
		CustomerID: customer.ID,
		TotalMinor: total,
		StateID:    active.ID,
	}
	if err := s.orders.CreateWithItems(ctx, order, items); err != nil {
		utils.Logger.WithError(err).Error("PlaceOrder: insert failed")
		s.releaseStock(ctx, reserved)
		return closeFailed(ctx, s.log, action, constants.CodeOrderCreateFailed, "Order creation failed")
	}

	if customer.PhoneNumber != "" {
		msg := fmt.Sprintf("Dear %s, your order %s of %d items has been received.",
			customer.Username, order.ID, len(items))
		if err := s.notifier.SendOrderSMS(ctx, customer.PhoneNumber, msg); err != nil {
			utils.Logger.WithError(err).Warnf("PlaceOrder: sms to %s failed", customer.PhoneNumber)
		}
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Order placed successfully",
		&dtos.OrderResponse{Order: order, Items: items})
}

// CompleteOrder marks an Active order fulfilled and emails the receipt.
func (s *OrderService) CompleteOrder(ctx context.Context, meta RequestMeta, orderID uuid.UUID) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionCompleteOrder, "orders/order_service/CompleteOrder", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("CompleteOrder: unable to open action")
		return openFailedEnvelope()
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeOrderNotFound, "Order not found")
	}
	active, err := s.states.GetByName(ctx, models.StateActive)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeOrderUpdateFailed, "Order completion failed")
	}
	if order.StateID != active.ID {
		return closeFailed(ctx, s.log, action, constants.CodeOrderUpdateFailed, "Order is not active")
	}
	complete, err := s.states.GetByName(ctx, models.StateComplete)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeOrderUpdateFailed, "Order completion failed")
	}
	if err := s.orders.UpdateState(ctx, order.ID, complete.ID); err != nil {
		utils.Logger.WithError(err).Error("CompleteOrder: update failed")
		return closeFailed(ctx, s.log, action, constants.CodeOrderUpdateFailed, "Order completion failed")
	}
	order.StateID = complete.ID

	if customer, err := s.customers.GetByID(ctx, order.CustomerID); err == nil {
		subject := fmt.Sprintf("Receipt for order %s", order.ID)
		body := fmt.Sprintf("Dear %s, your order %s has been fulfilled. Total: %d.",
			customer.Username, order.ID, order.TotalMinor)
		if err := s.notifier.SendOrderReceipt(ctx, customer.Email, subject, body); err != nil {
			utils.Logger.WithError(err).Warnf("CompleteOrder: receipt to %s failed", customer.Email)
		}
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Order completed successfully", order)
}

func (s *OrderService) GetOrder(ctx context.Context, meta RequestMeta, orderID uuid.UUID) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionGetOrder, "orders/order_service/GetOrder", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("GetOrder: unable to open action")
		return openFailedEnvelope()
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeOrderNotFound, "Order not found")
	}
	items, err := s.orders.ListItems(ctx, orderID)
	if err != nil {
		utils.Logger.WithError(err).Error("GetOrder: items lookup failed")
		return closeFailed(ctx, s.log, action, constants.CodeOrderNotFound, "Order items not found")
	}
	return closeComplete(ctx, s.log, action, constants.CodeRetrieved, "Order retrieved successfully",
		&dtos.OrderResponse{Order: order, Items: items})
}

func (s *OrderService) GetOrders(ctx context.Context, meta RequestMeta, customerID *uuid.UUID) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionGetOrder, "orders/order_service/GetOrders", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("GetOrders: unable to open action")
		return openFailedEnvelope()
	}

	var orders []*models.Order
	if customerID != nil {
		orders, err = s.orders.ListByCustomer(ctx, *customerID)
	} else {
		orders, err = s.orders.List(ctx)
	}
	if err != nil {
		utils.Logger.WithError(err).Error("GetOrders: list failed")
		return closeFailed(ctx, s.log, action, constants.CodeOrdersNotFound, "Unable to retrieve orders")
	}
	if len(orders) == 0 {
		return closeComplete(ctx, s.log, action, constants.CodeOrdersNotFound, "No orders found", []*models.Order{})
	}
	return closeComplete(ctx, s.log, action, constants.CodeRetrieved, "Orders retrieved successfully", orders)
}

// CancelOrder marks an Active order Failed and returns its stock.
func (s *OrderService) CancelOrder(ctx context.Context, meta RequestMeta, orderID uuid.UUID) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionCancelOrder, "orders/order_service/CancelOrder", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("CancelOrder: unable to open action")
		return openFailedEnvelope()
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeOrderNotFound, "Order not found")
	}
	active, err := s.states.GetByName(ctx, models.StateActive)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeOrderUpdateFailed, "Order cancellation failed")
	}
	if order.StateID != active.ID {
		return closeFailed(ctx, s.log, action, constants.CodeOrderUpdateFailed, "Order is not active")
	}
	failed, err := s.states.GetByName(ctx, models.StateFailed)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeOrderUpdateFailed, "Order cancellation failed")
	}
	if err := s.orders.UpdateState(ctx, order.ID, failed.ID); err != nil {
		utils.Logger.WithError(err).Error("CancelOrder: update failed")
		return closeFailed(ctx, s.log, action, constants.CodeOrderUpdateFailed, "Order cancellation failed")
	}
	order.StateID = failed.ID

	items, err := s.orders.ListItems(ctx, order.ID)
	if err != nil {
		utils.Logger.WithError(err).Errorf("CancelOrder: items lookup for restock failed on %s", order.ID)
	} else {
		s.releaseStock(ctx, items)
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Order cancelled successfully", order)
}

func (s *OrderService) releaseStock(ctx context.Context, items []*models.OrderItem) {
	for _, item := range items {
		if err := s.products.AdjustQuantity(ctx, item.ProductID, item.Quantity); err != nil {
			utils.Logger.WithError(err).Errorf("failed to return %d units to product %s", item.Quantity, item.ProductID)
		}
	}
}
