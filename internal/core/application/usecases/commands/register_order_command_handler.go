package commands

import (
	"context"
	"errors"
	"fmt"

	"orderregistry/internal/core/domain/model/kernel"
	"orderregistry/internal/core/domain/model/order"
	"orderregistry/internal/core/ports"

	"go.uber.org/zap"
)

// RegisterOrderCommandHandler orchestrates the order-registration workflow:
// duplicate detection, aggregate construction, transactional persistence,
// the status transition, and the processed-event publish.
//
// Ordering guarantees:
//   - the external-id check happens before any write
//   - the fingerprint check happens before the transaction opens
//   - the event is published only after the order row and its Processed
//     status are staged inside the transaction that is about to commit
//
// The event is published before Commit returns, so a crash between publish
// and commit can emit an event for a write that is subsequently rolled back.
// A failed publish fails the whole operation, which keeps a committed
// Processed row coupled to a successful publish attempt.
type RegisterOrderCommandHandler struct {
	uowFactory     OrderUoWFactory
	eventPublisher ports.EventPublisher
	logger         *zap.Logger
}

// NewRegisterOrderCommandHandler creates a handler for order registration.
func NewRegisterOrderCommandHandler(
	uowFactory OrderUoWFactory,
	eventPublisher ports.EventPublisher,
	logger *zap.Logger,
) RegisterOrderCommandHandler {
	return RegisterOrderCommandHandler{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Handle executes the registration workflow.
//
// An error is returned only for invalid input: an unconstructed command or a
// domain invariant violation during aggregate construction. Every workflow
// outcome, including the hard-duplicate conflict and persistence failures,
// is encoded in the response so callers can branch on Success and Reason.
func (h *RegisterOrderCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterOrderCommand,
) (RegisterOrderResponse, error) {
	if err := cmd.Validate(); err != nil {
		return RegisterOrderResponse{}, err
	}

	h.logger.Info("processing order registration", zap.String("externalId", cmd.ExternalID()))

	// Hard duplicate: same external id already stored. Rejected before any
	// write, with no transaction opened.
	repo := h.uowFactory.Create().OrderRepository()
	existing, err := repo.GetByExternalID(ctx, cmd.ExternalID())
	if err != nil {
		return h.failureResponse(cmd.ExternalID(), err), nil
	}
	if existing != nil {
		h.logger.Warn("duplicate order detected by external id",
			zap.String("externalId", cmd.ExternalID()),
			zap.String("orderId", existing.ID().String()),
		)
		return h.conflictResponse(existing.ID()), nil
	}

	newOrder, err := h.buildOrder(cmd)
	if err != nil {
		return RegisterOrderResponse{}, err
	}

	// Soft duplicate: another stored order carries the same content
	// fingerprint. The row is still written, but marked Duplicate and never
	// processed.
	stored, err := repo.GetByFingerprint(ctx, newOrder.Fingerprint())
	if err != nil {
		return h.failureResponse(cmd.ExternalID(), err), nil
	}
	if stored != nil {
		h.logger.Warn("duplicate order detected by fingerprint",
			zap.String("externalId", cmd.ExternalID()),
			zap.String("fingerprint", newOrder.Fingerprint().String()),
		)
		newOrder.MarkDuplicate()
	}

	response, err := h.persistAndPublish(ctx, newOrder)
	if err != nil {
		if errors.Is(err, ports.ErrUniquenessViolation) {
			// A concurrent registration won the race; the unique index on
			// external id is the authoritative arbiter.
			return h.conflictAfterRace(ctx, cmd.ExternalID()), nil
		}
		return h.failureResponse(cmd.ExternalID(), err), nil
	}

	h.logger.Info("order registration finished",
		zap.String("externalId", cmd.ExternalID()),
		zap.String("orderId", newOrder.ID().String()),
		zap.String("status", newOrder.Status().String()),
	)
	return response, nil
}

// buildOrder constructs the aggregate from the command's line items.
func (h *RegisterOrderCommandHandler) buildOrder(cmd RegisterOrderCommand) (*order.Order, error) {
	products := make([]*order.Product, 0, len(cmd.Products()))
	for _, p := range cmd.Products() {
		price, err := kernel.NewMoney(p.Price)
		if err != nil {
			return nil, err
		}
		product, err := order.NewProduct(p.Name, price, p.Quantity)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return order.NewOrder(cmd.ExternalID(), products)
}

// persistAndPublish runs steps 4-8 of the workflow inside one transaction:
// insert, conditional Processed transition with its update, publish, commit.
// Any error leaves the transaction rolled back.
func (h *RegisterOrderCommandHandler) persistAndPublish(
	ctx context.Context,
	newOrder *order.Order,
) (RegisterOrderResponse, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RegisterOrderResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	if err := repo.Add(ctx, newOrder); err != nil {
		return RegisterOrderResponse{}, err
	}

	if newOrder.Status() != order.Duplicate {
		if err := newOrder.MarkProcessed(); err != nil {
			return RegisterOrderResponse{}, err
		}
		if err := repo.Update(ctx, newOrder); err != nil {
			return RegisterOrderResponse{}, err
		}

		event := order.NewOrderProcessedEvent(newOrder)
		if err := h.eventPublisher.Publish(ctx, event); err != nil {
			return RegisterOrderResponse{}, fmt.Errorf("publish processed event: %w", err)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return RegisterOrderResponse{}, err
	}

	return h.successResponse(newOrder), nil
}

func (h *RegisterOrderCommandHandler) successResponse(o *order.Order) RegisterOrderResponse {
	outcome := "processed"
	if o.Status() == order.Duplicate {
		outcome = "marked as duplicate"
	}

	id := o.ID()
	return RegisterOrderResponse{
		Success: true,
		Message: fmt.Sprintf("order %s successfully", outcome),
		OrderID: &id,
		Order:   mapToOrderResult(o),
	}
}

func (h *RegisterOrderCommandHandler) conflictResponse(existingID kernel.UUID) RegisterOrderResponse {
	return RegisterOrderResponse{
		Success: false,
		Message: "duplicate order detected by external id",
		Reason:  ReasonDuplicateExternalID,
		OrderID: &existingID,
	}
}

// conflictAfterRace re-reads the winning order so the conflict result can
// reference it, mirroring the pre-check conflict path.
func (h *RegisterOrderCommandHandler) conflictAfterRace(
	ctx context.Context,
	externalID string,
) RegisterOrderResponse {
	repo := h.uowFactory.Create().OrderRepository()
	winner, err := repo.GetByExternalID(ctx, externalID)
	if err != nil || winner == nil {
		return RegisterOrderResponse{
			Success: false,
			Message: "duplicate order detected by external id",
			Reason:  ReasonDuplicateExternalID,
		}
	}
	return h.conflictResponse(winner.ID())
}

func (h *RegisterOrderCommandHandler) failureResponse(externalID string, err error) RegisterOrderResponse {
	h.logger.Error("error processing order",
		zap.String("externalId", externalID),
		zap.Error(err),
	)
	return RegisterOrderResponse{
		Success: false,
		Message: fmt.Sprintf("error processing order: %s", err.Error()),
	}
}

func mapToOrderResult(o *order.Order) *OrderResult {
	products := make([]ProductData, 0, len(o.Products()))
	for _, p := range o.Products() {
		products = append(products, ProductData{
			Name:     p.Name(),
			Price:    p.Price().Amount(),
			Quantity: p.Quantity(),
		})
	}

	return &OrderResult{
		OrderID:      o.ID(),
		ExternalID:   o.ExternalID(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		ProcessedAt:  o.ProcessedAt(),
		TotalAmount:  o.TotalAmount().Amount(),
		ErrorMessage: o.ErrorMessage(),
		Products:     products,
	}
}
