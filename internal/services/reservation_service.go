package services

import (
	"database/sql"
	"errors"
	"fmt"

	"prodcat/internal/domain"
	"prodcat/internal/repos"
)

type ReservationItem struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// ReservationResult reports the outcome as data rather than an error:
// multi-item outcomes need the full per-item error list, and cancel can
// partially succeed (Success=false with restored items present).
type ReservationResult struct {
	Success       bool              `json:"success"`
	ReservedItems []ReservationItem `json:"reserved_items"`
	Errors        []string          `json:"errors"`
}

// ReservationService adjusts stock for the external order workflow. Each
// call is terminal: there is no persisted reservation state beyond the stock
// counters themselves.
type ReservationService struct {
	Prods *repos.ProductRepo
	Cart  CartNotifier
}

func NewReservationService(prods *repos.ProductRepo, cart CartNotifier) *ReservationService {
	return &ReservationService{Prods: prods, Cart: cart}
}

// Reserve checks every item before mutating anything, then decrements all
// stocks in one transaction. If any item fails its check, nothing is
// decremented: partial reservation across a multi-item order is never
// acceptable. Products whose stock hits exactly zero get an out-of-stock
// notification after commit.
func (s *ReservationService) Reserve(items []ReservationItem) (ReservationResult, error) {
	tx, err := s.Prods.Begin()
	if err != nil {
		return ReservationResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Duplicate lines for the same product are folded together first, so the
	// check sees the combined quantity rather than each line against the
	// original stock.
	totals := make(map[int64]int, len(items))
	order := make([]int64, 0, len(items))
	for _, it := range items {
		if _, seen := totals[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		totals[it.ProductID] += it.Quantity
	}

	type hold struct {
		product  domain.Product
		quantity int
	}
	var holds []hold
	errs := []string{}

	for _, id := range order {
		quantity := totals[id]
		p, err := s.Prods.GetTx(tx, id)
		if errors.Is(err, sql.ErrNoRows) {
			errs = append(errs, fmt.Sprintf("product %d not found", id))
			continue
		}
		if err != nil {
			return ReservationResult{}, err
		}
		if p.Stock < quantity {
			errs = append(errs, fmt.Sprintf("insufficient stock for '%s' (requested: %d, available: %d)",
				p.Title, quantity, p.Stock))
			continue
		}
		holds = append(holds, hold{product: p, quantity: quantity})
	}

	if len(errs) > 0 {
		return ReservationResult{Success: false, ReservedItems: []ReservationItem{}, Errors: errs}, nil
	}

	reserved := make([]ReservationItem, 0, len(holds))
	var depleted []int64
	for _, h := range holds {
		if err := s.Prods.DecrementStock(tx, h.product.ID, h.quantity); err != nil {
			if errors.Is(err, repos.ErrInsufficientStock) {
				// A concurrent committed write shrank stock between the check
				// and the decrement. The whole reservation fails as data; the
				// deferred rollback undoes any earlier decrements.
				available := h.product.Stock
				if fresh, rerr := s.Prods.GetTx(tx, h.product.ID); rerr == nil {
					available = fresh.Stock
				}
				return ReservationResult{
					Success:       false,
					ReservedItems: []ReservationItem{},
					Errors: []string{fmt.Sprintf("insufficient stock for '%s' (requested: %d, available: %d)",
						h.product.Title, h.quantity, available)},
				}, nil
			}
			return ReservationResult{}, err
		}
		if h.product.Stock-h.quantity == 0 {
			depleted = append(depleted, h.product.ID)
		}
		reserved = append(reserved, ReservationItem{ProductID: h.product.ID, Quantity: h.quantity})
	}

	if err := tx.Commit(); err != nil {
		return ReservationResult{}, err
	}

	for _, id := range depleted {
		s.Cart.NotifyOutOfStock(id)
	}
	return ReservationResult{Success: true, ReservedItems: reserved, Errors: []string{}}, nil
}

// CancelReserve restores stock. Unlike Reserve it is per-item: a missing
// product is reported but does not prevent restoring the rest. Success is
// true only when no item failed.
func (s *ReservationService) CancelReserve(items []ReservationItem) (ReservationResult, error) {
	tx, err := s.Prods.Begin()
	if err != nil {
		return ReservationResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	restored := []ReservationItem{}
	errs := []string{}
	var replenished []int64 // zero -> positive transitions

	for _, it := range items {
		p, err := s.Prods.GetTx(tx, it.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			errs = append(errs, fmt.Sprintf("product %d not found", it.ProductID))
			continue
		}
		if err != nil {
			return ReservationResult{}, err
		}
		if err := s.Prods.IncrementStock(tx, p.ID, it.Quantity); err != nil {
			return ReservationResult{}, err
		}
		if p.Stock == 0 && it.Quantity > 0 {
			replenished = append(replenished, p.ID)
		}
		restored = append(restored, ReservationItem{ProductID: p.ID, Quantity: it.Quantity})
	}

	if err := tx.Commit(); err != nil {
		return ReservationResult{}, err
	}

	for _, id := range replenished {
		s.Cart.NotifyBackInStock(id)
	}
	return ReservationResult{Success: len(errs) == 0, ReservedItems: restored, Errors: errs}, nil
}

// ConfirmReserve is a no-op: stock was already adjusted at reservation time.
// It only echoes how many items the caller confirmed.
func (s *ReservationService) ConfirmReserve(items []ReservationItem) int {
	return len(items)
}
