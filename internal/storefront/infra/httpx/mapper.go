package httpx

import (
	fdomain "github.com/jcmexdev/storefront-pricing/internal/fulfillment/domain"
	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"
)

func mapLineItem(dto LineItemDTO) (domain.LineItem, error) {
	category := domain.CategoryStandard
	if dto.Category != "" {
		c, err := domain.ParseCategory(dto.Category)
		if err != nil {
			return domain.LineItem{}, err
		}
		category = c
	}
	return domain.NewLineItem(category, dto.Name, dto.Quantity, dto.UnitPrice)
}

func mapLineItems(dtos []LineItemDTO) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(dtos))
	for _, dto := range dtos {
		it, err := mapLineItem(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func mapItemsToDTO(items []domain.LineItem) []LineItemDTO {
	out := make([]LineItemDTO, len(items))
	for i, it := range items {
		out[i] = LineItemDTO{
			Category:  it.Category().String(),
			Name:      it.Name(),
			Quantity:  it.Quantity(),
			UnitPrice: it.UnitPrice(),
		}
	}
	return out
}

// mapOrder returns a nil order for nil items. Repeated ISBNs keep the last
// quantity given.
func mapOrder(items []PurchaseItemDTO) (*fdomain.Order, error) {
	if items == nil {
		return nil, nil
	}
	order := fdomain.NewOrder()
	for _, it := range items {
		if err := order.Set(it.ISBN, it.Quantity); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func mapSummaryToResponse(s *fdomain.PurchaseSummary) PurchaseResponse {
	shortfalls := s.Unavailable()
	resp := PurchaseResponse{
		Total:       s.TotalPrice(),
		Unavailable: make([]ShortfallResponse, len(shortfalls)),
	}
	for i, sf := range shortfalls {
		resp.Unavailable[i] = ShortfallResponse{ISBN: sf.Book.ISBN, Missing: sf.Missing}
	}
	return resp
}
