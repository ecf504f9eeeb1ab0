package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
)

const defaultCurrency = "USD"

// builtLines is a request item list turned into stored lines with fresh totals
type builtLines struct {
	Items      []domain.LineItem
	VehicleIDs []*uuid.UUID
	Totals     mapper.Totals
}

// buildLines recomputes every derived amount from the request. Serial numbers
// follow array order.
func buildLines(reqs []domain.LineItemRequest) (*builtLines, error) {
	totals := mapper.ComputeTotals(mapper.LinesFromRequests(reqs))
	out := &builtLines{
		Items:      make([]domain.LineItem, len(reqs)),
		VehicleIDs: make([]*uuid.UUID, len(reqs)),
		Totals:     totals,
	}
	for i, r := range reqs {
		vehicleID, err := parseRef(fmt.Sprintf("items[%d].vehicleId", i), r.VehicleRef())
		if err != nil {
			return nil, err
		}
		out.Items[i] = mapper.NewLineItem(r, totals.Lines[i])
		out.VehicleIDs[i] = vehicleID
	}
	return out, nil
}

// lineRequest turns a stored line back into an editable request line
func lineRequest(item domain.LineItem, vehicleID *uuid.UUID) domain.LineItemRequest {
	req := domain.LineItemRequest{
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TaxPercent:  item.TaxPercent,
	}
	if vehicleID != nil {
		req.VehicleID = vehicleID.String()
	}
	return req
}

func itemNotFound(index int) error {
	return &domain.Error{Kind: domain.KindNotFound, Field: "index", Message: fmt.Sprintf("Item %d not found", index)}
}

// addLine appends req as the new last line
func addLine(reqs []domain.LineItemRequest, req domain.LineItemRequest) ([]domain.LineItemRequest, error) {
	return append(reqs, req), nil
}

// replaceLine swaps the line at the 1-based index
func replaceLine(reqs []domain.LineItemRequest, index int, req domain.LineItemRequest) ([]domain.LineItemRequest, error) {
	if index < 1 || index > len(reqs) {
		return nil, itemNotFound(index)
	}
	out := append([]domain.LineItemRequest(nil), reqs...)
	out[index-1] = req
	return out, nil
}

// removeLine drops the line at the 1-based index; later lines move up
func removeLine(reqs []domain.LineItemRequest, index int) ([]domain.LineItemRequest, error) {
	if index < 1 || index > len(reqs) {
		return nil, itemNotFound(index)
	}
	out := make([]domain.LineItemRequest, 0, len(reqs)-1)
	out = append(out, reqs[:index-1]...)
	return append(out, reqs[index:]...), nil
}

// documentDates fills a missing issue date with today and a missing second
// date with the issue date plus days
func documentDates(date, second string, days int, now time.Time) (string, string) {
	if date == "" {
		date = now.Format(mapper.DateLayout)
	}
	if second == "" {
		if t, err := time.Parse(mapper.DateLayout, date); err == nil {
			second = t.AddDate(0, 0, days).Format(mapper.DateLayout)
		} else {
			second = date
		}
	}
	return date, second
}
