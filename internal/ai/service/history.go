package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/internal/ai/domain"
	itemdomain "github.com/rsmedika/inventaris/internal/item/domain"
)

// demandHistory is the assembled input for one item's forecast or
// optimization run.
type demandHistory struct {
	item         *itemdomain.Item
	points       []domain.DemandPoint
	annualDemand int
}

// assembleHistory loads the item and its approved demand records, newest
// first, capped at HistoryRecordCap. The annual demand sums the trailing
// 365 calendar days; that window is time-based while the cap is count-based,
// so the two can disagree.
func (s *Service) assembleHistory(ctx context.Context, itemID snowflake.ID) (*demandHistory, error) {
	item, err := s.items.FindByID(ctx, s.db, itemID)
	if err != nil {
		if errors.Is(err, itemdomain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	records, err := s.requests.FindRecentApprovedByItem(ctx, s.db, itemID, domain.HistoryRecordCap)
	if err != nil {
		return nil, err
	}

	windowStart := s.clock.Now().AddDate(0, 0, -365)
	points := make([]domain.DemandPoint, 0, len(records))
	annual := 0
	for _, rec := range records {
		effective := rec.EffectiveDate().UTC()
		points = append(points, domain.DemandPoint{
			Date:     effective.Format(time.DateOnly),
			Quantity: rec.Quantity,
		})
		if !effective.Before(windowStart) {
			annual += rec.Quantity
		}
	}

	return &demandHistory{
		item:         item,
		points:       points,
		annualDemand: annual,
	}, nil
}
