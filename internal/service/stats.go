package service

import (
	"time"

	"orderhub/internal/models"
	"orderhub/internal/repository"

	"github.com/shopspring/decimal"
)

// StatusStat aggregates one status bucket of a tenant's orders.
type StatusStat struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type TenantStats struct {
	TotalOrders int                   `json:"total_orders"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	ByStatus    map[string]StatusStat `json:"by_status"`
}

type StatsService struct {
	orders *repository.OrderRepository
}

func NewStatsService(orders *repository.OrderRepository) *StatsService {
	return &StatsService{orders: orders}
}

// windowStart maps today/week/month to a cutoff; empty window means all time.
func windowStart(window string, now time.Time) (time.Time, bool) {
	switch window {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	}
	return time.Time{}, false
}

// Compute fetches the tenant's full order set and reduces it in-process.
// There is deliberately no pre-aggregation; this mirrors how the admin
// dashboard consumes the data.
func (s *StatsService) Compute(tenantPath string, ownerID uint, window string) (*TenantStats, error) {
	orders, err := s.orders.List(tenantPath, ownerID, "")
	if err != nil {
		return nil, err
	}
	cutoff, windowed := windowStart(window, time.Now())
	return reduceOrders(orders, cutoff, windowed), nil
}

func reduceOrders(orders []models.Order, cutoff time.Time, windowed bool) *TenantStats {
	stats := &TenantStats{
		TotalAmount: decimal.Zero,
		ByStatus:    make(map[string]StatusStat),
	}
	for _, o := range orders {
		if windowed && o.OrderDate.Before(cutoff) {
			continue
		}
		stats.TotalOrders++
		stats.TotalAmount = stats.TotalAmount.Add(o.TotalAmount)
		st := stats.ByStatus[o.Status]
		st.Count++
		st.Amount = st.Amount.Add(o.TotalAmount)
		stats.ByStatus[o.Status] = st
	}
	return stats
}
