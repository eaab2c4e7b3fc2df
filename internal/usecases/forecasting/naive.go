package forecasting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

// Training resume o histórico usado pela média ingênua.
// Orders é nil no nível de SKU.
type Training struct {
	Revenue      decimal.Decimal
	Orders       *int64
	Units        int64
	DaysWithData int
}

func TrainingFromDaily(rows []domain.DailyMetric) Training {
	var orders int64
	t := Training{Revenue: decimal.Zero, Orders: &orders, DaysWithData: len(rows)}
	for _, r := range rows {
		t.Revenue = t.Revenue.Add(r.Revenue)
		orders += r.Orders
		t.Units += r.Units
	}
	return t
}

func TrainingFromSku(rows []domain.SkuDailyMetric) Training {
	t := Training{Revenue: decimal.Zero, DaysWithData: len(rows)}
	for _, r := range rows {
		t.Revenue = t.Revenue.Add(r.Revenue)
		t.Units += r.UnitsSold
	}
	return t
}

// Naive projeta a média por dia de calendário do intervalo para os próximos
// horizon dias, a partir do dia seguinte ao fim do intervalo.
func Naive(rng domain.DateRange, horizon int, t Training) (avg, totals domain.ForecastValues, daily []domain.ForecastPoint) {
	days := decimal.NewFromInt(int64(rng.DaysInclusive()))
	h := decimal.NewFromInt(int64(horizon))

	revenue := t.Revenue.Div(days)
	units := decimal.NewFromInt(t.Units).Div(days)

	avg = domain.ForecastValues{Revenue: revenue.Round(4), Units: units.Round(4)}
	totals = domain.ForecastValues{Revenue: revenue.Mul(h).Round(4), Units: units.Mul(h).Round(4)}

	if t.Orders != nil {
		orders := decimal.NewFromInt(*t.Orders).Div(days)
		avg.Orders = decimal.NewNullDecimal(orders.Round(4))
		totals.Orders = decimal.NewNullDecimal(orders.Mul(h).Round(4))
	}

	daily = make([]domain.ForecastPoint, 0, horizon)
	for _, day := range rng.NextDays(horizon) {
		daily = append(daily, domain.ForecastPoint{Day: day, ForecastValues: avg})
	}

	return avg, totals, daily
}
