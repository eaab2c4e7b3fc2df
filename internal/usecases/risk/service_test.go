package risk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

type riskMocks struct {
	inventory *mocks.MockInventoryRepository
	sku       *mocks.MockSkuDailyMetricRepository
	orders    *mocks.MockOrderRepository
	ledger    *mocks.MockLedgerRepository
}

func newTestService(ctrl *gomock.Controller) (*Service, riskMocks) {
	m := riskMocks{
		inventory: mocks.NewMockInventoryRepository(ctrl),
		sku:       mocks.NewMockSkuDailyMetricRepository(ctrl),
		orders:    mocks.NewMockOrderRepository(ctrl),
		ledger:    mocks.NewMockLedgerRepository(ctrl),
	}
	return NewService(DefaultThresholds(), m.inventory, m.sku, m.orders, m.ledger), m
}

func mustRange(t *testing.T, from, to string) domain.DateRange {
	t.Helper()
	rng, err := domain.ParseDateRange(from, to)
	require.NoError(t, err)
	return rng
}

func TestService_StockoutRisk(t *testing.T) {
	log.SetupTestLogger()

	rng := mustRange(t, "2024-01-01", "2024-01-14")

	tests := []struct {
		name     string
		horizon  *int
		limit    *int
		setup    func(m riskMocks)
		wantErr  bool
		validate func(t *testing.T, got *domain.StockoutRisk)
	}{
		{
			name:  "Produtos repetidos consultados uma vez e limite aplicado",
			limit: utils.IntPtr(1),
			setup: func(m riskMocks) {
				m.inventory.EXPECT().ListByWorkspace(gomock.Any(), "ws-1").Return([]domain.InventoryRow{
					inventoryRow("p1", "SKU-A", "MAIN", 30),
					inventoryRow("p1", "SKU-A", "RET", 0),
				}, nil)
				m.sku.EXPECT().SumUnitsByProduct(gomock.Any(), "ws-1", []string{"p1"}, rng).
					Return(map[string]int64{"p1": 28}, nil)
			},
			validate: func(t *testing.T, got *domain.StockoutRisk) {
				assert.Equal(t, 14, got.HorizonDays)
				assert.Equal(t, 1, got.Limit)
				require.Len(t, got.Items, 1)
				assert.Equal(t, "RET", got.Items[0].LocationCode)
				assert.Equal(t, domain.SeverityHigh, got.Items[0].Risk)
				assert.NotEmpty(t, got.Note)
			},
		},
		{
			name:    "Horizonte acima do máximo - limitado a 90",
			horizon: utils.IntPtr(500),
			setup: func(m riskMocks) {
				m.inventory.EXPECT().ListByWorkspace(gomock.Any(), "ws-1").Return(nil, nil)
				m.sku.EXPECT().SumUnitsByProduct(gomock.Any(), "ws-1", []string{}, rng).Return(map[string]int64{}, nil)
			},
			validate: func(t *testing.T, got *domain.StockoutRisk) {
				assert.Equal(t, 90, got.HorizonDays)
				assert.Equal(t, DefaultLimit, got.Limit)
				assert.Empty(t, got.Items)
			},
		},
		{
			name: "Falha no inventário - erro propagado",
			setup: func(m riskMocks) {
				m.inventory.EXPECT().ListByWorkspace(gomock.Any(), "ws-1").Return(nil, errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(ctrl)
			tt.setup(m)

			got, err := service.StockoutRisk(context.Background(), "ws-1", rng, tt.horizon, tt.limit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, got)
		})
	}
}

func TestService_RefundSpike(t *testing.T) {
	log.SetupTestLogger()

	rng := mustRange(t, "2024-01-08", "2024-01-14")
	previous := mustRange(t, "2024-01-01", "2024-01-07")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	m.orders.EXPECT().ListInRange(gomock.Any(), "ws-1", rng).
		Return([]domain.Order{{ID: "o2", Total: dec("100")}}, nil)
	m.orders.EXPECT().ListInRange(gomock.Any(), "ws-1", previous).
		Return([]domain.Order{{ID: "o1", Total: dec("100")}}, nil)

	m.ledger.EXPECT().ListLinkedToOrders(gomock.Any(), domain.LedgerFees, "ws-1", gomock.Any(), gomock.Any()).
		Return(nil, nil).Times(2)
	m.ledger.EXPECT().ListLinkedToOrders(gomock.Any(), domain.LedgerRefunds, "ws-1", rng, []string{"o2"}).
		Return([]domain.LedgerEntry{{OrderID: strPtr("o2"), Amount: dec("9")}}, nil)
	m.ledger.EXPECT().ListLinkedToOrders(gomock.Any(), domain.LedgerRefunds, "ws-1", previous, []string{"o1"}).
		Return([]domain.LedgerEntry{{OrderID: strPtr("o1"), Amount: dec("1")}}, nil)

	got, err := service.RefundSpike(context.Background(), "ws-1", rng, nil)
	require.NoError(t, err)

	assert.Equal(t, previous, got.CompareTo)
	assert.Equal(t, domain.SpikeRefund, got.Kind)
	assert.Equal(t, domain.SeverityHigh, got.Risk)
	assert.Equal(t, "0.09", got.Rate.Value.Decimal.String())
	assert.Equal(t, "0.08", got.Rate.Delta.Decimal.String())
}

func TestService_MarginLeakage_SemComparacao(t *testing.T) {
	log.SetupTestLogger()

	rng := mustRange(t, "2024-01-01", "2024-01-07")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	m.orders.EXPECT().ListInRange(gomock.Any(), "ws-1", rng).
		Return([]domain.Order{{ID: "o1", Total: dec("200")}}, nil)
	m.ledger.EXPECT().ListLinkedToOrders(gomock.Any(), domain.LedgerFees, "ws-1", rng, []string{"o1"}).
		Return([]domain.LedgerEntry{{Amount: dec("50")}}, nil)
	m.ledger.EXPECT().ListLinkedToOrders(gomock.Any(), domain.LedgerRefunds, "ws-1", rng, []string{"o1"}).
		Return([]domain.LedgerEntry{{Amount: dec("40")}}, nil)

	got, err := service.MarginLeakage(context.Background(), "ws-1", rng, nil)
	require.NoError(t, err)

	assert.Nil(t, got.CompareTo)
	assert.Equal(t, "0.55", got.MarginPct.Value.Decimal.String())
	assert.False(t, got.MarginPct.Delta.Valid)
	assert.Equal(t, domain.SeverityMedium, got.Risk)
}

func TestService_OpsRisk(t *testing.T) {
	log.SetupTestLogger()

	rng := mustRange(t, "2024-01-01", "2024-01-07")

	tests := []struct {
		name     string
		setup    func(m riskMocks)
		wantErr  bool
		validate func(t *testing.T, got *domain.OpsRisk)
	}{
		{
			name: "Issue alta sem problemas de estoque - risco alto",
			setup: func(m riskMocks) {
				m.orders.EXPECT().ListInRange(gomock.Any(), "ws-1", rng).
					Return([]domain.Order{{ID: "o1", Currency: "USD", Total: dec("10"), ItemCount: 0}}, nil)
				m.ledger.EXPECT().ListCreatedWithin(gomock.Any(), gomock.Any(), "ws-1", rng).Return(nil, nil).Times(2)
				m.inventory.EXPECT().ListByWorkspace(gomock.Any(), "ws-1").
					Return([]domain.InventoryRow{inventoryRow("p1", "SKU-A", "MAIN", 100)}, nil).Times(2)
				m.sku.EXPECT().SumUnitsByProduct(gomock.Any(), "ws-1", []string{"p1"}, rng).
					Return(map[string]int64{}, nil)
			},
			validate: func(t *testing.T, got *domain.OpsRisk) {
				assert.Equal(t, domain.SeverityHigh, got.Risk)
				signal, ok := got.Signal(domain.SignalOrderIssuesHigh)
				require.True(t, ok)
				assert.Equal(t, 1, signal.Value)
				signal, ok = got.Signal(domain.SignalStockoutHigh)
				require.True(t, ok)
				assert.Equal(t, domain.SeverityLow, signal.Severity)
			},
		},
		{
			name: "Apenas estoque muito baixo - risco médio",
			setup: func(m riskMocks) {
				m.orders.EXPECT().ListInRange(gomock.Any(), "ws-1", rng).Return(nil, nil)
				m.ledger.EXPECT().ListCreatedWithin(gomock.Any(), gomock.Any(), "ws-1", rng).Return(nil, nil).Times(2)
				m.inventory.EXPECT().ListByWorkspace(gomock.Any(), "ws-1").
					Return([]domain.InventoryRow{inventoryRow("p1", "SKU-A", "MAIN", 2)}, nil).Times(2)
				m.sku.EXPECT().SumUnitsByProduct(gomock.Any(), "ws-1", []string{"p1"}, rng).
					Return(map[string]int64{}, nil)
			},
			validate: func(t *testing.T, got *domain.OpsRisk) {
				assert.Equal(t, domain.SeverityMedium, got.Risk)
			},
		},
		{
			name: "Falha em um dos detectores - erro propagado",
			setup: func(m riskMocks) {
				m.orders.EXPECT().ListInRange(gomock.Any(), "ws-1", rng).Return(nil, errors.New("timeout")).AnyTimes()
				m.ledger.EXPECT().ListCreatedWithin(gomock.Any(), gomock.Any(), "ws-1", rng).Return(nil, nil).AnyTimes()
				m.inventory.EXPECT().ListByWorkspace(gomock.Any(), "ws-1").Return(nil, nil).AnyTimes()
				m.sku.EXPECT().SumUnitsByProduct(gomock.Any(), "ws-1", gomock.Any(), rng).Return(map[string]int64{}, nil).AnyTimes()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(ctrl)
			tt.setup(m)

			got, err := service.OpsRisk(context.Background(), "ws-1", rng)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, got)
		})
	}
}
