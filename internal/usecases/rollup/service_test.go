package rollup

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	daily     *mocks.MockDailyMetricRepository
	sku       *mocks.MockSkuDailyMetricRepository
	orders    *mocks.MockOrderRepository
	ledger    *mocks.MockLedgerRepository
	inventory *mocks.MockInventoryRepository
}

func newTestService(ctrl *gomock.Controller) (*Service, serviceMocks) {
	m := serviceMocks{
		daily:     mocks.NewMockDailyMetricRepository(ctrl),
		sku:       mocks.NewMockSkuDailyMetricRepository(ctrl),
		orders:    mocks.NewMockOrderRepository(ctrl),
		ledger:    mocks.NewMockLedgerRepository(ctrl),
		inventory: mocks.NewMockInventoryRepository(ctrl),
	}
	return NewService(m.daily, m.sku, m.orders, m.ledger, m.inventory), m
}

func (m serviceMocks) expectSources(orders []domain.Order, items []domain.OrderItem) {
	m.orders.EXPECT().ListOrderedWithin(gomock.Any(), "ws-1", domain.DayRange(testDay)).Return(orders, nil).AnyTimes()
	m.orders.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return(items, nil).AnyTimes()
	m.ledger.EXPECT().SumCreatedWithin(gomock.Any(), domain.LedgerFees, "ws-1", gomock.Any()).Return(dec("9"), nil).AnyTimes()
	m.ledger.EXPECT().SumCreatedWithin(gomock.Any(), domain.LedgerRefunds, "ws-1", gomock.Any()).Return(dec("3"), nil).AnyTimes()
	m.inventory.EXPECT().CountAtOrBelow(gomock.Any(), "ws-1", int64(0)).Return(int64(1), nil).AnyTimes()
	m.inventory.EXPECT().CountAtOrBelow(gomock.Any(), "ws-1", int64(LowStockLimit)).Return(int64(2), nil).AnyTimes()
	m.inventory.EXPECT().SumOnHandByProduct(gomock.Any(), "ws-1", gomock.Any()).Return(map[string]int64{"p1": 30, "p2": 0}, nil).AnyTimes()
}

func TestService_ComputeSkuDailyMetric(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name     string
		setup    func(m serviceMocks)
		want     int
		wantErr  bool
		validate func(t *testing.T, m serviceMocks)
	}{
		{
			name: "Dia sem pedidos - nenhuma gravação e sem erro",
			setup: func(m serviceMocks) {
				m.orders.EXPECT().ListOrderedWithin(gomock.Any(), "ws-1", gomock.Any()).Return([]domain.Order{}, nil)
				m.sku.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)
			},
			want: 0,
		},
		{
			name: "Dia com dois produtos - duas gravações",
			setup: func(m serviceMocks) {
				m.expectSources(
					[]domain.Order{{ID: "o1", Total: dec("30")}},
					[]domain.OrderItem{
						{OrderID: "o1", ProductID: "p1", Quantity: 1, Total: dec("10")},
						{OrderID: "o1", ProductID: "p2", Quantity: 2, Total: dec("20")},
					},
				)
				m.sku.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
			want: 2,
		},
		{
			name: "Falha na gravação do segundo produto - devolve o que já foi gravado",
			setup: func(m serviceMocks) {
				m.expectSources(
					[]domain.Order{{ID: "o1", Total: dec("30")}},
					[]domain.OrderItem{
						{OrderID: "o1", ProductID: "p1", Quantity: 1, Total: dec("10")},
						{OrderID: "o1", ProductID: "p2", Quantity: 2, Total: dec("20")},
					},
				)
				gomock.InOrder(
					m.sku.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil),
					m.sku.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("conexão perdida")),
				)
			},
			want:    1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(ctrl)
			tt.setup(m)

			got, err := service.ComputeSkuDailyMetric(context.Background(), "ws-1", testDay)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_ComputeDailyMetric(t *testing.T) {
	log.SetupTestLogger()

	orders := []domain.Order{{ID: "o1", Total: dec("100")}}
	items := []domain.OrderItem{{OrderID: "o1", ProductID: "p1", Quantity: 4, Total: dec("100")}}

	tests := []struct {
		name     string
		setup    func(m serviceMocks)
		wantErr  string
		validate func(t *testing.T, metric *domain.DailyMetric)
	}{
		{
			name: "Todas as fontes carregadas - rollup gravado",
			setup: func(m serviceMocks) {
				m.expectSources(orders, items)
				m.daily.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, metric *domain.DailyMetric) {
				assert.Equal(t, int64(4), metric.Units)
				assert.Equal(t, "88", metric.GrossMarginAmount.String())
				assert.Equal(t, int64(1), metric.StockoutsCount)
				assert.Equal(t, int64(2), metric.LowStockCount)
			},
		},
		{
			name: "Falha ao contar estoque - nada é gravado",
			setup: func(m serviceMocks) {
				m.orders.EXPECT().ListOrderedWithin(gomock.Any(), "ws-1", gomock.Any()).Return(orders, nil)
				m.orders.EXPECT().ListItems(gomock.Any(), []string{"o1"}).Return(items, nil).AnyTimes()
				m.ledger.EXPECT().SumCreatedWithin(gomock.Any(), gomock.Any(), "ws-1", gomock.Any()).Return(decimal.Zero, nil).AnyTimes()
				m.inventory.EXPECT().CountAtOrBelow(gomock.Any(), "ws-1", int64(0)).Return(int64(0), errors.New("timeout")).AnyTimes()
				m.inventory.EXPECT().CountAtOrBelow(gomock.Any(), "ws-1", int64(LowStockLimit)).Return(int64(0), nil).AnyTimes()
				m.daily.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: "contando rupturas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(ctrl)
			tt.setup(m)

			metric, err := service.ComputeDailyMetric(context.Background(), "ws-1", testDay)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, metric)
				return
			}
			require.NoError(t, err)
			tt.validate(t, metric)
		})
	}
}

func TestService_MaterializeDayIsIdempotent(t *testing.T) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	m.expectSources(
		[]domain.Order{{ID: "o1", Total: dec("70")}, {ID: "o2", Total: dec("30")}},
		[]domain.OrderItem{
			{OrderID: "o1", ProductID: "p1", Quantity: 2, Total: dec("70")},
			{OrderID: "o2", ProductID: "p2", Quantity: 1, Total: dec("30")},
		},
	)

	var daily []domain.DailyMetric
	m.daily.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, metric *domain.DailyMetric) error {
			daily = append(daily, *metric)
			return nil
		},
	).Times(2)

	var skus []domain.SkuDailyMetric
	m.sku.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, metric *domain.SkuDailyMetric) error {
			skus = append(skus, *metric)
			return nil
		},
	).Times(4)

	first, err := service.MaterializeDay(context.Background(), "ws-1", testDay)
	require.NoError(t, err)
	second, err := service.MaterializeDay(context.Background(), "ws-1", testDay)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "2024-03-10", first.Day)
	assert.Equal(t, 2, first.SkuUpserted)

	require.Len(t, daily, 2)
	assert.Equal(t, daily[0], daily[1])
	assert.Equal(t, "100", daily[0].Revenue.String())
	assert.Equal(t, int64(3), daily[0].Units)
	assert.True(t, daily[0].GrossMarginPercent.Equal(dec("88")))

	require.Len(t, skus, 4)
	assert.Equal(t, skus[:2], skus[2:])

	fees := skus[0].FeesAmount.Add(skus[1].FeesAmount)
	assert.True(t, fees.Equal(dec("9")))
	assert.Equal(t, "6.3", skus[0].FeesAmount.String())
	assert.Equal(t, int64(30), skus[0].StockEnd)
	assert.True(t, skus[1].RefundsAmount.Equal(decimal.RequireFromString("0.9")))
}
