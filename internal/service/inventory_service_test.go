package service

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"go-pharmacy-inventory/internal/model"
	"go-pharmacy-inventory/internal/repository"
	"go-pharmacy-inventory/internal/stock"
	"go-pharmacy-inventory/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testNow = time.Date(2025, time.June, 15, 9, 0, 0, 0, time.FixedZone("WIB", 7*60*60))

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *recordingPublisher) Publish(evt ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) last() ws.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type fixture struct {
	db     *repository.DB
	svc    InventoryService
	events *recordingPublisher
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	db := repository.NewDB()
	events := &recordingPublisher{}
	svc := NewInventoryService(
		repository.NewProductRepo(db),
		repository.NewTransactionRepo(db),
		db,
		events,
		ServiceConfig{Logger: zap.New(core), Now: func() time.Time { return testNow }},
	)
	return &fixture{db: db, svc: svc, events: events, logs: logs}
}

func paracetamol() *model.Product {
	return &model.Product{
		Name:        "Paracetamol 500mg",
		Category:    model.CategoryMedicine,
		Type:        "Tablet",
		Quantity:    500,
		Unit:        "tablets",
		MinStock:    100,
		Price:       5000,
		Supplier:    "PT Kimia Farma",
		ExpiryDate:  model.MustDate("2025-12-31"),
		BatchNumber: "PARA-2024-001",
		StorageType: "Room Temperature",
	}
}

func (f *fixture) mustCreate(t *testing.T, p *model.Product) *model.Product {
	t.Helper()
	created, err := f.svc.CreateProduct(p)
	require.NoError(t, err)
	return created
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)

	created := f.mustCreate(t, paracetamol())

	assert.NotEmpty(t, created.ID)
	got, err := f.svc.GetProduct(created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
	assert.Equal(t, "product_created", f.events.last().Action)
}

func TestCreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.Product)
		field  string
	}{
		{"missing name", func(p *model.Product) { p.Name = "" }, "Product.Name"},
		{"negative quantity", func(p *model.Product) { p.Quantity = -1 }, "Product.Quantity"},
		{"negative min stock", func(p *model.Product) { p.MinStock = -5 }, "Product.MinStock"},
		{"negative price", func(p *model.Product) { p.Price = -100 }, "Product.Price"},
		{"unknown category", func(p *model.Product) { p.Category = "vaccine" }, "Product.Category"},
		{"missing expiry", func(p *model.Product) { p.ExpiryDate = model.Date{} }, "Product.ExpiryDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := paracetamol()
			tt.mutate(p)

			_, err := f.svc.CreateProduct(p)

			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrValidation))
			var ve *model.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)

			all, _ := f.svc.GetAllProducts()
			assert.Empty(t, all)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	created := f.mustCreate(t, paracetamol())

	edit := *created
	edit.Price = 6000
	edit.Quantity = 450
	updated, err := f.svc.UpdateProduct(created.ID, &edit)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), updated.Price)

	got, err := f.svc.GetProduct(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 450, got.Quantity)

	data := f.events.last().Data.(map[string]any)
	assert.Equal(t, 500, data["old_stock"])
	assert.Equal(t, 450, data["new_stock"])
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateProduct("missing", paracetamol())

	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestDeleteProduct_KeepsLedger(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, paracetamol())
	_, err := f.svc.RecordTransaction(&model.TransactionRequest{
		ProductID: p.ID, Type: model.TxOutgoing, Quantity: 5, Reference: "INV-1",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProduct(p.ID))
	assert.Equal(t, "product_deleted", f.events.last().Action)
	published := len(f.events.events)

	require.NoError(t, f.svc.DeleteProduct(p.ID), "deleting twice is a no-op")
	require.NoError(t, f.svc.DeleteProduct("missing"))
	assert.Len(t, f.events.events, published, "no event for a product that was not there")
	assert.Equal(t, 1, f.logs.FilterMessage("product deleted").Len())

	_, err = f.svc.GetProduct(p.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	txs, err := f.svc.GetAllTransactions()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, p.ID, txs[0].ProductID)
}

func TestRecordTransaction_OutgoingScenario(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, paracetamol())

	trx, err := f.svc.RecordTransaction(&model.TransactionRequest{
		ProductID: p.ID,
		Type:      model.TxOutgoing,
		Quantity:  50,
		Reference: "INV-1",
		Customer:  "Walk-in Customer",
	})
	require.NoError(t, err)

	assert.Equal(t, "TRX-001", trx.ID)
	assert.Equal(t, int64(250000), trx.TotalAmount)
	assert.Equal(t, "tablets", trx.Unit)
	assert.Equal(t, "Paracetamol 500mg", trx.ProductName)
	assert.Equal(t, "2025-06-15", trx.Date.String())
	assert.Nil(t, trx.Supplier)
	require.NotNil(t, trx.Customer)
	assert.Equal(t, "Walk-in Customer", *trx.Customer)

	got, err := f.svc.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 450, got.Quantity)

	evt := f.events.last()
	assert.Equal(t, ws.EventStockUpdate, evt.Type)
	assert.Equal(t, "transaction_created", evt.Action)
}

func TestRecordTransaction_Incoming(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, paracetamol())
	date := model.MustDate("2025-06-01")

	trx, err := f.svc.RecordTransaction(&model.TransactionRequest{
		ProductID: p.ID,
		Type:      model.TxIncoming,
		Quantity:  200,
		Reference: "PO-2024-001",
		Supplier:  "PT Kimia Farma",
		Date:      &date,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", trx.Date.String())
	assert.Nil(t, trx.Customer)
	require.NotNil(t, trx.Supplier)
	assert.Equal(t, "PT Kimia Farma", *trx.Supplier)

	got, _ := f.svc.GetProduct(p.ID)
	assert.Equal(t, 700, got.Quantity)
}

func TestRecordTransaction_OversellFloorsAtZero(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, paracetamol())

	trx, err := f.svc.RecordTransaction(&model.TransactionRequest{
		ProductID: p.ID, Type: model.TxOutgoing, Quantity: 600, Reference: "INV-2",
	})
	require.NoError(t, err)
	assert.Equal(t, 600, trx.Quantity)
	assert.Equal(t, int64(3000000), trx.TotalAmount)

	got, _ := f.svc.GetProduct(p.ID)
	assert.Equal(t, 0, got.Quantity)

	warned := f.logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warned, 1)
	assert.Equal(t, int64(500), warned[0].ContextMap()["stock"])
}

func TestRecordTransaction_PriceSnapshotSurvivesEdits(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, paracetamol())

	_, err := f.svc.RecordTransaction(&model.TransactionRequest{
		ProductID: p.ID, Type: model.TxIncoming, Quantity: 10, Reference: "PO-1",
	})
	require.NoError(t, err)

	edit := *p
	edit.Name = "Paracetamol 500mg (Generic)"
	edit.Price = 9000
	edit.Unit = "strips"
	_, err = f.svc.UpdateProduct(p.ID, &edit)
	require.NoError(t, err)

	txs, err := f.svc.GetAllTransactions()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Paracetamol 500mg", txs[0].ProductName)
	assert.Equal(t, int64(5000), txs[0].Price)
	assert.Equal(t, "tablets", txs[0].Unit)
	assert.Equal(t, int64(50000), txs[0].TotalAmount)

	trx, err := f.svc.RecordTransaction(&model.TransactionRequest{
		ProductID: p.ID, Type: model.TxIncoming, Quantity: 10, Reference: "PO-2",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(90000), trx.TotalAmount)
}

func TestRecordTransaction_RejectionsLeaveStateUntouched(t *testing.T) {
	tests := []struct {
		name    string
		req     func(productID string) *model.TransactionRequest
		wantErr error
	}{
		{"zero quantity", func(id string) *model.TransactionRequest {
			return &model.TransactionRequest{ProductID: id, Type: model.TxIncoming, Quantity: 0, Reference: "X"}
		}, model.ErrValidation},
		{"negative quantity", func(id string) *model.TransactionRequest {
			return &model.TransactionRequest{ProductID: id, Type: model.TxOutgoing, Quantity: -3, Reference: "X"}
		}, model.ErrValidation},
		{"unknown type", func(id string) *model.TransactionRequest {
			return &model.TransactionRequest{ProductID: id, Type: "adjustment", Quantity: 1, Reference: "X"}
		}, model.ErrValidation},
		{"missing reference", func(id string) *model.TransactionRequest {
			return &model.TransactionRequest{ProductID: id, Type: model.TxIncoming, Quantity: 1}
		}, model.ErrValidation},
		{"unknown product", func(string) *model.TransactionRequest {
			return &model.TransactionRequest{ProductID: "missing", Type: model.TxIncoming, Quantity: 1, Reference: "X"}
		}, model.ErrNotFound},
		{"incoming overflows stock level", func(id string) *model.TransactionRequest {
			return &model.TransactionRequest{ProductID: id, Type: model.TxIncoming, Quantity: math.MaxInt - 499, Reference: "X"}
		}, model.ErrValidation},
		{"outgoing total amount overflows", func(id string) *model.TransactionRequest {
			return &model.TransactionRequest{ProductID: id, Type: model.TxOutgoing, Quantity: math.MaxInt, Reference: "X"}
		}, model.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.mustCreate(t, paracetamol())
			before := f.db.Snapshot()

			_, err := f.svc.RecordTransaction(tt.req(p.ID))

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, before, f.db.Snapshot())
		})
	}
}

func TestRecordTransaction_SequentialIDs(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, paracetamol())

	for i := 1; i <= 12; i++ {
		trx, err := f.svc.RecordTransaction(&model.TransactionRequest{
			ProductID: p.ID, Type: model.TxIncoming, Quantity: 1, Reference: "PO",
		})
		require.NoError(t, err)
		assert.Equal(t, model.TransactionID(i), trx.ID)
	}

	txs, _ := f.svc.GetAllTransactions()
	assert.Equal(t, "TRX-012", txs[0].ID, "newest first")
	assert.Equal(t, "TRX-001", txs[11].ID)
}

func TestRecordTransaction_ConcurrentOutgoingNeverGoesNegative(t *testing.T) {
	f := newFixture(t)
	p := paracetamol()
	p.Quantity = 100
	p = f.mustCreate(t, p)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RecordTransaction(&model.TransactionRequest{
				ProductID: p.ID, Type: model.TxOutgoing, Quantity: 3, Reference: "INV",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _ := f.svc.GetProduct(p.ID)
	assert.Equal(t, 0, got.Quantity)
	txs, _ := f.svc.GetAllTransactions()
	assert.Len(t, txs, 40)
}

func TestListProductsAndTransactions(t *testing.T) {
	f := newFixture(t)
	p := f.mustCreate(t, paracetamol())
	vit := paracetamol()
	vit.Name = "Vitamin C 1000mg"
	vit.Category = model.CategorySupplement
	vit.Quantity = 80
	f.mustCreate(t, vit)

	rows, err := f.svc.ListProducts(stock.ProductQuery{Category: model.CategorySupplement})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].LowStock)

	_, err = f.svc.RecordTransaction(&model.TransactionRequest{ProductID: p.ID, Type: model.TxIncoming, Quantity: 1, Reference: "PO-9"})
	require.NoError(t, err)
	_, err = f.svc.RecordTransaction(&model.TransactionRequest{ProductID: p.ID, Type: model.TxOutgoing, Quantity: 1, Reference: "INV-9"})
	require.NoError(t, err)

	out, err := f.svc.ListTransactions(stock.TransactionQuery{Type: model.TxOutgoing})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "INV-9", out[0].Reference)

	got, err := f.svc.GetTransactionByID("TRX-001")
	require.NoError(t, err)
	assert.Equal(t, "PO-9", got.Reference)
}
