package service

import (
	"fmt"
	"time"

	"go-pharmacy-inventory/internal/model"
	"go-pharmacy-inventory/internal/repository"
	"go-pharmacy-inventory/internal/stock"
	"go-pharmacy-inventory/internal/ws"
	"go-pharmacy-inventory/pkg/metrics"
	"go-pharmacy-inventory/pkg/validator"

	"go.uber.org/zap"
)

// EventPublisher receives change notifications after a write has committed.
type EventPublisher interface {
	Publish(evt ws.Event)
}

// ServiceConfig carries the ambient dependencies shared by every service.
type ServiceConfig struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func (c ServiceConfig) withDefaults() ServiceConfig {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type nopPublisher struct{}

func (nopPublisher) Publish(ws.Event) {}

type InventoryService interface {
	CreateProduct(req *model.Product) (*model.Product, error)
	UpdateProduct(id string, req *model.Product) (*model.Product, error)
	DeleteProduct(id string) error
	GetProduct(id string) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	ListProducts(q stock.ProductQuery) ([]stock.ProductRow, error)
	RecordTransaction(req *model.TransactionRequest) (*model.Transaction, error)
	GetAllTransactions() ([]model.Transaction, error)
	ListTransactions(q stock.TransactionQuery) ([]model.Transaction, error)
	GetTransactionByID(id string) (*model.Transaction, error)
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *repository.DB
	wsHub           EventPublisher
	metrics         *metrics.Metrics
	log             *zap.Logger
	now             func() time.Time
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *repository.DB, hub EventPublisher, cfg ServiceConfig) InventoryService {
	cfg = cfg.withDefaults()
	if hub == nil {
		hub = nopPublisher{}
	}
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		wsHub:           hub,
		metrics:         cfg.Metrics,
		log:             cfg.Logger.Named("inventory"),
		now:             cfg.Now,
	}
}

func (s *inventoryService) CreateProduct(req *model.Product) (*model.Product, error) {
	// 1. Validasi Struct Dasar
	if err := validator.Validate(req); err != nil {
		s.log.Debug("product rejected", zap.Error(err))
		return nil, err
	}

	// 2. Simpan (ID di-generate repository)
	product := *req
	if err := s.productRepo.Create(&product); err != nil {
		return nil, err
	}
	s.refreshCatalogSize()

	s.log.Info("product created", zap.String("product_id", product.ID), zap.String("name", product.Name))

	// 3. Broadcast ke WebSocket
	s.wsHub.Publish(ws.Event{
		Type:    ws.EventProductChange,
		Action:  "product_created",
		Message: fmt.Sprintf("Product '%s' added", product.Name),
		Data:    product,
	})

	return &product, nil
}

// UpdateProduct replaces every field of an existing product. The ledger is untouched:
// transactions keep the name, unit and price they were recorded with.
func (s *inventoryService) UpdateProduct(id string, req *model.Product) (*model.Product, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	updated := *req
	updated.ID = id
	var oldStock int

	err := s.db.Transaction(func(tx *repository.Tx) error {
		existing, err := s.productRepo.FindByIDTx(tx, id)
		if err != nil {
			return err
		}
		oldStock = existing.Quantity
		return s.productRepo.UpdateTx(tx, &updated)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product updated",
		zap.String("product_id", id),
		zap.Int("old_stock", oldStock),
		zap.Int("new_stock", updated.Quantity),
	)

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventProductChange,
		Action:  "product_updated",
		Message: fmt.Sprintf("Product '%s' updated", updated.Name),
		Data: map[string]any{
			"product":   updated,
			"old_stock": oldStock,
			"new_stock": updated.Quantity,
		},
	})

	return &updated, nil
}

// DeleteProduct is a no-op for unknown ids. Ledger entries of the product are kept.
func (s *inventoryService) DeleteProduct(id string) error {
	removed, err := s.productRepo.Delete(id)
	if err != nil || !removed {
		return err
	}
	s.refreshCatalogSize()
	s.log.Info("product deleted", zap.String("product_id", id))

	s.wsHub.Publish(ws.Event{
		Type:   ws.EventProductChange,
		Action: "product_deleted",
		Data:   map[string]string{"id": id},
	})
	return nil
}

func (s *inventoryService) GetProduct(id string) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *inventoryService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) ListProducts(q stock.ProductQuery) ([]stock.ProductRow, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return stock.ListProducts(products, q, s.now()), nil
}

// RecordTransaction appends a ledger entry and applies the stock movement as one unit:
// either both are visible afterwards or neither is.
func (s *inventoryService) RecordTransaction(req *model.TransactionRequest) (*model.Transaction, error) {
	// 1. Validasi Input
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var (
		created            model.Transaction
		oldStock, newStock int
		clamped            bool
	)

	// Gunakan Transaction Block (Atomic Operation)
	err := s.db.Transaction(func(tx *repository.Tx) error {
		product, err := s.productRepo.FindByIDTx(tx, req.ProductID)
		if err != nil {
			return err
		}
		if err := stock.CheckMovement(product.Quantity, req.Type, req.Quantity, product.Price); err != nil {
			return err
		}

		// A. Snapshot nama, unit, harga produk saat ini
		created = model.Transaction{
			ID:          s.transactionRepo.NextID(tx),
			ProductID:   product.ID,
			ProductName: product.Name,
			Type:        req.Type,
			Quantity:    req.Quantity,
			Unit:        product.Unit,
			Price:       product.Price,
			TotalAmount: int64(req.Quantity) * product.Price,
			Date:        model.DateOf(s.now()),
			Reference:   req.Reference,
			Notes:       req.Notes,
		}
		if req.Date != nil && !req.Date.IsZero() {
			created.Date = *req.Date
		}
		switch req.Type {
		case model.TxIncoming:
			supplier := req.Supplier
			created.Supplier = &supplier
		case model.TxOutgoing:
			customer := req.Customer
			created.Customer = &customer
		}

		// B. Simpan Log Transaksi
		if err := s.transactionRepo.Create(tx, &created); err != nil {
			return err
		}

		// C. Hitung & Update Stok Product
		oldStock = product.Quantity
		newStock, clamped = stock.ApplyMovement(product.Quantity, req.Type, req.Quantity)
		return s.productRepo.UpdateStock(tx, product.ID, newStock)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveTransaction(string(created.Type), created.TotalAmount)
	if clamped {
		s.metrics.StockClamped()
		s.log.Warn("outgoing quantity exceeds stock on hand, stock floored at zero",
			zap.String("transaction_id", created.ID),
			zap.String("product_id", created.ProductID),
			zap.Int("stock", oldStock),
			zap.Int("quantity", created.Quantity),
		)
	}
	s.log.Info("transaction recorded",
		zap.String("transaction_id", created.ID),
		zap.String("type", string(created.Type)),
		zap.String("product_id", created.ProductID),
		zap.Int("quantity", created.Quantity),
		zap.Int("new_stock", newStock),
	)

	// D. Broadcast ke WebSocket
	verb := "added"
	if created.Type == model.TxOutgoing {
		verb = "removed"
	}
	s.wsHub.Publish(ws.Event{
		Type:    ws.EventStockUpdate,
		Action:  "transaction_created",
		Message: fmt.Sprintf("%d %s of '%s' %s (%s)", created.Quantity, created.Unit, created.ProductName, verb, created.Reference),
		Data: map[string]any{
			"transaction": created,
			"old_stock":   oldStock,
			"new_stock":   newStock,
		},
	})

	return &created, nil
}

func (s *inventoryService) GetAllTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.FindAll()
}

func (s *inventoryService) ListTransactions(q stock.TransactionQuery) ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return stock.FilterTransactions(transactions, q), nil
}

func (s *inventoryService) GetTransactionByID(id string) (*model.Transaction, error) {
	return s.transactionRepo.FindByID(id)
}

func (s *inventoryService) refreshCatalogSize() {
	if products, err := s.productRepo.FindAll(); err == nil {
		s.metrics.SetCatalogSize(len(products))
	}
}
