package store

import (
	"context"
	"fmt"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

func saleID(v entity.Sale) entity.ID         { return v.ID }
func purchaseID(p entity.Purchase) entity.ID { return p.ID }

// AddSale registra la venta (más reciente primero), recalcula sus totales y descuenta del stock
// la cantidad total vendida de cada producto. Las líneas de productos desconocidos no afectan stock.
func (s *Store) AddSale(ctx context.Context, sale entity.Sale) entity.Sale {
	sale.ID = newID(sale.ID)
	sale.Items = append([]entity.SaleItem(nil), sale.Items...)
	sale.Recalculate()
	if sale.SaleStatus == "" {
		sale.SaleStatus = entity.SaleStatusPendiente
	}

	s.mu.Lock()
	touched := s.adjustStockLocked(sale.Quantities(), -1)
	s.state.Sales = prepend(s.state.Sales, sale)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("sales.insert", sale.ID, func(ctx context.Context) error {
		return s.gw.Sales.Insert(ctx, sale)
	})
	s.pushProducts(touched)
	return sale
}

// UpdateSale reemplaza la venta y recalcula totales. El stock no se recalcula al editar.
func (s *Store) UpdateSale(ctx context.Context, sale entity.Sale) (entity.Sale, error) {
	sale.Items = append([]entity.SaleItem(nil), sale.Items...)
	sale.Recalculate()

	s.mu.Lock()
	i := indexOf(s.state.Sales, sale.ID, saleID)
	if i < 0 {
		s.mu.Unlock()
		return entity.Sale{}, fmt.Errorf("venta %s: %w", sale.ID, domain.ErrNotFound)
	}
	sale.ID = s.state.Sales[i].ID
	s.state.Sales[i] = sale
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("sales.update", sale.ID, func(ctx context.Context) error {
		return s.gw.Sales.Update(ctx, sale.ID, sale)
	})
	return sale, nil
}

// CancelSale anula la venta (la conserva con estado Anulado).
// El stock descontado al registrarla no se repone.
func (s *Store) CancelSale(ctx context.Context, id entity.ID) (entity.Sale, error) {
	s.mu.Lock()
	i := indexOf(s.state.Sales, id, saleID)
	if i < 0 {
		s.mu.Unlock()
		return entity.Sale{}, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	s.state.Sales[i].SaleStatus = entity.SaleStatusAnulado
	sale := s.state.Sales[i]
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("sales.cancel", sale.ID, func(ctx context.Context) error {
		return s.gw.Sales.Update(ctx, sale.ID, sale)
	})
	return sale, nil
}

// AddPurchase registra la compra y suma al stock la cantidad comprada de cada producto.
func (s *Store) AddPurchase(ctx context.Context, p entity.Purchase) entity.Purchase {
	p.ID = newID(p.ID)
	p.Items = append([]entity.PurchaseItem(nil), p.Items...)
	p.Recalculate()
	if p.Status == "" {
		p.Status = entity.PurchaseStatusCompletado
	}

	s.mu.Lock()
	touched := s.adjustStockLocked(p.Quantities(), 1)
	s.state.Purchases = prepend(s.state.Purchases, p)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("purchases.insert", p.ID, func(ctx context.Context) error {
		return s.gw.Purchases.Insert(ctx, p)
	})
	s.pushProducts(touched)
	return p
}

// CancelPurchase anula la compra. Igual que en ventas, el stock no se revierte.
func (s *Store) CancelPurchase(ctx context.Context, id entity.ID) (entity.Purchase, error) {
	s.mu.Lock()
	i := indexOf(s.state.Purchases, id, purchaseID)
	if i < 0 {
		s.mu.Unlock()
		return entity.Purchase{}, fmt.Errorf("compra %s: %w", id, domain.ErrNotFound)
	}
	s.state.Purchases[i].Status = entity.PurchaseStatusAnulado
	p := s.state.Purchases[i]
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("purchases.cancel", p.ID, func(ctx context.Context) error {
		return s.gw.Purchases.Update(ctx, p.ID, p)
	})
	return p, nil
}

// adjustStockLocked aplica sign × cantidad a cada producto conocido y devuelve los productos modificados.
func (s *Store) adjustStockLocked(qty map[entity.ID]int, sign int) []entity.Product {
	if len(qty) == 0 {
		return nil
	}
	var touched []entity.Product
	for i := range s.state.Products {
		q, ok := qty[entity.IDFrom(s.state.Products[i].ID)]
		if !ok {
			continue
		}
		s.state.Products[i].Stock += sign * q
		touched = append(touched, s.state.Products[i])
	}
	return touched
}

// pushProducts envía al remoto el nuevo stock de los productos tocados por una venta o compra.
func (s *Store) pushProducts(products []entity.Product) {
	for _, p := range products {
		s.remote.Go("products.stock", p.ID, func(ctx context.Context) error {
			return s.gw.Products.Update(ctx, p.ID, p)
		})
	}
}
