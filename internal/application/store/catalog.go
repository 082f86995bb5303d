package store

import (
	"context"
	"fmt"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

func productID(p entity.Product) entity.ID    { return p.ID }
func clientID(c entity.Client) entity.ID      { return c.ID }
func supplierID(sp entity.Supplier) entity.ID { return sp.ID }

// AddProduct agrega el producto al inicio de la lista. Si no trae id se le asigna uno.
func (s *Store) AddProduct(ctx context.Context, p entity.Product) entity.Product {
	p.ID = newID(p.ID)

	s.mu.Lock()
	s.state.Products = prepend(s.state.Products, p)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("products.insert", p.ID, func(ctx context.Context) error {
		return s.gw.Products.Insert(ctx, p)
	})
	return p
}

// UpdateProduct reemplaza el producto con el mismo id.
func (s *Store) UpdateProduct(ctx context.Context, p entity.Product) error {
	s.mu.Lock()
	i := indexOf(s.state.Products, p.ID, productID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("producto %s: %w", p.ID, domain.ErrNotFound)
	}
	p.ID = s.state.Products[i].ID
	s.state.Products[i] = p
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("products.update", p.ID, func(ctx context.Context) error {
		return s.gw.Products.Update(ctx, p.ID, p)
	})
	return nil
}

// DeleteProduct quita el producto de la lista. Las ventas y compras que lo referencian no se tocan.
func (s *Store) DeleteProduct(ctx context.Context, id entity.ID) error {
	s.mu.Lock()
	i := indexOf(s.state.Products, id, productID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	id = s.state.Products[i].ID
	s.state.Products = removeAt(s.state.Products, i)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("products.delete", id, func(ctx context.Context) error {
		return s.gw.Products.Delete(ctx, id)
	})
	return nil
}

// AddClient agrega el cliente al inicio de la lista.
func (s *Store) AddClient(ctx context.Context, c entity.Client) entity.Client {
	c.ID = newID(c.ID)

	s.mu.Lock()
	s.state.Clients = prepend(s.state.Clients, c)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("clients.insert", c.ID, func(ctx context.Context) error {
		return s.gw.Clients.Insert(ctx, c)
	})
	return c
}

// UpdateClient reemplaza el cliente con el mismo id.
func (s *Store) UpdateClient(ctx context.Context, c entity.Client) error {
	s.mu.Lock()
	i := indexOf(s.state.Clients, c.ID, clientID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("cliente %s: %w", c.ID, domain.ErrNotFound)
	}
	c.ID = s.state.Clients[i].ID
	s.state.Clients[i] = c
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("clients.update", c.ID, func(ctx context.Context) error {
		return s.gw.Clients.Update(ctx, c.ID, c)
	})
	return nil
}

// DeleteClient quita el cliente. Las ventas conservan su copia desnormalizada del nombre y documento.
func (s *Store) DeleteClient(ctx context.Context, id entity.ID) error {
	s.mu.Lock()
	i := indexOf(s.state.Clients, id, clientID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	id = s.state.Clients[i].ID
	s.state.Clients = removeAt(s.state.Clients, i)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("clients.delete", id, func(ctx context.Context) error {
		return s.gw.Clients.Delete(ctx, id)
	})
	return nil
}

// AddSupplier agrega el proveedor al inicio de la lista.
func (s *Store) AddSupplier(ctx context.Context, sp entity.Supplier) entity.Supplier {
	sp.ID = newID(sp.ID)

	s.mu.Lock()
	s.state.Suppliers = prepend(s.state.Suppliers, sp)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("suppliers.insert", sp.ID, func(ctx context.Context) error {
		return s.gw.Suppliers.Insert(ctx, sp)
	})
	return sp
}

// UpdateSupplier reemplaza el proveedor con el mismo id.
func (s *Store) UpdateSupplier(ctx context.Context, sp entity.Supplier) error {
	s.mu.Lock()
	i := indexOf(s.state.Suppliers, sp.ID, supplierID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("proveedor %s: %w", sp.ID, domain.ErrNotFound)
	}
	sp.ID = s.state.Suppliers[i].ID
	s.state.Suppliers[i] = sp
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("suppliers.update", sp.ID, func(ctx context.Context) error {
		return s.gw.Suppliers.Update(ctx, sp.ID, sp)
	})
	return nil
}

// DeleteSupplier quita el proveedor.
func (s *Store) DeleteSupplier(ctx context.Context, id entity.ID) error {
	s.mu.Lock()
	i := indexOf(s.state.Suppliers, id, supplierID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("proveedor %s: %w", id, domain.ErrNotFound)
	}
	id = s.state.Suppliers[i].ID
	s.state.Suppliers = removeAt(s.state.Suppliers, i)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("suppliers.delete", id, func(ctx context.Context) error {
		return s.gw.Suppliers.Delete(ctx, id)
	})
	return nil
}
