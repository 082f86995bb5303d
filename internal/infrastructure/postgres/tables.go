package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/repository"
)

// Nombres de tabla y columnas siguen las claves JSON de la UI (camelCase entre comillas).

var productSpec = tableSpec[entity.Product]{
	name:    "products",
	columns: []string{"id", "name", "category", "unit", "price", "stock", "active", "lastUpdate"},
	orderBy: `"name"`,
	values: func(p entity.Product) []any {
		return []any{p.ID.String(), p.Name, p.Category, p.Unit, p.Price, p.Stock, p.Active, p.LastUpdate}
	},
	scan: func(row pgx.Row) (entity.Product, error) {
		var p entity.Product
		var id string
		err := row.Scan(&id, &p.Name, &p.Category, &p.Unit, &p.Price, &p.Stock, &p.Active, &p.LastUpdate)
		p.ID = entity.IDFrom(id)
		return p, err
	},
}

var clientSpec = tableSpec[entity.Client]{
	name:    "clients",
	columns: []string{"id", "name", "docType", "docNumber", "contact", "address", "active"},
	orderBy: `"name"`,
	values: func(c entity.Client) []any {
		return []any{c.ID.String(), c.Name, c.DocType, c.DocNumber, c.Contact, c.Address, c.Active}
	},
	scan: func(row pgx.Row) (entity.Client, error) {
		var c entity.Client
		var id string
		err := row.Scan(&id, &c.Name, &c.DocType, &c.DocNumber, &c.Contact, &c.Address, &c.Active)
		c.ID = entity.IDFrom(id)
		return c, err
	},
}

var supplierSpec = tableSpec[entity.Supplier]{
	name:    "suppliers",
	columns: []string{"id", "name", "ruc", "contact", "email", "address", "active"},
	orderBy: `"name"`,
	values: func(s entity.Supplier) []any {
		return []any{s.ID.String(), s.Name, s.RUC, s.Contact, s.Email, s.Address, s.Active}
	},
	scan: func(row pgx.Row) (entity.Supplier, error) {
		var s entity.Supplier
		var id string
		err := row.Scan(&id, &s.Name, &s.RUC, &s.Contact, &s.Email, &s.Address, &s.Active)
		s.ID = entity.IDFrom(id)
		return s, err
	},
}

var saleSpec = tableSpec[entity.Sale]{
	name: "sales",
	columns: []string{"id", "date", "guideNumber", "clientId", "clientDocType", "clientDocNumber", "clientName",
		"contact", "service", "documentType", "documentNumber", "docStatus", "saleStatus", "items", "total"},
	orderBy: `"date" DESC`,
	values: func(s entity.Sale) []any {
		items := s.Items
		if items == nil {
			items = []entity.SaleItem{}
		}
		return []any{s.ID.String(), s.Date, s.GuideNumber, s.ClientID.String(), s.ClientDocType, s.ClientDocNumber,
			s.ClientName, s.Contact, s.Service, s.DocumentType, s.DocumentNumber, s.DocStatus, s.SaleStatus, items, s.Total}
	},
	scan: func(row pgx.Row) (entity.Sale, error) {
		var s entity.Sale
		var id, clientID string
		err := row.Scan(&id, &s.Date, &s.GuideNumber, &clientID, &s.ClientDocType, &s.ClientDocNumber, &s.ClientName,
			&s.Contact, &s.Service, &s.DocumentType, &s.DocumentNumber, &s.DocStatus, &s.SaleStatus, &s.Items, &s.Total)
		s.ID = entity.IDFrom(id)
		s.ClientID = entity.IDFrom(clientID)
		return s, err
	},
}

var purchaseSpec = tableSpec[entity.Purchase]{
	name:    "purchases",
	columns: []string{"id", "date", "supplierId", "supplierName", "documentNumber", "items", "total", "status"},
	orderBy: `"date" DESC`,
	values: func(p entity.Purchase) []any {
		items := p.Items
		if items == nil {
			items = []entity.PurchaseItem{}
		}
		return []any{p.ID.String(), p.Date, p.SupplierID.String(), p.SupplierName, p.DocumentNumber, items, p.Total, p.Status}
	},
	scan: func(row pgx.Row) (entity.Purchase, error) {
		var p entity.Purchase
		var id, supplierID string
		err := row.Scan(&id, &p.Date, &supplierID, &p.SupplierName, &p.DocumentNumber, &p.Items, &p.Total, &p.Status)
		p.ID = entity.IDFrom(id)
		p.SupplierID = entity.IDFrom(supplierID)
		return p, err
	},
}

var userSpec = tableSpec[entity.SystemUser]{
	name:    "users",
	columns: []string{"id", "name", "dni", "phone", "functions", "username", "password", "role", "photo", "active"},
	orderBy: `"name"`,
	values: func(u entity.SystemUser) []any {
		return []any{u.ID.String(), u.Name, u.DNI, u.Phone, u.Functions, u.Username, u.Password, u.Role, u.Photo, u.Active}
	},
	scan: func(row pgx.Row) (entity.SystemUser, error) {
		var u entity.SystemUser
		var id string
		err := row.Scan(&id, &u.Name, &u.DNI, &u.Phone, &u.Functions, &u.Username, &u.Password, &u.Role, &u.Photo, &u.Active)
		u.ID = entity.IDFrom(id)
		return u, err
	},
}

var taskSpec = tableSpec[entity.OperationalTask]{
	name:    "tasks",
	columns: []string{"id", "date", "type", "description", "status", "frequency", "completedDates"},
	orderBy: `"date"`,
	values: func(t entity.OperationalTask) []any {
		dates := t.CompletedDates
		if dates == nil {
			dates = []string{}
		}
		return []any{t.ID.String(), t.Date, t.Type, t.Description, t.Status, t.Frequency, dates}
	},
	scan: func(row pgx.Row) (entity.OperationalTask, error) {
		var t entity.OperationalTask
		var id string
		err := row.Scan(&id, &t.Date, &t.Type, &t.Description, &t.Status, &t.Frequency, &t.CompletedDates)
		t.ID = entity.IDFrom(id)
		return t, err
	},
}

// NewGateway construye el gateway remoto con una tabla por entidad. Pasar pool o tx (Querier).
func NewGateway(q Querier) repository.Gateway {
	return repository.Gateway{
		Products:  newTable(q, productSpec),
		Clients:   newTable(q, clientSpec),
		Suppliers: newTable(q, supplierSpec),
		Sales:     newTable(q, saleSpec),
		Purchases: newTable(q, purchaseSpec),
		Users:     newTable(q, userSpec),
		Tasks:     newTable(q, taskSpec),
	}
}
