// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, para desarrollo sin PostgreSQL y para los tests de los casos de
// uso. RunOrder/RunStock emulan la transacción con snapshot y restore del
// estado de stock: un error en el callback deja todo como estaba.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/punto-venta-api/internal/application/checkout"
	"github.com/jhoicas/punto-venta-api/internal/application/production"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

// Store almacén en memoria de todo el catálogo y las ventas.
type Store struct {
	mu       sync.RWMutex
	supplies map[string]*entity.Supply
	products map[string]*entity.Product
	combos   map[string]*entity.Combo
	extras   map[string]*entity.Extra
	orders   map[string]*entity.Order
	sales    map[string]*entity.Sale
	cashiers map[string]*entity.Cashier
}

// NewStore construye el almacén vacío.
func NewStore() *Store {
	return &Store{
		supplies: make(map[string]*entity.Supply),
		products: make(map[string]*entity.Product),
		combos:   make(map[string]*entity.Combo),
		extras:   make(map[string]*entity.Extra),
		orders:   make(map[string]*entity.Order),
		sales:    make(map[string]*entity.Sale),
		cashiers: make(map[string]*entity.Cashier),
	}
}

// ── Seed (desarrollo y tests) ─────────────────────────────────────────────────

// PutSupply inserta o reemplaza un insumo.
func (s *Store) PutSupply(supply *entity.Supply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *supply
	s.supplies[supply.ID] = &cp
}

// PutProduct inserta o reemplaza un producto.
func (s *Store) PutProduct(product *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *product
	cp.Supplies = append([]entity.Component(nil), product.Supplies...)
	s.products[product.ID] = &cp
}

// PutCombo inserta o reemplaza un combo.
func (s *Store) PutCombo(combo *entity.Combo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *combo
	cp.Products = append([]entity.Component(nil), combo.Products...)
	s.combos[combo.ID] = &cp
}

// PutExtra inserta o reemplaza un extra.
func (s *Store) PutExtra(extra *entity.Extra) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *extra
	cp.Products = append([]string(nil), extra.Products...)
	s.extras[extra.ID] = &cp
}

// PutOrder inserta o reemplaza una orden (seed de tests de consolidación).
func (s *Store) PutOrder(order *entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *order
	cp.Items = append([]entity.LineItem(nil), order.Items...)
	s.orders[order.ID] = &cp
}

// PutSale inserta o reemplaza una venta consolidada (seed de tests del dashboard).
func (s *Store) PutSale(sale *entity.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sale
	s.sales[sale.ID] = &cp
}

// ── repository.StockRepository ────────────────────────────────────────────────

var _ repository.StockRepository = (*Store)(nil)

// GetForUpdate devuelve el registro de stock; (nil, nil) si no existe.
// El snapshot de la pseudo-transacción cumple el rol del bloqueo de fila.
func (s *Store) GetForUpdate(ctx context.Context, ref entity.Ref) (*entity.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record(ref), nil
}

func (s *Store) record(ref entity.Ref) *entity.StockRecord {
	switch ref.Kind {
	case entity.KindSupply:
		if sp, ok := s.supplies[ref.ID]; ok {
			return sp.Record()
		}
	case entity.KindProduct:
		if p, ok := s.products[ref.ID]; ok {
			return p.Record()
		}
	case entity.KindCombo:
		if c, ok := s.combos[ref.ID]; ok {
			return c.Record()
		}
	}
	return nil
}

// UpdateStock persiste el nuevo stock de exactamente una entidad.
func (s *Store) UpdateStock(ctx context.Context, ref entity.Ref, stock int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ref.Kind {
	case entity.KindSupply:
		if sp, ok := s.supplies[ref.ID]; ok {
			sp.Stock = stock
			sp.UpdatedAt = time.Now().UTC()
			return nil
		}
	case entity.KindProduct:
		if p, ok := s.products[ref.ID]; ok {
			p.Stock = stock
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	case entity.KindCombo:
		if c, ok := s.combos[ref.ID]; ok {
			c.Stock = stock
			c.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("update stock: %s %s no existe", ref.Kind, ref.ID)
}

// Composition devuelve la receta del compuesto (vacía para insumos).
func (s *Store) Composition(ctx context.Context, ref entity.Ref) ([]entity.Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch ref.Kind {
	case entity.KindProduct:
		if p, ok := s.products[ref.ID]; ok {
			return append([]entity.Component(nil), p.Supplies...), nil
		}
	case entity.KindCombo:
		if c, ok := s.combos[ref.ID]; ok {
			return append([]entity.Component(nil), c.Products...), nil
		}
	}
	return nil, nil
}

// Delete elimina la entidad.
func (s *Store) Delete(ctx context.Context, ref entity.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ref.Kind {
	case entity.KindSupply:
		delete(s.supplies, ref.ID)
	case entity.KindProduct:
		delete(s.products, ref.ID)
	case entity.KindCombo:
		delete(s.combos, ref.ID)
	}
	return nil
}

// ── TxRunner (checkout y production) ─────────────────────────────────────────

var (
	_ checkout.TxRunner   = (*Store)(nil)
	_ production.TxRunner = (*Store)(nil)
)

// snapshot copia profunda del estado mutable por las cascadas de stock.
type snapshot struct {
	supplies map[string]*entity.Supply
	products map[string]*entity.Product
	combos   map[string]*entity.Combo
	orders   map[string]*entity.Order
}

func (s *Store) take() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		supplies: make(map[string]*entity.Supply, len(s.supplies)),
		products: make(map[string]*entity.Product, len(s.products)),
		combos:   make(map[string]*entity.Combo, len(s.combos)),
		orders:   make(map[string]*entity.Order, len(s.orders)),
	}
	for id, sp := range s.supplies {
		cp := *sp
		snap.supplies[id] = &cp
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, c := range s.combos {
		cp := *c
		snap.combos[id] = &cp
	}
	for id, o := range s.orders {
		cp := *o
		snap.orders[id] = &cp
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supplies = snap.supplies
	s.products = snap.products
	s.combos = snap.combos
	s.orders = snap.orders
}

// RunOrder emula la transacción de liquidación: un error restaura el snapshot.
func (s *Store) RunOrder(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
) error) error {
	snap := s.take()
	if err := fn(s, s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunStock emula la transacción de producción/reversión: un error restaura el snapshot.
func (s *Store) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
) error) error {
	snap := s.take()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// ── repository.OrderRepository ────────────────────────────────────────────────

var _ repository.OrderRepository = (*Store)(nil)

// Create persiste la orden liquidada.
func (s *Store) Create(ctx context.Context, order *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *order
	cp.Items = append([]entity.LineItem(nil), order.Items...)
	s.orders[order.ID] = &cp
	return nil
}

// GroupUnconsolidatedByDay agrupa las órdenes sin consolidar por día (UTC),
// ordenadas por fecha de creación como la consulta SQL.
func (s *Store) GroupUnconsolidatedByDay(ctx context.Context) ([]entity.DayGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []*entity.Order
	for _, o := range s.orders {
		if !o.IsConsolidated {
			cp := *o
			cp.Items = append([]entity.LineItem(nil), o.Items...)
			pending = append(pending, &cp)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })

	var groups []entity.DayGroup
	index := make(map[string]int)
	for _, o := range pending {
		day := o.CreatedAt.UTC().Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, entity.DayGroup{Day: day})
		}
		groups[i].Orders = append(groups[i].Orders, o)
	}
	return groups, nil
}

// MarkConsolidated marca las órdenes indicadas.
func (s *Store) MarkConsolidated(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if o, ok := s.orders[id]; ok {
			o.IsConsolidated = true
			o.UpdatedAt = time.Now().UTC()
		}
	}
	return nil
}

// ── repository.SaleRepository ─────────────────────────────────────────────────

// SaleStore vista del almacén como repositorio de ventas consolidadas. El
// método Create de cada puerto colisiona sobre un único receptor, así que cada
// repositorio secundario se expone como vista.
type SaleStore struct{ store *Store }

var _ repository.SaleRepository = SaleStore{}

// Sales devuelve la vista de ventas consolidadas.
func (s *Store) Sales() SaleStore { return SaleStore{store: s} }

// Create persiste el registro consolidado del día.
func (v SaleStore) Create(ctx context.Context, sale *entity.Sale) error {
	s := v.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.sales {
		if existing.Day == sale.Day {
			return fmt.Errorf("el día %s ya está consolidado", sale.Day)
		}
	}
	cp := *sale
	s.sales[sale.ID] = &cp
	return nil
}

// FindByCreatedRange devuelve las ventas consolidadas creadas en [start, end].
func (v SaleStore) FindByCreatedRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	s := v.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sales []*entity.Sale
	for _, sale := range s.sales {
		if sale.CreatedAt.Before(start) || sale.CreatedAt.After(end) {
			continue
		}
		cp := *sale
		sales = append(sales, &cp)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].CreatedAt.Before(sales[j].CreatedAt) })
	return sales, nil
}

// ── repository.CashierRepository ──────────────────────────────────────────────

// CashierStore vista del almacén como repositorio de sesiones de caja.
type CashierStore struct{ store *Store }

var _ repository.CashierRepository = CashierStore{}

// Cashiers devuelve la vista de sesiones de caja.
func (s *Store) Cashiers() CashierStore { return CashierStore{store: s} }

// Create persiste la sesión de caja.
func (v CashierStore) Create(ctx context.Context, cashier *entity.Cashier) error {
	s := v.store
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *cashier
	s.cashiers[cashier.ID] = &cp
	return nil
}

// FindOpen devuelve la sesión abierta; (nil, nil) si no hay ninguna.
func (v CashierStore) FindOpen(ctx context.Context) (*entity.Cashier, error) {
	s := v.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cashiers {
		if c.Status == entity.CashierStatusOpen {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// IncrementAmount suma el total de una venta al acumulado de la sesión.
func (v CashierStore) IncrementAmount(ctx context.Context, id string, delta decimal.Decimal) error {
	s := v.store
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cashiers[id]
	if !ok {
		return fmt.Errorf("caja %s no existe", id)
	}
	c.Amount = c.Amount.Add(delta)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete elimina la sesión y la devuelve; (nil, nil) si no existe.
func (v CashierStore) Delete(ctx context.Context, id string) (*entity.Cashier, error) {
	s := v.store
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cashiers[id]
	if !ok {
		return nil, nil
	}
	delete(s.cashiers, id)
	cp := *c
	return &cp, nil
}

// ── Vistas de catálogo ────────────────────────────────────────────────────────

// SupplyStore vista del almacén como repositorio de insumos.
type SupplyStore struct{ store *Store }

var _ repository.SupplyRepository = SupplyStore{}

// Supplies devuelve la vista de insumos.
func (s *Store) Supplies() SupplyStore { return SupplyStore{store: s} }

// GetByID devuelve un insumo; (nil, nil) si no existe.
func (v SupplyStore) GetByID(ctx context.Context, id string) (*entity.Supply, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	if sp, ok := v.store.supplies[id]; ok {
		cp := *sp
		return &cp, nil
	}
	return nil, nil
}

// List devuelve todos los insumos ordenados por nombre.
func (v SupplyStore) List(ctx context.Context) ([]*entity.Supply, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	var supplies []*entity.Supply
	for _, sp := range v.store.supplies {
		cp := *sp
		supplies = append(supplies, &cp)
	}
	sort.Slice(supplies, func(i, j int) bool { return supplies[i].Name < supplies[j].Name })
	return supplies, nil
}

// ProductStore vista del almacén como repositorio de productos.
type ProductStore struct{ store *Store }

var _ repository.ProductRepository = ProductStore{}

// Products devuelve la vista de productos.
func (s *Store) Products() ProductStore { return ProductStore{store: s} }

// GetByID devuelve un producto; (nil, nil) si no existe.
func (v ProductStore) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	if p, ok := v.store.products[id]; ok {
		return copyProduct(p), nil
	}
	return nil, nil
}

// GetByName devuelve un producto por nombre; (nil, nil) si no existe.
func (v ProductStore) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	for _, p := range v.store.products {
		if p.Name == name {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

// List devuelve todos los productos ordenados por nombre.
func (v ProductStore) List(ctx context.Context) ([]*entity.Product, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	var products []*entity.Product
	for _, p := range v.store.products {
		products = append(products, copyProduct(p))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

// ComboStore vista del almacén como repositorio de combos.
type ComboStore struct{ store *Store }

var _ repository.ComboRepository = ComboStore{}

// Combos devuelve la vista de combos.
func (s *Store) Combos() ComboStore { return ComboStore{store: s} }

// GetByID devuelve un combo; (nil, nil) si no existe.
func (v ComboStore) GetByID(ctx context.Context, id string) (*entity.Combo, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	if c, ok := v.store.combos[id]; ok {
		return copyCombo(c), nil
	}
	return nil, nil
}

// GetByName devuelve un combo por nombre; (nil, nil) si no existe.
func (v ComboStore) GetByName(ctx context.Context, name string) (*entity.Combo, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	for _, c := range v.store.combos {
		if c.Name == name {
			return copyCombo(c), nil
		}
	}
	return nil, nil
}

// List devuelve todos los combos ordenados por nombre.
func (v ComboStore) List(ctx context.Context) ([]*entity.Combo, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	var combos []*entity.Combo
	for _, c := range v.store.combos {
		combos = append(combos, copyCombo(c))
	}
	sort.Slice(combos, func(i, j int) bool { return combos[i].Name < combos[j].Name })
	return combos, nil
}

// ExtraStore vista del almacén como repositorio de extras.
type ExtraStore struct{ store *Store }

var _ repository.ExtraRepository = ExtraStore{}

// Extras devuelve la vista de extras.
func (s *Store) Extras() ExtraStore { return ExtraStore{store: s} }

// FindByProductID devuelve los extras que referencian el producto dado.
func (v ExtraStore) FindByProductID(ctx context.Context, productID string) ([]*entity.Extra, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	var extras []*entity.Extra
	for _, e := range v.store.extras {
		for _, pid := range e.Products {
			if pid == productID {
				cp := *e
				extras = append(extras, &cp)
				break
			}
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].Name < extras[j].Name })
	return extras, nil
}

// List devuelve todos los extras ordenados por nombre.
func (v ExtraStore) List(ctx context.Context) ([]*entity.Extra, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	var extras []*entity.Extra
	for _, e := range v.store.extras {
		cp := *e
		extras = append(extras, &cp)
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].Name < extras[j].Name })
	return extras, nil
}

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Supplies = append([]entity.Component(nil), p.Supplies...)
	return &cp
}

func copyCombo(c *entity.Combo) *entity.Combo {
	cp := *c
	cp.Products = append([]entity.Component(nil), c.Products...)
	return &cp
}
