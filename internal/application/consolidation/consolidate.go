// Package consolidation contiene el batch que agrupa las órdenes sin
// consolidar por día calendario y las reduce a un registro de venta por día.
package consolidation

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
	"github.com/jhoicas/punto-venta-api/pkg/logger"
)

// ConsolidateUseCase consolida las ventas diarias: total del día, artículo más
// vendido y marcado de las órdenes fuente para no reprocesarlas.
type ConsolidateUseCase struct {
	orderRepo   repository.OrderRepository
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	comboRepo   repository.ComboRepository
	runLock     RunLock
	log         *logger.Logger
}

// NewConsolidateUseCase construye el caso de uso.
func NewConsolidateUseCase(
	orderRepo repository.OrderRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	comboRepo repository.ComboRepository,
	runLock RunLock,
	log *logger.Logger,
) *ConsolidateUseCase {
	return &ConsolidateUseCase{
		orderRepo:   orderRepo,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		comboRepo:   comboRepo,
		runLock:     runLock,
		log:         log,
	}
}

// itemTally conteo por nombre de artículo dentro de un día.
type itemTally struct {
	refID string
	name  string
	kind  entity.Kind
	count int
}

// Run agrupa todas las órdenes con is_consolidated = false por día calendario
// (YYYY-MM-DD, UTC) y por cada grupo persiste exactamente un registro de venta
// y marca las órdenes fuente. Idempotente: las órdenes ya marcadas quedan
// excluidas por el filtro inicial, así que una segunda pasada sin órdenes
// nuevas no produce filas.
//
// El fallo de un día se registra y no bloquea los demás días. Si el marcado
// falla después de crear la venta, ese día puede re-agregarse en una corrida
// posterior: brecha documentada, no fatal.
func (uc *ConsolidateUseCase) Run(ctx context.Context) ([]*entity.Sale, error) {
	release, err := uc.runLock.Obtain(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	groups, err := uc.orderRepo.GroupUnconsolidatedByDay(ctx)
	if err != nil {
		return nil, err
	}

	consolidated := make([]*entity.Sale, 0, len(groups))
	for _, group := range groups {
		sale, err := uc.consolidateDay(ctx, group)
		if err != nil {
			uc.log.Error().Err(err).Str("day", group.Day).Msg("consolidación del día fallida")
			continue
		}
		consolidated = append(consolidated, sale)
	}
	return consolidated, nil
}

// consolidateDay reduce un grupo diario a su registro de venta.
func (uc *ConsolidateUseCase) consolidateDay(ctx context.Context, group entity.DayGroup) (*entity.Sale, error) {
	total := decimal.Zero
	counts := make(map[string]*itemTally)
	var best *itemTally

	// El empate lo conserva el primer artículo encontrado en el orden de
	// iteración: estable, no aleatorio, porque solo un conteo estrictamente
	// mayor desplaza al líder.
	for _, order := range group.Orders {
		for _, item := range order.Items {
			total = total.Add(item.Price)
			t, ok := counts[item.Name]
			if !ok {
				t = &itemTally{refID: item.RefID, name: item.Name, kind: item.Kind}
				counts[item.Name] = t
			}
			t.count++
			if best == nil || t.count > best.count {
				best = t
			}
		}
	}

	// El registro queda fechado con la primera orden del día, no con la hora
	// de la corrida: el tablero filtra y agrupa por CreatedAt.
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		Day:       group.Day,
		Total:     total,
		CreatedAt: group.Orders[0].CreatedAt,
	}
	if best != nil {
		sale.BestSeller = uc.resolveBestSeller(ctx, best)
	}

	if err := uc.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(group.Orders))
	for _, order := range group.Orders {
		ids = append(ids, order.ID)
	}
	if err := uc.orderRepo.MarkConsolidated(ctx, ids); err != nil {
		// La venta ya existe: el día podría re-agregarse en otra corrida.
		uc.log.Warn().Err(err).Str("day", group.Day).
			Msg("venta creada pero órdenes sin marcar; posible doble agregación")
	}
	return sale, nil
}

// resolveBestSeller resuelve la instantánea del ganador vía el colaborador de
// productos o combos según el kind; para insumos no hay colaborador y queda la
// instantánea mínima de la línea.
func (uc *ConsolidateUseCase) resolveBestSeller(ctx context.Context, best *itemTally) entity.BestSeller {
	snapshot := entity.BestSeller{RefID: best.refID, Kind: best.kind, Name: best.name}

	switch best.kind {
	case entity.KindCombo:
		combo, err := uc.comboRepo.GetByName(ctx, best.name)
		if err != nil || combo == nil {
			uc.log.Warn().Err(err).Str("name", best.name).Msg("combo más vendido no resuelto")
			return snapshot
		}
		snapshot.RefID = combo.ID
		snapshot.ImageURL = combo.ImageURL
	case entity.KindProduct:
		product, err := uc.productRepo.GetByName(ctx, best.name)
		if err != nil || product == nil {
			uc.log.Warn().Err(err).Str("name", best.name).Msg("producto más vendido no resuelto")
			return snapshot
		}
		snapshot.RefID = product.ID
		snapshot.ImageURL = product.ImageURL
	}
	return snapshot
}
