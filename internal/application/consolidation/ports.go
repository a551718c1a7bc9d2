package consolidation

import "context"

// RunLock garantiza a lo sumo una corrida de consolidación activa a la vez.
// La implementación redis usa redislock; la local, un TryLock en proceso.
type RunLock interface {
	// Obtain adquiere el lock y devuelve la función que lo libera.
	// Falla con domain.ErrConflict si otra corrida está activa.
	Obtain(ctx context.Context) (release func(), err error)
}
