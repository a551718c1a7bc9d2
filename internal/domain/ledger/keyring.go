package ledger

import (
	"sort"
	"sync"
)

// Keyring arena de mutexes por id de entidad. Serializa en el proceso las
// escrituras read-modify-write sobre una misma entidad; el nivel SQL añade
// además SELECT FOR UPDATE dentro de la transacción.
//
// Los mutexes se crean bajo demanda y nunca se liberan: el catálogo de un
// punto de venta es pequeño y estable.
type Keyring struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyring construye la arena vacía.
func NewKeyring() *Keyring {
	return &Keyring{locks: make(map[string]*sync.Mutex)}
}

func (k *Keyring) lockFor(id string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	return l
}

// LockAll adquiere los mutexes de todos los ids en orden lexicográfico
// (orden total: dos cascadas que comparten entidades nunca se bloquean en
// cruz). Devuelve la función que libera todos los locks en orden inverso.
func (k *Keyring) LockAll(ids ...string) func() {
	uniq := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			uniq[id] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(uniq))
	for id := range uniq {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, id := range sorted {
		l := k.lockFor(id)
		l.Lock()
		held = append(held, l)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
