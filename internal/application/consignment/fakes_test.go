package consignment_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/opme-consignado/internal/domain"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	"github.com/jhoicas/opme-consignado/internal/domain/repository"
)

// memStore simula la base: las escrituras de una tx solo se vuelven visibles al commit.
type memStore struct {
	mu      sync.Mutex
	headers map[string]entity.NFe
	items   []entity.NFeItem
	writes  int

	failItemAt int   // 1-based; 0 = nunca
	findErr    error // error de FindHeaderByNumber
	// raceNumber simula que otra carga insertó el número entre la consulta y el insert.
	raceNumber string
}

func newMemStore() *memStore {
	return &memStore{headers: map[string]entity.NFe{}}
}

func (s *memStore) RunNFe(ctx context.Context, fn func(repository.NFeRepository) error) error {
	tx := &memTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range tx.headers {
		s.headers[h.Number] = h
	}
	s.items = append(s.items, tx.items...)
	return nil
}

func (s *memStore) itemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type memTx struct {
	store   *memStore
	headers []entity.NFe
	items   []entity.NFeItem
}

func (t *memTx) FindHeaderByNumber(ctx context.Context, number string) (*entity.NFe, error) {
	if t.store.findErr != nil {
		return nil, t.store.findErr
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if h, ok := t.store.headers[number]; ok {
		return &h, nil
	}
	return nil, nil
}

func (t *memTx) CreateHeader(ctx context.Context, n *entity.NFe) error {
	t.store.mu.Lock()
	t.store.writes++
	t.store.mu.Unlock()
	if n.Number == t.store.raceNumber {
		return errors.Join(errors.New("nfe already exists"), domain.ErrDuplicate)
	}
	t.headers = append(t.headers, *n)
	return nil
}

func (t *memTx) CreateItem(ctx context.Context, item *entity.NFeItem) error {
	t.store.mu.Lock()
	t.store.writes++
	t.store.mu.Unlock()
	if t.store.failItemAt > 0 && len(t.items)+1 == t.store.failItemAt {
		return errors.New("disk full")
	}
	t.items = append(t.items, *item)
	return nil
}

// stubParser devuelve siempre el mismo resultado.
type stubParser struct {
	nfe *entity.NFe
	err error
}

func (p stubParser) Parse(raw []byte) (*entity.NFe, error) { return p.nfe, p.err }

// stubMovements repositorio de movimientos en memoria.
type stubMovements struct {
	movs []entity.StoredMovement
	err  error
	// lastFilter registra el filtro recibido.
	lastFilter string
}

func (r *stubMovements) AllMovements(ctx context.Context, recipientTaxID string) ([]entity.StoredMovement, error) {
	r.lastFilter = recipientTaxID
	if r.err != nil {
		return nil, r.err
	}
	if recipientTaxID == "" {
		return r.movs, nil
	}
	out := []entity.StoredMovement{}
	for _, m := range r.movs {
		if m.RecipientTaxID == recipientTaxID {
			out = append(out, m)
		}
	}
	return out, nil
}
