package optimizer

// resolver.go — resolución batched de identificadores de click.
//
// El servicio externo acepta un máximo de identificadores por consulta, así
// que los IDs se parten en batches y cada batch se dispara en su propio
// goroutine. Los batches son disjuntos, de modo que el merge es una unión sin
// conflictos: el orden de finalización no afecta el contenido del mapping.

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alejandrodnm/adbot/internal/domain"
	"github.com/alejandrodnm/adbot/internal/ports"
)

// defaultBatchSize es el cap observado de identificadores por consulta externa.
const defaultBatchSize = 50

// Resolver construye el IdentityMapping de un run a partir del directorio.
type Resolver struct {
	directory ports.CampaignDirectory
	batchSize int
}

// NewResolver crea un Resolver. batchSize fuera de (0, 50] cae al cap de 50.
func NewResolver(directory ports.CampaignDirectory, batchSize int) *Resolver {
	if batchSize <= 0 || batchSize > defaultBatchSize {
		batchSize = defaultBatchSize
	}
	return &Resolver{directory: directory, batchSize: batchSize}
}

// Resolve devuelve un mapping TOTAL sobre los identificadores pedidos: cada
// uno acaba como keyword resuelta o como Unmapped(<id>) si el directorio no
// lo conoce o su batch falló. Un batch fallido degrada sus identificadores y
// el run continúa — nunca aborta los demás batches.
func (r *Resolver) Resolve(ctx context.Context, ids []string) map[string]string {
	unique := dedupe(ids)
	result := make(map[string]string, len(unique))
	if len(unique) == 0 {
		return result
	}

	batches := splitBatches(unique, r.batchSize)

	type batchResult struct {
		batch    []string
		resolved map[string]string
		err      error
	}

	resultCh := make(chan batchResult, len(batches))
	var wg sync.WaitGroup

	for _, batch := range batches {
		batch := batch
		wg.Add(1)
		go func() {
			defer wg.Done()
			resolved, err := r.directory.ResolveIdentifiers(ctx, batch)
			resultCh <- batchResult{batch: batch, resolved: resolved, err: err}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	unmapped := 0
	for br := range resultCh {
		if br.err != nil {
			slog.Warn("identifier batch resolution failed",
				"batch_size", len(br.batch),
				"err", br.err,
			)
		}
		for _, id := range br.batch {
			if kw, ok := br.resolved[id]; ok && kw != "" {
				result[id] = kw
			} else {
				result[id] = domain.UnmappedKeyword(id)
				unmapped++
			}
		}
	}

	slog.Debug("identifiers resolved",
		"requested", len(unique),
		"batches", len(batches),
		"unmapped", unmapped,
	)
	return result
}

// dedupe filtra identificadores vacíos y duplicados preservando el orden.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// splitBatches divide ids en slices de tamaño máximo size.
func splitBatches(ids []string, size int) [][]string {
	if size <= 0 {
		size = defaultBatchSize
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[i:end])
	}
	return batches
}
