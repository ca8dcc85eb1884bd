// Package cache guarda en memoria el árbol de taxonomía ya construido.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jhoicas/vendor-directory/internal/application/usecase"
	"github.com/jhoicas/vendor-directory/internal/domain/taxonomy"
)

var _ usecase.TaxonomyCache = (*TaxonomyCache)(nil)

const (
	cacheName = "taxonomy"
	treeKey   = "tree"
)

// Observer recibe aciertos y fallos de caché (métricas).
type Observer interface {
	CacheHit(cache string)
	CacheMiss(cache string)
}

// TaxonomyCache implementa usecase.TaxonomyCache sobre go-cache.
type TaxonomyCache struct {
	c        *gocache.Cache
	observer Observer
}

// NewTaxonomyCache crea la caché. ttl <= 0 significa sin expiración. observer puede ser nil.
func NewTaxonomyCache(ttl time.Duration, observer Observer) *TaxonomyCache {
	if ttl <= 0 {
		return &TaxonomyCache{c: gocache.New(gocache.NoExpiration, 0), observer: observer}
	}
	return &TaxonomyCache{c: gocache.New(ttl, 2*ttl), observer: observer}
}

// Get devuelve el árbol si sigue vigente.
func (tc *TaxonomyCache) Get() (*taxonomy.Tree, bool) {
	if v, ok := tc.c.Get(treeKey); ok {
		if tree, ok := v.(*taxonomy.Tree); ok {
			tc.hit()
			return tree, true
		}
	}
	tc.miss()
	return nil, false
}

// Set guarda el árbol con el TTL por defecto.
func (tc *TaxonomyCache) Set(tree *taxonomy.Tree) {
	tc.c.SetDefault(treeKey, tree)
}

// Invalidate descarta el árbol.
func (tc *TaxonomyCache) Invalidate() {
	tc.c.Delete(treeKey)
}

func (tc *TaxonomyCache) hit() {
	if tc.observer != nil {
		tc.observer.CacheHit(cacheName)
	}
}

func (tc *TaxonomyCache) miss() {
	if tc.observer != nil {
		tc.observer.CacheMiss(cacheName)
	}
}
