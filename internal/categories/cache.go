// Package categories maintains the AI-generated browsing categories shown on
// the home page. Generation is slow and rate-limited, so the list is cached
// in memory and refreshed on a cron schedule instead of per request.
package categories

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/recetario/internal/entities"
)

// Generator produces the category list.
type Generator interface {
	GenerateCategories(ctx context.Context, n int) ([]entities.Category, error)
}

type Cache struct {
	gateway Generator
	count   int

	cron    *cron.Cron
	entryID cron.EntryID

	mu         sync.RWMutex
	categories []entities.Category
	isRunning  bool
}

func NewCache(gateway Generator, count int) *Cache {
	return &Cache{
		gateway: gateway,
		count:   count,
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start warms the cache in the background and schedules periodic refreshes.
func (c *Cache) Start(ctx context.Context, schedule string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return nil
	}

	entryID, err := c.cron.AddFunc(schedule, func() {
		if err := c.Refresh(context.Background()); err != nil {
			log.Printf("categories: scheduled refresh failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid category refresh schedule %q: %w", schedule, err)
	}
	c.entryID = entryID
	c.cron.Start()
	c.isRunning = true

	go func() {
		if err := c.Refresh(ctx); err != nil {
			log.Printf("categories: initial refresh failed: %v", err)
		}
	}()

	log.Printf("categories: refresh scheduled (%s)", schedule)
	return nil
}

// Stop halts scheduled refreshes. The cached list stays readable.
func (c *Cache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		return
	}
	c.cron.Remove(c.entryID)
	c.cron.Stop()
	c.isRunning = false
}

// Refresh regenerates the category list. The previous list is kept on
// failure.
func (c *Cache) Refresh(ctx context.Context) error {
	categories, err := c.gateway.GenerateCategories(ctx, c.count)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return fmt.Errorf("gateway returned no categories")
	}

	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()

	log.Printf("categories: refreshed %d categories", len(categories))
	return nil
}

// Get returns the cached categories, generating them on first use if the
// cache is still cold.
func (c *Cache) Get(ctx context.Context) ([]entities.Category, error) {
	c.mu.RLock()
	cached := c.categories
	c.mu.RUnlock()

	if len(cached) > 0 {
		out := make([]entities.Category, len(cached))
		copy(out, cached)
		return out, nil
	}

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entities.Category, len(c.categories))
	copy(out, c.categories)
	return out, nil
}

// Find returns the cached category matching the slug.
func (c *Cache) Find(slug string) (entities.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, category := range c.categories {
		if category.Slug == slug {
			return category, true
		}
	}
	return entities.Category{}, false
}
