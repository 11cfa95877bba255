package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/recetario/internal/backfill"
)

// BackfillImageTask generates the missing image for one saved recipe.
type BackfillImageTask struct {
	RecipeName string `json:"recipe_name"`
	ImageHint  string `json:"image_hint"`
}

// Config returns the queue configuration for image backfill tasks.
// MaxAttempts is 1: a failed generation leaves the placeholder in place and
// is never retried automatically.
func (t BackfillImageTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "backfill_image",
		MaxAttempts: 1,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// BackfillImageProcessor creates a processor function for BackfillImageTask.
func BackfillImageProcessor(service *backfill.Service) backlite.QueueProcessor[BackfillImageTask] {
	return func(ctx context.Context, task BackfillImageTask) error {
		if service == nil {
			return fmt.Errorf("backfill service not configured")
		}

		if err := service.Process(ctx, task.RecipeName, task.ImageHint); err != nil {
			return fmt.Errorf("backfill image for %q: %w", task.RecipeName, err)
		}

		log.Printf("[TASK] Backfill finished for %q", task.RecipeName)
		return nil
	}
}

// NewBackfillImageQueue creates a backlite queue for image backfill tasks.
func NewBackfillImageQueue(service *backfill.Service) backlite.Queue {
	return backlite.NewQueue(BackfillImageProcessor(service))
}
