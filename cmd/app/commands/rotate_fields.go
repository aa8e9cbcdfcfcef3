package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	fieldsUseCase "github.com/stakwork/fieldcrypt/internal/fields/usecase"
)

// RunRotateFields re-encrypts stored fields with the active key in batches
// until no field remains on an older key or in legacy plaintext. Each batch
// commits on its own, so an interrupted run can simply be restarted.
func RunRotateFields(
	ctx context.Context,
	fieldUseCase fieldsUseCase.FieldUseCase,
	logger *slog.Logger,
	w io.Writer,
	activeKeyID string,
	batchSize int,
) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	logger.Info("starting field rotation",
		slog.String("active_key_id", activeKeyID),
		slog.Int("batch_size", batchSize),
	)

	totalRotated := 0
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("rotation interrupted after %d field(s): %w", totalRotated, err)
		}

		rotated, err := fieldUseCase.Rotate(ctx, batchSize)
		if err != nil {
			return fmt.Errorf("failed to rotate batch after %d field(s): %w", totalRotated, err)
		}
		if rotated == 0 {
			break
		}

		totalRotated += rotated
		logger.Info("rotated batch of fields",
			slog.Int("rotated_in_batch", rotated),
			slog.Int("total_rotated", totalRotated),
		)
	}

	logger.Info("field rotation completed",
		slog.Int("total_rotated", totalRotated),
		slog.String("active_key_id", activeKeyID),
	)

	_, err := fmt.Fprintf(w, "Rotated %d field(s) to key %s\n", totalRotated, activeKeyID)
	return err
}
