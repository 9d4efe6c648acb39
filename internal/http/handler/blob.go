package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docshelf/internal/storage"
)

// ServeBlob streams stored objects at /blobs/:key from whichever driver is configured. The
// in-memory driver's public URLs point here; for MinIO and S3 it reads private buckets.
func ServeBlob(store storage.Storage, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := store.Get(c.UserContext(), c.Params("key"))
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "object not found")
			}
			log.Error("blob_read_failed", zap.String("key", c.Params("key")), zap.Error(err))
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "failed to read object")
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		return c.SendStream(rc, int(info.Size))
	}
}
