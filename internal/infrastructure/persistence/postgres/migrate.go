package postgres

import (
	"context"
	"fmt"
)

// AutoMigrate 创建或更新 stories / chapters 表
func (c *Client) AutoMigrate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.AutoMigrate")
	defer span.End()

	if err := c.db.WithContext(ctx).AutoMigrate(&storyRecord{}, &chapterRecord{}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}
