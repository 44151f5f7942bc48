package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Research call indexes for filtering and sorting
		{"research_calls", "idx_research_calls_lead_author_id", "lead_author_id"},
		{"research_calls", "idx_research_calls_status", "status"},
		{"research_calls", "idx_research_calls_created_at", "created_at"},

		// Application indexes for the query surface
		{"co_author_applications", "idx_applications_call_id", "call_id"},
		{"co_author_applications", "idx_applications_user_id", "user_id"},
		{"co_author_applications", "idx_applications_status", "status"},
		{"co_author_applications", "idx_applications_created_at", "created_at"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}
