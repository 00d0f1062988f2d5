package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

// History keys are per identity, see models.Player.HistoryKey
func FormatGameHistoryKey(historyKey string) string {
	return fmt.Sprintf("history:%s:games", historyKey)
}

func FormatCategoryLetterHistoryKey(historyKey string) string {
	return fmt.Sprintf("history:%s:category_letters", historyKey)
}

func FormatCategoryStatsKey(categoryID string) string {
	return fmt.Sprintf("category:%s:stats", categoryID)
}

// Set of category ids with a stats hash
func FormatTrackedCategoriesKey() string {
	return "categories:tracked"
}

func FormatAnalyticsQueueKey() string {
	return "analytics:events"
}
