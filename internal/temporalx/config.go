package temporalx

import (
	"os"
	"strings"
)

type Config struct {
	Address   string
	Namespace string
	TaskQueue string

	// CollectCron schedules the recurring performance-collection workflow.
	CollectCron string
}

func LoadConfig() Config {
	return Config{
		Address:     strings.TrimSpace(os.Getenv("TEMPORAL_ADDRESS")),
		Namespace:   stringsOr(strings.TrimSpace(os.Getenv("TEMPORAL_NAMESPACE")), "content-engine"),
		TaskQueue:   stringsOr(strings.TrimSpace(os.Getenv("TEMPORAL_TASK_QUEUE")), "content-engine"),
		CollectCron: stringsOr(strings.TrimSpace(os.Getenv("TEMPORAL_COLLECT_CRON")), "0 6 * * *"),
	}
}

func stringsOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
