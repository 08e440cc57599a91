package utils

import (
	"fmt"
	"time"
)

// TimeAgo formats t relative to now in whole hours: "Just now", "N hours ago",
// "Yesterday", "N days ago", and an M/D/YYYY date once a week has passed.
func TimeAgo(t, now time.Time) string {
	hours := int(now.Sub(t).Hours())

	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case hours < 48:
		return "Yesterday"
	case hours < 168:
		return fmt.Sprintf("%d days ago", hours/24)
	}
	return t.Format("1/2/2006")
}
