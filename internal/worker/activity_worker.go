package worker

import (
	"github.com/spec-kit/helpdesk/internal/service"
)

// StartActivityWorker registers activity-feed handlers on the dispatcher.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
