package service

import (
	"time"

	"github.com/akinsira/guestbookapi/pkg/utils/zaplogger"
	"github.com/robfig/cron/v3"
)

// CronService owns the background housekeeping jobs.
type CronService struct {
	auth *AuthService
	c    *cron.Cron
}

// NewCronService creates a new service for the scheduled jobs
func NewCronService(auth *AuthService) *CronService {
	return &CronService{
		auth: auth,
		c:    cron.New(),
	}
}

// Start registers and starts the scheduled jobs
func (cs *CronService) Start() {
	zaplogger.Info("Initializing CronService")

	cs.addScheduledJob("Session Sweep Job", cs.sessionSweepJob, "@every 1h")

	cs.c.Start()
}

// Stop stops the scheduler; running jobs complete before it returns
func (cs *CronService) Stop() {
	<-cs.c.Stop().Done()
}

func (cs *CronService) addScheduledJob(name string, job func(), schedule string) {
	_, err := cs.c.AddFunc(schedule, func() {
		zaplogger.Info("Executing scheduled job", zaplogger.Fields{
			"job":  name,
			"time": time.Now().Format("15:04:05"),
		})
		job()
	})
	if err != nil {
		zaplogger.Error("Failed to schedule job", zaplogger.Fields{
			"job":   name,
			"error": err.Error(),
		})
		return
	}
	zaplogger.Info("  * Scheduled job added: " + name)
}

// sessionSweepJob evicts expired admin sessions. Lazy expiry on lookup
// already hides dead sessions; the sweep keeps tokens that are never looked
// up again from accumulating in the table.
func (cs *CronService) sessionSweepJob() {
	removed := cs.auth.Sweep()
	if removed > 0 {
		zaplogger.Info("Expired sessions removed", zaplogger.Fields{"count": removed})
	}
}
