package background

import (
	"context"
	"log"
	"sync"
	"time"

	"gocrm/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the CRM maintenance jobs. Each job receives its
// service and log-sink handles at construction; the scheduler only triggers
// them.
type JobScheduler struct {
	scheduler gocron.Scheduler
	heartbeat *jobs.HeartbeatJob
	lowStock  *jobs.LowStockJob
	report    *jobs.WeeklyReportJob
	reminders *jobs.OrderReminderJob
	jobByName map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(heartbeat *jobs.HeartbeatJob, lowStock *jobs.LowStockJob, report *jobs.WeeklyReportJob, reminders *jobs.OrderReminderJob) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		heartbeat: heartbeat,
		lowStock:  lowStock,
		report:    report,
		reminders: reminders,
		jobByName: make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Heartbeat every 5 minutes
	heartbeatJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.heartbeat.Run, context.Background()),
		gocron.WithName("crm-heartbeat"),
	)
	if err != nil {
		log.Printf("Failed to create heartbeat job: %v", err)
	} else {
		js.jobByName["heartbeat"] = heartbeatJob
	}

	// Low stock correction twice daily
	lowStockJob, err := js.scheduler.NewJob(
		gocron.CronJob("0 */12 * * *", false),
		gocron.NewTask(js.lowStock.Run, context.Background()),
		gocron.WithName("low-stock-update"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create low stock job: %v", err)
	} else {
		js.jobByName["low-stock"] = lowStockJob
	}

	// Weekly report Mondays 06:00
	reportJob, err := js.scheduler.NewJob(
		gocron.CronJob("0 6 * * 1", false),
		gocron.NewTask(js.report.Run, context.Background()),
		gocron.WithName("crm-weekly-report"),
	)
	if err != nil {
		log.Printf("Failed to create weekly report job: %v", err)
	} else {
		js.jobByName["weekly-report"] = reportJob
	}

	// Order reminders daily 08:00
	remindersJob, err := js.scheduler.NewJob(
		gocron.CronJob("0 8 * * *", false),
		gocron.NewTask(js.reminders.Run, context.Background()),
		gocron.WithName("order-reminders"),
	)
	if err != nil {
		log.Printf("Failed to create order reminders job: %v", err)
	} else {
		js.jobByName["order-reminders"] = remindersJob
	}

	log.Printf("Registered %d background jobs", len(js.jobByName))
}

// JobNames lists the registered jobs, for status endpoints and logs.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobByName))
	for name := range js.jobByName {
		names = append(names, name)
	}
	return names
}
