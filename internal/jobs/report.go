package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"gocrm/internal/services"
)

const reportTimestampFormat = "2006-01-02 15:04:05"

// WeeklyReportJob appends one summary line per run: customer count, order
// count and total revenue.
type WeeklyReportJob struct {
	reportSvc services.ReportService
	sink      *LogSink
}

func NewWeeklyReportJob(reportSvc services.ReportService, sink *LogSink) *WeeklyReportJob {
	return &WeeklyReportJob{reportSvc: reportSvc, sink: sink}
}

func (j *WeeklyReportJob) Run(ctx context.Context) error {
	summary, err := j.reportSvc.Generate(ctx)
	if err != nil {
		timestamp := time.Now().Format(reportTimestampFormat)
		j.sink.Append(fmt.Sprintf("%s - ERROR: Error generating CRM report: %v", timestamp, err))
		log.Printf("Error generating CRM report: %v", err)
		return err
	}

	line := fmt.Sprintf("%s - Report: %d customers, %d orders, %.2f revenue",
		summary.GeneratedAt.Format(reportTimestampFormat), summary.Customers, summary.Orders, summary.Revenue)
	j.sink.Append(line)
	log.Printf("CRM Report generated: %s", line)
	return nil
}
