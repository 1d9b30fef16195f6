package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gocrm/internal/graphclient"
)

const recentOrdersQuery = `
	query GetRecentOrders {
		allOrders {
			id
			orderNumber
			totalAmount
			status
			createdAt
			customer {
				id
				email
				firstName
				lastName
			}
		}
	}
`

type reminderOrder struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	Customer    struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// OrderReminderJob scans all orders through the API boundary and logs the
// ones created within the trailing seven days.
type OrderReminderJob struct {
	client *graphclient.Client
	sink   *LogSink
}

func NewOrderReminderJob(client *graphclient.Client, sink *LogSink) *OrderReminderJob {
	return &OrderReminderJob{client: client, sink: sink}
}

// parseOrderTimestamp accepts RFC3339 timestamps with or without a zone
// marker; a trailing Z is the usual UTC form.
func parseOrderTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// filterRecentOrders keeps orders created within the window ending at now.
// Orders with unparseable timestamps are dropped, matching the lenient scan
// the reminder log needs.
func filterRecentOrders(orders []reminderOrder, now time.Time, window time.Duration) []reminderOrder {
	cutoff := now.Add(-window)
	var recent []reminderOrder
	for _, order := range orders {
		created, err := parseOrderTimestamp(order.CreatedAt)
		if err != nil {
			continue
		}
		if !created.Before(cutoff) {
			recent = append(recent, order)
		}
	}
	return recent
}

func (j *OrderReminderJob) Run(ctx context.Context) error {
	var logger *log.Logger
	if w, err := j.sink.Writer(); err == nil {
		defer w.Close()
		logger = log.New(w, "", log.LstdFlags)
	} else {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}

	data, err := j.client.Execute(ctx, recentOrdersQuery, nil)
	if err != nil {
		logger.Printf("ERROR: Error processing order reminders: %v", err)
		return fmt.Errorf("error processing order reminders: %w", err)
	}

	var orders []reminderOrder
	if raw, ok := data["allOrders"]; ok {
		if err := json.Unmarshal(raw, &orders); err != nil {
			logger.Printf("ERROR: Error processing order reminders: %v", err)
			return fmt.Errorf("error processing order reminders: %w", err)
		}
	}

	recent := filterRecentOrders(orders, time.Now(), 7*24*time.Hour)
	for _, order := range recent {
		logger.Printf("Order ID: %s, Order Number: %s, Status: %s, Customer Email: %s",
			order.ID, order.OrderNumber, order.Status, order.Customer.Email)
	}
	logger.Printf("Processed %d orders from the last 7 days", len(recent))

	fmt.Println("Order reminders processed!")
	return nil
}
