package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gocrm/internal/graphclient"
	"gocrm/internal/models"
)

const lowStockMutation = `
	mutation {
		updateLowStockProducts {
			success
			message
			count
			updatedProducts {
				id
				name
				stock
			}
		}
	}
`

// LowStockJob invokes the low-stock correction mutation through the API
// boundary and records the outcome one line per updated product.
type LowStockJob struct {
	client *graphclient.Client
	sink   *LogSink
}

func NewLowStockJob(client *graphclient.Client, sink *LogSink) *LowStockJob {
	return &LowStockJob{client: client, sink: sink}
}

func (j *LowStockJob) Run(ctx context.Context) {
	timestamp := time.Now().Format(heartbeatTimestampFormat)

	callCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	data, err := j.client.Execute(callCtx, lowStockMutation, nil)
	if err != nil {
		j.sink.Append(fmt.Sprintf("%s Low stock update failed: %v", timestamp, err))
		return
	}

	raw, ok := data["updateLowStockProducts"]
	if !ok {
		j.sink.Append(fmt.Sprintf("%s Low stock update failed: Invalid response from GraphQL endpoint", timestamp))
		return
	}
	var payload models.LowStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		j.sink.Append(fmt.Sprintf("%s Low stock update failed: Invalid response from GraphQL endpoint", timestamp))
		return
	}

	if !payload.Success {
		j.sink.Append(fmt.Sprintf("%s Low stock update failed: %s", timestamp, payload.Message))
		return
	}

	j.sink.Append(fmt.Sprintf("%s Low stock update successful: %s", timestamp, payload.Message))
	if len(payload.UpdatedProducts) == 0 {
		j.sink.Append(fmt.Sprintf("%s No products required stock updates", timestamp))
		return
	}
	for _, product := range payload.UpdatedProducts {
		j.sink.Append(fmt.Sprintf("%s Updated product: %s - New stock: %d", timestamp, product.Name, product.Stock))
	}
}
