package jobs

import (
	"context"
	"fmt"
	"time"

	"gocrm/internal/graphclient"
)

const heartbeatTimestampFormat = "02/01/2006-15:04:05"

const introspectionQuery = `
	query {
		__schema {
			queryType {
				name
			}
		}
	}
`

// HeartbeatJob appends a liveness line on every trigger. The graph endpoint
// check is informational only; its failure never aborts the write.
type HeartbeatJob struct {
	client *graphclient.Client
	sink   *LogSink
}

func NewHeartbeatJob(client *graphclient.Client, sink *LogSink) *HeartbeatJob {
	return &HeartbeatJob{client: client, sink: sink}
}

func (j *HeartbeatJob) Run(ctx context.Context) {
	timestamp := time.Now().Format(heartbeatTimestampFormat)
	message := timestamp + " CRM is alive"

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := j.client.Execute(checkCtx, introspectionQuery, nil)
	switch {
	case err != nil:
		message += fmt.Sprintf(" - GraphQL endpoint unreachable: %v", err)
	case data["__schema"] != nil:
		message += " - GraphQL endpoint responsive"
	default:
		message += " - GraphQL endpoint returned unexpected response"
	}

	j.sink.Append(message)
}
