package di

import (
	"hotel/infras/kafka"
	"hotel/infras/postgres"
	"hotel/internal/jobs"
	"hotel/internal/worker"
	"hotel/transport/http"
)

// App is the API process: the HTTP server and the job scheduler sharing one dependency graph.
type App struct {
	HTTP      *http.HTTP
	Scheduler *jobs.Scheduler
	Kafka     kafka.Client
	DB        *postgres.Connection
}

// Worker is the event consumer process.
type Worker struct {
	Activities *worker.ActivityRecorder
	Kafka      kafka.Client
	DB         *postgres.Connection
}
