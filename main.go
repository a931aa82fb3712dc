package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-tracker-demo/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Tracker Demo ===")
	log.Println("Per-user task tracking with GORM + SQLite on the mono framework")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register task module
	// The framework automatically calls:
	// - ServiceProviderModule.RegisterServices() for request-reply services
	app.Register(task.NewModule())

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("This demo shows:")
	log.Println("  - Per-user task storage scoped by user_id on every query")
	log.Println("  - GORM ORM integration with SQLite")
	log.Println("  - ServiceProviderModule pattern for request-reply services")
	log.Println("  - Automatic database migration on startup")
	log.Println("  - No HTTP endpoints - pure service-based architecture")
	log.Println("")
	log.Println("Available Services (via NATS request-reply):")
	log.Println("  - task.create        - Create a task for a user")
	log.Println("  - task.list          - List a user's tasks, optionally by status")
	log.Println("  - task.delete        - Delete one task by title")
	log.Println("  - task.update        - Patch one task by title")
	log.Println("  - task.analytics     - Task counts and productivity score")
	log.Println("  - task.delete_all    - Delete every task owned by a user")
	log.Println("  - task.complete_all  - Mark every owned task completed")
	log.Println("  - task.reset_all     - Mark every owned task pending")
	log.Println("")
	log.Println("Use the nats CLI to interact with services:")
	log.Println("  nats request services.task.create '{\"user_id\":\"alice\",\"title\":\"Buy milk\"}'")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
