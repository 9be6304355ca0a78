package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"traintrack/config"
	"traintrack/models"
	"traintrack/services/tasks"
	"traintrack/utils"

	"github.com/hibiken/asynq"
)

// InitNotificationWorker runs the async email worker in background.
func InitNotificationWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailSend, handleEmailTask)

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(ctx context.Context, task *asynq.Task) error {
	var p models.EmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[NotificationWorker] invalid payload: %v", err)
		return err
	}

	if err := utils.SendEmail(ctx, p.To, p.Subject, p.Body); err != nil {
		log.Printf("[NotificationWorker] failed to send email to %s: %v", p.To, err)
		return err
	}
	return nil
}
