package workers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"clinicportal/config"
	"clinicportal/models"
	"clinicportal/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitEmailWorker runs the async email worker in background.
func InitEmailWorker(sender notification.EmailSender) {
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
	mux.HandleFunc(notification.TypeConfirmationSend, handleEmailTask(sender, notification.ComposeConfirmation))
	mux.HandleFunc(notification.TypeReminderSend, handleEmailTask(sender, notification.ComposeReminder))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[EmailWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EmailWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EmailWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

type composeFunc func(models.BookingEmailPayload) (subject, plain, html string)

func handleEmailTask(sender notification.EmailSender, compose composeFunc) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingEmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailWorker] invalid payload: %v", err)
			return err
		}

		if sender == nil {
			log.Printf("[EmailWorker] email disabled, dropping %s for booking %s", task.Type(), p.BookingID)
			return nil
		}

		subject, plain, html := compose(p)
		if err := sender.Send(ctx, p.Email, p.Name, subject, plain, html); err != nil {
			log.Printf("[EmailWorker] failed to send %s for booking %s: %v", task.Type(), p.BookingID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[EmailWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
