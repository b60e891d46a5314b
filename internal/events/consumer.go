package events

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"share-auction/utils"
)

// notifierQueues are the queues the stand-in notifier drains. The transfer
// confirmation queue belongs to the cap-table subsystem and is left alone.
var notifierQueues = []string{
	QueueAuctionCleared,
	QueueSettlementStatusChanged,
	QueueAllSettlementsCompleted,
}

// StartNotifierConsumer connects to the broker and drains the notifier
// queues, appending one line per event to logs/notifications.log. It stands
// in for the external email notifier so the outbound contract is exercised
// end to end. The function runs a reconnect loop with capped backoff and
// never returns under normal operation.
func StartNotifierConsumer(url string) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			utils.Warn("notifier: failed to dial broker", map[string]any{"error": err.Error(), "retry_in": backoff.String()})
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			utils.Warn("notifier: consume loop ended", map[string]any{"error": err.Error()})
			_ = conn.Close()
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	logFile, err := openNotificationLog()
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	var mu sync.Mutex
	writeLine := func(queue string, body []byte) error {
		mu.Lock()
		defer mu.Unlock()
		line := fmt.Sprintf("%s %s %s\n", time.Now().UTC().Format(time.RFC3339), queue, body)
		_, err := logFile.WriteString(line)
		return err
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(notifierQueues))
	for _, queue := range notifierQueues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", queue, err)
		}
		deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", queue, err)
		}

		wg.Add(1)
		go func(queue string, deliveries <-chan amqp.Delivery) {
			defer wg.Done()
			for d := range deliveries {
				if err := writeLine(queue, d.Body); err != nil {
					utils.Error("notifier: failed to write notification", map[string]any{"queue": queue, "error": err.Error()})
					_ = d.Nack(false, true)
					continue
				}
				_ = d.Ack(false)
			}
			errCh <- fmt.Errorf("delivery channel for %s closed", queue)
		}(queue, deliveries)
	}

	// Block until the broker drops a delivery channel, then reconnect.
	err = <-errCh
	_ = ch.Close()
	wg.Wait()
	return err
}

func openNotificationLog() (*os.File, error) {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	path := filepath.Join("logs", "notifications.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
