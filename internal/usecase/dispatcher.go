package usecase

import (
	"context"
	"sync"
	"time"

	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/internal/domain/repository"
	"flightstatus-service/pkg/logger"
	"flightstatus-service/pkg/metrics"
)

const notificationSubject = "Flight Status Update"

// jobTimeout bounds one fan-out, all users and channels included.
const jobTimeout = 2 * time.Minute

// DispatcherConfig tunes the worker pool.
type DispatcherConfig struct {
	Workers      int
	QueueSize    int
	MaxAttempts  int
	RetryBackoff time.Duration
}

// Dispatcher drains a bounded queue of fan-out jobs with a worker pool.
// For each job it resolves the users assigned to the flight, writes one
// audit record per user, and attempts every applicable channel with
// retries. Channels fail independently: one channel's failure never stops
// the others or the remaining users.
type Dispatcher struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	deliveryRepo     repository.DeliveryRepository
	channels         []repository.Notifier
	config           DispatcherConfig
	queue            chan *entity.FanoutJob
	wg               sync.WaitGroup
	logger           logger.Logger
	metrics          *metrics.Metrics
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	deliveryRepo repository.DeliveryRepository,
	channels []repository.Notifier,
	config DispatcherConfig,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *Dispatcher {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 1
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}

	return &Dispatcher{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		deliveryRepo:     deliveryRepo,
		channels:         channels,
		config:           config,
		queue:            make(chan *entity.FanoutJob, config.QueueSize),
		logger:           logger,
		metrics:          metrics,
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start() {
	for i := 0; i < d.config.Workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	d.logger.Info("Dispatcher started", "workers", d.config.Workers, "queueSize", d.config.QueueSize)
}

// Stop closes the queue and waits for the workers to drain it.
func (d *Dispatcher) Stop() {
	close(d.queue)
	d.wg.Wait()
	d.logger.Info("Dispatcher stopped")
}

// Enqueue accepts a fan-out job. A full queue drops the job: the update
// that triggered it has already been applied and must not block or fail.
func (d *Dispatcher) Enqueue(job *entity.FanoutJob) bool {
	select {
	case d.queue <- job:
		d.metrics.FanoutJobsEnqueued.Inc()
		return true
	default:
		d.metrics.FanoutJobsDropped.Inc()
		d.logger.Warn("Fan-out queue full, dropping job", "flightId", job.Flight.FlightID)
		return false
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for job := range d.queue {
		d.runJob(job)
	}
	d.logger.Debug("Dispatch worker exiting", "worker", id)
}

// runJob contains panics and errors to the one job so a poisoned flight
// document cannot take a worker down.
func (d *Dispatcher) runJob(job *entity.FanoutJob) {
	defer func() {
		if r := recover(); r != nil {
			d.metrics.ErrorsCount.WithLabelValues("fanout_panic").Inc()
			d.logger.Error("Fan-out job panicked", "flightId", job.Flight.FlightID, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	d.process(ctx, job)
	d.metrics.FanoutDuration.Observe(time.Since(start).Seconds())
}

func (d *Dispatcher) process(ctx context.Context, job *entity.FanoutJob) {
	flight := job.Flight

	users, err := d.userRepo.FindByAssignedFlight(ctx, flight.FlightID)
	if err != nil {
		d.metrics.ErrorsCount.WithLabelValues("fanout_resolve_users").Inc()
		d.logger.Error("Failed to resolve assigned users", "flightId", flight.FlightID, "error", err)
		return
	}

	d.logger.Info("Fanning out flight update", "flightId", flight.FlightID, "users", len(users))

	message := entity.ComposeMessage(flight)
	for _, user := range users {
		d.notify(ctx, flight, user, message)
	}
}

func (d *Dispatcher) notify(ctx context.Context, flight *entity.Flight, user *entity.User, message string) {
	notification := &entity.Notification{
		FlightID:  flight.FlightID,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Username:  user.Username,
		Recipient: user.Phone,
	}

	notificationID, err := d.notificationRepo.Insert(ctx, notification)
	if err != nil {
		// Delivery is still attempted; the audit trail is best effort
		// once the update itself has been applied.
		d.metrics.ErrorsCount.WithLabelValues("fanout_audit").Inc()
		d.logger.Error("Failed to write notification audit record",
			"flightId", flight.FlightID, "username", user.Username, "error", err)
	}

	for _, channel := range d.channels {
		recipient := d.recipientFor(channel.Name(), user)
		if recipient == "" {
			continue
		}
		d.deliver(ctx, channel, notificationID, flight.FlightID, recipient, message)
	}
}

// recipientFor picks the channel specific address. An empty address means
// the channel does not apply to this user (no push token, for example).
func (d *Dispatcher) recipientFor(channel string, user *entity.User) string {
	switch channel {
	case entity.ChannelSMS:
		return user.Phone
	case entity.ChannelEmail:
		return user.Email
	case entity.ChannelPush:
		return user.FCMToken
	default:
		return ""
	}
}

// deliver attempts one channel with linear backoff and records the final
// outcome.
func (d *Dispatcher) deliver(ctx context.Context, channel repository.Notifier, notificationID, flightID, recipient, message string) {
	msg := entity.OutboundMessage{
		Recipient: recipient,
		Subject:   notificationSubject,
		Body:      message,
	}

	var lastErr error
	attempts := 0
retry:
	for attempts < d.config.MaxAttempts {
		attempts++
		lastErr = channel.Send(ctx, msg)
		if lastErr == nil {
			break
		}

		d.logger.Warn("Channel delivery attempt failed",
			"channel", channel.Name(), "recipient", recipient, "attempt", attempts, "error", lastErr)

		if attempts < d.config.MaxAttempts {
			select {
			case <-time.After(time.Duration(attempts) * d.config.RetryBackoff):
			case <-ctx.Done():
				break retry
			}
		}
	}

	status := entity.DeliverySent
	lastErrText := ""
	if lastErr != nil {
		status = entity.DeliveryFailed
		lastErrText = lastErr.Error()
	}
	d.metrics.NotificationsSent.WithLabelValues(channel.Name(), status).Inc()

	attempt := &entity.DeliveryAttempt{
		NotificationID: notificationID,
		FlightID:       flightID,
		Channel:        channel.Name(),
		Recipient:      recipient,
		Status:         status,
		Attempts:       attempts,
		LastError:      lastErrText,
	}
	if err := d.deliveryRepo.Record(ctx, attempt); err != nil {
		d.metrics.ErrorsCount.WithLabelValues("fanout_record_outcome").Inc()
		d.logger.Error("Failed to record delivery outcome",
			"channel", channel.Name(), "recipient", recipient, "error", err)
	}
}
