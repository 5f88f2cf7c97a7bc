package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"famguard/internal/metrics"
	"famguard/internal/models"
	"famguard/internal/retry"

	"github.com/sirupsen/logrus"
)

// Classifier produces a structured risk assessment for a message text.
type Classifier interface {
	Classify(ctx context.Context, text string) (*models.RiskAssessment, error)
}

// FraudWorkerConfig controls the worker loop and its retry policy.
type FraudWorkerConfig struct {
	PollInterval time.Duration // idle sleep between queue polls
	MaxAttempts  int           // classification attempts per message
	RetryBackoff time.Duration // fixed delay between attempts
}

// FraudWorker is the single background task that drains the check
// queue, classifies each message with retries and publishes the
// outcome to the result store. The loop runs until the context is
// cancelled or Stop is called; a failure for one message never takes
// the loop down.
type FraudWorker struct {
	queue      *FraudQueue
	results    *FraudResultStore
	classifier Classifier
	config     FraudWorkerConfig
	logger     *logrus.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.RWMutex
}

// NewFraudWorker creates a worker bound to the given queue and store.
func NewFraudWorker(queue *FraudQueue, results *FraudResultStore, classifier Classifier, config FraudWorkerConfig, logger *logrus.Logger) *FraudWorker {
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = time.Second
	}
	return &FraudWorker{
		queue:      queue,
		results:    results,
		classifier: classifier,
		config:     config,
		logger:     logger,
	}
}

// Start begins the background processing loop.
func (w *FraudWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("fraud worker is already running")
	}

	w.ctx, w.cancel = context.WithCancel(ctx)
	w.running = true

	w.wg.Add(1)
	go w.processLoop()

	w.logger.WithFields(logrus.Fields{
		"poll_interval": w.config.PollInterval,
		"max_attempts":  w.config.MaxAttempts,
	}).Info("Fraud worker started")

	return nil
}

// Stop gracefully stops the processing loop.
func (w *FraudWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	w.cancel()
	w.wg.Wait()
	w.running = false
	w.logger.Info("Fraud worker stopped")
}

// IsRunning returns whether the worker loop is currently active.
func (w *FraudWorker) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *FraudWorker) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		text, ok := w.queue.Pop()
		if !ok {
			select {
			case <-w.ctx.Done():
				return
			case <-time.After(w.config.PollInterval):
			}
			continue
		}

		metrics.SetGauge("fraud_queue_depth", float64(w.queue.Len()), nil, "Messages waiting for classification")
		w.processMessage(text)
	}
}

// processMessage classifies one dequeued message and publishes exactly
// one outcome for it. A panic is treated like an exhausted
// classification so polling callers still get a terminal answer.
func (w *FraudWorker) processMessage(text string) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.WithField("panic", r).Error("Fraud worker recovered while processing message")
			w.results.Insert(text, models.CheckOutcome{Failed: true})
		}
	}()

	backoff := retry.NewBackoff(retry.BackoffConfig{
		InitialDelay: w.config.RetryBackoff,
		MaxDelay:     w.config.RetryBackoff,
		Multiplier:   1.0,
		MaxAttempts:  w.config.MaxAttempts,
	})

	var assessment *models.RiskAssessment
	err := backoff.Retry(w.ctx, func() error {
		result, err := w.classifier.Classify(w.ctx, text)
		if err != nil {
			return err
		}
		assessment = result
		return nil
	})

	if err != nil {
		metrics.IncrementCounter("fraud_check_failures_total", nil, "Messages whose classification attempts were exhausted")
		w.logger.WithError(err).WithFields(logrus.Fields{
			"attempts": w.config.MaxAttempts,
		}).Warn("Classification failed, publishing failed outcome")
		w.results.Insert(text, models.CheckOutcome{Failed: true})
		return
	}

	metrics.IncrementCounter("fraud_checks_total", map[string]string{
		"risk_level": string(assessment.RiskLevel),
	}, "Messages classified")
	w.results.Insert(text, models.CheckOutcome{Assessment: assessment})
}
