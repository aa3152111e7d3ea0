package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyjournal-backend/internal/models"
	"studyjournal-backend/internal/prompt"
	"studyjournal-backend/internal/quiz"
	"studyjournal-backend/internal/services"
)

const queueCapacity = 64

// QuizGenerator runs the generation pipeline; tests swap in a fake.
type QuizGenerator interface {
	Quiz(ctx context.Context, req models.GenerateQuizRequest) ([]models.QuizQuestion, error)
}

// Publisher broadcasts job events to connected clients.
type Publisher interface {
	Publish(msg models.WSMessage)
}

type queuedJob struct {
	id  uuid.UUID
	req models.GenerateQuizRequest
}

// Pool runs quiz-generation jobs on a fixed set of goroutines fed by an
// in-process queue. Only a fully parsed quiz produces a session; a
// failed job leaves every persisted record untouched.
type Pool struct {
	generator   QuizGenerator
	registry    *quiz.Registry
	publisher   Publisher
	workerCount int

	jobs     chan queuedJob
	stopChan chan struct{}
	wg       sync.WaitGroup

	mu      sync.RWMutex
	tracked map[uuid.UUID]*models.Job
}

func NewPool(generator QuizGenerator, registry *quiz.Registry, publisher Publisher, workerCount int) *Pool {
	return &Pool{
		generator:   generator,
		registry:    registry,
		publisher:   publisher,
		workerCount: workerCount,
		jobs:        make(chan queuedJob, queueCapacity),
		stopChan:    make(chan struct{}),
		tracked:     make(map[uuid.UUID]*models.Job),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	log.Printf("Started %d worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
	p.wg.Wait()
}

// Enqueue registers a pending job and queues it for a worker.
func (p *Pool) Enqueue(req models.GenerateQuizRequest) (*models.Job, error) {
	configJSON, _ := json.Marshal(req)
	job := &models.Job{
		ID:         uuid.New(),
		Type:       "quiz-generation",
		ConfigJSON: configJSON,
		Status:     "pending",
		CreatedAt:  time.Now(),
	}

	p.mu.Lock()
	p.tracked[job.ID] = job
	p.mu.Unlock()

	select {
	case p.jobs <- queuedJob{id: job.ID, req: req}:
	default:
		p.mu.Lock()
		delete(p.tracked, job.ID)
		p.mu.Unlock()
		return nil, &services.ConflictError{Message: "Generation queue is full, try again shortly"}
	}

	return p.snapshot(job.ID), nil
}

// GetJob returns a copy of the job's current state.
func (p *Pool) GetJob(id uuid.UUID) (*models.Job, error) {
	job := p.snapshot(id)
	if job == nil {
		return nil, &services.NotFoundError{Message: "Job not found"}
	}
	return job, nil
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		case qj := <-p.jobs:
			p.process(qj)
		}
	}
}

func (p *Pool) process(qj queuedJob) {
	p.update(qj.id, func(job *models.Job) {
		job.Status = "processing"
	})
	p.publisher.Publish(models.WSMessage{
		Type: "status_update",
		Payload: models.StatusUpdate{
			JobID: qj.id, Step: 1, StepName: "Generating Questions",
		},
	})

	questions, err := p.generator.Quiz(context.Background(), qj.req)
	if err != nil {
		p.fail(qj.id, err)
		return
	}

	topic := qj.req.Topic
	if topic == "" {
		topic = "My Notes"
	}

	session := quiz.NewSession(topic, questions)
	p.registry.Add(session)

	now := time.Now()
	p.update(qj.id, func(job *models.Job) {
		job.Status = "completed"
		job.SessionID = &session.ID
		job.CompletedAt = &now
	})

	p.publisher.Publish(models.WSMessage{
		Type: "completed",
		Payload: models.CompletedEvent{
			JobID: qj.id, SessionID: session.ID,
		},
	})
}

func (p *Pool) fail(id uuid.UUID, err error) {
	code := errorCode(err)
	msg := err.Error()
	now := time.Now()

	p.update(id, func(job *models.Job) {
		job.Status = "failed"
		job.ErrorCode = &code
		job.ErrorMessage = &msg
		job.CompletedAt = &now
	})

	event := models.ErrorEvent{JobID: id, ErrorCode: code, ErrorMessage: msg}
	var parseErr *services.QuizParseError
	if errors.As(err, &parseErr) {
		// Let the UI fall back to showing the raw reply
		event.RawText = parseErr.RawText
	}

	p.publisher.Publish(models.WSMessage{Type: "error", Payload: event})
	log.Printf("Job %s failed: %s: %v", id, code, err)
}

func (p *Pool) update(id uuid.UUID, fn func(*models.Job)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if job, ok := p.tracked[id]; ok {
		fn(job)
	}
}

func (p *Pool) snapshot(id uuid.UUID) *models.Job {
	p.mu.RLock()
	defer p.mu.RUnlock()
	job, ok := p.tracked[id]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}

func errorCode(err error) string {
	switch err.(type) {
	case *services.ConfigurationError:
		return "CONFIG_ERROR"
	case *services.UpstreamError:
		return "UPSTREAM_ERROR"
	case *services.TimeoutError:
		return "TIMEOUT"
	case *services.TransportError:
		return "TRANSPORT_ERROR"
	case *services.QuizParseError:
		return "QUIZ_PARSE_ERROR"
	case *services.ValidationError, *prompt.InvalidModeError, *prompt.MissingFieldError:
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
