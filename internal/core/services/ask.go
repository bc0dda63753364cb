package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driving"
	"github.com/askdoc-ai/askdoc/internal/logger"
)

// Ensure AskerService implements the interface.
var _ driving.AskService = (*AskerService)(nil)

// AskerState is the orchestrator lifecycle state.
type AskerState string

// Orchestrator states. The service is either waiting for a question or
// processing one; questions are serialized, never interleaved.
const (
	StateIdle       AskerState = "idle"
	StateProcessing AskerState = "processing"
)

// generateRetryLimit bounds how many times a transient generation
// failure is retried before surfacing.
const generateRetryLimit = 3

// AskerService runs the question→answer cycle: retrieve, build the
// grounding prompt, generate. Each question is independent; no
// conversation state is carried between calls.
type AskerService struct {
	retriever driving.RetrieveService
	generator driven.Generator
	topK      int
	options   driven.GenerateOptions

	gate    sync.Mutex // serializes questions
	stateMu sync.RWMutex
	state   AskerState
}

// NewAskerService creates an asker.
func NewAskerService(
	retriever driving.RetrieveService,
	generator driven.Generator,
	topK int,
	options driven.GenerateOptions,
) *AskerService {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &AskerService{
		retriever: retriever,
		generator: generator,
		topK:      topK,
		options:   options,
		state:     StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *AskerService) State() AskerState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

func (s *AskerService) setState(state AskerState) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()
}

// Ask answers one question strictly from the indexed document. Returns
// either a grounded answer or the fixed refusal sentence. Concurrent
// calls are serialized.
func (s *AskerService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question must not be empty", domain.ErrInvalidInput)
	}

	s.gate.Lock()
	defer s.gate.Unlock()

	s.setState(StateProcessing)
	defer s.setState(StateIdle)

	chunks, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		if !errors.Is(err, domain.ErrIndex) {
			return "", err
		}
		// An unreachable index degrades to an empty context, which the
		// grounding rules turn into a refusal.
		logger.Warn("Retrieval failed, continuing with empty context: %v", err)
		chunks = nil
	}

	// Zero results still go through the generator with an empty context.
	// The grounding rules force the refusal there, keeping refusal logic
	// in one place instead of duplicating it here.
	context := BuildContext(chunks)
	if context == "" {
		logger.Info("No context retrieved, generator will refuse")
	}

	prompt := BuildPrompt(question, context)
	logger.Debug("Prompt built: %d chars, %d chunks", len(prompt), len(chunks))

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}

// generate calls the backend, retrying transient failures with
// fibonacci backoff. Auth and quota failures surface immediately.
func (s *AskerService) generate(ctx context.Context, prompt string) (string, error) {
	var answer string

	backoff := retry.WithMaxRetries(generateRetryLimit, retry.NewFibonacci(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var genErr error
		answer, genErr = s.generator.Generate(ctx, prompt, s.options)
		if genErr == nil {
			return nil
		}

		var provErr *domain.ProviderError
		if errors.As(genErr, &provErr) && provErr.Retryable() {
			logger.Warn("Transient generation failure, retrying: %v", genErr)
			return retry.RetryableError(genErr)
		}
		return genErr
	})
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}

	return answer, nil
}
