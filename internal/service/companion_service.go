package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"companion-llm/internal/domain"
	"companion-llm/internal/llm"
	"companion-llm/internal/observability"
)

const (
	defaultGenerationTimeout = 30 * time.Second
	importantIntensity       = 0.6

	fallbackResponse = "I'm here for you. I want to make sure I answer you thoughtfully, so could you tell me a little more about how you're feeling right now?"
)

var ErrGenerationFailed = errors.New("generation failed")

// MessageStore es el colaborador de escritura; se llama una vez por turno de usuario y otra por el de la IA.
type MessageStore interface {
	StoreMessage(ctx context.Context, in StoreMessageInput) (domain.Message, error)
}

// CompanionConfig agrupa las dependencias opcionales del orquestador.
type CompanionConfig struct {
	GenerationTimeout time.Duration
	Now               func() time.Time
	Chooser           Chooser
	Metrics           *observability.MetricsCollector
	Tracer            trace.Tracer
}

// CompanionService orquesta el pipeline: filtro previo, analisis, prompt,
// generacion, revision posterior y persistencia del par de mensajes.
type CompanionService struct {
	logger    *zap.Logger
	contexts  ContextService
	store     MessageStore
	llmClient llm.LLMClient
	personas  *PersonaRegistry

	checker  SafetyChecker
	analyzer EmotionAnalyzer
	culture  CulturalAdapter
	trends   EmotionalTrendAggregator
	moods    MoodCalculator
	tones    ToneModulator
	memory   MemorySummarizer
	composer PromptComposer
	empathy  EmpathyGuide
	temporal TemporalContextBuilder

	timeout time.Duration
	metrics *observability.MetricsCollector
	tracer  trace.Tracer
}

func NewCompanionService(
	logger *zap.Logger,
	contexts ContextService,
	store MessageStore,
	llmClient llm.LLMClient,
	personas *PersonaRegistry,
	cfg CompanionConfig,
) *CompanionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = defaultGenerationTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer("")
	}
	return &CompanionService{
		logger:    logger,
		contexts:  contexts,
		store:     store,
		llmClient: llmClient,
		personas:  personas,
		checker:   DefaultSafetyChecker,
		analyzer:  DefaultEmotionAnalyzer,
		culture:   DefaultCulturalAdapter,
		trends:    DefaultEmotionalTrendAggregator,
		moods:     DefaultMoodCalculator,
		tones:     DefaultToneModulator,
		memory:    DefaultMemorySummarizer,
		composer:  DefaultPromptComposer,
		empathy:   NewEmpathyGuide(cfg.Chooser),
		temporal:  NewTemporalContextBuilder(cfg.Now),
		timeout:   cfg.GenerationTimeout,
		metrics:   cfg.Metrics,
		tracer:    cfg.Tracer,
	}
}

// turn acumula lo que cada etapa produce para el turno en curso.
type turn struct {
	relationshipID string
	userID         string
	userMessage    string

	convCtx   domain.ConversationContext
	preSafety domain.SafetyVerdict
	signal    domain.EmotionalSignal
	persona   domain.PersonalityProfile
	culture   domain.CulturalAdaptation
	trend     domain.EmotionalTrend
	temporal  domain.TemporalContext
	mood      domain.MoodState
	tone      domain.ToneModulation
	prompt    string
}

// GenerateResponse solo devuelve error ante fallas de infraestructura: relacion
// o persona inexistente, o falla del generador. Crisis y rechazos terminan en
// respuestas normales.
func (s *CompanionService) GenerateResponse(ctx context.Context, relationshipID, userMessage, userID string) (domain.GeneratedResponse, error) {
	started := time.Now()
	t := &turn{
		relationshipID: strings.TrimSpace(relationshipID),
		userID:         strings.TrimSpace(userID),
		userMessage:    strings.TrimSpace(userMessage),
	}
	if t.relationshipID == "" || t.userID == "" || t.userMessage == "" {
		return domain.GeneratedResponse{}, fmt.Errorf("generate response: %w", ErrInvalidInput)
	}

	ctx, span := s.tracer.Start(ctx, "companion.generate_response",
		trace.WithAttributes(attribute.String("relationship.id", t.relationshipID)))
	defer span.End()

	resp, err := s.run(ctx, t)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.RecordOutcome("error")
		return domain.GeneratedResponse{}, err
	}
	resp.Metadata.ProcessingTimeMs = time.Since(started).Milliseconds()
	span.SetAttributes(attribute.String("companion.outcome", resp.Metadata.Outcome))
	s.metrics.RecordOutcome(resp.Metadata.Outcome)
	return resp, nil
}

func (s *CompanionService) run(ctx context.Context, t *turn) (domain.GeneratedResponse, error) {
	_ = s.stage(ctx, "pre_safety", func(context.Context) error {
		t.preSafety = s.checker.CheckContentSafety(t.userMessage, domain.ContentContextUserInput)
		return nil
	})
	if !t.preSafety.IsSafe {
		s.metrics.RecordSafetyViolation(string(domain.ContentContextUserInput), string(t.preSafety.Severity))
	}

	err := s.stage(ctx, "context", func(ctx context.Context) error {
		convCtx, err := s.contexts.GetConversationContext(ctx, t.relationshipID)
		if err != nil {
			return fmt.Errorf("get conversation context: %w", err)
		}
		t.convCtx = convCtx
		return nil
	})
	if err != nil {
		return domain.GeneratedResponse{}, err
	}
	// Una relacion ajena se trata como inexistente.
	if owner := t.convCtx.Relationship.UserID; owner != "" && owner != t.userID {
		return domain.GeneratedResponse{}, fmt.Errorf("relationship %s: %w", t.relationshipID, ErrRelationshipNotFound)
	}

	if t.preSafety.Severity == domain.SeverityCritical {
		return s.crisis(ctx, t), nil
	}

	if err := s.analyze(ctx, t); err != nil {
		return domain.GeneratedResponse{}, err
	}
	// Urgencia de crisis sin violacion critica: sigue a generacion pero queda para revision manual.
	if t.signal.Urgency == domain.UrgencyCrisis {
		s.logger.Warn("crisis urgency without critical safety violation",
			zap.String("relationship_id", t.relationshipID),
			zap.String("user_id", t.userID),
			zap.String("severity", string(t.preSafety.Severity)),
			zap.String("user_emotion", string(t.signal.PrimaryEmotion)),
		)
	}

	raw, err := s.generate(ctx, t)
	if err != nil {
		return domain.GeneratedResponse{}, err
	}

	return s.finalize(ctx, t, raw), nil
}

func (s *CompanionService) crisis(ctx context.Context, t *turn) domain.GeneratedResponse {
	t.signal = s.analyzer.Analyze(t.userMessage)
	s.logger.Warn("crisis detected on user input",
		zap.String("relationship_id", t.relationshipID),
		zap.String("user_id", t.userID),
		zap.Strings("violations", t.preSafety.Violations),
		zap.String("urgency", string(t.signal.Urgency)),
	)

	resp := domain.GeneratedResponse{
		Content:       s.checker.GenerateCrisisResponse(),
		EmotionalTone: domain.ToneSupportive,
		Metadata: domain.ResponseMetadata{
			SafetyVerified: true,
			EthicallySound: true,
			Outcome:        domain.OutcomeCrisis,
			UserEmotion:    t.signal.PrimaryEmotion,
			Urgency:        domain.UrgencyCrisis,
		},
	}
	s.persist(ctx, t, resp)
	return resp
}

// analyze corre las etapas deterministas hasta el prompt.
func (s *CompanionService) analyze(ctx context.Context, t *turn) error {
	// Emocion, persona y cultura son independientes entre si.
	err := s.stage(ctx, "leaves", func(context.Context) error {
		var g errgroup.Group
		g.Go(func() error {
			t.signal = s.analyzer.Analyze(t.userMessage)
			return nil
		})
		g.Go(func() error {
			persona, err := s.personas.Get(t.convCtx.Relationship.RoleType)
			if err != nil {
				return fmt.Errorf("load persona: %w", err)
			}
			t.persona = persona
			return nil
		})
		g.Go(func() error {
			prefs := t.convCtx.Preferences
			profile := s.culture.DetectCulturalProfile(prefs.Language, prefs.Region)
			t.culture = s.culture.AdaptToCulture(profile, prefs)
			return nil
		})
		return g.Wait()
	})
	if err != nil {
		return err
	}

	var history []domain.EmotionSample
	_ = s.stage(ctx, "trend", func(context.Context) error {
		history = EmotionHistory(t.convCtx.RecentMessages)
		t.trend = s.trends.Aggregate(history)
		return nil
	})
	_ = s.stage(ctx, "temporal", func(context.Context) error {
		t.temporal = s.temporal.Build(t.convCtx)
		return nil
	})
	_ = s.stage(ctx, "mood", func(context.Context) error {
		t.mood = s.moods.CalculateMoodState(t.persona, history, t.temporal, t.signal.PrimaryEmotion)
		return nil
	})
	_ = s.stage(ctx, "tone", func(context.Context) error {
		t.tone = s.tones.ModulateTone(t.mood.CurrentMood, t.mood, t.temporal, t.signal.PrimaryEmotion, t.convCtx.Relationship.RoleType)
		return nil
	})
	_ = s.stage(ctx, "prompt", func(context.Context) error {
		t.prompt = s.composer.Compose(PromptInput{
			Persona:      t.persona,
			Relationship: t.convCtx.Relationship,
			Mood:         t.mood,
			Tone:         t.tone,
			Empathy:      s.empathy.Guidance(t.signal, t.trend),
			Culture:      t.culture,
			Memory:       s.memory.Summarize(t.convCtx),
			Temporal:     t.temporal,
			Recent:       t.convCtx.RecentMessages,
			UserMessage:  t.userMessage,
		})
		return nil
	})
	return nil
}

// generate no reintenta: la persistencia ocurre despues y un reintento aqui
// podria duplicar efectos.
func (s *CompanionService) generate(ctx context.Context, t *turn) (string, error) {
	var raw string
	err := s.stage(ctx, "generate", func(ctx context.Context) error {
		genCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		out, err := s.llmClient.Generate(genCtx, t.prompt, toneHint(t.tone))
		if err != nil {
			return err
		}
		raw = out
		return nil
	})
	if err != nil {
		s.logger.Error("generation failed",
			zap.String("relationship_id", t.relationshipID),
			zap.Duration("timeout", s.timeout),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return raw, nil
}

func (s *CompanionService) finalize(ctx context.Context, t *turn, raw string) domain.GeneratedResponse {
	var (
		content    string
		safety     domain.SafetyVerdict
		ethics     domain.EthicalVerdict
		validation domain.ResponseValidation
	)
	_ = s.stage(ctx, "post_check", func(context.Context) error {
		content = cleanGeneratedReply(raw, t.convCtx.Relationship.AIName, t.persona.Name)
		safety = s.checker.CheckContentSafety(content, domain.ContentContextAIResponse)
		ethics = s.checker.CheckEthicalBoundaries(t.convCtx.Relationship.RoleType, t.userMessage, content)
		validation = s.checker.ValidateResponse(content)
		return nil
	})

	resp := domain.GeneratedResponse{
		Content:       content,
		EmotionalTone: t.tone.ModifiedTone,
		Metadata: domain.ResponseMetadata{
			SafetyVerified: safety.IsSafe,
			EthicallySound: ethics.Passed(),
			Outcome:        domain.OutcomeFinalized,
			UserEmotion:    t.signal.PrimaryEmotion,
			Urgency:        t.signal.Urgency,
			ToneIntensity:  t.tone.Intensity,
			ToneReasons:    t.tone.Reasons,
		},
	}

	if !safety.IsSafe || !ethics.Passed() || !validation.Valid {
		if !safety.IsSafe {
			s.metrics.RecordSafetyViolation(string(domain.ContentContextAIResponse), string(safety.Severity))
		}
		s.logger.Warn("generated reply rejected",
			zap.String("relationship_id", t.relationshipID),
			zap.String("severity", string(safety.Severity)),
			zap.Strings("violations", safety.Violations),
			zap.Strings("concerns", ethics.Concerns),
			zap.Strings("validation_issues", validation.Issues),
		)
		resp.Content = fallbackResponse
		resp.EmotionalTone = domain.ToneSupportive
		resp.Metadata.Outcome = domain.OutcomeFallback
	}

	s.persist(ctx, t, resp)
	return resp
}

// persist guarda el par de mensajes. Una falla se registra pero no anula la
// respuesta ya revisada.
func (s *CompanionService) persist(ctx context.Context, t *turn, resp domain.GeneratedResponse) {
	_ = s.stage(ctx, "persist", func(ctx context.Context) error {
		important := t.signal.Urgency == domain.UrgencyHigh ||
			t.signal.Urgency == domain.UrgencyCrisis ||
			t.signal.Intensity >= importantIntensity

		_, err := s.store.StoreMessage(ctx, StoreMessageInput{
			RelationshipID: t.relationshipID,
			SenderID:       t.userID,
			SenderType:     domain.SenderTypeUser,
			Content:        t.userMessage,
			Tone:           t.signal.PrimaryEmotion,
			Sentiment:      t.signal.SentimentScore,
			Metadata: map[string]any{
				"emotion":         t.signal,
				"safety_severity": string(t.preSafety.Severity),
			},
			Important: important,
		})
		if err != nil {
			s.logger.Error("store user message failed", zap.String("relationship_id", t.relationshipID), zap.Error(err))
		}

		_, err = s.store.StoreMessage(ctx, StoreMessageInput{
			RelationshipID: t.relationshipID,
			SenderID:       t.relationshipID,
			SenderType:     domain.SenderTypeAI,
			Content:        resp.Content,
			Tone:           resp.EmotionalTone,
			Metadata: map[string]any{
				"response": resp.Metadata,
			},
		})
		if err != nil {
			s.logger.Error("store ai message failed", zap.String("relationship_id", t.relationshipID), zap.Error(err))
		}
		return err
	})
}

// stage envuelve una etapa con su span y su histograma de duracion.
func (s *CompanionService) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	s.metrics.ObserveStage(name, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func toneHint(tone domain.ToneModulation) string {
	return fmt.Sprintf("Respond with a %s tone at intensity %.2f. Stay in character and keep replies conversational.",
		strings.ToLower(string(tone.ModifiedTone)), tone.Intensity)
}
