package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

type JetStreamConfig struct {
	URL             string
	StreamName      string
	SubjectPrefix   string
	MaxReconnects   int
	ReconnectWait   time.Duration
	MaxAge          time.Duration // How long to keep events
	Replicas        int
	DuplicateWindow time.Duration
	PublishTimeout  time.Duration
}

func DefaultJetStreamConfig() JetStreamConfig {
	return JetStreamConfig{
		URL:             nats.DefaultURL,
		StreamName:      "KICKOFF_PROGRESS",
		SubjectPrefix:   "kickoff.progress",
		MaxReconnects:   -1, // Infinite
		ReconnectWait:   2 * time.Second,
		MaxAge:          24 * time.Hour,
		Replicas:        1,
		DuplicateWindow: 2 * time.Minute,
		PublishTimeout:  2 * time.Second,
	}
}

// JetStreamPublisher mirrors progress events onto a JetStream stream
type JetStreamPublisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config JetStreamConfig
}

func NewJetStreamPublisher(ctx context.Context, cfg JetStreamConfig) (*JetStreamPublisher, error) {
	opts := []nats.Option{
		nats.Name("kickoff-onboarding"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	p := &JetStreamPublisher{nc: nc, js: js, config: cfg}

	if err := p.ensureStream(ctx); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}

	return p, nil
}

func (p *JetStreamPublisher) streamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:        p.config.StreamName,
		Description: "League onboarding progress events",
		Subjects:    []string{fmt.Sprintf("%s.>", p.config.SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      p.config.MaxAge,
		Storage:     jetstream.FileStorage,
		Replicas:    p.config.Replicas,
		Duplicates:  p.config.DuplicateWindow,
	}
}

func (p *JetStreamPublisher) ensureStream(ctx context.Context) error {
	sc := p.streamConfig()

	if _, err := p.js.CreateOrUpdateStream(ctx, sc); err != nil {
		return fmt.Errorf("create or update stream: %w", err)
	}

	log.Info().
		Str("stream", sc.Name).
		Strs("subjects", sc.Subjects).
		Msg("JetStream progress stream ready")
	return nil
}

// Subject returns the subject an event is published on
func (p *JetStreamPublisher) Subject(e Event) string {
	return subjectFor(p.config.SubjectPrefix, e.Step)
}

func subjectFor(prefix string, step Step) string {
	return fmt.Sprintf("%s.%s", prefix, step)
}

// message builds the NATS message for an event with a fresh message id
func message(prefix string, e Event) (*nats.Msg, string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, "", fmt.Errorf("marshal event: %w", err)
	}

	msgID := uuid.New().String()
	return &nats.Msg{
		Subject: subjectFor(prefix, e.Step),
		Data:    data,
		Header: nats.Header{
			"Event-ID":   []string{msgID},
			"Event-Step": []string{string(e.Step)},
			"Run-ID":     []string{e.RunID},
			"League-ID":  []string{e.LeagueExternalID},
		},
	}, msgID, nil
}

// Publish sends one event and waits for the stream ack
func (p *JetStreamPublisher) Publish(ctx context.Context, e Event) error {
	msg, msgID, err := message(p.config.SubjectPrefix, e)
	if err != nil {
		return err
	}

	ack, err := p.js.PublishMsg(ctx, msg,
		jetstream.WithMsgID(msgID),
		jetstream.WithExpectStream(p.config.StreamName),
	)
	if err != nil {
		return fmt.Errorf("publish to JetStream: %w", err)
	}

	log.Debug().
		Str("subject", msg.Subject).
		Uint64("sequence", ack.Sequence).
		Str("stream", ack.Stream).
		Msg("published progress event")

	return nil
}

// Sink returns a Func that publishes each event. Failures are logged; a
// broken broker never stops an onboarding run.
func (p *JetStreamPublisher) Sink() Func {
	timeout := p.config.PublishTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return func(e Event) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := p.Publish(ctx, e); err != nil {
			log.Warn().Err(err).Str("step", string(e.Step)).Msg("failed to publish progress event")
		}
	}
}

func (p *JetStreamPublisher) Close() error {
	if p.nc != nil {
		return p.nc.Drain()
	}
	return nil
}
