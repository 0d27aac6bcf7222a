package nats

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// Base subject constants (without prefix)
const (
	baseSubjectQuoteComputed = "quote.computed"
)

// Client publishes quote events to NATS JetStream
type Client struct {
	conn   *nats.Conn
	logger hclog.Logger
	prefix string // Stream prefix for namespace isolation (e.g., "sales" -> "sales.quote.computed")
}

// NewClient creates a new NATS client with NKey authentication.
// The prefix is used for namespace isolation and may be empty.
func NewClient(servers string, nkeySeed string, prefix string, logger hclog.Logger) (*Client, error) {
	if logger == nil {
		logger = hclog.Default()
	}

	opt, err := nkeyOption(nkeySeed)
	if err != nil {
		return nil, err
	}

	opts := []nats.Option{
		opt,
		nats.Name("quoter"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(servers, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("Connected to NATS", "servers", servers, "prefix", prefix)

	return &Client{
		conn:   nc,
		logger: logger,
		prefix: prefix,
	}, nil
}

// nkeyOption builds the NKey authenticator from a user seed
func nkeyOption(nkeySeed string) (nats.Option, error) {
	kp, err := nkeys.FromSeed([]byte(nkeySeed))
	if err != nil {
		return nil, fmt.Errorf("failed to parse NKey seed: %w", err)
	}

	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get public key: %w", err)
	}

	return nats.Nkey(pub, func(nonce []byte) ([]byte, error) {
		sig, err := kp.Sign(nonce)
		if err != nil {
			return nil, fmt.Errorf("failed to sign nonce: %w", err)
		}
		return sig, nil
	}), nil
}

// Subject returns the prefixed subject quotes are published to
func (c *Client) Subject() string {
	return withPrefix(c.prefix, baseSubjectQuoteComputed)
}

// withPrefix adds the stream prefix to a subject if prefix is set
func withPrefix(prefix, subject string) string {
	if prefix == "" {
		return subject
	}
	return prefix + "." + subject
}

// PublishQuote publishes a quote computed event
func (c *Client) PublishQuote(payload QuoteComputedPayload) error {
	return c.publish(c.Subject(), payload)
}

// publish marshals the payload and publishes it to JetStream
func (c *Client) publish(subject string, payload interface{}) error {
	data, err := marshalPayload(payload)
	if err != nil {
		return err
	}

	js, err := c.conn.JetStream()
	if err != nil {
		return fmt.Errorf("failed to get JetStream context: %w", err)
	}

	if _, err := js.Publish(subject, data); err != nil {
		c.logger.Error("Failed to publish event", "subject", subject, "error", err)
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	// Flush failure is only a warning: JetStream already acknowledged the message
	if err := c.conn.Flush(); err != nil {
		c.logger.Warn("Failed to flush NATS connection", "subject", subject, "error", err)
	}

	c.logger.Debug("Published and flushed event", "subject", subject)
	return nil
}

func marshalPayload(payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return data, nil
}

// Close drains and closes the NATS connection
func (c *Client) Close() error {
	if c.conn != nil {
		c.conn.Drain()
		c.conn.Close()
		c.logger.Info("NATS connection closed")
	}
	return nil
}
