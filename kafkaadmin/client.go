package kafkaadmin

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"

	"github.com/snctl/snctl/internal/logging"
)

var (
	empty struct{}
	// SecurityProtocolSet is the set of protocols supported to communicate with brokers
	SecurityProtocolSet = map[string]struct{}{"PLAINTEXT": empty, "SSL": empty, "SASL_PLAINTEXT": empty, "SASL_SSL": empty}
	// SASLMechanismSet is the set of mechanisms supported for client to broker authentication
	SASLMechanismSet = map[string]struct{}{"PLAIN": empty, "SCRAM-SHA-256": empty, "SCRAM-SHA-512": empty}
)

const (
	// Token based auth is SASL/PLAIN over TLS with a fixed username and the
	// token carried in the password.
	tokenUsername       = "user"
	tokenPasswordPrefix = "token:"
)

// FactoryFunc builds the underlying admin handle from a librdkafka config.
type FactoryFunc func(conf *kafka.ConfigMap) (AdminAPI, error)

// Client implements a KafkaAdmin.
type Client struct {
	c       AdminAPI
	timeout time.Duration
	logger  *zap.Logger
	done    chan struct{}
}

// Config holds Client configuration parameters.
type Config struct {
	// Required.
	BootstrapServers string
	// Misc.
	ClientID string
	// Token enables SASL_SSL/PLAIN token authentication when set.
	Token            string
	SSLCALocation    string
	SecurityProtocol string
	SASLMechanism    string
	SASLUsername     string
	SASLPassword     string
	// Timeout bounds each admin request when the request context carries no
	// deadline. Zero waits indefinitely.
	Timeout time.Duration
	// Logger receives librdkafka log events. Nil discards them.
	Logger *zap.Logger
}

// NewClient returns a Client. The admin handle shares a producer-typed
// librdkafka instance whose log events are forwarded to Config.Logger.
func NewClient(cfg Config) (*Client, error) {
	return newClient(cfg, newProducerAdmin)
}

// NewClientWithFactory returns a new admin Client using a factory func for the kafkaAdminClient
func NewClientWithFactory(cfg Config, factory FactoryFunc) (*Client, error) {
	return newClient(cfg, factory)
}

// Close closes the Client.
func (c *Client) Close() {
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	c.c.Close()
}

func newClient(cfg Config, factory FactoryFunc) (*Client, error) {
	c := &Client{
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}

	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	kafkaCfg, err := cfgToConfigMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("[config] %s", err)
	}

	k, err := factory(kafkaCfg)
	if err != nil {
		return nil, fmt.Errorf("[librdkafka] %s", err)
	}

	c.c = k

	// Drain the librdkafka log channel when the handle exposes one.
	if ls, ok := k.(logSource); ok {
		c.done = make(chan struct{})
		go logging.Forward(c.logger, ls.Logs(), c.done)
	}

	return c, nil
}

func cfgToConfigMap(cfg Config) (*kafka.ConfigMap, error) {
	if cfg.BootstrapServers == "" {
		return nil, fmt.Errorf("bootstrap.servers must be set")
	}

	kafkaCfg := &kafka.ConfigMap{
		"bootstrap.servers":      cfg.BootstrapServers,
		"go.logs.channel.enable": true,
	}

	if cfg.ClientID != "" {
		kafkaCfg.SetKey("client.id", cfg.ClientID)
	}

	// A token implies SASL_SSL/PLAIN unless explicitly overridden.
	if cfg.Token != "" {
		if cfg.SecurityProtocol == "" {
			cfg.SecurityProtocol = "SASL_SSL"
		}
		if cfg.SASLMechanism == "" {
			cfg.SASLMechanism = "PLAIN"
		}
		if cfg.SASLUsername == "" {
			cfg.SASLUsername = tokenUsername
		}
		if cfg.SASLPassword == "" {
			cfg.SASLPassword = tokenPasswordPrefix + cfg.Token
		}
	}

	if cfg.SecurityProtocol != "" {
		if _, ok := SecurityProtocolSet[cfg.SecurityProtocol]; !ok {
			return nil, fmt.Errorf("unsupported security.protocol %s", cfg.SecurityProtocol)
		}
		kafkaCfg.SetKey("security.protocol", cfg.SecurityProtocol)
	}

	if cfg.SSLCALocation != "" {
		kafkaCfg.SetKey("ssl.ca.location", cfg.SSLCALocation)
	}

	if strings.HasPrefix(cfg.SecurityProtocol, "SASL_") {
		if _, ok := SASLMechanismSet[cfg.SASLMechanism]; !ok {
			return nil, fmt.Errorf("unsupported sasl.mechanism %s", cfg.SASLMechanism)
		}
		kafkaCfg.SetKey("sasl.mechanism", cfg.SASLMechanism)
		kafkaCfg.SetKey("sasl.username", cfg.SASLUsername)
		kafkaCfg.SetKey("sasl.password", cfg.SASLPassword)
	}

	return kafkaCfg, nil
}

// requestContext applies the client default timeout to ctx if ctx has no
// deadline of its own.
func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// metadataTimeoutMs returns the timeout for calls that don't take a context.
func (c *Client) metadataTimeoutMs(ctx context.Context) int {
	var to time.Duration
	dl, ok := ctx.Deadline()

	switch {
	case ok:
		to = time.Until(dl)
	case c.timeout > 0:
		to = c.timeout
	default:
		return math.MaxInt32
	}

	switch ms := to.Milliseconds(); {
	case ms <= 0:
		return 1
	case ms > math.MaxInt32:
		// librdkafka takes a C int.
		return math.MaxInt32
	default:
		return int(ms)
	}
}

// logSource is implemented by handles that forward librdkafka logs.
type logSource interface {
	Logs() chan kafka.LogEvent
}

// producerAdmin is an admin client derived from a producer handle. Closing
// it releases both.
type producerAdmin struct {
	*kafka.AdminClient
	producer *kafka.Producer
}

func newProducerAdmin(conf *kafka.ConfigMap) (AdminAPI, error) {
	p, err := kafka.NewProducer(conf)
	if err != nil {
		return nil, err
	}

	a, err := kafka.NewAdminClientFromProducer(p)
	if err != nil {
		p.Close()
		return nil, err
	}

	return &producerAdmin{AdminClient: a, producer: p}, nil
}

func (pa *producerAdmin) Close() {
	pa.AdminClient.Close()
	pa.producer.Close()
}

func (pa *producerAdmin) Logs() chan kafka.LogEvent {
	return pa.producer.Logs()
}
