package kafkaadmin

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewClient(t *testing.T) {
	mkac := &MockedKafkaAdminClient{}
	mkac.On("NewAdminClient", &kafka.ConfigMap{
		"bootstrap.servers":      "kafka:9092",
		"go.logs.channel.enable": true,
		"security.protocol":      "PLAINTEXT",
	}).Return(&fakeAdmin{}, nil)
	_, err := NewClientWithFactory(Config{BootstrapServers: "kafka:9092", SecurityProtocol: "PLAINTEXT"}, mkac.NewAdminClient)
	assert.Nil(t, err)
	mkac.AssertExpectations(t)
}

func TestNewClientWithClientID(t *testing.T) {
	mkac := &MockedKafkaAdminClient{}
	mkac.On("NewAdminClient", &kafka.ConfigMap{
		"bootstrap.servers":      "kafka:9092",
		"go.logs.channel.enable": true,
		"client.id":              "snctl-test",
	}).Return(&fakeAdmin{}, nil)
	_, err := NewClientWithFactory(Config{BootstrapServers: "kafka:9092", ClientID: "snctl-test"}, mkac.NewAdminClient)
	assert.Nil(t, err)
	mkac.AssertExpectations(t)
}

func TestNewClientWithToken(t *testing.T) {
	mkac := &MockedKafkaAdminClient{}
	mkac.On("NewAdminClient", &kafka.ConfigMap{
		"bootstrap.servers":      "kafka:9093",
		"go.logs.channel.enable": true,
		"security.protocol":      "SASL_SSL",
		"sasl.mechanism":         "PLAIN",
		"sasl.username":          "user",
		"sasl.password":          "token:secret",
	}).Return(&fakeAdmin{}, nil)
	_, err := NewClientWithFactory(Config{BootstrapServers: "kafka:9093", Token: "secret"}, mkac.NewAdminClient)
	assert.Nil(t, err)
	mkac.AssertExpectations(t)
}

func TestNewClientWithSASLEnabled(t *testing.T) {
	mkac := &MockedKafkaAdminClient{}
	mkac.On("NewAdminClient",
		&kafka.ConfigMap{
			"bootstrap.servers":      "kafka:9092",
			"go.logs.channel.enable": true,
			"ssl.ca.location":        "/etc/kafka/config/ca.crt",
			"security.protocol":      "SASL_SSL",
			"sasl.mechanism":         "SCRAM-SHA-512",
			"sasl.username":          "registry",
			"sasl.password":          "secret",
		},
	).Return(&fakeAdmin{}, nil)
	_, err := NewClientWithFactory(
		Config{
			BootstrapServers: "kafka:9092",
			SSLCALocation:    "/etc/kafka/config/ca.crt",
			SecurityProtocol: "SASL_SSL",
			SASLMechanism:    "SCRAM-SHA-512",
			SASLUsername:     "registry",
			SASLPassword:     "secret",
		},
		mkac.NewAdminClient,
	)
	assert.Nil(t, err)
	mkac.AssertExpectations(t)
}

func TestNewClientConfigErrors(t *testing.T) {
	factory := func(*kafka.ConfigMap) (AdminAPI, error) { return &fakeAdmin{}, nil }

	configs := []Config{
		{},
		{BootstrapServers: "kafka:9092", SecurityProtocol: "BOGUS"},
		{BootstrapServers: "kafka:9092", SecurityProtocol: "SASL_PLAINTEXT", SASLMechanism: "GSSAPI"},
	}

	for _, cfg := range configs {
		_, err := NewClientWithFactory(cfg, factory)
		assert.NotNil(t, err, "expected error for %+v", cfg)
	}
}

func TestNewClientFactoryError(t *testing.T) {
	mkac := &MockedKafkaAdminClient{}
	mkac.On("NewAdminClient", mock.Anything).Return(nil, errors.New("no provider"))

	_, err := NewClientWithFactory(Config{BootstrapServers: "kafka:9092"}, mkac.NewAdminClient)
	assert.EqualError(t, err, "[librdkafka] no provider")
}

func TestClientForwardsLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := fakeLogAdmin{fakeAdmin: &fakeAdmin{}, logs: make(chan kafka.LogEvent, 1)}

	c, err := NewClientWithFactory(
		Config{BootstrapServers: "kafka:9092", Logger: zap.New(core)},
		func(*kafka.ConfigMap) (AdminAPI, error) { return h, nil },
	)
	assert.Nil(t, err)

	h.logs <- kafka.LogEvent{Name: "rdkafka#producer-1", Tag: "CONNECT", Message: "connecting", Level: 7}

	assert.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 10*time.Millisecond)

	c.Close()
	assert.True(t, h.closed)
}

func TestMetadataTimeoutMs(t *testing.T) {
	c := testClient(&fakeAdmin{})
	assert.Equal(t, math.MaxInt32, c.metadataTimeoutMs(context.Background()))

	c.timeout = 2 * time.Second
	assert.Equal(t, 2000, c.metadataTimeoutMs(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ms := c.metadataTimeoutMs(ctx)
	assert.Greater(t, ms, 9000)
	assert.LessOrEqual(t, ms, 10000)
}

func TestMetadataTimeoutMsClamped(t *testing.T) {
	md := fakeKafkaMetadata()
	f := &fakeAdmin{metadata: &md}
	c := testClient(f)
	c.timeout = 1000 * time.Hour

	_, err := c.ListTopics(context.Background(), nil)
	assert.Nil(t, err)
	assert.Equal(t, math.MaxInt32, f.metadataTimeout)

	c.timeout = time.Microsecond
	assert.Equal(t, 1, c.metadataTimeoutMs(context.Background()))
}

func TestRequestContext(t *testing.T) {
	c := testClient(&fakeAdmin{})

	ctx, cancel := c.requestContext(context.Background())
	_, ok := ctx.Deadline()
	assert.False(t, ok, "no deadline expected without a timeout")
	cancel()

	c.timeout = time.Minute
	ctx, cancel = c.requestContext(context.Background())
	_, ok = ctx.Deadline()
	assert.True(t, ok, "expected the client timeout to apply")
	cancel()
}

func TestCheckVersion(t *testing.T) {
	assert.Nil(t, checkVersion("2.3.0", ">= 2.3.0"))
	assert.Nil(t, checkVersion("2.10.1", ">= 2.3.0"))

	err := checkVersion("2.2.0", ">= 2.3.0")
	var verr ErrLibraryVersion
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "2.2.0", verr.Have)

	assert.NotNil(t, checkVersion("not-a-version", ">= 2.3.0"))
}
