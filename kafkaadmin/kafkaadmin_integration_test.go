//go:build integration

package kafkaadmin

import (
	"context"
	"testing"
	"time"
)

var (
	testKafkaBootstrapServers = "kafka:9094"
	testKafkaAdminTimeout     = 5 * time.Second
)

func testKafkaAdminClient(t *testing.T) (context.Context, KafkaAdmin) {
	ctx, cancel := context.WithTimeout(context.Background(), testKafkaAdminTimeout)
	ka, err := NewClient(Config{
		BootstrapServers: testKafkaBootstrapServers,
	})
	if err != nil {
		cancel()
		t.Logf("failed to initialize client: %s", err)
		t.FailNow()
	}

	t.Cleanup(func() {
		cancel()
		ka.Close()
	})

	return ctx, ka
}
