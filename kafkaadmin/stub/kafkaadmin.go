// Package stub provides an in-memory kafkaadmin.KafkaAdmin for tests.
package stub

import (
	"github.com/snctl/snctl/kafkaadmin"
)

var _ kafkaadmin.KafkaAdmin = (*Client)(nil)
