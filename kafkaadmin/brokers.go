package kafkaadmin

import (
	"context"
	"sort"
	"strconv"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// BrokerMetadata holds metadata that describes a broker.
type BrokerMetadata struct {
	// Key metadata from the Kafka cluster state.
	Host string
	Port int
	Rack string
	// All metadata.
	FullData map[string]string
}

// BrokerMetadataMap is a map of broker IDs to BrokerMetadata.
type BrokerMetadataMap map[int]BrokerMetadata

// NewBrokerMetadataMap returns a BrokerMetadataMap.
func NewBrokerMetadataMap() BrokerMetadataMap {
	return BrokerMetadataMap{}
}

// IDs returns the sorted broker IDs of the map.
func (bmm BrokerMetadataMap) IDs() []int {
	var ids []int
	for id := range bmm {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids
}

// GetBrokerMetadata returns a BrokerMetadataMap for all live brokers. By default,
// key metadata is populated for each broker's BrokerMetadata entry. If the
// fullData bool is set to True, complete metadata will be included in the
// BrokerMetadata.FullData field. This includes all broker configs found in
// the cluster state including dynamic configs.
func (c *Client) GetBrokerMetadata(ctx context.Context, fullData bool) (BrokerMetadataMap, error) {
	var bmm = NewBrokerMetadataMap()

	// Fetch live brokers.
	brokers, err := c.fetchBrokers(ctx)
	if err != nil {
		return nil, err
	}

	if len(brokers) == 0 {
		return bmm, nil
	}

	var idStrings []string

	// Pre-populate the BrokerMetadataMap.
	for _, b := range brokers {
		bmm[int(b.ID)] = BrokerMetadata{
			Host: b.Host,
			Port: b.Port,
		}

		// Build a []string of IDs for the config lookup.
		idStrings = append(idStrings, strconv.Itoa(int(b.ID)))
	}

	// Get full metadata for the brokers.
	md, err := c.GetConfigs(ctx, "broker", idStrings)
	if err != nil {
		return nil, err
	}

	// Populate the BrokerMetadataMap.
	for strID, data := range md {
		id, _ := strconv.Atoi(strID)

		if _, exist := bmm[id]; !exist {
			// We shouldn't be here, but to avoid a nil access.
			continue
		}

		// Populate key data.
		b := bmm[id]
		b.Rack = data["broker.rack"]

		// Populate full data is configured.
		if fullData {
			b.FullData = data
		}

		bmm[id] = b
	}

	return bmm, nil
}

// fetchBrokers performs a ckg broker metadata lookup.
func (c *Client) fetchBrokers(ctx context.Context) ([]kafka.BrokerMetadata, error) {
	// confluent-kafka-go loads both topic and broker metadata in a single call.
	// This is a hack to avoid looking up topic metadata.
	ts := ""
	md, err := c.c.GetMetadata(&ts, false, c.metadataTimeoutMs(ctx))
	if err != nil {
		return nil, ErrorFetchingMetadata{err.Error()}
	}

	return md.Brokers, nil
}
