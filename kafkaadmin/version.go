package kafkaadmin

import (
	"fmt"

	"github.com/Masterminds/semver"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// MinLibraryVersion is the lowest librdkafka release providing the
// DescribeTopics and ListOffsets admin APIs.
const MinLibraryVersion = "2.3.0"

// LibraryVersion returns the version string of the linked librdkafka.
func LibraryVersion() string {
	_, v := kafka.LibraryVersion()
	return v
}

// CheckLibraryVersion returns an ErrLibraryVersion if the linked librdkafka
// is older than MinLibraryVersion.
func CheckLibraryVersion() error {
	return checkVersion(LibraryVersion(), ">= "+MinLibraryVersion)
}

func checkVersion(have, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %s: %s", constraint, err)
	}

	v, err := semver.NewVersion(have)
	if err != nil {
		return fmt.Errorf("unparseable librdkafka version %s: %s", have, err)
	}

	if !c.Check(v) {
		return ErrLibraryVersion{Have: have, Want: constraint}
	}

	return nil
}
