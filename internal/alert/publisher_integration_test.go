//go:build integration

package alert

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"symposium/internal/platform/config"
	"symposium/pkg/testutil/containers"
)

func TestPublishAcceptedToRedpanda(t *testing.T) {
	broker := containers.NewRedpandaContainer(t).Broker
	cfg := config.AlertConfig{Brokers: []string{broker}, Topic: "symposium.registrations.it"}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	p := NewPublisher(client, cfg.Topic, embeddedCatalog(t))
	reg := newRegistration()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, p.PublishAccepted(ctx, reg))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollRecords(ctx, 1)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, reg.ID.String(), string(records[0].Key))

	var got payload
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, []string{"Technical Quiz", "gone-event"}, got.Events)
}
