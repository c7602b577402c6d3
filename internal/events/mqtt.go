// Package events publishes playout lifecycle events over MQTT so dashboard
// clients can follow the engine live instead of polling the log table.
package events

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/nereus/internal/engine"
)

// MQTTPublisher implements engine.Publisher on top of a paho client.
type MQTTPublisher struct {
	client mqtt.Client
}

var _ engine.Publisher = (*MQTTPublisher)(nil)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// NewMQTTPublisher connects to the broker. The paho client reconnects on
// its own after transient drops.
func NewMQTTPublisher(brokerURL, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &MQTTPublisher{client: client}, nil
}

// PublishPlayout sends the event on playout/<stream_key>/events. Publishing
// is best-effort; a failed publish is logged and dropped so the engine
// never blocks on the event feed.
func (p *MQTTPublisher) PublishPlayout(streamKey string, event engine.PlayoutEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal playout event")
		return
	}
	topic := fmt.Sprintf("playout/%s/events", streamKey)
	token := p.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("failed to publish playout event")
	}
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
