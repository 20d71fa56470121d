package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/jgoulah/powerplot/internal/config"
	"github.com/jgoulah/powerplot/pkg/models"
)

// Publisher sends daily consumption totals to an MQTT broker
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// New creates a new publisher connected to the configured broker
func New(cfg config.MQTTConfig, topicPrefix string) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("MQTT publishing is not enabled in config")
	}
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	// Configure MQTT client options
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("powerplot")
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	// Create and connect client
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
	}, nil
}

// payload is the wire format for one day's totals
type payload struct {
	Date         string  `json:"date"`
	ActiveKWh    float64 `json:"active_kwh"`
	SubMetering1 float64 `json:"sub_metering_1"`
	SubMetering2 float64 `json:"sub_metering_2"`
	SubMetering3 float64 `json:"sub_metering_3"`
	Readings     int     `json:"readings"`
}

// Publish sends one daily total to <topic_prefix>/daily
func (p *Publisher) Publish(total models.DailyTotal) error {
	body, err := json.Marshal(payload{
		Date:         total.Date.Format("2006-01-02"),
		ActiveKWh:    total.ActiveKWh,
		SubMetering1: total.SubMetering1,
		SubMetering2: total.SubMetering2,
		SubMetering3: total.SubMetering3,
		Readings:     total.Readings,
	})
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	topic := fmt.Sprintf("%s/daily", p.topicPrefix)
	token := p.client.Publish(topic, 1, true, body)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
