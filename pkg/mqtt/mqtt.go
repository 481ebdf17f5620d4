package mqtt

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

const connectTimeout = 5 * time.Second

type IMQTT interface {
	PublishStatus(ctx context.Context, body []byte) error
	Close() error
}

type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
}

type mqttClient struct {
	client mqtt.Client
	topic  string
	qos    byte
	log    *logrus.Logger
}

// New connects to the broker. Status messages are retained so a late subscriber
// gets the current state right away.
func New(log *logrus.Logger, opts Options) (IMQTT, error) {
	clientOpts := mqtt.NewClientOptions()
	clientOpts.AddBroker(opts.Broker)
	clientOpts.SetClientID(opts.ClientID)
	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		clientOpts.SetPassword(opts.Password)
	}
	clientOpts.SetAutoReconnect(true)
	clientOpts.SetCleanSession(true)
	clientOpts.SetConnectTimeout(connectTimeout)

	client := mqtt.NewClient(clientOpts)

	log.Info(fmt.Sprintf("Connecting to MQTT broker at %s...", opts.Broker))
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("failed to connect to MQTT broker: timed out after %s", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	log.Info("Successfully connected to MQTT broker")

	return &mqttClient{
		client: client,
		topic:  opts.Topic,
		qos:    opts.QoS,
		log:    log,
	}, nil
}

func (m *mqttClient) PublishStatus(ctx context.Context, body []byte) error {
	token := m.client.Publish(m.topic, m.qos, true, body)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", m.topic, err)
	}
	return nil
}

func (m *mqttClient) Close() error {
	m.client.Disconnect(250)
	return nil
}
