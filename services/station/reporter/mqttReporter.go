package reporter

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eclipse/paho.golang/paho"
	"github.com/iulianpascalau/weather-station/services/station/common"
)

const (
	snapshotTopicSuffix = "snapshot"
	mqttKeepAlive       = 30
	mqttQoS             = 1
)

// ArgsMQTTReporter is the DTO used to create a new MQTT reporter
type ArgsMQTTReporter struct {
	BrokerAddress string
	TopicPrefix   string
	StationID     string
	Secret        string
}

// mqttReporter publishes the snapshots on <prefix>/<station ID>/snapshot. The broker connection is opened on
// the first report and re-opened on the report following a failure
type mqttReporter struct {
	brokerAddress string
	topic         string
	stationID     string
	secret        string

	mut          sync.Mutex
	client       *paho.Client
	disconnected atomic.Bool
}

// NewMQTTReporter creates a new MQTT reporter
func NewMQTTReporter(args ArgsMQTTReporter) (*mqttReporter, error) {
	if len(args.BrokerAddress) == 0 {
		return nil, ErrEmptyEndpoint
	}
	if len(args.StationID) == 0 {
		return nil, ErrEmptyStationID
	}
	if len(args.TopicPrefix) == 0 {
		return nil, ErrEmptyTopicPrefix
	}

	return &mqttReporter{
		brokerAddress: args.BrokerAddress,
		topic:         SnapshotTopic(args.TopicPrefix, args.StationID),
		stationID:     args.StationID,
		secret:        args.Secret,
	}, nil
}

// SnapshotTopic returns the topic the snapshots of the provided station are published on
func SnapshotTopic(prefix string, stationID string) string {
	return fmt.Sprintf("%s/%s/%s", prefix, stationID, snapshotTopicSuffix)
}

// Report publishes the snapshot with QoS 1
func (r *mqttReporter) Report(ctx context.Context, snapshot common.StationSnapshot) error {
	body, reportID, err := marshalSnapshot(snapshot)
	if err != nil {
		return err
	}

	r.mut.Lock()
	defer r.mut.Unlock()

	client, err := r.connectedClient(ctx)
	if err != nil {
		return err
	}

	_, err = client.Publish(ctx, &paho.Publish{
		Topic:   r.topic,
		QoS:     mqttQoS,
		Payload: body,
		Properties: &paho.PublishProperties{
			ContentType: "application/json",
		},
	})
	if err != nil {
		r.dropClient()
		return fmt.Errorf("failed to publish report on %s: %w", r.topic, err)
	}

	log.Debug("successfully published station report", "topic", r.topic, "report ID", reportID,
		"metrics count", len(snapshot.Fields))

	return nil
}

func (r *mqttReporter) connectedClient(ctx context.Context) (*paho.Client, error) {
	if r.disconnected.Load() {
		r.dropClient()
	}
	if r.client != nil {
		return r.client, nil
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", r.brokerAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to dial MQTT broker %s: %w", r.brokerAddress, err)
	}

	r.disconnected.Store(false)
	client := paho.NewClient(paho.ClientConfig{
		ClientID: r.stationID,
		Conn:     conn,
		OnClientError: func(err error) {
			log.Warn("MQTT client error", "broker", r.brokerAddress, "error", err)
			r.disconnected.Store(true)
		},
		OnServerDisconnect: func(d *paho.Disconnect) {
			log.Warn("MQTT broker closed the connection", "broker", r.brokerAddress, "reason code", d.ReasonCode)
			r.disconnected.Store(true)
		},
	})

	connack, err := client.Connect(ctx, &paho.Connect{
		ClientID:     r.stationID,
		CleanStart:   true,
		KeepAlive:    mqttKeepAlive,
		Username:     r.stationID,
		UsernameFlag: true,
		Password:     []byte(r.secret),
		PasswordFlag: len(r.secret) > 0,
	})
	if err != nil {
		_ = conn.Close()
		if connack != nil {
			return nil, fmt.Errorf("MQTT broker refused the connection with reason code %d: %w", connack.ReasonCode, err)
		}
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", r.brokerAddress, err)
	}

	log.Debug("connected to MQTT broker", "broker", r.brokerAddress, "station", r.stationID)
	r.client = client

	return client, nil
}

func (r *mqttReporter) dropClient() {
	if r.client == nil {
		return
	}

	disconnectDone := make(chan struct{})
	client := r.client
	r.client = nil
	go func() {
		_ = client.Disconnect(&paho.Disconnect{ReasonCode: 0})
		close(disconnectDone)
	}()

	select {
	case <-disconnectDone:
	case <-time.After(time.Second):
		log.Debug("timeout disconnecting from MQTT broker", "broker", r.brokerAddress)
	}
}

// Close disconnects from the broker, if connected
func (r *mqttReporter) Close() error {
	r.mut.Lock()
	defer r.mut.Unlock()

	r.dropClient()

	return nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (r *mqttReporter) IsInterfaceNil() bool {
	return r == nil
}
