package services

import (
	"fmt"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/certificate"
	"github.com/sideshow/apns2/payload"
)

// PushService delivers notifications to iOS devices through APNs. It is
// optional: when disabled in config the service is a no-op and offline
// recipients simply find their notifications on next load.
type PushService struct {
	client *apns2.Client
	topic  string
}

// NewPushService creates a push service from a .p12 certificate. Returns a
// disabled service when enabled is false.
func NewPushService(enabled bool, certPath, certPassword, topic string, production bool) (*PushService, error) {
	if !enabled {
		return &PushService{}, nil
	}

	cert, err := certificate.FromP12File(certPath, certPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs certificate: %w", err)
	}

	client := apns2.NewClient(cert)
	if production {
		client = client.Production()
	} else {
		client = client.Development()
	}
	return &PushService{client: client, topic: topic}, nil
}

// Enabled reports whether push delivery is configured
func (s *PushService) Enabled() bool {
	return s != nil && s.client != nil
}

// Send pushes an alert to a device token
func (s *PushService) Send(deviceToken, message string) error {
	if !s.Enabled() {
		return nil
	}

	n := &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       s.topic,
		Payload:     payload.NewPayload().Alert(message).Sound("default"),
	}
	res, err := s.client.Push(n)
	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	if !res.Sent() {
		return fmt.Errorf("push rejected: %s", res.Reason)
	}
	return nil
}
