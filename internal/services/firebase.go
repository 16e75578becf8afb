package services

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var (
	// FirebaseApp is the Firebase app instance
	FirebaseApp *firebase.App
	// MessagingClient is the Firebase Cloud Messaging client
	MessagingClient *messaging.Client
)

// InitFirebase initializes Firebase Admin SDK. Push notifications are
// optional: without a service account configured the app runs without them.
func InitFirebase() error {
	ctx := context.Background()

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		log.Warn().Msg("FIREBASE_SERVICE_ACCOUNT_PATH not set, push notifications disabled")
		return nil
	}

	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting messaging client: %v", err)
	}

	FirebaseApp = app
	MessagingClient = client

	log.Info().Msg("Firebase Cloud Messaging initialized")
	return nil
}

// NotificationPayload represents the notification data
type NotificationPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// SendNotificationToToken sends a notification to a specific FCM token
func SendNotificationToToken(ctx context.Context, token string, payload NotificationPayload) error {
	if MessagingClient == nil {
		log.Warn().Msg("Firebase not initialized, skipping notification")
		return nil
	}
	if token == "" {
		return nil
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "jointventure_default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := MessagingClient.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send notification: %v", err)
	}
	return nil
}

// SendJoinRequestNotification alerts a trip host that someone asked to join.
func SendJoinRequestNotification(ctx context.Context, hostToken, requesterName, tripLocation string, tripID uint) error {
	return SendNotificationToToken(ctx, hostToken, NotificationPayload{
		Title: "New Join Request",
		Body:  fmt.Sprintf("%s wants to join your trip from %s", requesterName, tripLocation),
		Data: map[string]string{
			"type":   "join_request",
			"tripId": fmt.Sprintf("%d", tripID),
		},
	})
}

// SendDecisionNotification tells a requester how the host decided.
func SendDecisionNotification(ctx context.Context, requesterToken, tripLocation string, tripID uint, approved bool) error {
	title := "Request Rejected"
	body := fmt.Sprintf("Your request to join the trip from %s was declined", tripLocation)
	if approved {
		title = "Request Approved"
		body = fmt.Sprintf("You're in! The host approved your request to join the trip from %s", tripLocation)
	}
	return SendNotificationToToken(ctx, requesterToken, NotificationPayload{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":   "join_decision",
			"tripId": fmt.Sprintf("%d", tripID),
		},
	})
}
