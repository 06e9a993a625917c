package cache

import (
	"errors"
	"testing"

	"github.com/playsv/playsv/internal/models"
)

// recordingNotifier captures displayed notifications.
type recordingNotifier struct {
	displayed []models.Notification
	err       error
}

func (n *recordingNotifier) Display(notification models.Notification) error {
	n.displayed = append(n.displayed, notification)
	return n.err
}

func TestPushHandler(t *testing.T) {
	t.Run("HandlePush", func(t *testing.T) {
		t.Run("uses the payload text as the body", func(t *testing.T) {
			notifier := &recordingNotifier{}
			handler := NewPushHandler(notifier, "http://media.local:8080", nil)

			notification := handler.HandlePush([]byte("Scan finished: 3 new videos"))

			if notification.Body != "Scan finished: 3 new videos" {
				t.Errorf("expected payload body, got %q", notification.Body)
			}
			if notification.Title != notificationTitle {
				t.Errorf("expected fixed title, got %q", notification.Title)
			}
			if len(notifier.displayed) != 1 {
				t.Errorf("expected the notification displayed, got %d", len(notifier.displayed))
			}
		})

		t.Run("falls back to the default body for empty payloads", func(t *testing.T) {
			notifier := &recordingNotifier{}
			handler := NewPushHandler(notifier, "http://media.local:8080", nil)

			notification := handler.HandlePush(nil)

			if notification.Body != defaultNotificationBody {
				t.Errorf("expected default body, got %q", notification.Body)
			}
		})

		t.Run("stamps arrival metadata", func(t *testing.T) {
			handler := NewPushHandler(&recordingNotifier{}, "http://media.local:8080", nil)

			notification := handler.HandlePush([]byte("hi"))

			if notification.Data.ArrivedAt.IsZero() {
				t.Error("expected an arrival timestamp")
			}
			if notification.Data.PrimaryKey != 1 {
				t.Errorf("expected primary key 1, got %d", notification.Data.PrimaryKey)
			}
		})

		t.Run("display failures never escalate", func(t *testing.T) {
			notifier := &recordingNotifier{err: errors.New("no notification surface")}
			handler := NewPushHandler(notifier, "http://media.local:8080", nil)

			notification := handler.HandlePush([]byte("hi"))
			if notification.Body != "hi" {
				t.Errorf("expected the notification built anyway, got %q", notification.Body)
			}
		})
	})

	t.Run("HandleClick", func(t *testing.T) {
		t.Run("the open action opens the app URL", func(t *testing.T) {
			handler := NewPushHandler(&recordingNotifier{}, "http://media.local:8080", nil)

			var opened string
			handler.open = func(url string) error {
				opened = url
				return nil
			}

			if err := handler.HandleClick(ActionOpen); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if opened != "http://media.local:8080" {
				t.Errorf("expected the app URL opened, got %q", opened)
			}
		})

		t.Run("other actions only dismiss", func(t *testing.T) {
			handler := NewPushHandler(&recordingNotifier{}, "http://media.local:8080", nil)

			handler.open = func(url string) error {
				t.Errorf("unexpected open of %q", url)
				return nil
			}

			if err := handler.HandleClick("dismiss"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})
}
