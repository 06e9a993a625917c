package cache

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/playsv/playsv/internal/models"
	"github.com/playsv/playsv/internal/shared"
)

// Fixed notification presentation, matching the app shell's assets.
const (
	notificationTitle = "PlaySV"
	notificationIcon  = "/icon-192.png"
	notificationBadge = "/badge-72.png"

	// defaultNotificationBody is shown when a push carries no text.
	defaultNotificationBody = "New activity on your media server"

	// ActionOpen is the primary notification action: focus or open the app.
	ActionOpen = "open"
)

var notificationVibration = []int{100, 50, 100}

// Notifier displays a notification to the user.
type Notifier interface {
	Display(n models.Notification) error
}

// LogNotifier writes notifications to the log. It is the default surface in
// a terminal session where no system notification service is wired up.
type LogNotifier struct {
	Logger *log.Logger
}

func (n *LogNotifier) Display(notification models.Notification) error {
	logger := n.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Infof("notification: %s: %s", notification.Title, notification.Body)
	return nil
}

// PushHandler turns push payloads into displayed notifications and handles
// notification interactions.
type PushHandler struct {
	notifier Notifier
	appURL   string
	open     func(url string) error
	logger   *log.Logger
	now      func() time.Time
}

// NewPushHandler creates a PushHandler that displays via the given notifier
// and opens appURL when the primary action is clicked.
func NewPushHandler(notifier Notifier, appURL string, logger *log.Logger) *PushHandler {
	if logger == nil {
		logger = log.Default()
	}
	if notifier == nil {
		notifier = &LogNotifier{Logger: logger}
	}
	return &PushHandler{
		notifier: notifier,
		appURL:   appURL,
		open:     shared.OpenBrowser,
		logger:   logger,
		now:      time.Now,
	}
}

// HandlePush builds and displays a notification for a push payload. The body
// is the payload text when present, else a fixed default. Display failures
// are logged, never escalated.
func (h *PushHandler) HandlePush(payload []byte) models.Notification {
	body := defaultNotificationBody
	if len(payload) > 0 {
		body = string(payload)
	}

	notification := models.Notification{
		Title:     notificationTitle,
		Body:      body,
		Icon:      notificationIcon,
		Badge:     notificationBadge,
		Vibration: notificationVibration,
		Data: models.NotificationData{
			ArrivedAt:  h.now(),
			PrimaryKey: 1,
		},
	}

	if err := h.notifier.Display(notification); err != nil {
		h.logger.Warnf("failed to display notification: %v", err)
	}

	return notification
}

// HandleClick closes the notification and, for the primary action, opens the
// app's root URL. Other actions just close it.
func (h *PushHandler) HandleClick(action string) error {
	if action != ActionOpen {
		return nil
	}
	if err := h.open(h.appURL); err != nil {
		return err
	}
	return nil
}
