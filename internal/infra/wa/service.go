package wa

import (
	"context"
	"fmt"
	"os"

	"github.com/mdp/qrterminal"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"
)

type MessageHandler func(ctx context.Context, client *whatsmeow.Client, evt *events.Message)

// Service owns the whatsmeow client. Its device store shares the SQLite file
// with the activity log, which is what lets MemberRepository read
// whatsmeow_lid_map.
type Service struct {
	client         *whatsmeow.Client
	dbPath         string
	log            walog.Logger
	messageHandler MessageHandler
}

func NewService(dbPath string, logger walog.Logger) *Service {
	return &Service{
		dbPath: dbPath,
		log:    logger,
	}
}

func (s *Service) Initialize(ctx context.Context) error {
	// WAL mode persists on the DB file; busy_timeout must be set per connection.
	dbAddress := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", s.dbPath)
	container, err := sqlstore.New(ctx, "sqlite", dbAddress, s.log.Sub("Database"))
	if err != nil {
		return fmt.Errorf("failed to initialize device store: %w", err)
	}

	devices, err := container.GetAllDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get devices: %w", err)
	}

	var device *store.Device
	if len(devices) > 0 {
		device = devices[0]
	} else {
		device = container.NewDevice()
	}

	s.client = whatsmeow.NewClient(device, s.log.Sub("Client"))
	s.registerEventHandlers()

	return nil
}

func (s *Service) Connect() error {
	if s.client == nil {
		return fmt.Errorf("client not initialized")
	}
	if s.client.IsConnected() {
		return nil
	}
	return s.client.Connect()
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
}

func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}

func (s *Service) registerEventHandlers() {
	s.client.AddEventHandler(func(evt interface{}) {
		switch v := evt.(type) {
		case *events.Message:
			if s.messageHandler != nil {
				go s.messageHandler(context.Background(), s.client, v)
			}
		case *events.LoggedOut:
			s.log.Warnf("Logged out from WhatsApp (reason %v)", v.Reason)
		}
	})
}

func (s *Service) GetClient() *whatsmeow.Client {
	return s.client
}

func (s *Service) IsLoggedIn() bool {
	return s.client.Store.ID != nil
}

func (s *Service) Pair(ctx context.Context, phone string) (string, error) {
	if s.IsLoggedIn() {
		return "", fmt.Errorf("already logged in")
	}
	if !s.client.IsConnected() {
		return "", fmt.Errorf("client not connected")
	}

	code, err := s.client.PairPhone(ctx, phone, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
	if err != nil {
		return "", fmt.Errorf("failed to pair phone: %w", err)
	}
	return code, nil
}

// PrintQR connects and renders login QR codes until the login flow ends.
func (s *Service) PrintQR(ctx context.Context) error {
	if s.IsLoggedIn() {
		return nil
	}
	qrChan, err := s.client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get QR channel: %w", err)
	}
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect for QR: %w", err)
	}
	for evt := range qrChan {
		if evt.Event == "code" {
			s.log.Infof("Scan the QR code below to log in")
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		} else {
			s.log.Infof("Login event: %s", evt.Event)
		}
	}
	return nil
}
