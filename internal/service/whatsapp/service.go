package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/config"
	"github.com/mamadbah2/factory/internal/service/reporting"
	client "github.com/mamadbah2/factory/pkg/clients/whatsapp"
)

// ErrNoRecipient is returned when the summary has nobody to go to.
var ErrNoRecipient = errors.New("WHATSAPP_MANAGER_ID is not configured")

// Summaries builds the report the replies are cut from.
type Summaries interface {
	Summary() reporting.Summary
}

// MessagingService describes the operations the HTTP layer and scheduler use.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload client.WebhookPayload) error
	SendSummary(ctx context.Context) error
}

// MetaWhatsAppService answers manager queries and pushes the weekly summary
// through the WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg     config.WhatsAppConfig
	client  client.Client
	reports Summaries
	logger  *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, c client.Client, reports Summaries, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:     cfg,
		client:  c,
		reports: reports,
		logger:  logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if s.cfg.VerifyToken == "" || verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook answers every inbound message in the payload.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload client.WebhookPayload) error {
	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg client.InboundMessage) error {
	if s.cfg.ManagerID != "" && msg.From != s.cfg.ManagerID {
		s.logger.Warn("ignoring message from unknown sender", zap.String("from", msg.From))
		return nil
	}

	text := msg.Body()
	if text == "" {
		return errors.New("empty message body")
	}

	cmd := ParseCommand(text)
	s.logger.Info("parsed inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	return s.send(ctx, msg.From, s.Reply(cmd))
}

// Reply renders the answer to a command from the current summary.
func (s *MetaWhatsAppService) Reply(cmd Command) string {
	switch cmd.Type {
	case CommandStock:
		return reporting.StockText(s.reports.Summary())
	case CommandModels:
		return reporting.ModelsText(s.reports.Summary())
	case CommandBalances:
		return reporting.BalancesText(s.reports.Summary())
	case CommandExpenses:
		return reporting.ExpensesText(s.reports.Summary())
	case CommandSummary:
		return reporting.SummaryText(s.reports.Summary())
	case CommandHelp:
		return helpText
	}
	return "Unknown command.\n" + helpText
}

// SendSummary pushes the full summary to the manager.
func (s *MetaWhatsAppService) SendSummary(ctx context.Context) error {
	if s.cfg.ManagerID == "" {
		return ErrNoRecipient
	}
	if err := s.send(ctx, s.cfg.ManagerID, reporting.SummaryText(s.reports.Summary())); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}
	s.logger.Info("summary sent", zap.String("to", s.cfg.ManagerID))
	return nil
}

func (s *MetaWhatsAppService) send(ctx context.Context, to, body string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.client.SendText(ctxWithTimeout, to, body)
	return err
}
