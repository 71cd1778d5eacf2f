package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/notify"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/ordertext"

	"github.com/rs/zerolog"
)

// distributorService implements DistributorService. The inquiry flow is the
// simplified sibling of order intake: no cart, no idempotency, no totals.
type distributorService struct {
	sender notify.Sender
	mail   Mailboxes
	logger zerolog.Logger
}

// NewDistributorService creates a new distributor inquiry service.
func NewDistributorService(sender notify.Sender, mail Mailboxes, logger zerolog.Logger) DistributorService {
	return &distributorService{
		sender: sender,
		mail:   mail,
		logger: logger.With().Str("service", "distributor").Logger(),
	}
}

// CreateInquiry validates the two required fields, assigns an inquiry
// identifier, and sends one best-effort notification.
func (s *distributorService) CreateInquiry(ctx context.Context, req *model.DistributorRequest) (*model.InquiryResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("inquiry request is nil")
	}

	details := map[string]model.FieldStatus{
		"company": model.FieldOK,
		"phone":   model.FieldOK,
	}
	if strings.TrimSpace(req.Company) == "" {
		details["company"] = model.FieldRequired
	}
	if strings.TrimSpace(req.Phone) == "" {
		details["phone"] = model.FieldRequired
	}
	if details["company"] == model.FieldRequired || details["phone"] == model.FieldRequired {
		s.logger.Warn().Interface("details", details).Msg("inquiry validation failed")
		return nil, &model.ValidationError{Details: details}
	}

	inquiryID := fmt.Sprintf("DIST-2025-%d%03d", time.Now().Unix(), rand.Intn(1000))

	if s.mail.Operator != "" {
		err := s.sender.Send(ctx, notify.Message{
			From:    s.mail.From,
			To:      s.mail.Operator,
			Subject: fmt.Sprintf("Запитване от дистрибутор %s", inquiryID),
			Text:    ordertext.InquirySummary(req, inquiryID),
		})
		if err != nil {
			s.logger.Error().
				Str("inquiry_id", inquiryID).
				Err(err).
				Msg("inquiry notification failed")
		}
	}

	s.logger.Info().
		Str("inquiry_id", inquiryID).
		Str("company", req.Company).
		Msg("distributor inquiry accepted")

	return &model.InquiryResponse{
		Success:   true,
		InquiryID: inquiryID,
		Message:   "Запитването е изпратено успешно. Ще се свържем с вас.",
	}, nil
}
