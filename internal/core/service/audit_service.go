package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vendwatch/fleet-gateway/internal/core/ports"
)

// AuditService exposes the admin-facing view of the audit trail.
type AuditService struct {
	audit ports.AuditLog
	log   zerolog.Logger
}

func NewAuditService(audit ports.AuditLog, log zerolog.Logger) *AuditService {
	return &AuditService{audit: audit, log: log}
}

// Read returns the raw log text for display.
func (s *AuditService) Read(ctx context.Context) (string, error) {
	return s.audit.Read(ctx)
}

// Clear truncates the trail and records who did it as the first entry of the
// fresh log.
func (s *AuditService) Clear(ctx context.Context, actor string) error {
	if err := s.audit.Clear(ctx); err != nil {
		return err
	}
	if err := s.audit.Append(ctx, fmt.Sprintf("%s cleared the audit log", actor)); err != nil {
		return err
	}
	s.log.Info().Str("actor", actor).Msg("audit log cleared")
	return nil
}
