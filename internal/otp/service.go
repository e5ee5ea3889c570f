package otp

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"
)

const defaultTTL = 10 * time.Minute

// Service composes code generation, storage, and delivery.
type Service struct {
	store  Store
	mailer Mailer
	ttl    time.Duration
	log    *slog.Logger
}

func NewService(store Store, mailer Mailer, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{store: store, mailer: mailer, ttl: ttl, log: logger}
}

// Issue generates a 6-digit code for the target address, stores it, and
// emails it. The code is stored before sending so a slow mail round-trip
// can't race a fast verify.
func (s *Service) Issue(target string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	s.store.Put(target, code, s.ttl)

	body := fmt.Sprintf(
		"Hi,\n\nYour Scanpal password reset code is: %s\n\n"+
			"This code will expire in %d minutes.\n\n"+
			"If you didn't request this, please ignore this email.\n\n"+
			"– Scanpal Team",
		code, int(s.ttl.Minutes()),
	)
	if err := s.mailer.Send(target, "Scanpal Password Reset Code", body); err != nil {
		s.log.Error("otp.send_failed", "target", target, "error", err)
		return err
	}

	s.log.Info("otp.issued", "target", target, "ttl", s.ttl)
	return nil
}

// Verify consumes the code for the target. True at most once per issue.
func (s *Service) Verify(target, code string) bool {
	ok := s.store.Consume(target, code)
	s.log.Info("otp.verify", "target", target, "ok", ok)
	return ok
}

// generateCode returns a uniformly random 6-digit code (100000-999999).
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
