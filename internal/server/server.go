// Package server exposes the HTTP API: receipt analysis plus the email
// OTP password-reset flow.
package server

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/classify"
	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/ocr/azure"
	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/receipt"
)

// Analyzer is the receipt OCR provider boundary.
type Analyzer interface {
	AnalyzeReceipt(ctx context.Context, image []byte, contentType string) (*azure.AnalyzeResult, error)
}

// OTPService is the password-reset code flow.
type OTPService interface {
	Issue(target string) error
	Verify(target, code string) bool
}

type Handler struct {
	analyzer   Analyzer
	classifier classify.Classifier
	otp        OTPService
	policy     receipt.Policy
	log        *slog.Logger
}

func NewHandler(analyzer Analyzer, classifier classify.Classifier, otpSvc OTPService, policy receipt.Policy, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		analyzer:   analyzer,
		classifier: classifier,
		otp:        otpSvc,
		policy:     policy,
		log:        logger,
	}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.Health)
	r.POST("/expense", h.Expense)
	r.POST("/send_otp", h.SendOTP)
	r.POST("/verify_otp", h.VerifyOTP)
	r.POST("/reset_password", h.ResetPassword)

	return r
}

// Health reports liveness and the active OCR provider.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok", "provider": receipt.ProviderAzure})
}

func (h *Handler) sendError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
