package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sendOTPRequest struct {
	Target string `json:"target" binding:"required,email"`
}

type verifyOTPRequest struct {
	Target string `json:"target" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// SendOTP issues a password-reset code and emails it to the target.
func (h *Handler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Email address required")
		return
	}

	if err := h.otp.Issue(req.Target); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to send email: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "OTP sent to " + req.Target,
	})
}

// VerifyOTP checks the submitted code. A correct code is consumed and can
// not be replayed.
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Missing email or OTP")
		return
	}

	if h.otp.Verify(req.Target, req.OTP) {
		c.JSON(http.StatusOK, gin.H{"status": "verified"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"status": "invalid"})
}

// ResetPassword finalizes the reset after OTP verification. There is no
// user store behind this service yet; the request is acknowledged so the
// client flow can complete.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Missing email or new password")
		return
	}

	h.log.Info("auth.password_reset", "email", req.Email)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Password reset successful",
	})
}
