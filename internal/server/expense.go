package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/classify"
	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/common"
	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/ocr/azure"
)

// Expense analyzes an uploaded receipt image and classifies its currency
// and spending category. The analysis and classification providers are
// called once each; there are no retries at this layer.
func (h *Handler) Expense(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "no file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "failed to open uploaded file")
		return
	}
	defer file.Close()

	img, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	ctx := c.Request.Context()

	result, err := h.analyzer.AnalyzeReceipt(ctx, img, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, common.ErrNoDocument) {
			h.sendError(c, http.StatusUnprocessableEntity, "no receipt detected")
			return
		}
		h.log.Error("expense.analyze_failed", "error", err)
		h.sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	payload := h.policy.Assemble(azure.ToDocument(result))

	names := make([]string, 0, len(payload.Items))
	for _, it := range payload.Items {
		if it.Name != "" {
			names = append(names, it.Name)
		}
	}

	cls, err := h.classifier.Classify(ctx, classify.Input{
		Merchant: payload.Merchant,
		Address:  payload.Address,
		Total:    payload.Total,
		Items:    names,
		RawLines: payload.RawLines,
	})
	if err != nil {
		if isQuotaExceeded(err) {
			h.log.Error("expense.classify_quota", "error", err)
			h.sendError(c, http.StatusTooManyRequests, "classification quota exceeded: "+err.Error())
			return
		}
		h.log.Error("expense.classify_failed", "error", err)
		h.sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	payload.Currency = cls.Currency
	payload.Category = cls.Category

	c.JSON(http.StatusOK, payload)
}

// isQuotaExceeded recognizes rate-limit conditions from the classifier,
// whichever transport surfaced them.
func isQuotaExceeded(err error) bool {
	if st, ok := status.FromError(err); ok && st.Code() == codes.ResourceExhausted {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return true
	}
	return false
}
