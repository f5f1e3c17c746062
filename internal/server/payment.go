package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	paymentdomain "github.com/fodetoorg/yoyo/internal/payment/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreatePaymentOrder(c *gin.Context) {
	var req paymentdomain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.CreateOrder(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPaymentOrderByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.paymentSvc.GetOrder(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) HandlePaymentWebhook(c *gin.Context) {
	provider := strings.TrimSpace(c.Param("provider"))
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	_, err = s.paymentSvc.HandleWebhook(c.Request.Context(), provider, payload, c.Request.Header)
	if err != nil {
		// Providers retry non-2xx responses. Events outside our interest set
		// are acknowledged, not failed.
		if errors.Is(err, paymentdomain.ErrEventIgnored) {
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func isPaymentValidationError(err error) bool {
	switch err {
	case paymentdomain.ErrInvalidPayload,
		paymentdomain.ErrInvalidEvent:
		return true
	default:
		return false
	}
}
