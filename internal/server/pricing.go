package server

import (
	"errors"
	"net/http"
	"strings"

	pricingdomain "github.com/fodetoorg/yoyo/internal/pricing/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreatePricingRule(c *gin.Context) {
	var req pricingdomain.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingSvc.CreateRule(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPricingRules(c *gin.Context) {
	resp, err := s.pricingSvc.ListRules(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPricingRuleByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.pricingSvc.GetRule(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePricingRule(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req pricingdomain.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingSvc.UpdateRule(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) QuotePrice(c *gin.Context) {
	var req pricingdomain.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingSvc.Quote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isPricingValidationError(err error) bool {
	// ErrInvalidAdjustment arrives wrapped with the offending rule id.
	switch {
	case errors.Is(err, pricingdomain.ErrInvalidAdjustment),
		errors.Is(err, pricingdomain.ErrInvalidAdjustmentType),
		errors.Is(err, pricingdomain.ErrInvalidAdjustmentValue),
		errors.Is(err, pricingdomain.ErrInvalidWindow),
		errors.Is(err, pricingdomain.ErrInvalidScope),
		errors.Is(err, pricingdomain.ErrInvalidQuoteDate):
		return true
	default:
		return false
	}
}
