package server

import (
	"net/http"
	"strings"

	refunddomain "github.com/fodetoorg/yoyo/internal/refund/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) RequestRefund(c *gin.Context) {
	var req refunddomain.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.refundSvc.Request(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRefundByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.refundSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRefunds(c *gin.Context) {
	var req refunddomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.refundSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ProcessRefund(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	resp, err := s.refundSvc.Process(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type rejectRefundRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) RejectRefund(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req rejectRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.refundSvc.Reject(c.Request.Context(), id, strings.TrimSpace(req.Reason))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isRefundValidationError(err error) bool {
	switch err {
	case refunddomain.ErrInvalidBookingState,
		refunddomain.ErrInvalidRefundType,
		refunddomain.ErrRejectionReasonRequired:
		return true
	default:
		return false
	}
}
