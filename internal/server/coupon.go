package server

import (
	"net/http"
	"strings"

	coupondomain "github.com/fodetoorg/yoyo/internal/coupon/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateCoupon(c *gin.Context) {
	var req coupondomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.couponSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCoupons(c *gin.Context) {
	resp, err := s.couponSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCouponByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.couponSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCoupon(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req coupondomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.couponSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCouponValidationError(err error) bool {
	switch err {
	case coupondomain.ErrCouponInactive,
		coupondomain.ErrCouponNotStarted,
		coupondomain.ErrCouponExpired,
		coupondomain.ErrCouponExhausted,
		coupondomain.ErrInvalidCouponCode,
		coupondomain.ErrInvalidCouponType,
		coupondomain.ErrInvalidCouponValue,
		coupondomain.ErrInvalidWindow:
		return true
	default:
		return false
	}
}
