package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	bookingdomain "github.com/fodetoorg/yoyo/internal/booking/domain"
	refunddomain "github.com/fodetoorg/yoyo/internal/refund/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

func (s *Server) QuoteBooking(c *gin.Context) {
	var req bookingdomain.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bookingSvc.Quote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateBooking(c *gin.Context) {
	var req bookingdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bookingSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBookingByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.bookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBookings(c *gin.Context) {
	var req bookingdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bookingSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type cancelBookingRequest struct {
	Reason       string                    `json:"reason"`
	PayoutMethod refunddomain.PayoutMethod `json:"payout_method"`
}

// CancelBooking opens the refund flow for a booking. The refund service owns
// the state transition so the fee computation and the cancellation land
// together.
func (s *Server) CancelBooking(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	// An empty body is a plain cancellation with the default payout.
	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.refundSvc.Request(c.Request.Context(), refunddomain.RefundRequest{
		BookingID:    id,
		RefundType:   refunddomain.Cancellation,
		Reason:       strings.TrimSpace(req.Reason),
		PayoutMethod: req.PayoutMethod,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CheckInBooking(c *gin.Context) {
	s.transitionBooking(c, bookingdomain.StatusCheckedIn)
}

func (s *Server) CheckOutBooking(c *gin.Context) {
	s.transitionBooking(c, bookingdomain.StatusCompleted)
}

func (s *Server) transitionBooking(c *gin.Context, to bookingdomain.BookingStatus) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, bookingdomain.ErrBookingNotFound)
		return
	}

	resp, err := s.bookingSvc.Transition(c.Request.Context(), id, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBookingReceipt(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	pdfBytes, err := s.bookingSvc.Receipt(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt-`+id+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func isBookingValidationError(err error) bool {
	switch err {
	case bookingdomain.ErrInvalidStayDates,
		bookingdomain.ErrInvalidGuest,
		bookingdomain.ErrRoomUnavailable:
		return true
	default:
		return false
	}
}
