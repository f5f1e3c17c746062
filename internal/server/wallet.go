package server

import (
	"net/http"
	"strings"

	walletdomain "github.com/fodetoorg/yoyo/internal/wallet/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetWallet(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	resp, err := s.walletSvc.GetByUser(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListWalletTransactions(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	resp, err := s.walletSvc.Transactions(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isWalletValidationError(err error) bool {
	switch err {
	case walletdomain.ErrInvalidUser,
		walletdomain.ErrInvalidAmount,
		walletdomain.ErrInsufficientBalance:
		return true
	default:
		return false
	}
}
