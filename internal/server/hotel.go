package server

import (
	"net/http"
	"strings"

	hoteldomain "github.com/fodetoorg/yoyo/internal/hotel/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateHotel(c *gin.Context) {
	var req hoteldomain.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hotelSvc.CreateHotel(c.Request.Context(), hoteldomain.CreateHotelRequest{
		CityID:      strings.TrimSpace(req.CityID),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     req.Address,
		StarRating:  req.StarRating,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetHotelByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.hotelSvc.GetHotel(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateHotel(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req hoteldomain.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hotelSvc.UpdateHotel(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SearchHotels(c *gin.Context) {
	var req hoteldomain.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hotelSvc.SearchHotels(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Hotels, "page_info": resp.PageInfo})
}

func (s *Server) CreateRoom(c *gin.Context) {
	hotelID := strings.TrimSpace(c.Param("id"))

	var req hoteldomain.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hotelSvc.CreateRoom(c.Request.Context(), hotelID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetRoomByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.hotelSvc.GetRoom(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRooms(c *gin.Context) {
	hotelID := strings.TrimSpace(c.Param("id"))
	resp, err := s.hotelSvc.ListRooms(c.Request.Context(), hotelID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRoom(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req hoteldomain.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.hotelSvc.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isHotelValidationError(err error) bool {
	switch err {
	case hoteldomain.ErrInvalidCity,
		hoteldomain.ErrInvalidName,
		hoteldomain.ErrInvalidBasePrice,
		hoteldomain.ErrInvalidCapacity,
		hoteldomain.ErrHotelInactive:
		return true
	default:
		return false
	}
}
