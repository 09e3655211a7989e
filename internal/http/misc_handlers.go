package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/repository"
	"storefront/internal/service"
)

// Demo glue: items CRUD, voter records and the voting-eligibility
// calculator carried over from the original browser demo.

func (s *Server) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Basic API!"})
}

// Items

type itemReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type itemUpdateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) listItems(c *gin.Context) {
	items, err := s.items.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) getItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}
	it, err := s.items.GetByID(c, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
			return
		}
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, it)
}

func (s *Server) createItem(c *gin.Context) {
	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	it, err := s.items.Create(c, req.Name, req.Description)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (s *Server) updateItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}
	var req itemUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	it, err := s.items.Update(c, id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
			return
		}
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, it)
}

func (s *Server) deleteItem(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}
	if err := s.items.Delete(c, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
			return
		}
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// Voters and eligibility

type voterReq struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (s *Server) listVoters(c *gin.Context) {
	voters, err := s.voting.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, voters)
}

func (s *Server) createVoter(c *gin.Context) {
	var req voterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	v, err := s.voting.Create(c, req.Name, req.Age)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (s *Server) voterCanVote(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	out, err := s.voting.CanVote(c, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(mapErrorToStatus(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

type eligibilityReq struct {
	Age         *int   `json:"age"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (s *Server) checkEligibility(c *gin.Context) {
	var req eligibilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json", "canVote": false})
		return
	}
	if req.Age == nil && req.DateOfBirth == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide either age or dateOfBirth", "canVote": false})
		return
	}
	var age int
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid dateOfBirth, expected YYYY-MM-DD", "canVote": false})
			return
		}
		age = service.AgeAt(dob, time.Now())
	} else {
		age = *req.Age
	}
	c.JSON(http.StatusOK, service.CheckVotingAge(age))
}

func (s *Server) checkEligibilityByAge(c *gin.Context) {
	age, err := strconv.Atoi(c.Param("age"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid age parameter", "canVote": false})
		return
	}
	c.JSON(http.StatusOK, service.CheckVotingAge(age))
}
