package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/repositories"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

type clientPayload struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// GET /api/clients?q=&page=&limit=
func GetClients(c *gin.Context) {
	page, limit := PageParams(c)
	list, err := repositories.ClientRepository{}.List(strings.TrimSpace(c.Query("q")), page, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list clients", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": list})
}

// GET /api/clients/:id
func GetClientByID(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	client, err := repositories.ClientRepository{}.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "client not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to fetch client", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// POST /api/clients
func CreateClient(c *gin.Context) {
	var payload clientPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	id, err := repositories.ClientRepository{}.Create(models.Client{
		Name:    utils.NormalizeSpace(payload.Name),
		Phone:   utils.NormalizePhone(payload.Phone),
		Email:   strings.TrimSpace(payload.Email),
		Address: strings.TrimSpace(payload.Address),
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create client", err)
		return
	}
	client, err := repositories.ClientRepository{}.GetByID(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to fetch created client", err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// PUT /api/clients/:id
func UpdateClient(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var payload clientPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	ok2, err := repositories.ClientRepository{}.Update(models.Client{
		ID:      id,
		Name:    utils.NormalizeSpace(payload.Name),
		Phone:   utils.NormalizePhone(payload.Phone),
		Email:   strings.TrimSpace(payload.Email),
		Address: strings.TrimSpace(payload.Address),
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update client", err)
		return
	}
	if !ok2 {
		RespondError(c, http.StatusNotFound, "client not found", nil)
		return
	}
	client, err := repositories.ClientRepository{}.GetByID(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to fetch updated client", err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// DELETE /api/clients/:id
func DeleteClient(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	ok2, err := repositories.ClientRepository{}.Delete(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete client", err)
		return
	}
	if !ok2 {
		RespondError(c, http.StatusNotFound, "client not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}
