package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

type driverPayload struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	LicenseNumber string `json:"license_number"`
	Status        string `json:"status"`
}

const driverSelect = `
	SELECT id, name, COALESCE(phone,''), COALESCE(license_number,''), COALESCE(status,'active'), created_at
	FROM drivers`

// GET /api/drivers?q=&page=&limit=
func GetDrivers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	page, limit := PageParams(c)

	query := driverSelect
	args := []any{}
	if q != "" {
		query += " WHERE (name LIKE ? OR phone LIKE ? OR license_number LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list drivers", err)
		return
	}
	defer rows.Close()

	list := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.LicenseNumber, &d.Status, &d.CreatedAt); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan driver", err)
			return
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "row iteration error", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": list})
}

// GET /api/drivers/:id
func GetDriverByID(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var d models.Driver
	err := intconfig.DB.QueryRow(driverSelect+` WHERE id=? LIMIT 1`, id).Scan(
		&d.ID, &d.Name, &d.Phone, &d.LicenseNumber, &d.Status, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "driver not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to fetch driver", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var payload driverPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = "active"
	}
	res, err := intconfig.DB.Exec(`
		INSERT INTO drivers (name, phone, license_number, status, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		utils.NormalizeSpace(payload.Name),
		utils.NormalizePhone(payload.Phone),
		strings.TrimSpace(payload.LicenseNumber),
		status,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create driver", err)
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "driver created"})
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var payload driverPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = "active"
	}
	res, err := intconfig.DB.Exec(`
		UPDATE drivers SET name=?, phone=?, license_number=?, status=? WHERE id=?`,
		utils.NormalizeSpace(payload.Name),
		utils.NormalizePhone(payload.Phone),
		strings.TrimSpace(payload.LicenseNumber),
		status,
		id,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update driver", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "driver not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver updated"})
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	res, err := intconfig.DB.Exec(`DELETE FROM drivers WHERE id=?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete driver", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "driver not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}
