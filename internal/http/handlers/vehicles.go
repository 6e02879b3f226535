package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type vehiclePayload struct {
	VehicleCode string `json:"vehicle_code" binding:"required"`
	PlateNumber string `json:"plate_number" binding:"required"`
	Model       string `json:"model"`
	Capacity    *int   `json:"capacity"`
	Status      string `json:"status"`
}

const vehicleSelect = `
	SELECT id, vehicle_code, plate_number, COALESCE(model,''), COALESCE(capacity,0), COALESCE(status,'available'), created_at
	FROM vehicles`

// GET /api/vehicles?q=&page=&limit=
func GetVehicles(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	page, limit := PageParams(c)

	query := vehicleSelect
	args := []any{}
	if q != "" {
		query += " WHERE (vehicle_code LIKE ? OR plate_number LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list vehicles", err)
		return
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleCode, &v.PlateNumber, &v.Model, &v.Capacity, &v.Status, &v.CreatedAt); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan vehicle", err)
			return
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "row iteration error", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": list})
}

// GET /api/vehicles/:id
func GetVehicleByID(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var v models.Vehicle
	err := intconfig.DB.QueryRow(vehicleSelect+` WHERE id=? LIMIT 1`, id).Scan(
		&v.ID, &v.VehicleCode, &v.PlateNumber, &v.Model, &v.Capacity, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "vehicle not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to fetch vehicle", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var payload vehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = "available"
	}
	capacity := 0
	if payload.Capacity != nil {
		capacity = *payload.Capacity
	}
	res, err := intconfig.DB.Exec(`
		INSERT INTO vehicles (vehicle_code, plate_number, model, capacity, status, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		strings.ToUpper(strings.TrimSpace(payload.VehicleCode)),
		strings.ToUpper(strings.TrimSpace(payload.PlateNumber)),
		strings.TrimSpace(payload.Model),
		capacity,
		status,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create vehicle", err)
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "vehicle created"})
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var payload vehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = "available"
	}
	capacity := 0
	if payload.Capacity != nil {
		capacity = *payload.Capacity
	}
	res, err := intconfig.DB.Exec(`
		UPDATE vehicles SET vehicle_code=?, plate_number=?, model=?, capacity=?, status=? WHERE id=?`,
		strings.ToUpper(strings.TrimSpace(payload.VehicleCode)),
		strings.ToUpper(strings.TrimSpace(payload.PlateNumber)),
		strings.TrimSpace(payload.Model),
		capacity,
		status,
		id,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update vehicle", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "vehicle not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle updated"})
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	res, err := intconfig.DB.Exec(`DELETE FROM vehicles WHERE id=?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete vehicle", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "vehicle not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}
