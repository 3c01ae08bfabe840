package dto

import (
	"time"

	"github.com/studiobella/spa-admin-api/internal/models"
)

type AppointmentListDTO struct {
	ID        uint      `json:"id"`
	Reference string    `json:"reference"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`

	ClientName   string `json:"client_name"`
	EmployeeName string `json:"employee_name"`
	ServiceName  string `json:"service_name"`
	CategoryName string `json:"category_name"`
}

func AppointmentToListDTO(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:           ap.ID,
		Reference:    ap.Reference,
		Date:         ap.Date,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status,
		Total:        ap.Total,
		ClientName:   ap.Client.Name + " " + ap.Client.Surname,
		EmployeeName: ap.Employee.Name + " " + ap.Employee.Surname,
		ServiceName:  ap.Service.Name,
		CategoryName: ap.Service.Category.Name,
	}
}
