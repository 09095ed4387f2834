package vehicle

// CreateVehicleRequest for registering a new vehicle
type CreateVehicleRequest struct {
	Brand     string  `json:"brand" binding:"required"`
	Model     string  `json:"model" binding:"required"`
	Year      int     `json:"year" binding:"required,min=1950,max=2100"`
	Plate     string  `json:"plate" binding:"required"`
	Type      string  `json:"vtype" binding:"required"`
	DailyRate float64 `json:"daily_rate" binding:"required,gt=0"`
}
