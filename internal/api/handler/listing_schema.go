package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses; the actual rendering happens in the central error handler.
// Success is always false there.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type listingRequest struct {
	Type            string   `json:"type"            validate:"required,oneof=job service"`
	Title           string   `json:"title"           validate:"required"`
	Code            string   `json:"code"            validate:"required"`
	CategoryID      string   `json:"categoryId"      validate:"required"`
	Description     string   `json:"description"     validate:"required"`
	FullDescription string   `json:"fullDescription"`
	Price           float64  `json:"price"           validate:"gte=0"`
	Location        string   `json:"location"        validate:"required"`
	Surface         float64  `json:"surface"         validate:"gte=0"`
	Images          []string `json:"images"`
}

type categoryRequest struct {
	Name  string `json:"name"  validate:"required"`
	Color string `json:"color"`
}
