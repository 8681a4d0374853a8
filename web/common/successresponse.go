package common

// SuccessResponse wraps every non-list payload so clients can rely on a
// single envelope shape next to ErrorResponse.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{Data: data}
}
