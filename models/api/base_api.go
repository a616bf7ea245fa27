package apimodels

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

type Response struct {
	Status  string      `json:"status"`            // success/fail
	Message string      `json:"message,omitempty"` // текст ошибки
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse ответ со списком и числом записей в нем
type ListResponse struct {
	Response
	RowCount int `json:"rowCount"`
}

func NewError(message string) Response {
	return Response{
		Status:  StatusFail,
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: StatusSuccess,
		Data:   data,
	}
}

// NewListResponse nil-список отдается как пустой массив
func NewListResponse[T any](list []T) ListResponse {
	if list == nil {
		list = []T{}
	}
	return ListResponse{
		Response: NewResponse(list),
		RowCount: len(list),
	}
}
