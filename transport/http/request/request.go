package request

import (
	"net/http"
	"roomly/shared"
	"roomly/shared/constant"
	"roomly/shared/failure"

	"github.com/go-chi/chi/v5"
)

// ID reads a positive numeric path parameter.
func ID(r *http.Request, param string) (int64, error) {
	id, err := shared.ConvertStringToID(chi.URLParam(r, param))
	if err != nil {
		return 0, failure.BadRequestFromString(param + " must be a positive number")
	}

	return id, nil
}

// MultipartForm parses a multipart body held in memory up to constant.RequestMaxMemory.
func MultipartForm(r *http.Request) error {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return failure.BadRequestFromString("request body must be multipart/form-data")
	}

	return nil
}
