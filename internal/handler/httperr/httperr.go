package httperr

import (
	"net/http"

	"paylink-vending/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type statusRule struct {
	target error
	status int
	msg    string
}

var statusRules = []statusRule{
	{errs.ErrInvalidIntent, http.StatusBadRequest, "Invalid request"},
	{errs.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
	{errs.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{errs.ErrCatalogNotFound, http.StatusNotFound, "Catalog not found"},
	{errs.ErrInsufficientStock, http.StatusConflict, "Insufficient stock"},
	{errs.ErrConfigMissing, http.StatusServiceUnavailable, "Vending is not configured"},
	{errs.ErrSessionExpired, http.StatusBadGateway, "Payment provider session expired"},
	{errs.ErrProviderUnavailable, http.StatusServiceUnavailable, "Payment provider unavailable"},
	{errs.ErrCrypto, http.StatusInternalServerError, "Stored credentials could not be opened"},
}

// StatusFor maps a usecase error onto an HTTP status and a safe client message.
func StatusFor(err error) (int, string) {
	for _, r := range statusRules {
		if errs.Is(err, r.target) {
			return r.status, r.msg
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func AbortWithUsecaseError(c *gin.Context, err error) {
	status, msg := StatusFor(err)
	AbortWithError(c, status, err, msg, nil)
}
