package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	apperrors "templatesvc/internal/errors"
)

// ErrorHandler renders every error as an ErrorResponse. It replaces echo's
// default handler so unmatched routes share the 404 body with handlers.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	httpErr := toHTTPError(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			"method":     c.Request().Method,
			"uri":        c.Request().RequestURI,
		}).Errorf("request failed: %v", err)
	}

	resp := httpErr.ToErrorResponse()
	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.StatusCode)
	} else {
		writeErr = c.JSON(httpErr.StatusCode, resp)
	}
	if writeErr != nil {
		log.Errorf("write error response: %v", writeErr)
	}
}

// toHTTPError folds echo's own errors into the closed variant set: routing
// misses answer NotFound, body and media-type rejections answer Unprocessable.
func toHTTPError(err error) *apperrors.HTTPError {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch {
		case echoErr.Code >= http.StatusInternalServerError:
			return apperrors.Internal()
		case echoErr.Code == http.StatusBadRequest,
			echoErr.Code == http.StatusUnsupportedMediaType,
			echoErr.Code == http.StatusUnprocessableEntity:
			return apperrors.Unprocessable()
		default:
			return apperrors.NotFound()
		}
	}
	return apperrors.MapErrorToHTTP(err)
}
