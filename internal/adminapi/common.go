package adminapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/shopcore/internal/app"
)

// Handler carries the application context into the API handlers.
type Handler struct {
	app app.AppContext
}

func NewHandler(appCtx app.AppContext) *Handler {
	return &Handler{app: appCtx}
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, apiError{Code: code, Message: message, Detail: detail})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// readImagePart reads the optional multipart "image" field. A missing part
// is not an error; the caller gets nil bytes.
func readImagePart(c echo.Context) ([]byte, string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, "", nil
	}
	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}
	return data, file.Filename, nil
}
