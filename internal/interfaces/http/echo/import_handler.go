package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/user-importer/internal/application/user"
	domain "github.com/user-importer/internal/domain/user"
)

type ImportHandler struct {
	upload     app.ReceiveUpload
	initialize app.InitializeImport
	advance    app.AdvanceImport
	history    app.GetImportHistory
}

type initializeImportRequest struct {
	FileRef  string `json:"file_ref"`
	FileName string `json:"file_name"`
	Format   string `json:"format"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func NewImportHandler(upload app.ReceiveUpload, initialize app.InitializeImport, advance app.AdvanceImport, history app.GetImportHistory) *ImportHandler {
	return &ImportHandler{
		upload:     upload,
		initialize: initialize,
		advance:    advance,
		history:    history,
	}
}

// Upload receives the raw multipart file and returns the stable file
// reference the initialize call expects.
func (h *ImportHandler) Upload(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "multipart field \"file\" is required",
		}})
	}

	src, err := header.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "failed to read uploaded file",
		}})
	}
	defer src.Close()

	out, err := h.upload.Execute(c.Request().Context(), app.ReceiveUploadInput{
		FileName: header.Filename,
		Content:  src,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidFormat) || errors.Is(err, app.ErrInvalidImportSource) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_file_type",
				Message: "only csv and xml files are supported",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to store uploaded file",
		}})
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *ImportHandler) Initialize(c echo.Context) error {
	var req initializeImportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "invalid request body",
		}})
	}

	out, err := h.initialize.Execute(c.Request().Context(), app.InitializeImportInput{
		FileRef:  req.FileRef,
		FileName: req.FileName,
		Format:   req.Format,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidImportSource):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_source",
				Message: "file_ref is required",
			}})
		case errors.Is(err, app.ErrInvalidFormat):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_file_type",
				Message: "unsupported file type",
			}})
		case errors.Is(err, app.ErrEmptyFile):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "empty_file",
				Message: "the selected file contains no data",
			}})
		case errors.Is(err, app.ErrParsing):
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "parsing_error",
				Message: err.Error(),
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to initialize import",
		}})
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

// Advance processes the next batch for an import. Terminal row failures
// surface here with the import already marked failed in the history log.
func (h *ImportHandler) Advance(c echo.Context) error {
	out, err := h.advance.Execute(c.Request().Context(), app.AdvanceImportInput{
		ImportID: c.Param("id"),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrStateNotFound):
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "state_not_found",
				Message: "import state not found or expired",
			}})
		case errors.Is(err, app.ErrImportBusy):
			return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
				Code:    "import_busy",
				Message: "a batch for this import is already running",
			}})
		case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrDuplicateLogin):
			return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
				Code:    "duplicate_account",
				Message: err.Error(),
			}})
		case errors.Is(err, domain.ErrMissingData), errors.Is(err, domain.ErrInvalidEmail):
			return c.JSON(http.StatusUnprocessableEntity, apiResponse{Error: &errorBody{
				Code:    "validation_failed",
				Message: err.Error(),
			}})
		case errors.Is(err, app.ErrParsing):
			return c.JSON(http.StatusUnprocessableEntity, apiResponse{Error: &errorBody{
				Code:    "reading_error",
				Message: err.Error(),
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to process batch",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) History(c echo.Context) error {
	out, err := h.history.Execute(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to list import history",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
