package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unimatch/internal/app/services"
	"github.com/yigit/unimatch/internal/ingest"
	"github.com/yigit/unimatch/internal/middleware"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
)

// maxIngestBody bounds the size of one upload
const maxIngestBody = 32 << 20

// IngestionController handles bulk catalog uploads
type IngestionController struct {
	ingestionService services.IngestionService
}

// NewIngestionController creates a new IngestionController
func NewIngestionController(ingestionService services.IngestionService) *IngestionController {
	return &IngestionController{
		ingestionService: ingestionService,
	}
}

// Ingest loads a batch of universities, courses or subjects. The body is the raw source;
// ?format= selects json (default), xlsx, html or firestore.
// POST /ingest/:kind
func (c *IngestionController) Ingest(ctx *gin.Context) {
	kind, err := ingest.ParseKind(ctx.Param("kind"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	format, err := ingest.ParseFormat(ctx.Query("format"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	body := http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxIngestBody)
	batch, err := ingest.Parse(kind, format, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = apperrors.NewCustomError(apperrors.ErrBatchTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.ingestionService.Ingest(ctx.Request.Context(), batch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
